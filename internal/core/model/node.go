package model

// Node is a canonical, deduplicated concept. Every ingested Candidate folds
// into exactly one Node; Aliases always contains at least Name.
type Node struct {
	ID          string     `json:"id"`
	Kind        Kind       `json:"kind"`
	Name        string     `json:"name"` // normalized form of the first-seen member's raw name
	Aliases     []string   `json:"aliases"`
	LeanCode    string     `json:"lean_code,omitempty"`
	LeanStatus  LeanStatus `json:"lean_status"`
	Papers      []string   `json:"papers"` // distinct contributing paper IDs, first-seen order
	MemberCount int        `json:"member_count"`
	Explanation string     `json:"explanation,omitempty"`
}
