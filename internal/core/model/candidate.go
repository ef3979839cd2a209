package model

// Kind categorizes a distilled item from a paper.
type Kind string

const (
	KindDefinition Kind = "definition"
	KindTheorem    Kind = "theorem"
	KindLemma      Kind = "lemma"
	KindTechnique  Kind = "technique"
)

func (k Kind) Valid() bool {
	switch k {
	case KindDefinition, KindTheorem, KindLemma, KindTechnique:
		return true
	}
	return false
}

// LeanStatus records how far formalization of an item got. The core treats it
// as an opaque label with a fixed preference order; it never judges the
// formalization itself.
type LeanStatus string

const (
	StatusVerified     LeanStatus = "verified"
	StatusAttempted    LeanStatus = "attempted"
	StatusFailed       LeanStatus = "failed"
	StatusPseudo       LeanStatus = "pseudo"
	StatusNotAttempted LeanStatus = "not_attempted"
)

var statusRank = map[LeanStatus]int{
	StatusVerified:     4,
	StatusAttempted:    3,
	StatusFailed:       2,
	StatusPseudo:       1,
	StatusNotAttempted: 0,
}

// Rank orders statuses best-first for aggregation. Unknown statuses rank
// lowest, same as not_attempted.
func (s LeanStatus) Rank() int {
	return statusRank[s]
}

// Candidate is one distilled item as a distiller worker emitted it.
// Candidates are immutable after ingest; later stages only read them.
type Candidate struct {
	PaperID      string     `json:"paper_id"`
	Kind         Kind       `json:"type"`
	Name         string     `json:"name"`
	LeanCode     string     `json:"lean_code,omitempty"`
	LeanStatus   LeanStatus `json:"lean_status,omitempty"`
	Dependencies []string   `json:"dependencies,omitempty"`
	Explanation  string     `json:"explanation,omitempty"`
	Relevance    string     `json:"relevance_to_problem,omitempty"`
}

// DistilledOutput is the wire shape of one distiller worker's result.
type DistilledOutput struct {
	PaperID string      `json:"paper_id"`
	Items   []Candidate `json:"distilled_items"`
}
