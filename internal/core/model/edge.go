package model

// Relation types an edge between canonical nodes.
type Relation string

const (
	RelationUses          Relation = "USES"
	RelationProves        Relation = "PROVES"
	RelationRelatesTo     Relation = "RELATES_TO"
	RelationAppliesTo     Relation = "APPLIES_TO_PROBLEM"
	RelationExemplifiedBy Relation = "EXEMPLIFIED_BY"
)

// Edge is a directed, typed relation between two nodes. Multiple relations
// between the same ordered pair are stored as separate edges; an edge never
// points from a node to itself.
type Edge struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	Relation   Relation `json:"relation"`
	Confidence float64  `json:"confidence"` // always within [0, 1]
}
