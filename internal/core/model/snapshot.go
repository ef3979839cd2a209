package model

import "time"

// Metrics holds the derived structural measures for one snapshot, keyed by
// node ID. Computed once at the end of a build and never mutated.
type Metrics struct {
	Centrality map[string]float64  `json:"centrality"`
	Clusters   map[string]int      `json:"clusters"`
	Frontier   map[string]Frontier `json:"frontier"`
	// Verification counts nodes per aggregate lean status. The report layer
	// turns these into coverage ratios; the core does not interpret them.
	Verification map[LeanStatus]int `json:"verification"`
}

// Frontier classifies how settled a node's formalization is.
type Frontier string

const (
	FrontierProven Frontier = "proven"   // verified
	FrontierActive Frontier = "frontier" // attempted or failed, someone is working here
	FrontierOpen   Frontier = "open"     // pseudo or not attempted
)

// FrontierFor maps an aggregate status to its frontier class.
func FrontierFor(s LeanStatus) Frontier {
	switch s {
	case StatusVerified:
		return FrontierProven
	case StatusAttempted, StatusFailed:
		return FrontierActive
	default:
		return FrontierOpen
	}
}

// Snapshot is one finished consolidation result: the graph, its metrics, and
// any warnings accumulated along the way. A snapshot is immutable once built;
// rebuilding a problem produces a new snapshot with a fresh ID.
type Snapshot struct {
	ID        string    `json:"id"`
	ProblemID string    `json:"problem_id"`
	CreatedAt time.Time `json:"created_at"`
	Nodes     []Node    `json:"nodes"`
	Edges     []Edge    `json:"edges"`
	Metrics   Metrics   `json:"metrics"`
	Warnings  []string  `json:"warnings"`
}
