package metrics

import (
	"github.com/proofmesh/basalt/internal/core/model"
)

// Compute derives the structural metrics for a finished node and edge set:
// confidence-weighted degree centrality normalized to [0, 1], connected
// component clusters over the undirected projection, per-node frontier
// classification, and the graph-level verification summary. The inputs are
// not mutated.
func Compute(nodes []model.Node, edges []model.Edge) model.Metrics {
	m := model.Metrics{
		Centrality:   make(map[string]float64, len(nodes)),
		Clusters:     make(map[string]int, len(nodes)),
		Frontier:     make(map[string]model.Frontier, len(nodes)),
		Verification: make(map[model.LeanStatus]int),
	}

	// Weighted degree: every edge contributes its confidence to both ends,
	// regardless of direction or relation.
	degree := make(map[string]float64, len(nodes))
	for _, n := range nodes {
		degree[n.ID] = 0
	}
	maxDegree := 0.0
	for _, e := range edges {
		degree[e.From] += e.Confidence
		degree[e.To] += e.Confidence
	}
	for _, d := range degree {
		if d > maxDegree {
			maxDegree = d
		}
	}
	for _, n := range nodes {
		if maxDegree > 0 {
			m.Centrality[n.ID] = degree[n.ID] / maxDegree
		} else {
			m.Centrality[n.ID] = 0
		}
	}

	// Clusters: connected components, ignoring direction and relation.
	// Cluster IDs follow the order the first node of each component appears
	// in the node list, which is deterministic given stable node ordering.
	adj := make(map[string][]string, len(nodes))
	for _, e := range edges {
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}
	visited := make(map[string]bool, len(nodes))
	clusterID := 0
	for _, n := range nodes {
		if visited[n.ID] {
			continue
		}
		markComponent(n.ID, adj, visited, m.Clusters, clusterID)
		clusterID++
	}

	for _, n := range nodes {
		m.Frontier[n.ID] = model.FrontierFor(n.LeanStatus)
		m.Verification[n.LeanStatus]++
	}
	return m
}

func markComponent(id string, adj map[string][]string, visited map[string]bool, clusters map[string]int, clusterID int) {
	stack := []string{id}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[u] {
			continue
		}
		visited[u] = true
		clusters[u] = clusterID
		stack = append(stack, adj[u]...)
	}
}
