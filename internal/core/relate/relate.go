package relate

import (
	"sort"

	"github.com/proofmesh/basalt/internal/core/dedupe"
	"github.com/proofmesh/basalt/internal/core/model"
)

// Result is the derived edge set plus any dropped-dependency warnings.
type Result struct {
	Edges    []model.Edge
	Warnings []model.Warning
}

// Build derives the typed edges among canonical nodes from two sources:
//
//   - declared USES edges: each candidate's declared dependencies, resolved
//     through the same normalized-key alias lookup that dedupe produced, at
//     confidence 1.0. Names that resolve to nothing drop the edge and record
//     a warning rather than leaving a dangling reference.
//   - RELATES_TO co-occurrence edges: two nodes whose members share source
//     papers, at confidence shared / min(|papersA|, |papersB|) capped at 1.0.
//     Dividing by the smaller provenance rewards pairs that consistently
//     appear together rather than pairs that merely met once in a large
//     paper. Co-occurrence carries no inherent direction, so the edge is
//     oriented from the smaller node ID to keep rebuilds of reordered
//     inputs comparable.
//
// Duplicate (from, to, relation) edges collapse to the maximum confidence,
// and an edge never points from a node to itself.
func Build(candidates []model.Candidate, dd dedupe.Result) Result {
	var res Result
	merged := make(map[edgeKey]float64)
	var order []edgeKey

	record := func(k edgeKey, confidence float64) {
		if k.from == k.to {
			return
		}
		if prev, ok := merged[k]; ok {
			if confidence > prev {
				merged[k] = confidence
			}
			return
		}
		merged[k] = confidence
		order = append(order, k)
	}

	// Declared dependencies.
	for i, c := range candidates {
		fromNode := dd.Nodes[dd.Membership[i]]
		for _, dep := range c.Dependencies {
			key := dedupe.NormalizeName(dep)
			toIdx, ok := dd.Aliases[key]
			if !ok {
				res.Warnings = append(res.Warnings, model.Warnf(model.WarnUnresolvedDependency,
					"%q declared by %q matches no node, edge dropped", dep, c.Name))
				continue
			}
			record(edgeKey{fromNode.ID, dd.Nodes[toIdx].ID, model.RelationUses}, 1.0)
		}
	}

	// Co-occurrence. Node paper sets are small, so the pairwise scan over
	// nodes dominated by shared-paper counting is fine at this scale.
	papers := make([]map[string]struct{}, len(dd.Nodes))
	for i, n := range dd.Nodes {
		papers[i] = make(map[string]struct{}, len(n.Papers))
		for _, p := range n.Papers {
			papers[i][p] = struct{}{}
		}
	}
	for i := range dd.Nodes {
		for j := i + 1; j < len(dd.Nodes); j++ {
			shared := sharedCount(papers[i], papers[j])
			if shared == 0 {
				continue
			}
			smaller := len(papers[i])
			if len(papers[j]) < smaller {
				smaller = len(papers[j])
			}
			confidence := float64(shared) / float64(smaller)
			if confidence > 1.0 {
				confidence = 1.0
			}
			from, to := dd.Nodes[i].ID, dd.Nodes[j].ID
			if to < from {
				from, to = to, from // orient by ID, not discovery order
			}
			record(edgeKey{from, to, model.RelationRelatesTo}, confidence)
		}
	}

	res.Edges = make([]model.Edge, 0, len(order))
	for _, k := range order {
		res.Edges = append(res.Edges, model.Edge{
			From:       k.from,
			To:         k.to,
			Relation:   k.relation,
			Confidence: merged[k],
		})
	}
	sort.SliceStable(res.Edges, func(i, j int) bool {
		if res.Edges[i].From != res.Edges[j].From {
			return res.Edges[i].From < res.Edges[j].From
		}
		if res.Edges[i].To != res.Edges[j].To {
			return res.Edges[i].To < res.Edges[j].To
		}
		return res.Edges[i].Relation < res.Edges[j].Relation
	})
	return res
}

type edgeKey struct {
	from, to string
	relation model.Relation
}

func sharedCount(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for p := range a {
		if _, ok := b[p]; ok {
			n++
		}
	}
	return n
}
