package dedupe

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/proofmesh/basalt/internal/core/model"
)

// DefaultThreshold is deliberately conservative: leaving two aliases of one
// concept separate can be fixed by a reviewer, an incorrect auto-merge
// silently destroys information.
const DefaultThreshold = 0.8

// nodeNamespace seeds deterministic node IDs so a rebuild of the same inputs
// yields the same IDs.
var nodeNamespace = uuid.MustParse("5ba2b8a1-9c34-4c57-8e6f-0d1f3a7b42c9")

// Result maps the ingested candidate sequence onto canonical nodes.
type Result struct {
	Nodes []model.Node
	// Membership maps each candidate index to its node index.
	Membership []int
	// Aliases maps every normalized alias to a node index, for dependency
	// resolution. When two nodes of different kinds share an alias, the node
	// with the smaller ID wins, so the winner does not depend on input order.
	Aliases  map[string]int
	Warnings []model.Warning
}

// Deduper partitions candidates into canonical nodes. Candidates merge only
// within the same kind; identical normalized names merge automatically and
// near-identical names merge when their similarity clears Threshold. Merging
// is transitive through a union-find over candidate indices.
type Deduper struct {
	Threshold float64

	// similarity is swappable for tests; nil means the default scorer.
	similarity func(a, b *entry) float64
}

func New(threshold float64) *Deduper {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Deduper{Threshold: threshold}
}

// entry caches the derived keys for one candidate.
type entry struct {
	idx     int // position in the ingested sequence
	key     string
	tokens  map[string]struct{}
	deps    map[string]struct{}
	hasDeps bool
}

// Partition groups the candidate sequence into canonical nodes. It never
// fails: a similarity scorer that panics inside one kind bucket degrades that
// bucket to one node per candidate and records a warning, so the pipeline
// still produces a graph.
func (d *Deduper) Partition(candidates []model.Candidate) Result {
	res := Result{
		Membership: make([]int, len(candidates)),
		Aliases:    make(map[string]int),
	}

	// Bucket candidate indices by kind, preserving ingest order.
	buckets := make(map[model.Kind][]*entry)
	var kindOrder []model.Kind
	for i, c := range candidates {
		e := &entry{
			idx:    i,
			key:    NormalizeName(c.Name),
			tokens: tokenSet(NormalizeName(c.Name)),
		}
		for _, dep := range c.Dependencies {
			if e.deps == nil {
				e.deps = make(map[string]struct{})
			}
			e.deps[NormalizeName(dep)] = struct{}{}
		}
		e.hasDeps = len(e.deps) > 0
		if _, ok := buckets[c.Kind]; !ok {
			kindOrder = append(kindOrder, c.Kind)
		}
		buckets[c.Kind] = append(buckets[c.Kind], e)
	}

	// Collect merge groups bucket by bucket, then emit nodes in the order of
	// each group's first-seen candidate so the layout is deterministic.
	var groups [][]*entry
	for _, kind := range kindOrder {
		merged, warn := d.mergeBucket(kind, buckets[kind])
		if warn != nil {
			res.Warnings = append(res.Warnings, *warn)
		}
		groups = append(groups, merged...)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i][0].idx < groups[j][0].idx
	})

	seenIDs := make(map[string]int)
	for _, group := range groups {
		node := buildNode(candidates, group, seenIDs)
		nodeIdx := len(res.Nodes)
		res.Nodes = append(res.Nodes, node)
		for _, e := range group {
			res.Membership[e.idx] = nodeIdx
		}
		for _, alias := range node.Aliases {
			if prev, taken := res.Aliases[alias]; !taken || node.ID < res.Nodes[prev].ID {
				res.Aliases[alias] = nodeIdx
			}
		}
	}
	return res
}

// mergeBucket unions one kind bucket's entries into groups. A panic during
// scoring aborts only this bucket's merge.
func (d *Deduper) mergeBucket(kind model.Kind, bucket []*entry) (groups [][]*entry, warn *model.Warning) {
	uf := newUnionFind(len(bucket))

	func() {
		defer func() {
			if r := recover(); r != nil {
				uf = newUnionFind(len(bucket)) // one node per candidate
				w := model.Warnf(model.WarnSimilarityFailure,
					"similarity scoring failed in %s bucket, merges skipped: %v", kind, r)
				warn = &w
			}
		}()

		byKey := make(map[string]int)
		for i, e := range bucket {
			if first, ok := byKey[e.key]; ok {
				uf.union(first, i)
			} else {
				byKey[e.key] = i
			}
		}

		score := d.similarity
		if score == nil {
			score = similarity
		}
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				if bucket[i].key == bucket[j].key {
					continue // already merged above
				}
				if score(bucket[i], bucket[j]) >= d.Threshold {
					uf.union(i, j)
				}
			}
		}
	}()

	byRoot := make(map[int][]*entry)
	var rootOrder []int
	for i, e := range bucket {
		root := uf.find(i)
		if _, ok := byRoot[root]; !ok {
			rootOrder = append(rootOrder, root)
		}
		byRoot[root] = append(byRoot[root], e)
	}
	for _, root := range rootOrder {
		groups = append(groups, byRoot[root])
	}
	return groups, warn
}

// similarity scores two entries in [0, 1]: token-set overlap of the
// normalized names, blended with overlap of declared dependencies when both
// sides declare any. The blend weights are tunable heuristics, not a
// contract.
func similarity(a, b *entry) float64 {
	nameSim := overlap(a.tokens, b.tokens)
	if !a.hasDeps || !b.hasDeps {
		return nameSim
	}
	return 0.75*nameSim + 0.25*overlap(a.deps, b.deps)
}

// buildNode folds one merge group into a canonical node. Group entries are in
// ingest order, so the first entry is the first-seen member.
func buildNode(candidates []model.Candidate, group []*entry, seenIDs map[string]int) model.Node {
	first := candidates[group[0].idx]
	node := model.Node{
		Kind:        first.Kind,
		Name:        group[0].key,
		MemberCount: len(group),
		LeanStatus:  model.StatusNotAttempted,
	}

	seenAlias := make(map[string]struct{})
	seenPaper := make(map[string]struct{})
	var explanations []string
	for _, e := range group {
		c := candidates[e.idx]
		if _, ok := seenAlias[e.key]; !ok {
			seenAlias[e.key] = struct{}{}
			node.Aliases = append(node.Aliases, e.key)
		}
		if _, ok := seenPaper[c.PaperID]; !ok && c.PaperID != "" {
			seenPaper[c.PaperID] = struct{}{}
			node.Papers = append(node.Papers, c.PaperID)
		}
		if c.LeanStatus.Rank() > node.LeanStatus.Rank() {
			node.LeanStatus = c.LeanStatus
		}
		if c.Explanation != "" && len(explanations) < 2 && !contains(explanations, c.Explanation) {
			explanations = append(explanations, c.Explanation)
		}
	}
	node.Explanation = strings.Join(explanations, " | ")
	node.LeanCode = bestLeanCode(candidates, group)

	// Deterministic ID. The seed is disambiguated when a degraded bucket
	// leaves several nodes with the same kind and canonical name.
	seed := string(node.Kind) + "|" + node.Name
	if n := seenIDs[seed]; n > 0 {
		seed += "|" + strconv.Itoa(n)
	}
	seenIDs[string(node.Kind)+"|"+node.Name]++
	node.ID = uuid.NewSHA1(nodeNamespace, []byte(seed)).String()
	return node
}

// bestLeanCode picks the representative formalization: verified members
// first, then attempted, then pseudo; within a tier the longest code wins as
// the most complete. Failed and unattempted members never represent a node.
func bestLeanCode(candidates []model.Candidate, group []*entry) string {
	for _, tier := range []model.LeanStatus{model.StatusVerified, model.StatusAttempted, model.StatusPseudo} {
		best := ""
		for _, e := range group {
			c := candidates[e.idx]
			if c.LeanStatus == tier && len(c.LeanCode) > len(best) {
				best = c.LeanCode
			}
		}
		if best != "" {
			return best
		}
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
