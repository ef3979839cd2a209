package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofmesh/basalt/internal/core/model"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "sieve method", NormalizeName("Sieve method"))
	assert.Equal(t, "sieve method", NormalizeName("sieve  Method"))
	assert.Equal(t, "erdos ko rado theorem", NormalizeName("Erdos-Ko-Rado  Theorem!"))
	assert.Equal(t, "", NormalizeName("  ...  "))
}

func TestPartitionMergesNormalizedDuplicates(t *testing.T) {
	// "Sieve method" and "sieve  Method" from two papers collapse into one
	// node with a single normalized alias and provenance of length 2.
	candidates := []model.Candidate{
		{PaperID: "paper-1", Kind: model.KindTechnique, Name: "Sieve method"},
		{PaperID: "paper-2", Kind: model.KindTechnique, Name: "sieve  Method"},
	}

	res := New(0).Partition(candidates)

	require.Len(t, res.Nodes, 1)
	node := res.Nodes[0]
	assert.Equal(t, "sieve method", node.Name)
	assert.Equal(t, []string{"sieve method"}, node.Aliases)
	assert.Equal(t, []string{"paper-1", "paper-2"}, node.Papers)
	assert.Equal(t, 2, node.MemberCount)
	assert.Equal(t, []int{0, 0}, res.Membership)
}

func TestPartitionNeverMergesAcrossKinds(t *testing.T) {
	candidates := []model.Candidate{
		{PaperID: "p1", Kind: model.KindTheorem, Name: "Duality"},
		{PaperID: "p2", Kind: model.KindDefinition, Name: "Duality"},
	}

	res := New(0).Partition(candidates)

	require.Len(t, res.Nodes, 2)
	assert.NotEqual(t, res.Nodes[0].ID, res.Nodes[1].ID)
}

func TestPartitionTransitiveMerge(t *testing.T) {
	// A~B and B~C clear the threshold, A~C alone does not; union-find still
	// lands all three in one node.
	a := "large sieve inequality bound"
	b := "large sieve inequality bound refinement"
	c := "large sieve inequality bound refinement lemma"

	d := New(0.8)
	assert.GreaterOrEqual(t, similarity(entryFor(a), entryFor(b)), 0.8)
	assert.GreaterOrEqual(t, similarity(entryFor(b), entryFor(c)), 0.8)
	assert.Less(t, similarity(entryFor(a), entryFor(c)), 0.8)

	res := d.Partition([]model.Candidate{
		{PaperID: "p1", Kind: model.KindTechnique, Name: a},
		{PaperID: "p2", Kind: model.KindTechnique, Name: b},
		{PaperID: "p3", Kind: model.KindTechnique, Name: c},
	})

	require.Len(t, res.Nodes, 1)
	assert.Equal(t, 3, res.Nodes[0].MemberCount)
	assert.Equal(t, a, res.Nodes[0].Name) // first-seen member names the node
	assert.Len(t, res.Nodes[0].Aliases, 3)
}

func TestPartitionRespectsThreshold(t *testing.T) {
	// Two tokens shared out of three: similarity 2/3, below the default
	// threshold, so the names stay separate.
	candidates := []model.Candidate{
		{PaperID: "p1", Kind: model.KindTechnique, Name: "polynomial method"},
		{PaperID: "p2", Kind: model.KindTechnique, Name: "polynomial method variant"},
	}

	assert.Len(t, New(0).Partition(candidates).Nodes, 2)
	assert.Len(t, New(0.5).Partition(candidates).Nodes, 1)
}

func TestPartitionDependencyOverlapHelpsMerge(t *testing.T) {
	// Name similarity alone sits below threshold; shared dependencies lift
	// the blended score over it.
	candidates := []model.Candidate{
		{PaperID: "p1", Kind: model.KindTheorem, Name: "restriction estimate theorem",
			Dependencies: []string{"Fourier transform", "Decoupling"}},
		{PaperID: "p2", Kind: model.KindTheorem, Name: "restriction estimate",
			Dependencies: []string{"fourier  Transform", "decoupling"}},
	}

	nameOnly := overlap(tokenSet("restriction estimate theorem"), tokenSet("restriction estimate"))
	assert.Less(t, nameOnly, 0.8)

	res := New(0.75).Partition(candidates)
	require.Len(t, res.Nodes, 1)
}

func TestRepresentativeSelection(t *testing.T) {
	candidates := []model.Candidate{
		{PaperID: "p1", Kind: model.KindTheorem, Name: "Main theorem",
			LeanCode: "short", LeanStatus: model.StatusVerified},
		{PaperID: "p2", Kind: model.KindTheorem, Name: "main theorem",
			LeanCode: "a much longer verified formalization", LeanStatus: model.StatusVerified},
		{PaperID: "p3", Kind: model.KindTheorem, Name: "Main Theorem",
			LeanCode: "the longest code of all, but only attempted so it loses", LeanStatus: model.StatusAttempted},
	}

	res := New(0).Partition(candidates)

	require.Len(t, res.Nodes, 1)
	assert.Equal(t, "a much longer verified formalization", res.Nodes[0].LeanCode)
	assert.Equal(t, model.StatusVerified, res.Nodes[0].LeanStatus)
}

func TestRepresentativeFallback(t *testing.T) {
	// No verified member: fall back to attempted, then pseudo. Failed code
	// never represents a node.
	candidates := []model.Candidate{
		{PaperID: "p1", Kind: model.KindLemma, Name: "Helper lemma",
			LeanCode: "failed attempt code", LeanStatus: model.StatusFailed},
		{PaperID: "p2", Kind: model.KindLemma, Name: "helper lemma",
			LeanCode: "pseudo sketch", LeanStatus: model.StatusPseudo},
	}

	res := New(0).Partition(candidates)

	require.Len(t, res.Nodes, 1)
	assert.Equal(t, "pseudo sketch", res.Nodes[0].LeanCode)
	// Aggregate status is the best rank among members, independent of the
	// representative code.
	assert.Equal(t, model.StatusFailed, res.Nodes[0].LeanStatus)
}

func TestPartitionDeterministicIDs(t *testing.T) {
	candidates := []model.Candidate{
		{PaperID: "p1", Kind: model.KindDefinition, Name: "Discrepancy"},
		{PaperID: "p2", Kind: model.KindTheorem, Name: "Main theorem"},
	}

	first := New(0).Partition(candidates)
	second := New(0).Partition(candidates)

	require.Len(t, first.Nodes, 2)
	assert.Equal(t, first.Nodes[0].ID, second.Nodes[0].ID)
	assert.Equal(t, first.Nodes[1].ID, second.Nodes[1].ID)
}

func TestPartitionBucketFailureDegradesToSingletons(t *testing.T) {
	// A panicking scorer aborts only that bucket's merge: its candidates
	// become one node each and a warning records the degradation. Other
	// buckets are untouched.
	d := New(0)
	d.similarity = func(a, b *entry) float64 {
		panic("scorer exploded")
	}

	candidates := []model.Candidate{
		{PaperID: "p1", Kind: model.KindTechnique, Name: "circle method"},
		{PaperID: "p2", Kind: model.KindTechnique, Name: "circle method variant"},
	}

	res := d.Partition(candidates)

	assert.Len(t, res.Nodes, 2)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, model.WarnSimilarityFailure, res.Warnings[0].Kind)
	// Degraded nodes still get distinct IDs even with colliding names.
	assert.NotEqual(t, res.Nodes[0].ID, res.Nodes[1].ID)
}

func TestPartitionAliasIndex(t *testing.T) {
	candidates := []model.Candidate{
		{PaperID: "p1", Kind: model.KindDefinition, Name: "Discrepancy"},
		{PaperID: "p1", Kind: model.KindTheorem, Name: "Roth theorem"},
	}

	res := New(0).Partition(candidates)

	idx, ok := res.Aliases["discrepancy"]
	require.True(t, ok)
	assert.Equal(t, model.KindDefinition, res.Nodes[idx].Kind)
}

func TestPartitionAliasCollisionStableUnderReordering(t *testing.T) {
	// A definition and a theorem share the name "Discrepancy". The alias
	// must resolve to the same node whichever one the input lists first.
	forward := []model.Candidate{
		{PaperID: "p1", Kind: model.KindDefinition, Name: "Discrepancy"},
		{PaperID: "p2", Kind: model.KindTheorem, Name: "Discrepancy"},
	}
	reversed := []model.Candidate{forward[1], forward[0]}

	a := New(0).Partition(forward)
	b := New(0).Partition(reversed)

	require.Len(t, a.Nodes, 2)
	require.Len(t, b.Nodes, 2)
	assert.Equal(t, a.Nodes[a.Aliases["discrepancy"]].ID, b.Nodes[b.Aliases["discrepancy"]].ID)
}

func entryFor(name string) *entry {
	key := NormalizeName(name)
	return &entry{key: key, tokens: tokenSet(key)}
}
