package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofmesh/basalt/internal/core/model"
)

type MockDriver struct {
	Queries []string
	Params  []map[string]interface{}
	Err     error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Queries = append(m.Queries, query)
	m.Params = append(m.Params, params)
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return neo4j.EagerResult{}, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error { return nil }
func (m *MockDriver) Close(ctx context.Context) error        { return nil }

func sampleSnapshot() model.Snapshot {
	return model.Snapshot{
		ID:        "snap-1",
		ProblemID: "problem-x",
		CreatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Nodes: []model.Node{
			{ID: "n1", Kind: model.KindTheorem, Name: "main theorem",
				Aliases: []string{"main theorem"}, LeanStatus: model.StatusVerified,
				Papers: []string{"p1"}, MemberCount: 1},
			{ID: "n2", Kind: model.KindDefinition, Name: "discrepancy",
				Aliases: []string{"discrepancy"}, LeanStatus: model.StatusNotAttempted,
				Papers: []string{"p1"}, MemberCount: 1},
		},
		Edges: []model.Edge{
			{From: "n1", To: "n2", Relation: model.RelationUses, Confidence: 1.0},
		},
		Metrics: model.Metrics{
			Centrality: map[string]float64{"n1": 1.0, "n2": 1.0},
			Clusters:   map[string]int{"n1": 0, "n2": 0},
			Frontier: map[string]model.Frontier{
				"n1": model.FrontierProven,
				"n2": model.FrontierOpen,
			},
			Verification: map[model.LeanStatus]int{
				model.StatusVerified:     1,
				model.StatusNotAttempted: 1,
			},
		},
		Warnings: []string{"UnresolvedDependency: dropped one"},
	}
}

func TestSaveSnapshot(t *testing.T) {
	mock := &MockDriver{}
	s := NewStore(mock)

	err := s.SaveSnapshot(context.Background(), sampleSnapshot())

	require.NoError(t, err)
	// One snapshot write, two concepts, one relation.
	require.Len(t, mock.Queries, 4)
	assert.Equal(t, SaveSnapshotQuery, mock.Queries[0])
	assert.Equal(t, SaveConceptQuery, mock.Queries[1])
	assert.Equal(t, SaveRelationQuery, mock.Queries[3])

	assert.Equal(t, "problem-x", mock.Params[0]["problem_id"])

	// Metrics are denormalized onto the concept rows.
	assert.Equal(t, 1.0, mock.Params[1]["centrality"])
	assert.Equal(t, "proven", mock.Params[1]["frontier"])
	assert.Equal(t, "snap-1", mock.Params[1]["snapshot_id"])

	assert.Equal(t, "USES", mock.Params[3]["relation"])
	assert.Equal(t, 1.0, mock.Params[3]["confidence"])
}

func TestSaveSnapshotDriverError(t *testing.T) {
	mock := &MockDriver{Err: errors.New("connection reset")}
	s := NewStore(mock)

	err := s.SaveSnapshot(context.Background(), sampleSnapshot())

	assert.Error(t, err)
}
