package store

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/proofmesh/basalt/internal/core/model"
)

type MemgraphDriver struct {
	Driver neo4j.DriverWithContext
}

func NewMemgraphDriver(ctx context.Context, uri, username, password string) (*MemgraphDriver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, err
	}
	return &MemgraphDriver{Driver: driver}, nil
}

func (d *MemgraphDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *MemgraphDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

func (d *MemgraphDriver) BuildIndices(ctx context.Context) error {
	queries := []string{
		"CREATE INDEX ON :Snapshot(uuid);",
		"CREATE INDEX ON :Snapshot(problem_id);",
		"CREATE INDEX ON :Concept(uuid);",
		"CREATE INDEX ON :Concept(snapshot_id);",
		"CREATE INDEX ON :Concept(name);",
	}
	for _, q := range queries {
		// Indices may already exist; creation failures are not fatal.
		_, _ = d.ExecuteQuery(ctx, q, nil)
	}
	return nil
}

// Store persists finished snapshots. Snapshots are written once and never
// patched: a rebuild writes a new snapshot subgraph under a new ID.
type Store struct {
	Driver GraphDriver
}

func NewStore(driver GraphDriver) *Store {
	return &Store{Driver: driver}
}

// SaveSnapshot writes the snapshot node, every concept with its metrics
// denormalized onto it, and every relation.
func (s *Store) SaveSnapshot(ctx context.Context, snapshot model.Snapshot) error {
	_, err := s.Driver.ExecuteQuery(ctx, SaveSnapshotQuery, map[string]interface{}{
		"uuid":       snapshot.ID,
		"problem_id": snapshot.ProblemID,
		"created_at": snapshot.CreatedAt.Format(time.RFC3339),
		"warnings":   snapshot.Warnings,
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	for _, n := range snapshot.Nodes {
		_, err := s.Driver.ExecuteQuery(ctx, SaveConceptQuery, map[string]interface{}{
			"uuid":         n.ID,
			"snapshot_id":  snapshot.ID,
			"kind":         string(n.Kind),
			"name":         n.Name,
			"aliases":      n.Aliases,
			"lean_code":    n.LeanCode,
			"lean_status":  string(n.LeanStatus),
			"papers":       n.Papers,
			"member_count": n.MemberCount,
			"explanation":  n.Explanation,
			"centrality":   snapshot.Metrics.Centrality[n.ID],
			"cluster_id":   snapshot.Metrics.Clusters[n.ID],
			"frontier":     string(snapshot.Metrics.Frontier[n.ID]),
		})
		if err != nil {
			return fmt.Errorf("failed to save concept %q: %w", n.Name, err)
		}
	}

	for _, e := range snapshot.Edges {
		_, err := s.Driver.ExecuteQuery(ctx, SaveRelationQuery, map[string]interface{}{
			"from_uuid":   e.From,
			"to_uuid":     e.To,
			"snapshot_id": snapshot.ID,
			"relation":    string(e.Relation),
			"confidence":  e.Confidence,
		})
		if err != nil {
			return fmt.Errorf("failed to save relation %s->%s: %w", e.From, e.To, err)
		}
	}
	return nil
}

// ListSnapshots returns snapshot IDs for a problem, newest first.
func (s *Store) ListSnapshots(ctx context.Context, problemID string) ([]string, error) {
	res, err := s.Driver.ExecuteQuery(ctx, ListSnapshotsQuery, map[string]interface{}{
		"problem_id": problemID,
	})
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, rec := range res.Records {
		id, _ := rec.Get("uuid")
		if str, ok := id.(string); ok {
			ids = append(ids, str)
		}
	}
	return ids, nil
}

// SearchConcepts finds concepts by name substring within one snapshot,
// most central first.
func (s *Store) SearchConcepts(ctx context.Context, snapshotID, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	res, err := s.Driver.ExecuteQuery(ctx, SearchConceptsQuery, map[string]interface{}{
		"snapshot_id": snapshotID,
		"query":       query,
		"limit":       limit,
	})
	if err != nil {
		return nil, err
	}
	var results []string
	for _, rec := range res.Records {
		name, _ := rec.Get("name")
		kind, _ := rec.Get("kind")
		status, _ := rec.Get("lean_status")
		results = append(results, fmt.Sprintf("%v (%v, %v)", name, kind, status))
	}
	return results, nil
}
