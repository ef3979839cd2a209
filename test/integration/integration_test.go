//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofmesh/basalt/internal/core"
	"github.com/proofmesh/basalt/internal/core/ingest"
	"github.com/proofmesh/basalt/internal/store"
)

func TestBuildAndPersistSnapshot(t *testing.T) {
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("STORE_URI")
	if uri == "" {
		t.Skip("Skipping integration test: STORE_URI not set")
	}
	user := os.Getenv("STORE_USER")
	pwd := os.Getenv("STORE_PASSWORD")

	ctx := context.Background()
	driver, err := store.NewMemgraphDriver(ctx, uri, user, pwd)
	require.NoError(t, err)
	defer driver.Close(ctx)
	require.NoError(t, driver.BuildIndices(ctx))

	problemID := fmt.Sprintf("problem_itest_%d", time.Now().Unix())

	outputs := []ingest.RawOutput{
		{Payload: json.RawMessage(`{"paper_id": "itest-p1", "distilled_items": [
			{"type": "theorem", "name": "Main bound", "dependencies": ["discrepancy"], "lean_status": "verified", "lean_code": "theorem t : True := trivial"},
			{"type": "technique", "name": "Sieve method"}
		]}`)},
		{Payload: json.RawMessage(`{"paper_id": "itest-p2", "distilled_items": [
			{"type": "definition", "name": "Discrepancy"},
			{"type": "technique", "name": "sieve  method"}
		]}`)},
	}

	builder := core.NewBuilder(0, 2, nil)
	snapshot := builder.Build(ctx, problemID, outputs)
	require.Len(t, snapshot.Nodes, 3)

	st := store.NewStore(driver)
	require.NoError(t, st.SaveSnapshot(ctx, snapshot))

	ids, err := st.ListSnapshots(ctx, problemID)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, snapshot.ID, ids[0])

	results, err := st.SearchConcepts(ctx, snapshot.ID, "sieve", 5)
	require.NoError(t, err)
	assert.NotEmpty(t, results)
}
