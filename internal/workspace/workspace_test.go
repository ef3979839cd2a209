package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	base := t.TempDir()

	ws, err := Create(base, "problem_discrepancy_20260830_120000")
	require.NoError(t, err)

	for _, dir := range []string{ws.Papers, ws.Distilled, ws.Summaries} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	assert.Equal(t, filepath.Join(base, "problem_discrepancy_20260830_120000"), ws.Root)
}

func TestGenerateProblemID(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	id := GenerateProblemID("Prove the Erdos discrepancy conjecture for multiplicative sequences", now)

	// Short words are skipped, at most four significant words survive.
	assert.Equal(t, "problem_prove_erdos_discrepancy_conjecture_20260830_120000", id)
}

func TestGenerateProblemIDSanitizes(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	id := GenerateProblemID("what? (nothing-useful!)", now)

	assert.Equal(t, "problem_what_nothinguseful_20260830_120000", id)
}

func TestGenerateProblemIDEmptyStatement(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "problem_unnamed_20260830_120000", GenerateProblemID("a b c", now))
}
