package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// Workspace is the on-disk layout for one problem: downloaded papers,
// distiller outputs, and rendered summaries.
type Workspace struct {
	ProblemID string
	Root      string
	Papers    string
	Distilled string
	Summaries string
}

// Create scaffolds the directory structure for a problem under baseDir.
func Create(baseDir, problemID string) (*Workspace, error) {
	root := filepath.Join(baseDir, problemID)
	ws := &Workspace{
		ProblemID: problemID,
		Root:      root,
		Papers:    filepath.Join(root, "papers"),
		Distilled: filepath.Join(root, "distilled"),
		Summaries: filepath.Join(root, "summaries"),
	}
	for _, dir := range []string{ws.Papers, ws.Distilled, ws.Summaries} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create workspace dir %s: %w", dir, err)
		}
	}
	return ws, nil
}

// GenerateProblemID derives a unique problem ID from the problem statement:
// problem_{significant words}_{timestamp}.
func GenerateProblemID(statement string, now time.Time) string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(statement)) {
		if len(w) <= 3 {
			continue
		}
		words = append(words, sanitizeWord(w))
		if len(words) == 4 {
			break
		}
	}
	name := strings.Join(words, "_")
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("problem_%s_%s", name, now.Format("20060102_150405"))
}

func sanitizeWord(w string) string {
	var b strings.Builder
	for _, r := range w {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
