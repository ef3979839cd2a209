package model

import "fmt"

// WarningKind names a recoverable degradation during a build. No warning is
// fatal: the build always produces a snapshot, possibly an empty one.
type WarningKind string

const (
	// WarnMalformedOutput: an entire distiller output was rejected.
	WarnMalformedOutput WarningKind = "MalformedExtractionOutput"
	// WarnUnresolvedDependency: a declared dependency matched no node, so
	// the edge was dropped.
	WarnUnresolvedDependency WarningKind = "UnresolvedDependency"
	// WarnSimilarityFailure: similarity scoring failed inside one kind
	// bucket; that bucket fell back to one node per candidate.
	WarnSimilarityFailure WarningKind = "SimilarityComputationError"
	// WarnNoUsableInput: no output yielded a single valid candidate.
	WarnNoUsableInput WarningKind = "NoUsableInput"
)

// Warning is a structured build degradation, rendered to a string at the
// snapshot boundary.
type Warning struct {
	Kind   WarningKind
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
}

// Warnf builds a Warning with a formatted detail message.
func Warnf(kind WarningKind, format string, args ...interface{}) Warning {
	return Warning{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// RenderWarnings flattens warnings into the strings carried by a snapshot.
func RenderWarnings(warnings []Warning) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.String()
	}
	return out
}
