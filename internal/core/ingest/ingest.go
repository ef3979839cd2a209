package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/proofmesh/basalt/internal/core/model"
)

// RawOutput is one distiller worker's result before validation. PaperID
// identifies the worker's source document and is used when the payload does
// not name one itself. Outputs arrive in worker-completion order, which later
// stages use as the deterministic tie-break.
type RawOutput struct {
	PaperID string
	Payload json.RawMessage
}

// Result is the flattened, validated candidate sequence plus the reasons any
// outputs were skipped.
type Result struct {
	Candidates []model.Candidate
	Warnings   []model.Warning
}

// rawItem mirrors one distilled item with pointer fields so missing keys can
// be told apart from empty ones.
type rawItem struct {
	Kind         *string  `json:"type"`
	Name         *string  `json:"name"`
	LeanCode     string   `json:"lean_code"`
	LeanStatus   string   `json:"lean_status"`
	Dependencies []string `json:"dependencies"`
	Explanation  string   `json:"explanation"`
	Relevance    string   `json:"relevance_to_problem"`
}

type rawEnvelope struct {
	PaperID string          `json:"paper_id"`
	Items   json.RawMessage `json:"distilled_items"`
}

// Flatten validates each output and concatenates the valid ones into a single
// candidate sequence, preserving output order and item order within each
// output. An output that is not a list, or that contains an item without a
// type or name, is rejected wholesale: accepting half of one worker's
// contribution would silently skew the graph toward whatever happened to
// parse. Outputs are parsed concurrently up to parallelism.
func Flatten(ctx context.Context, outputs []RawOutput, parallelism int) Result {
	if parallelism < 1 {
		parallelism = 1
	}

	type parsed struct {
		candidates []model.Candidate
		warning    *model.Warning
	}
	results := make([]parsed, len(outputs))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, out := range outputs {
		i, out := i, out // pin per-iteration values; module builds with a pre-1.22 toolchain
		g.Go(func() error {
			candidates, err := parseOutput(out)
			if err != nil {
				w := model.Warnf(model.WarnMalformedOutput, "output %q rejected: %v", out.PaperID, err)
				results[i] = parsed{warning: &w}
				return nil
			}
			results[i] = parsed{candidates: candidates}
			return nil
		})
	}
	_ = g.Wait() // workers only record, never fail

	var res Result
	for _, p := range results {
		if p.warning != nil {
			res.Warnings = append(res.Warnings, *p.warning)
			continue
		}
		res.Candidates = append(res.Candidates, p.candidates...)
	}
	return res
}

// parseOutput decodes one payload into candidates, or reports why the whole
// output is unusable. The payload may be a bare JSON array of items or the
// distiller envelope {"paper_id": ..., "distilled_items": [...]}.
func parseOutput(out RawOutput) ([]model.Candidate, error) {
	paperID := out.PaperID
	items := out.Payload

	trimmed := bytes.TrimLeft(out.Payload, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty payload")
	}
	if trimmed[0] == '{' {
		var env rawEnvelope
		if err := json.Unmarshal(out.Payload, &env); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		if env.PaperID != "" {
			paperID = env.PaperID
		}
		if len(env.Items) == 0 {
			return nil, fmt.Errorf("missing distilled_items")
		}
		items = env.Items
	}

	var raw []rawItem
	if err := json.Unmarshal(items, &raw); err != nil {
		return nil, fmt.Errorf("distilled_items is not a list: %w", err)
	}

	candidates := make([]model.Candidate, 0, len(raw))
	for i, item := range raw {
		if item.Kind == nil {
			return nil, fmt.Errorf("item %d missing type", i)
		}
		if item.Name == nil || *item.Name == "" {
			return nil, fmt.Errorf("item %d missing name", i)
		}
		kind := model.Kind(*item.Kind)
		if !kind.Valid() {
			return nil, fmt.Errorf("item %d has unknown type %q", i, *item.Kind)
		}
		status := model.LeanStatus(item.LeanStatus)
		if status == "" {
			status = model.StatusNotAttempted
		}
		candidates = append(candidates, model.Candidate{
			PaperID:      paperID,
			Kind:         kind,
			Name:         *item.Name,
			LeanCode:     item.LeanCode,
			LeanStatus:   status,
			Dependencies: item.Dependencies,
			Explanation:  item.Explanation,
			Relevance:    item.Relevance,
		})
	}
	return candidates, nil
}
