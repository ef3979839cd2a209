package core

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/proofmesh/basalt/internal/core/dedupe"
	"github.com/proofmesh/basalt/internal/core/ingest"
	"github.com/proofmesh/basalt/internal/core/metrics"
	"github.com/proofmesh/basalt/internal/core/model"
	"github.com/proofmesh/basalt/internal/core/relate"
	"github.com/proofmesh/basalt/internal/logger"
)

// Builder consolidates distiller outputs into one immutable graph snapshot:
// ingest, deduplicate, relate, measure. A build never fails; every degraded
// input becomes a warning on the snapshot so the report layer always has
// something to render.
type Builder struct {
	Deduper           *dedupe.Deduper
	IngestParallelism int
	Log               *logger.Logger // optional
}

func NewBuilder(threshold float64, ingestParallelism int, log *logger.Logger) *Builder {
	if ingestParallelism < 1 {
		ingestParallelism = 4
	}
	return &Builder{
		Deduper:           dedupe.New(threshold),
		IngestParallelism: ingestParallelism,
		Log:               log,
	}
}

// Build runs the full pipeline for one problem. Concurrent builds for
// different problems are independent; serializing rebuilds of one problem is
// the caller's responsibility.
func (b *Builder) Build(ctx context.Context, problemID string, outputs []ingest.RawOutput) model.Snapshot {
	var warnings []model.Warning

	in := ingest.Flatten(ctx, outputs, b.IngestParallelism)
	warnings = append(warnings, in.Warnings...)

	snapshot := model.Snapshot{
		ID:        uuid.New().String(),
		ProblemID: problemID,
		CreatedAt: time.Now().UTC(),
	}

	if len(in.Candidates) == 0 {
		warnings = append(warnings, model.Warnf(model.WarnNoUsableInput,
			"no usable candidates across %d outputs", len(outputs)))
		snapshot.Warnings = model.RenderWarnings(warnings)
		snapshot.Metrics = metrics.Compute(nil, nil)
		b.logWarnings(problemID, warnings)
		return snapshot
	}

	dd := b.Deduper.Partition(in.Candidates)
	warnings = append(warnings, dd.Warnings...)

	rel := relate.Build(in.Candidates, dd)
	warnings = append(warnings, rel.Warnings...)

	snapshot.Nodes = dd.Nodes
	snapshot.Edges = rel.Edges
	snapshot.Metrics = metrics.Compute(dd.Nodes, rel.Edges)
	snapshot.Warnings = model.RenderWarnings(warnings)

	if b.Log != nil {
		b.Log.Info("graph built",
			"problem_id", problemID,
			"outputs", len(outputs),
			"candidates", len(in.Candidates),
			"nodes", len(snapshot.Nodes),
			"edges", len(snapshot.Edges),
			"warnings", len(warnings),
		)
	}
	b.logWarnings(problemID, warnings)
	return snapshot
}

func (b *Builder) logWarnings(problemID string, warnings []model.Warning) {
	if b.Log == nil {
		return
	}
	for _, w := range warnings {
		b.Log.Warn("build degraded", "problem_id", problemID, "kind", string(w.Kind), "detail", w.Detail)
	}
}
