package summarize

import (
	"context"
	"fmt"

	"github.com/proofmesh/basalt/internal/config"
	"github.com/proofmesh/basalt/internal/core/common"
	"github.com/proofmesh/basalt/internal/core/model"
	"github.com/proofmesh/basalt/internal/llm"
)

const defaultClusterPrompt = `The following concepts form one cluster in a knowledge graph built from
research papers:

%s

Write a short summary (two or three sentences) of what this cluster covers
and how far its formalization has progressed. Return JSON:
{"summary": "..."}`

type clusterSummary struct {
	Summary string `json:"summary"`
}

// Summarizer produces human-readable summaries of graph clusters for the
// report layer.
type Summarizer struct {
	LLM     llm.Client
	Prompts config.SummaryPrompts
}

func NewSummarizer(client llm.Client, prompts config.SummaryPrompts) *Summarizer {
	return &Summarizer{
		LLM:     client,
		Prompts: prompts,
	}
}

// SummarizeCluster summarizes one cluster's nodes. Large clusters are
// reduced in chunks so the prompt stays bounded.
func (s *Summarizer) SummarizeCluster(ctx context.Context, nodes []model.Node) (string, error) {
	const chunkSize = 20

	if len(nodes) <= chunkSize {
		listing := ""
		for _, n := range nodes {
			listing += fmt.Sprintf("- [%s, %s] %s: %s\n", n.Kind, n.LeanStatus, n.Name, n.Explanation)
		}
		if listing == "" {
			return "Empty cluster.", nil
		}

		template := s.Prompts.Clusters
		if template == "" {
			template = defaultClusterPrompt
		}
		response, err := s.LLM.Generate(ctx, fmt.Sprintf(template, listing))
		if err != nil {
			return "", fmt.Errorf("failed to generate cluster summary: %w", err)
		}

		result, err := common.ParseJSON[clusterSummary](response)
		if err != nil {
			// Some providers answer in prose despite the instruction.
			return response, nil
		}
		return result.Summary, nil
	}

	// Reduce: summarize chunks, then summarize the summaries as synthetic
	// nodes.
	var reduced []model.Node
	for i := 0; i < len(nodes); i += chunkSize {
		end := i + chunkSize
		if end > len(nodes) {
			end = len(nodes)
		}
		partial, err := s.SummarizeCluster(ctx, nodes[i:end])
		if err != nil {
			return "", err
		}
		reduced = append(reduced, model.Node{
			Kind:        model.KindTechnique,
			Name:        fmt.Sprintf("subcluster %d", i/chunkSize+1),
			Explanation: partial,
			LeanStatus:  model.StatusNotAttempted,
		})
	}
	return s.SummarizeCluster(ctx, reduced)
}
