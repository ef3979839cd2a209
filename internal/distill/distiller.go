package distill

import (
	"context"
	"fmt"

	"github.com/proofmesh/basalt/internal/config"
	"github.com/proofmesh/basalt/internal/core/common"
	"github.com/proofmesh/basalt/internal/core/model"
	"github.com/proofmesh/basalt/internal/llm"
)

const defaultPrompt = `You are distilling a mathematics research paper for a knowledge graph
about the following problem:

%s

<PAPER>
%s
</PAPER>

Extract the definitions, theorems, lemmas, and techniques the paper
contributes. Return a JSON object:
{
  "distilled_items": [
    {
      "type": "definition|theorem|lemma|technique",
      "name": "the author-chosen label",
      "explanation": "one or two sentences in plain language",
      "relevance_to_problem": "why it matters for the problem",
      "lean_code": "a Lean 4 formalization if you can produce one, else omit",
      "lean_status": "verified|attempted|failed|pseudo|not_attempted",
      "dependencies": ["names of other items this one uses"]
    }
  ]
}
Use lean_status "pseudo" for sketches and "not_attempted" when you emit no
lean_code. Do not invent results the paper does not state.`

// Distiller is one extraction worker: given a paper's text it asks the LLM
// for distilled items in the wire format the consolidation pipeline ingests.
// Each call is an isolated pass with no shared context; the pipeline never
// reaches back into a worker.
type Distiller struct {
	LLM     llm.Client
	Prompts config.DistillPrompts
}

func NewDistiller(client llm.Client, prompts config.DistillPrompts) *Distiller {
	return &Distiller{
		LLM:     client,
		Prompts: prompts,
	}
}

// DistillPaper runs one pass over a single paper and returns its distilled
// output, with every item stamped with the paper ID.
func (d *Distiller) DistillPaper(ctx context.Context, problem, paperID, content string) (model.DistilledOutput, error) {
	template := d.Prompts.Items
	if template == "" {
		template = defaultPrompt
	}
	prompt := fmt.Sprintf(template, problem, content)

	response, err := d.LLM.Generate(ctx, prompt)
	if err != nil {
		return model.DistilledOutput{}, fmt.Errorf("failed to generate distilled items: %w", err)
	}

	out, err := common.ParseJSON[model.DistilledOutput](response)
	if err != nil {
		return model.DistilledOutput{}, fmt.Errorf("failed to parse distilled items: %w", err)
	}

	out.PaperID = paperID
	for i := range out.Items {
		out.Items[i].PaperID = paperID
	}
	return out, nil
}
