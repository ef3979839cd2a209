package llm

import (
	"context"
)

// Client generates a completion for a prompt. Every provider the distiller
// can run on implements this.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
