package summarize

import (
	"context"
)

type MockLLMClient struct {
	Response string
	Err      error
	Calls    int
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
