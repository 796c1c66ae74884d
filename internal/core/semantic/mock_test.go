package semantic

import (
	"context"
)

type MockLLM struct {
	Response string
	Err      error
	Prompts  []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// ClosingLLM is a MockLLM that also holds a connection.
type ClosingLLM struct {
	MockLLM
	Closed   int
	CloseErr error
}

func (m *ClosingLLM) Close() error {
	m.Closed++
	return m.CloseErr
}
