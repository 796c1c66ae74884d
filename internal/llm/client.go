package llm

import (
	"context"
)

// LLMClient turns a prompt into the provider's raw text completion.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
