package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/agenthands/projectsearch/internal/config"
)

func NewClient(ctx context.Context, cfg config.ProviderConfig) (LLMClient, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))

	switch provider {
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "gemini":
		if !HasUsableKey(cfg.APIKey) {
			return nil, fmt.Errorf("gemini API key not configured")
		}
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)

	case "claude":
		if !HasUsableKey(cfg.APIKey) {
			return nil, fmt.Errorf("claude API key not configured")
		}
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens), nil

	case "ollama":
		// Ollama speaks the OpenAI wire protocol under /v1
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		log.Printf("Initializing Ollama via OpenAI-compatible API at %s", baseURL)

		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama" // ignored by Ollama, required by the client
		}
		return NewOpenAIClient(apiKey, cfg.Model, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", cfg.Provider)
	}
}

// HasUsableKey rejects blank keys and the placeholder values shipped in sample configs.
func HasUsableKey(key string) bool {
	switch strings.TrimSpace(key) {
	case "", "dummy_key", "get-key-at-aistudio.google.com", "changeme":
		return false
	}
	return true
}
