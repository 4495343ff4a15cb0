package factory

import (
	"context"
	"fmt"

	"pdf-summarizer-be/pkg/llm"
	"pdf-summarizer-be/pkg/llm/claude"
	"pdf-summarizer-be/pkg/llm/ollama"
)

type ProviderConfig struct {
	Provider      string // "claude" or "ollama"
	Model         string
	APIKey        string
	BaseURL       string
	OllamaBaseURL string
	MaxTokens     int
}

func NewLLMProvider(ctx context.Context, cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "claude", "anthropic", "":
		return claude.NewClaudeProvider(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens)
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// Validate makes a minimal call to confirm the configured model answers.
func Validate(ctx context.Context, provider llm.LLMProvider) error {
	_, err := provider.Generate(ctx, "test", llm.WithMaxTokens(10))
	return err
}
