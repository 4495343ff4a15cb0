package factory

import (
	"context"
	"testing"

	"pdf-summarizer-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	ctx := context.Background()

	p, err := NewLLMProvider(ctx, ProviderConfig{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	o, ok := p.(*ollama.OllamaProvider)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:11434", o.BaseURL)

	_, err = NewLLMProvider(ctx, ProviderConfig{Provider: "claude", Model: "claude-sonnet-4-5-20250929"})
	assert.Error(t, err, "claude needs an api key")

	_, err = NewLLMProvider(ctx, ProviderConfig{Provider: "gpt-banana"})
	assert.EqualError(t, err, "unsupported LLM provider: gpt-banana")
}
