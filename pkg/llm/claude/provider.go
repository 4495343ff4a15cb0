package claude

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pdf-summarizer-be/pkg/llm"

	einoclaude "github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ErrEmptyResponse is returned when the model answers without any text content.
var ErrEmptyResponse = errors.New("no text content in Claude response")

type ClaudeProvider struct {
	ModelName string
	chat      *einoclaude.ChatModel
}

var _ llm.LLMProvider = &ClaudeProvider{}

func NewClaudeProvider(ctx context.Context, apiKey, modelName, baseURL string, maxTokens int) (*ClaudeProvider, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}

	var baseURLPtr *string
	if baseURL != "" {
		baseURLPtr = &baseURL
	}

	chatModel, err := einoclaude.NewChatModel(ctx, &einoclaude.Config{
		APIKey:    apiKey,
		Model:     modelName,
		BaseURL:   baseURLPtr,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("init claude chat model: %w", err)
	}

	return &ClaudeProvider{
		ModelName: modelName,
		chat:      chatModel,
	}, nil
}

func (p *ClaudeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(opts...)

	messages := make([]*schema.Message, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case "system":
			messages = append(messages, schema.SystemMessage(msg.Content))
		case "assistant", "model":
			messages = append(messages, schema.AssistantMessage(msg.Content, nil))
		default:
			messages = append(messages, schema.UserMessage(msg.Content))
		}
	}

	var modelOpts []model.Option
	if options.MaxTokens > 0 {
		modelOpts = append(modelOpts, model.WithMaxTokens(options.MaxTokens))
	}
	if options.Model != "" {
		modelOpts = append(modelOpts, model.WithModel(options.Model))
	}
	if options.Temperature > 0 {
		modelOpts = append(modelOpts, model.WithTemperature(float32(options.Temperature)))
	}

	resp, err := p.chat.Generate(ctx, messages, modelOpts...)
	if err != nil {
		return "", fmt.Errorf("claude request failed: %w", err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Content, nil
}

func (p *ClaudeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
