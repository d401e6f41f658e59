package llm

import (
	"context"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/erezadam/GymIq-sub000/internal/config"
)

// OpenAIClient talks to the OpenAI chat-completions API through the
// official SDK. BaseURL may point the SDK at any compatible gateway.
type OpenAIClient struct {
	client  openai.Client
	model   string
	timeout timeoutCfg
}

func NewOpenAIClient(cfg config.LLMConfig) *OpenAIClient {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIClient{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		timeout: timeoutCfg{d: cfg.Timeout},
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) Result {
	ctx, cancel := c.timeout.apply(ctx)
	defer cancel()

	chat, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		MaxTokens: openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return FailureResult(err)
	}
	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return EmptyResult()
	}
	return TextResult(chat.Choices[0].Message.Content)
}
