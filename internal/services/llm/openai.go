package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/rs/zerolog/log"
)

type OpenAIClient struct {
	client      openai.Client
	model       string
	searchModel string
}

func NewOpenAIClient(apiKey, model, searchModel string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	if model == "" {
		model = "gpt-4o-mini"
	}
	if searchModel == "" {
		searchModel = "gpt-4o-mini-search-preview"
	}

	return &OpenAIClient{
		client:      client,
		model:       model,
		searchModel: searchModel,
	}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, c.model, prompt)
}

func (c *OpenAIClient) CompleteGrounded(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, c.searchModel, prompt)
}

func (c *OpenAIClient) complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	log.Debug().
		Str("model", model).
		Int("prompt_len", len(prompt)).
		Msg("Completion received")

	return resp.Choices[0].Message.Content, nil
}
