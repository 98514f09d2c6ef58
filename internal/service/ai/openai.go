package ai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAICompleter talks to any OpenAI-compatible chat completion endpoint.
// EagleChat uses it against Gemini's compatibility endpoint.
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

// NewOpenAICompleter builds a client for baseURL. An empty apiKey yields a
// completer that fails every call with ErrMissingCredential.
func NewOpenAICompleter(apiKey, baseURL, model string) Completer {
	if apiKey == "" {
		return missingCredential{}
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAICompleter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Complete implements Completer.
func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (Completion, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return Completion{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Completion{}, ErrMalformedResponse
	}
	return newCompletion(resp.Choices[0].Message.Content)
}
