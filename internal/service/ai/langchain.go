package ai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// LangChainCompleter sends the prompt through a langchaingo model.
type LangChainCompleter struct {
	llm llms.Model
}

// NewLangChainCompleter wraps an existing langchaingo model.
func NewLangChainCompleter(llm llms.Model) *LangChainCompleter {
	return &LangChainCompleter{llm: llm}
}

// NewOpenAICompatibleLangChain connects langchaingo to an OpenAI-compatible
// server such as a local Ollama.
func NewOpenAICompatibleLangChain(apiKey, baseURL, model string) (*LangChainCompleter, error) {
	if apiKey == "" {
		// Local servers ignore the token but the client requires one.
		apiKey = "local"
	}
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("init langchain llm: %w", err)
	}
	return NewLangChainCompleter(llm), nil
}

// Complete implements Completer.
func (c *LangChainCompleter) Complete(ctx context.Context, prompt string) (Completion, error) {
	text, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt)
	if err != nil {
		return Completion{}, fmt.Errorf("generate from prompt: %w", err)
	}
	return newCompletion(text)
}
