package ai

import (
	"context"
	"fmt"

	"github.com/eaglechat/eaglechat/internal/config"
)

// NewCompleter builds the provider named by cfg.Provider. Missing credentials
// are not an error here; they surface on the first call.
func NewCompleter(ctx context.Context, cfg config.AIConfig) (Completer, error) {
	switch cfg.Provider {
	case config.ProviderGemini, "":
		return NewOpenAICompleter(cfg.Gemini.APIKey, cfg.Gemini.BaseURL, cfg.Gemini.Model), nil
	case config.ProviderArk:
		if !cfg.Ark.Enabled() {
			return missingCredential{}, nil
		}
		chatModel, err := cfg.Ark.NewChatModel(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model: %w", err)
		}
		return NewChainCompleter(ctx, chatModel)
	case config.ProviderLangChain:
		return NewOpenAICompatibleLangChain(cfg.LangChain.APIKey, cfg.LangChain.BaseURL, cfg.LangChain.Model)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
