package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// ChainCompleter runs the composed prompt through an eino chain ending in a
// chat model.
type ChainCompleter struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewChainCompleter compiles a single-message chain around chatModel.
func NewChainCompleter(ctx context.Context, chatModel model.BaseChatModel) (*ChainCompleter, error) {
	template := prompt.FromMessages(
		schema.FString,
		schema.UserMessage("{prompt}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(template)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &ChainCompleter{chain: runnable}, nil
}

// Complete implements Completer.
func (c *ChainCompleter) Complete(ctx context.Context, composed string) (Completion, error) {
	response, err := c.chain.Invoke(ctx, map[string]any{"prompt": composed})
	if err != nil {
		return Completion{}, fmt.Errorf("failed to run AI chain: %w", err)
	}
	if response == nil {
		return Completion{}, ErrMalformedResponse
	}
	return newCompletion(response.Content)
}
