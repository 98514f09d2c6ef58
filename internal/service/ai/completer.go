package ai

import (
	"context"
	"errors"
)

var (
	// ErrMalformedResponse reports a provider answer without generated text.
	ErrMalformedResponse = errors.New("malformed provider response")
	// ErrMissingCredential reports a provider call attempted without an API key.
	ErrMissingCredential = errors.New("provider credential is not configured")
)

// Completion is the validated result of one provider call.
type Completion struct {
	Text string
}

// Completer submits one composed prompt to a language-model provider.
// Implementations keep no state between calls.
type Completer interface {
	Complete(ctx context.Context, prompt string) (Completion, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (Completion, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (Completion, error) {
	return f(ctx, prompt)
}

// newCompletion rejects provider output that carries no text.
func newCompletion(text string) (Completion, error) {
	if text == "" {
		return Completion{}, ErrMalformedResponse
	}
	return Completion{Text: text}, nil
}

type missingCredential struct{}

func (missingCredential) Complete(context.Context, string) (Completion, error) {
	return Completion{}, ErrMissingCredential
}
