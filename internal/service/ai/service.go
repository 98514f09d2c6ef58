package ai

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eaglechat/eaglechat/internal/model/persona"
)

// ErrMessageRequired is returned when the caller sends no message.
var ErrMessageRequired = errors.New("message is required")

// Service is the completion gateway: it composes the prompt and asks the
// provider for a reply. It holds no per-conversation state.
type Service struct {
	completer   Completer
	instruction string
	logger      *zap.Logger
}

// NewService creates a gateway speaking as the given persona.
func NewService(completer Completer, p persona.Persona, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		completer:   completer,
		instruction: BuildSystemInstruction(p),
		logger:      logger,
	}
}

// SystemInstruction returns the instruction prepended to each message.
func (s *Service) SystemInstruction() string {
	return s.instruction
}

// Reply answers one message. Provider failures are logged here and returned
// wrapped; callers must not expose them to clients.
func (s *Service) Reply(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", ErrMessageRequired
	}

	completion, err := s.complete(ctx, ComposePrompt(s.instruction, message))
	if err != nil {
		s.logger.Error("provider completion failed",
			zap.Error(err),
			zap.Int("messageLength", len(message)))
		return "", fmt.Errorf("generate reply: %w", err)
	}

	s.logger.Debug("generated reply", zap.Int("replyLength", len(completion.Text)))
	return completion.Text, nil
}

func (s *Service) complete(ctx context.Context, prompt string) (completion Completion, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()

	completion, err = s.completer.Complete(ctx, prompt)
	if err != nil {
		return Completion{}, err
	}
	// CompleterFunc values may return unvalidated text.
	return newCompletion(completion.Text)
}
