package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eaglechat/eaglechat/internal/model/chat"
)

// ErrorReply is appended as a bot message whenever the gateway call fails.
const ErrorReply = "Error: Could not get response."

// ErrSendInFlight is returned while an earlier message still awaits its reply.
var ErrSendInFlight = errors.New("a message is already awaiting a reply")

// Gateway answers one message. It receives no earlier turns.
type Gateway interface {
	Complete(ctx context.Context, message string) (string, error)
}

// Controller owns the session transcript and the loading flag.
type Controller struct {
	gateway    Gateway
	transcript *chat.Transcript
	now        func() time.Time
	logger     *zap.Logger

	mu      sync.Mutex
	loading bool
	// epoch changes on Reset so replies to a cleared conversation are dropped.
	epoch uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithLogger sets the logger used for absorbed gateway failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a controller with an empty transcript.
func NewController(gateway Gateway, opts ...Option) *Controller {
	c := &Controller{
		gateway:    gateway,
		transcript: chat.NewTranscript(),
		now:        time.Now,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Exchange is one pending request/response pair started by Start.
type Exchange struct {
	controller *Controller
	text       string
	epoch      uint64
	once       sync.Once
	reply      chat.Message
}

// Start appends the user message and marks the controller loading. Blank text
// is ignored and yields (nil, nil). The returned Exchange must be resolved.
func (c *Controller) Start(text string) (*Exchange, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		return nil, ErrSendInFlight
	}

	c.transcript.Append(chat.NewUserMessage(text, c.now()))
	c.loading = true

	return &Exchange{controller: c, text: text, epoch: c.epoch}, nil
}

// Text returns the message being answered.
func (e *Exchange) Text() string {
	return e.text
}

// Resolve calls the gateway once, appends the reply or ErrorReply, and clears
// the loading flag. Later calls return the first result.
func (e *Exchange) Resolve(ctx context.Context) chat.Message {
	e.once.Do(func() {
		e.reply = e.controller.finish(e.epoch, e.controller.ask(ctx, e.text))
	})
	return e.reply
}

// Send runs a whole exchange synchronously. Gateway failures end up in the
// transcript; the only error is ErrSendInFlight.
func (c *Controller) Send(ctx context.Context, text string) error {
	exchange, err := c.Start(text)
	if exchange == nil {
		return err
	}
	exchange.Resolve(ctx)
	return nil
}

func (c *Controller) ask(ctx context.Context, text string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("gateway panicked", zap.Any("panic", r))
			reply = ErrorReply
		}
	}()

	got, err := c.gateway.Complete(ctx, text)
	if err != nil {
		c.logger.Warn("gateway call failed", zap.Error(err))
		return ErrorReply
	}
	if got == "" {
		c.logger.Warn("gateway returned an empty reply")
		return ErrorReply
	}
	return got
}

func (c *Controller) finish(epoch uint64, text string) chat.Message {
	msg := chat.NewBotMessage(text, c.now())

	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch == c.epoch {
		c.transcript.Append(msg)
		c.loading = false
	}
	return msg
}

// Loading reports whether a reply is pending.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Messages returns the transcript in order.
func (c *Controller) Messages() []chat.Message {
	return c.transcript.Messages()
}

// Groups projects the transcript for display relative to now.
func (c *Controller) Groups(now time.Time) []chat.DateGroup {
	return chat.GroupForDisplay(c.transcript.Messages(), now)
}

// Reset starts a new conversation. A reply still in flight is discarded when
// it arrives.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.transcript.Reset()
	c.loading = false
	c.epoch++
}

// SelectHistory opens a history entry. Entries carry no stored messages, so
// this behaves like Reset.
func (c *Controller) SelectHistory(id string) {
	c.logger.Debug("history entry selected", zap.String("id", id))
	c.Reset()
}
