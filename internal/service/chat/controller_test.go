package chat_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/eaglechat/eaglechat/internal/model/chat"
	chat "github.com/eaglechat/eaglechat/internal/service/chat"
)

type stubGateway struct {
	mu       sync.Mutex
	reply    string
	err      error
	calls    []string
	release  chan struct{}
	observed func()
}

func (s *stubGateway) Complete(_ context.Context, message string) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, message)
	observed := s.observed
	s.mu.Unlock()

	if observed != nil {
		observed()
	}
	if s.release != nil {
		<-s.release
	}
	return s.reply, s.err
}

func fixedClock() func() time.Time {
	t := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func TestSendAppendsUserThenBot(t *testing.T) {
	gw := &stubGateway{reply: "A contract is..."}
	c := chat.NewController(gw, chat.WithClock(fixedClock()))

	require.NoError(t, c.Send(context.Background(), "What is a contract?"))

	messages := c.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, model.SenderUser, messages[0].Sender)
	assert.Equal(t, "What is a contract?", messages[0].Text)
	assert.Equal(t, model.SenderBot, messages[1].Sender)
	assert.Equal(t, "A contract is...", messages[1].Text)
	assert.False(t, c.Loading())
	assert.Equal(t, []string{"What is a contract?"}, gw.calls)
}

func TestSendAbsorbsGatewayFailure(t *testing.T) {
	c := chat.NewController(&stubGateway{err: errors.New("connection refused")})

	require.NoError(t, c.Send(context.Background(), "hello"))

	messages := c.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, model.SenderBot, messages[1].Sender)
	assert.Equal(t, "Error: Could not get response.", messages[1].Text)
	assert.False(t, c.Loading())
}

func TestSendTreatsEmptyReplyAsFailure(t *testing.T) {
	c := chat.NewController(&stubGateway{reply: ""})

	require.NoError(t, c.Send(context.Background(), "hello"))

	messages := c.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, chat.ErrorReply, messages[1].Text)
}

func TestSendIgnoresBlankText(t *testing.T) {
	gw := &stubGateway{reply: "unused"}
	c := chat.NewController(gw)

	for _, text := range []string{"", "   ", "\n\t"} {
		require.NoError(t, c.Send(context.Background(), text))
	}

	assert.Empty(t, c.Messages())
	assert.Empty(t, gw.calls)
	assert.False(t, c.Loading())
}

func TestSendKeepsRawText(t *testing.T) {
	gw := &stubGateway{reply: "ok"}
	c := chat.NewController(gw)

	require.NoError(t, c.Send(context.Background(), "  padded  "))

	assert.Equal(t, "  padded  ", c.Messages()[0].Text)
	assert.Equal(t, []string{"  padded  "}, gw.calls)
}

func TestUserMessageAppendedBeforeNetworkCompletes(t *testing.T) {
	gw := &stubGateway{reply: "later", release: make(chan struct{})}
	c := chat.NewController(gw)

	exchange, err := c.Start("question")
	require.NoError(t, err)
	require.NotNil(t, exchange)

	messages := c.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, model.SenderUser, messages[0].Sender)
	assert.True(t, c.Loading())

	done := make(chan model.Message)
	go func() { done <- exchange.Resolve(context.Background()) }()
	close(gw.release)

	reply := <-done
	assert.Equal(t, "later", reply.Text)
	assert.False(t, c.Loading())
	assert.Len(t, c.Messages(), 2)
}

func TestLoadingIsSetDuringGatewayCall(t *testing.T) {
	var c *chat.Controller
	var loadingDuringCall bool
	gw := &stubGateway{reply: "ok"}
	gw.observed = func() { loadingDuringCall = c.Loading() }
	c = chat.NewController(gw)

	require.NoError(t, c.Send(context.Background(), "hello"))

	assert.True(t, loadingDuringCall)
	assert.False(t, c.Loading())
}

func TestSecondSendWhileInFlightIsRejected(t *testing.T) {
	gw := &stubGateway{reply: "first reply", release: make(chan struct{})}
	c := chat.NewController(gw)

	exchange, err := c.Start("first")
	require.NoError(t, err)

	err = c.Send(context.Background(), "second")
	assert.ErrorIs(t, err, chat.ErrSendInFlight)
	assert.Len(t, c.Messages(), 1)

	close(gw.release)
	exchange.Resolve(context.Background())

	messages := c.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "first reply", messages[1].Text)
}

func TestResolveIsIdempotent(t *testing.T) {
	gw := &stubGateway{reply: "once"}
	c := chat.NewController(gw)

	exchange, err := c.Start("hi")
	require.NoError(t, err)

	first := exchange.Resolve(context.Background())
	second := exchange.Resolve(context.Background())

	assert.Equal(t, first, second)
	assert.Len(t, gw.calls, 1)
	assert.Len(t, c.Messages(), 2)
}

func TestGatewayPanicIsAbsorbed(t *testing.T) {
	c := chat.NewController(panicGateway{})

	require.NoError(t, c.Send(context.Background(), "hi"))

	messages := c.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, chat.ErrorReply, messages[1].Text)
	assert.False(t, c.Loading())
}

type panicGateway struct{}

func (panicGateway) Complete(context.Context, string) (string, error) {
	panic("boom")
}

func TestResetClearsTranscript(t *testing.T) {
	c := chat.NewController(&stubGateway{reply: "ok"})
	require.NoError(t, c.Send(context.Background(), "hello"))

	c.Reset()

	assert.Empty(t, c.Messages())
	assert.Empty(t, c.Groups(time.Now()))
	assert.False(t, c.Loading())
}

func TestSelectHistoryClearsTranscript(t *testing.T) {
	c := chat.NewController(&stubGateway{reply: "ok"})
	require.NoError(t, c.Send(context.Background(), "hello"))

	c.SelectHistory("yesterday-chat")

	assert.Empty(t, c.Messages())
}

func TestReplyAfterResetIsDropped(t *testing.T) {
	gw := &stubGateway{reply: "stale", release: make(chan struct{})}
	c := chat.NewController(gw)

	exchange, err := c.Start("old conversation")
	require.NoError(t, err)

	c.Reset()
	assert.False(t, c.Loading())

	close(gw.release)
	exchange.Resolve(context.Background())

	assert.Empty(t, c.Messages())
	assert.False(t, c.Loading())
}

func TestGroupsUseTranscript(t *testing.T) {
	clock := fixedClock()
	c := chat.NewController(&stubGateway{reply: "ok"}, chat.WithClock(clock))
	require.NoError(t, c.Send(context.Background(), "hello"))

	groups := c.Groups(clock())
	require.Len(t, groups, 1)
	assert.Equal(t, model.LabelToday, groups[0].Label)
	require.Len(t, groups[0].Entries, 2)
	assert.True(t, groups[0].Entries[0].FirstInRun)
	assert.True(t, groups[0].Entries[0].LastInRun)
}
