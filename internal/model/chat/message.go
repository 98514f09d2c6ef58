package chat

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one immutable turn of the transcript.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// NewUserMessage stamps a user turn at the given instant.
func NewUserMessage(text string, at time.Time) Message {
	return newMessage(SenderUser, text, at)
}

// NewBotMessage stamps a bot turn at the given instant.
func NewBotMessage(text string, at time.Time) Message {
	return newMessage(SenderBot, text, at)
}

func newMessage(sender Sender, text string, at time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: at,
	}
}
