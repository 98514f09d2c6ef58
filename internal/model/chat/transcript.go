package chat

import "sync"

// Transcript holds the ordered messages of the current session.
// It only grows until Reset; entries are never reordered.
type Transcript struct {
	mu       sync.RWMutex
	messages []Message
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{messages: make([]Message, 0, 16)}
}

// Append adds a message at the end of the transcript.
func (t *Transcript) Append(message Message) {
	t.mu.Lock()
	t.messages = append(t.messages, message)
	t.mu.Unlock()
}

// Messages returns a copy of the transcript in insertion order.
func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	copied := make([]Message, len(t.messages))
	copy(copied, t.messages)
	return copied
}

// Len reports how many messages the transcript holds.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// Reset drops every message. Nothing is archived.
func (t *Transcript) Reset() {
	t.mu.Lock()
	t.messages = make([]Message, 0, 16)
	t.mu.Unlock()
}
