package telegram

import (
	"context"
	"sync"
)

// SentMessage records one delivery through the mock sender.
type SentMessage struct {
	ChatID   int64
	Text     string
	Keyboard [][]Button
}

// MockSender collects messages instead of delivering them.
type MockSender struct {
	mu       sync.Mutex
	Messages []SentMessage
	Err      error
}

func NewMockSender() *MockSender {
	return &MockSender{}
}

func (m *MockSender) SendMessage(ctx context.Context, chatID int64, text string, keyboard [][]Button) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, SentMessage{ChatID: chatID, Text: text, Keyboard: keyboard})
	return nil
}

// Sent returns a copy of everything delivered so far.
func (m *MockSender) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]SentMessage, len(m.Messages))
	copy(out, m.Messages)
	return out
}
