package telegram

import "context"

// Button is one inline keyboard button. Action is an opaque callback
// token routed back through the webhook.
type Button struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

// Sender delivers messages to a chat. Implementations: the Bot API
// client and a mock for tests.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, keyboard [][]Button) error
}
