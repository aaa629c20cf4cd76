package model

// Message is the payload of a queued notification. The worker resolves
// the key and language through the message catalog at delivery time.
type Message struct {
	ChatID   int64             `json:"chat_id"`
	Key      string            `json:"key"`
	Language string            `json:"language"`
	Params   map[string]string `json:"params,omitempty"`
}
