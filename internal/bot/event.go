// internal/bot/event.go
package bot

import "strings"

// Event is one inbound message or button press, independent of transport.
type Event struct {
	UserID   int64
	ChatID   int64
	Username string
	Text     string
	// Data is the callback payload of a pressed inline button.
	Data       string
	CallbackID string
	// MessageID is the message that carried the pressed button.
	MessageID int
	TraceID   string
}

func (e Event) IsCallback() bool {
	return e.CallbackID != "" || e.Data != ""
}

func (e Event) TrimmedText() string {
	return strings.TrimSpace(e.Text)
}
