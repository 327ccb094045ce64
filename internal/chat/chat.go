// internal/chat/chat.go
package chat

import "context"

// Button is one inline keyboard button. Data is the callback payload.
type Button struct {
	Label string
	Data  string
}

// Reply is a transport neutral outgoing message.
type Reply struct {
	ChatID  int64
	Text    string
	Buttons [][]Button
	// MainMenu attaches the persistent reply keyboard.
	MainMenu bool
	HTML     bool
	// EditMessageID, when set, edits that message in place instead of sending.
	EditMessageID int
}

func (r Reply) HasButtons() bool {
	return len(r.Buttons) > 0
}

// Row is shorthand for a keyboard row.
func Row(buttons ...Button) []Button {
	return buttons
}

type Messenger interface {
	Send(ctx context.Context, reply Reply) error
	// AnswerCallback acknowledges a button press, optionally as a popup alert.
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error
}
