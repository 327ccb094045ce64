// internal/chat/recorder.go
package chat

import (
	"context"
	"sync"
)

type CallbackAnswer struct {
	CallbackID string
	Text       string
	Alert      bool
}

// Recorder is an in-memory Messenger used in tests.
type Recorder struct {
	mu      sync.Mutex
	replies []Reply
	answers []CallbackAnswer
	// Err, when set, is returned from every Send.
	Err error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Send(_ context.Context, reply Reply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.replies = append(r.replies, reply)
	return nil
}

func (r *Recorder) AnswerCallback(_ context.Context, callbackID, text string, alert bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.answers = append(r.answers, CallbackAnswer{CallbackID: callbackID, Text: text, Alert: alert})
	return nil
}

func (r *Recorder) Replies() []Reply {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Reply(nil), r.replies...)
}

// RepliesTo filters replies by chat.
func (r *Recorder) RepliesTo(chatID int64) []Reply {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Reply
	for _, reply := range r.replies {
		if reply.ChatID == chatID {
			out = append(out, reply)
		}
	}
	return out
}

func (r *Recorder) Last() (Reply, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.replies) == 0 {
		return Reply{}, false
	}
	return r.replies[len(r.replies)-1], true
}

func (r *Recorder) Answers() []CallbackAnswer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]CallbackAnswer(nil), r.answers...)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies = nil
	r.answers = nil
}
