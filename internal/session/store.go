// internal/session/store.go
package session

import "context"

// Store keeps the in-progress step per user. Get returns a nil step when the
// user is idle.
type Store interface {
	Get(ctx context.Context, userID int64) (Step, error)
	Set(ctx context.Context, userID int64, step Step) error
	Clear(ctx context.Context, userID int64) error
}
