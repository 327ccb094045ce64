// internal/bot/dispatcher_test.go
package bot

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherKeepsPerUserOrder(t *testing.T) {
	var mu sync.Mutex
	seen := map[int64][]string{}

	d := NewDispatcher(HandlerFunc(func(_ context.Context, ev Event) error {
		mu.Lock()
		defer mu.Unlock()
		seen[ev.UserID] = append(seen[ev.UserID], ev.Text)
		return nil
	}), DispatcherOptions{Workers: 3})
	d.Start(context.Background())

	texts := []string{"a", "b", "c", "d", "e"}
	for _, text := range texts {
		for user := int64(1); user <= 6; user++ {
			require.NoError(t, d.Submit(context.Background(), Event{UserID: user, Text: text}))
		}
	}
	d.Stop()

	for user := int64(1); user <= 6; user++ {
		assert.Equal(t, texts, seen[user], "user %d", user)
	}
}

func TestDispatcherAssignsTraceID(t *testing.T) {
	traces := make(chan string, 1)
	d := NewDispatcher(HandlerFunc(func(_ context.Context, ev Event) error {
		traces <- ev.TraceID
		return nil
	}), DispatcherOptions{})
	d.Start(context.Background())

	require.NoError(t, d.Submit(context.Background(), Event{UserID: 1}))
	d.Stop()
	assert.NotEmpty(t, <-traces)
}

func TestDispatcherRateLimitsPerUser(t *testing.T) {
	var handled, dropped atomic.Int32
	d := NewDispatcher(HandlerFunc(func(context.Context, Event) error {
		handled.Add(1)
		return nil
	}), DispatcherOptions{
		Workers:       2,
		RatePerSecond: 0.001,
		Burst:         2,
		OnDrop:        func(context.Context, Event) { dropped.Add(1) },
	})
	d.Start(context.Background())

	for i := 0; i < 5; i++ {
		require.NoError(t, d.Submit(context.Background(), Event{UserID: 1}))
	}
	require.NoError(t, d.Submit(context.Background(), Event{UserID: 2}))
	d.Stop()

	assert.Equal(t, int32(3), handled.Load())
	assert.Equal(t, int32(3), dropped.Load())
}

func TestDispatcherRecoversFromPanic(t *testing.T) {
	var handled atomic.Int32
	d := NewDispatcher(HandlerFunc(func(_ context.Context, ev Event) error {
		if ev.Text == "boom" {
			panic("boom")
		}
		handled.Add(1)
		return nil
	}), DispatcherOptions{Workers: 1})
	d.Start(context.Background())

	require.NoError(t, d.Submit(context.Background(), Event{UserID: 1, Text: "boom"}))
	require.NoError(t, d.Submit(context.Background(), Event{UserID: 1, Text: "ok"}))
	d.Stop()

	assert.Equal(t, int32(1), handled.Load())
}

func TestDispatcherRejectsAfterStop(t *testing.T) {
	d := NewDispatcher(HandlerFunc(func(context.Context, Event) error { return nil }), DispatcherOptions{})
	d.Start(context.Background())
	d.Stop()
	d.Stop()

	assert.ErrorIs(t, d.Submit(context.Background(), Event{UserID: 1}), ErrDispatcherStopped)
}
