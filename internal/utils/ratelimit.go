// internal/utils/ratelimit.go
package utils

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter hands out one token bucket per key (client IP, chat user).
type KeyedLimiter[K comparable] struct {
	visitors map[K]*visitor
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
	idle     time.Duration
}

func NewKeyedLimiter[K comparable](r rate.Limit, b int) *KeyedLimiter[K] {
	return &KeyedLimiter[K]{
		visitors: make(map[K]*visitor),
		rate:     r,
		burst:    b,
		idle:     3 * time.Minute,
	}
}

// RunCleanup evicts idle visitors every minute until ctx is done.
func (l *KeyedLimiter[K]) RunCleanup(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep(time.Now())
		}
	}
}

func (l *KeyedLimiter[K]) Sweep(now time.Time) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.idle {
			delete(l.visitors, key)
		}
	}
}

func (l *KeyedLimiter[K]) getVisitor(key K) *rate.Limiter {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(l.rate, l.burst)
		l.visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (l *KeyedLimiter[K]) Allow(key K) bool {
	return l.getVisitor(key).Allow()
}

func (l *KeyedLimiter[K]) Len() int {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return len(l.visitors)
}
