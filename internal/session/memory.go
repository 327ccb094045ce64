// internal/session/memory.go
package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	step      Step
	expiresAt time.Time
}

// MemoryStore is process local; sessions do not survive a restart.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[int64]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore with ttl <= 0 keeps steps until cleared.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[int64]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, userID int64) (Step, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[userID]
	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		delete(m.entries, userID)
		return nil, nil
	}
	return entry.step, nil
}

func (m *MemoryStore) Set(_ context.Context, userID int64, step Step) error {
	if step == nil {
		return ErrUnknownStep
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{step: step}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	m.entries[userID] = entry
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, userID)
	return nil
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
