package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// InMemoryStore is a process-local Store. It suits single-instance
// deployments and tests; replicas do not see each other's invalidations.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	gen     int64
	ttl     time.Duration
	now     func() time.Time
}

// NewInMemoryStore creates a store whose entries live for ttl.
func NewInMemoryStore(ttl time.Duration) *InMemoryStore {
	return &InMemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *InMemoryStore) Get(_ context.Context, key string) ([]byte, int64, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	gen := s.gen
	s.mu.RUnlock()

	if !ok || !s.now().Before(e.expiresAt) {
		return nil, gen, false, nil
	}
	return e.value, gen, true, nil
}

func (s *InMemoryStore) Set(_ context.Context, key string, gen int64, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return nil
	}
	s.entries[key] = memoryEntry{value: value, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *InMemoryStore) Invalidate(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.entries = make(map[string]memoryEntry)
	return nil
}

// Len counts entries, expired ones included.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *InMemoryStore) Close() error { return nil }

var _ Store = (*InMemoryStore)(nil)
