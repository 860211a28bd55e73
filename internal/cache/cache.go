package cache

import (
	"sync"
	"time"
)

// TTLStore is a small in-memory memo store with per-entry expiry.
// Entries are evicted lazily on the next Get past their deadline; there
// is no background sweep. Safe for concurrent use.
type TTLStore[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry[V]
	now     func() time.Time
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

func NewTTLStore[V any](ttl time.Duration) *TTLStore[V] {
	return &TTLStore[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// WithClock overrides the time source (tests).
func (s *TTLStore[V]) WithClock(now func() time.Time) *TTLStore[V] {
	s.now = now
	return s
}

// Get returns the cached value for key if it has not expired.
func (s *TTLStore[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if ok && e.expiresAt.After(s.now()) {
		return e.value, true
	}
	if ok {
		s.mu.Lock()
		// re-check under the write lock; another goroutine may have refreshed it
		if e2, still := s.entries[key]; still && !e2.expiresAt.After(s.now()) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
	}
	var zero V
	return zero, false
}

// Put stores value under key with the store's TTL.
func (s *TTLStore[V]) Put(key string, value V) {
	s.mu.Lock()
	s.entries[key] = entry[V]{value: value, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
}

// Len reports the number of entries currently held (expired or not).
func (s *TTLStore[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
