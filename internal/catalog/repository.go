package catalog

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrSourceUnavailable signals that the remote catalog source could not
	// be reached; callers fall back to cached or static data.
	ErrSourceUnavailable = errors.New("catalog source unavailable")
)

// Repository provides access to the current product catalog.
type Repository interface {
	List(ctx context.Context) ([]ProductRecord, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests
// and local development.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []ProductRecord
}

func NewInMemoryRepository(seed []ProductRecord) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]ProductRecord, 0, len(seed))}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) List(ctx context.Context) ([]ProductRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ProductRecord, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

// Reset replaces the whole in-memory storage with the provided records.
func (r *InMemoryRepository) Reset(records []ProductRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage = make([]ProductRecord, 0, len(records))
	r.storage = append(r.storage, records...)
}
