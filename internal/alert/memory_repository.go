package alert

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use the PostgreSQL implementation.
type InMemoryRepository struct {
	mu     sync.RWMutex
	events []*DetectionEvent // insertion order, oldest first
}

// NewInMemoryRepository creates a new in-memory alert repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Insert stores one immutable detection event.
func (r *InMemoryRepository) Insert(_ context.Context, event *DetectionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *event
	r.events = append(r.events, &stored)
	return nil
}

// List retrieves every stored event, newest first.
func (r *InMemoryRepository) List(_ context.Context) ([]*DetectionEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*DetectionEvent, 0, len(r.events))
	for i := len(r.events) - 1; i >= 0; i-- {
		stored := *r.events[i]
		out = append(out, &stored)
	}
	return out, nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
