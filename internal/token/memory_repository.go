package token

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use the PostgreSQL implementation.
type InMemoryRepository struct {
	mu     sync.RWMutex
	tokens []*DeviceToken      // insertion order, oldest first
	index  map[string]struct{} // registered token strings
}

// NewInMemoryRepository creates a new in-memory token repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		index: make(map[string]struct{}),
	}
}

// Insert stores a token if it is not already registered.
func (r *InMemoryRepository) Insert(_ context.Context, t *DeviceToken) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[t.Token]; ok {
		return false, nil
	}

	stored := *t
	r.tokens = append(r.tokens, &stored)
	r.index[t.Token] = struct{}{}
	return true, nil
}

// List retrieves every registered token, newest first.
func (r *InMemoryRepository) List(_ context.Context) ([]*DeviceToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*DeviceToken, 0, len(r.tokens))
	for i := len(r.tokens) - 1; i >= 0; i-- {
		stored := *r.tokens[i]
		out = append(out, &stored)
	}
	return out, nil
}

// Count returns the number of registered tokens.
func (r *InMemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tokens), nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
