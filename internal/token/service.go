package token

import (
	"context"
	"errors"
	"time"
)

// Service errors.
var (
	ErrEmptyToken = errors.New("token must not be empty")
)

// RegisterResult reports the outcome of a registration attempt. Re-registering
// an existing token is not an error: Accepted is false and the registry is
// left unchanged.
type RegisterResult struct {
	Accepted bool
}

// Service provides token registry operations.
type Service struct {
	repo Repository
}

// NewService creates a new token service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register inserts a token into the registry if it is not already present.
func (s *Service) Register(ctx context.Context, tok string) (*RegisterResult, error) {
	if tok == "" {
		return nil, ErrEmptyToken
	}

	inserted, err := s.repo.Insert(ctx, &DeviceToken{
		Token:        tok,
		RegisteredAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	return &RegisterResult{Accepted: inserted}, nil
}

// List returns every registered token string, newest first. The full set is
// the broadcast recipient list for push delivery; there is no per-user or
// per-camera targeting.
func (s *Service) List(ctx context.Context) ([]string, error) {
	tokens, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Token)
	}
	return out, nil
}

// Count returns the number of registered tokens.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
