package token

import "context"

// Repository defines the interface for token persistence.
type Repository interface {
	// Insert stores a token if it is not already registered.
	// Returns false without error when the token already exists.
	Insert(ctx context.Context, t *DeviceToken) (inserted bool, err error)

	// List retrieves every registered token, newest first.
	List(ctx context.Context) ([]*DeviceToken, error)

	// Count returns the number of registered tokens.
	Count(ctx context.Context) (int, error)
}
