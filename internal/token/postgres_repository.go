package token

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL token repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores a token if it is not already registered.
func (r *PostgresRepository) Insert(ctx context.Context, t *DeviceToken) (bool, error) {
	query := `
		INSERT INTO device_tokens (token, registered_at)
		VALUES ($1, $2)
		ON CONFLICT (token) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query, t.Token, t.RegisteredAt)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// List retrieves every registered token, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*DeviceToken, error) {
	query := `
		SELECT token, registered_at
		FROM device_tokens
		ORDER BY registered_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []*DeviceToken
	for rows.Next() {
		var t DeviceToken
		if err := rows.Scan(&t.Token, &t.RegisteredAt); err != nil {
			return nil, err
		}
		tokens = append(tokens, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tokens, nil
}

// Count returns the number of registered tokens.
func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM device_tokens`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
