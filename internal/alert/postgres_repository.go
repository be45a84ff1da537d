package alert

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL alert repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores one immutable detection event.
func (r *PostgresRepository) Insert(ctx context.Context, event *DetectionEvent) error {
	query := `
		INSERT INTO detection_events
			(id, type, camera_id, location, message, detected_at, confidence, image_path, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Type,
		event.CameraID,
		event.Location,
		event.Message,
		event.Timestamp,
		event.Confidence,
		event.ImagePath,
		event.RecordedAt,
	)
	return err
}

// List retrieves every stored event, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*DetectionEvent, error) {
	query := `
		SELECT id, type, camera_id, location, message, detected_at, confidence, image_path, recorded_at
		FROM detection_events
		ORDER BY recorded_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*DetectionEvent
	for rows.Next() {
		var event DetectionEvent
		err := rows.Scan(
			&event.ID,
			&event.Type,
			&event.CameraID,
			&event.Location,
			&event.Message,
			&event.Timestamp,
			&event.Confidence,
			&event.ImagePath,
			&event.RecordedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
