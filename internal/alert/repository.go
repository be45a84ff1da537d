package alert

import "context"

// Repository defines the interface for detection event persistence.
type Repository interface {
	// Insert stores one immutable detection event.
	Insert(ctx context.Context, event *DetectionEvent) error

	// List retrieves every stored event, newest first.
	List(ctx context.Context) ([]*DetectionEvent, error)
}
