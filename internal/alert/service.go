package alert

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Defaults applied to absent fields on ingestion. The detector is trusted but
// not validated: malformed numeric or timestamp values pass through as
// submitted.
const (
	DefaultField = "Unknown"
	DefaultType  = "elephant_detection"
)

// RecordInput carries the detection fields submitted by a detector. Any
// zero-valued field is defaulted rather than rejected.
type RecordInput struct {
	Type       string
	CameraID   string
	Location   string
	Message    string
	Timestamp  string
	Confidence float64
	ImagePath  string
}

// Service provides detection event operations.
type Service struct {
	repo Repository
}

// NewService creates a new alert service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record stores one detection event and returns it with its assigned ID.
func (s *Service) Record(ctx context.Context, input *RecordInput) (*DetectionEvent, error) {
	now := time.Now()

	event := &DetectionEvent{
		ID:         "det_" + uuid.New().String()[:22],
		Type:       orDefault(input.Type, DefaultType),
		CameraID:   orDefault(input.CameraID, DefaultField),
		Location:   orDefault(input.Location, DefaultField),
		Message:    orDefault(input.Message, DefaultField),
		Timestamp:  orDefault(input.Timestamp, now.Format(time.RFC3339)),
		Confidence: input.Confidence,
		ImagePath:  input.ImagePath,
		RecordedAt: now,
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// List returns every stored detection event, newest first.
func (s *Service) List(ctx context.Context) ([]*DetectionEvent, error) {
	return s.repo.List(ctx)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
