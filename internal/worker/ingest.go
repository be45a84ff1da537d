package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tuskwatch/tuskwatch/internal/alert"
	"github.com/tuskwatch/tuskwatch/internal/notify"
	"github.com/tuskwatch/tuskwatch/internal/telegram"
)

// ErrCoolingDown is returned when a camera has already reported within the
// cooldown window. The event is dropped.
var ErrCoolingDown = errors.New("camera is cooling down")

// DetectionMessage is a detector-published event as carried on the wire.
// Confidence is a fraction in [0, 1].
type DetectionMessage struct {
	Type       string  `json:"type"`
	CameraID   string  `json:"camera_id"`
	Location   string  `json:"location"`
	Message    string  `json:"message"`
	Timestamp  string  `json:"timestamp"`
	Confidence float64 `json:"confidence"`
	ImagePath  string  `json:"image_path,omitempty"`
}

// ProcessorConfig holds configuration for the ingest processor.
type ProcessorConfig struct {
	// Alerts stores accepted detection events.
	Alerts *alert.Service

	// Dispatcher fans accepted events out as push notifications.
	Dispatcher *notify.Dispatcher

	// Telegram relays accepted events to a chat (optional).
	Telegram *telegram.Client

	// Cooldown is the per-camera acceptance interval.
	// Default: DefaultCooldown.
	Cooldown time.Duration

	// Logger for processing operations.
	Logger zerolog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// ProcessResult reports what an accepted event produced.
type ProcessResult struct {
	Event *alert.DetectionEvent
	Push  *notify.DispatchResult
}

// Processor turns detector events into stored alerts and notifications.
// Storage is the only fatal step: notification failures are logged and the
// event is still considered processed.
type Processor struct {
	alerts     *alert.Service
	dispatcher *notify.Dispatcher
	telegram   *telegram.Client
	cooldown   time.Duration
	logger     zerolog.Logger
	now        func() time.Time

	mu           sync.Mutex
	lastAccepted map[string]time.Time
}

// NewProcessor creates a new ingest processor.
func NewProcessor(cfg ProcessorConfig) *Processor {
	cooldown := cfg.Cooldown
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Processor{
		alerts:       cfg.Alerts,
		dispatcher:   cfg.Dispatcher,
		telegram:     cfg.Telegram,
		cooldown:     cooldown,
		logger:       cfg.Logger,
		now:          now,
		lastAccepted: make(map[string]time.Time),
	}
}

// Process handles one detector event: cooldown check, store, then fan out.
// Returns ErrCoolingDown when the camera reported too recently.
func (p *Processor) Process(ctx context.Context, msg *DetectionMessage) (*ProcessResult, error) {
	if !p.accept(msg.CameraID) {
		p.logger.Debug().
			Str("camera_id", msg.CameraID).
			Msg("event dropped, camera cooling down")
		return nil, ErrCoolingDown
	}

	event, err := p.alerts.Record(ctx, &alert.RecordInput{
		Type:       msg.Type,
		CameraID:   msg.CameraID,
		Location:   msg.Location,
		Message:    msg.Message,
		Timestamp:  msg.Timestamp,
		Confidence: msg.Confidence,
		ImagePath:  msg.ImagePath,
	})
	if err != nil {
		return nil, fmt.Errorf("recording detection: %w", err)
	}

	body := detectionBody(event.Location, msg.Confidence)
	result := &ProcessResult{Event: event}

	push, err := p.dispatcher.Dispatch(ctx, &notify.PushRequest{
		Title:        DetectionTitle,
		Body:         body,
		RedirectPath: DetectionRedirectPath,
	})
	if err != nil {
		p.logger.Error().Err(err).
			Str("event_id", event.ID).
			Msg("push dispatch failed")
	} else {
		result.Push = push
	}

	if p.telegram != nil {
		if err := p.telegram.SendMessage(ctx, body); err != nil {
			p.logger.Error().Err(err).
				Str("event_id", event.ID).
				Msg("telegram relay failed")
		}
	}

	p.logger.Info().
		Str("event_id", event.ID).
		Str("camera_id", event.CameraID).
		Str("location", event.Location).
		Float64("confidence", msg.Confidence).
		Msg("detection processed")

	return result, nil
}

// accept records the event time for the camera unless it reported within the
// cooldown window.
func (p *Processor) accept(cameraID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if last, ok := p.lastAccepted[cameraID]; ok && now.Sub(last) < p.cooldown {
		return false
	}
	p.lastAccepted[cameraID] = now
	return true
}

func detectionBody(location string, confidence float64) string {
	return fmt.Sprintf("Elephant detected at %s with %.1f%% confidence.", location, confidence*100)
}
