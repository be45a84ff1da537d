package notify

import (
	"context"
	"strings"

	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog"

	"github.com/tuskwatch/tuskwatch/internal/token"
)

// WelcomePath is the deep-link fallback used when a push request carries no
// redirect path.
const WelcomePath = "/welcome"

// ValidationError reports required push fields that were absent. It is raised
// before any delivery attempt.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// PushRequest is a human-authored notification to broadcast.
type PushRequest struct {
	Title        string
	Body         string
	RedirectPath string
}

// Outcome is the provider's result for one token, in token order.
type Outcome struct {
	Success   bool
	MessageID string
	Error     string
}

// DispatchResult aggregates one multicast delivery. Failed tokens are
// reported, not retried: delivery is at-most-once per token per call.
type DispatchResult struct {
	SuccessCount int
	FailureCount int
	Responses    []Outcome
}

// DispatcherConfig holds configuration for the dispatcher.
type DispatcherConfig struct {
	// Tokens supplies the broadcast recipient set.
	Tokens *token.Service

	// Sender is the push provider client.
	Sender MulticastSender

	// BaseURL is the public dashboard origin used to build deep links,
	// e.g. "https://example.org".
	BaseURL string

	// Logger for dispatch operations.
	Logger zerolog.Logger
}

// Dispatcher fans one push notification out to every registered token.
type Dispatcher struct {
	tokens  *token.Service
	sender  MulticastSender
	baseURL string
	logger  zerolog.Logger
}

// NewDispatcher creates a new dispatcher.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	return &Dispatcher{
		tokens:  cfg.Tokens,
		sender:  cfg.Sender,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  cfg.Logger,
	}
}

// Dispatch delivers req to every currently registered token in a single
// multicast call. Per-token failures are surfaced in the result; only a total
// provider failure returns an error.
func (d *Dispatcher) Dispatch(ctx context.Context, req *PushRequest) (*DispatchResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	tokens, err := d.tokens.List(ctx)
	if err != nil {
		return nil, err
	}

	if len(tokens) == 0 {
		d.logger.Warn().Msg("no registered tokens, nothing to deliver")
		return &DispatchResult{}, nil
	}

	msg := d.buildMessage(req)
	msg.Tokens = tokens

	resp, err := d.sender.SendEachForMulticast(ctx, msg)
	if err != nil {
		return nil, err
	}

	result := &DispatchResult{
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
		Responses:    make([]Outcome, 0, len(resp.Responses)),
	}
	for _, r := range resp.Responses {
		outcome := Outcome{Success: r.Success, MessageID: r.MessageID}
		if r.Error != nil {
			outcome.Error = r.Error.Error()
		}
		result.Responses = append(result.Responses, outcome)
	}

	d.logger.Info().
		Int("tokens", len(tokens)).
		Int("success_count", result.SuccessCount).
		Int("failure_count", result.FailureCount).
		Msg("push notification dispatched")

	return result, nil
}

// DeepLink resolves the click-through URL for a redirect path. An empty path
// falls back to the welcome page.
func (d *Dispatcher) DeepLink(redirectPath string) string {
	if redirectPath == "" {
		return d.baseURL + WelcomePath
	}
	return d.baseURL + redirectPath
}

func (d *Dispatcher) buildMessage(req *PushRequest) *messaging.MulticastMessage {
	requireInteraction := true

	return &messaging.MulticastMessage{
		Notification: &messaging.Notification{
			Title: req.Title,
			Body:  req.Body,
		},
		Android: &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				Title: req.Title,
				Body:  req.Body,
			},
		},
		Data: map[string]string{
			"url": d.DeepLink(req.RedirectPath),
		},
		Webpush: &messaging.WebpushConfig{
			Headers: map[string]string{
				"Urgency": "high",
			},
			Notification: &messaging.WebpushNotification{
				Title:              req.Title,
				Body:               req.Body,
				RequireInteraction: &requireInteraction,
				Badge:              d.baseURL + "/favicon.ico",
			},
		},
	}
}

func validate(req *PushRequest) error {
	var missing []string
	if req.Title == "" {
		missing = append(missing, "title")
	}
	if req.Body == "" {
		missing = append(missing, "body")
	}
	if req.RedirectPath == "" {
		missing = append(missing, "redirectUrl")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
