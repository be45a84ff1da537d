// Package worker provides background detection-event processing for TuskWatch.
package worker

import "time"

// Push content for detector-originated notifications. Detector events always
// deep-link to the mobile dashboard view.
const (
	DetectionTitle        = "Elephant Detected!"
	DetectionRedirectPath = "/mobile"
)

// DefaultCooldown is the minimum interval between accepted events from the
// same camera. Events arriving inside the window are dropped, not queued.
const DefaultCooldown = 10 * time.Second
