// Package alert provides persistence for elephant detection events.
package alert

import "time"

// DetectionEvent is one detection reported by a camera. Events are immutable
// once stored; nothing in this codebase updates or deletes them.
//
// Timestamp is carried as text exactly as the detector submitted it, and
// Confidence is stored as submitted with no unit rescaling. Detectors in the
// field have reported both 0-1 fractions and 0-100 percentages; the store
// does not interpret the value.
type DetectionEvent struct {
	ID         string
	Type       string
	CameraID   string
	Location   string
	Message    string
	Timestamp  string
	Confidence float64
	ImagePath  string
	RecordedAt time.Time
}
