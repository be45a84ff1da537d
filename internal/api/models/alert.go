package models

// AlertCreateRequest is the detection payload submitted by a detector. Field
// names mirror what detectors in the field already send; no schema validation
// is applied and absent fields are defaulted server-side.
type AlertCreateRequest struct {
	Type       string  `json:"type"`
	CameraID   string  `json:"camera_id"`
	Location   string  `json:"location"`
	Message    string  `json:"message"`
	Timestamp  string  `json:"timestamp"`
	Confidence float64 `json:"confidence"`
	ImagePath  string  `json:"image_path"`
}

// Alert is one stored detection event.
type Alert struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	CameraID   string    `json:"camera_id"`
	Location   string    `json:"location"`
	Message    string    `json:"message"`
	Timestamp  string    `json:"timestamp"`
	Confidence float64   `json:"confidence"`
	ImagePath  string    `json:"image_path"`
	RecordedAt Timestamp `json:"recorded_at"`
}

// AlertIngestResponse is the acknowledgement envelope for alert ingestion.
type AlertIngestResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}
