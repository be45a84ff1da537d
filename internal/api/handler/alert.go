// Package handler provides HTTP handlers for the TuskWatch API.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tuskwatch/tuskwatch/internal/alert"
	"github.com/tuskwatch/tuskwatch/internal/api/models"
	"github.com/tuskwatch/tuskwatch/internal/api/response"
)

// AlertHandler handles detection event endpoints.
type AlertHandler struct {
	alerts *alert.Service
	logger zerolog.Logger
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alerts *alert.Service, logger zerolog.Logger) *AlertHandler {
	return &AlertHandler{alerts: alerts, logger: logger}
}

// Ingest handles POST /v1/alerts - record one detection event.
// Absent fields are defaulted, not rejected; store failures are acknowledged
// without propagating the underlying error detail.
func (h *AlertHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var input models.AlertCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.JSON(w, r, http.StatusBadRequest, models.AlertIngestResponse{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
			Success: false,
		})
		return
	}

	event, err := h.alerts.Record(r.Context(), &alert.RecordInput{
		Type:       input.Type,
		CameraID:   input.CameraID,
		Location:   input.Location,
		Message:    input.Message,
		Timestamp:  input.Timestamp,
		Confidence: input.Confidence,
		ImagePath:  input.ImagePath,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to record detection event")
		response.JSON(w, r, http.StatusInternalServerError, models.AlertIngestResponse{
			Status:  http.StatusInternalServerError,
			Message: "Error adding data",
			Success: false,
		})
		return
	}

	h.logger.Info().
		Str("event_id", event.ID).
		Str("camera_id", event.CameraID).
		Float64("confidence", event.Confidence).
		Msg("detection event recorded")

	response.JSON(w, r, http.StatusCreated, models.AlertIngestResponse{
		Status:  http.StatusCreated,
		Message: "Data added successfully",
		Success: true,
	})
}

// List handles GET /v1/alerts - list detection events, newest first.
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.alerts.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list detection events")
		response.InternalError(w, r, "failed to fetch alerts")
		return
	}

	out := make([]models.Alert, 0, len(events))
	for _, e := range events {
		out = append(out, toAPIAlert(e))
	}
	response.JSON(w, r, http.StatusOK, out)
}

func toAPIAlert(e *alert.DetectionEvent) models.Alert {
	return models.Alert{
		ID:         e.ID,
		Type:       e.Type,
		CameraID:   e.CameraID,
		Location:   e.Location,
		Message:    e.Message,
		Timestamp:  e.Timestamp,
		Confidence: e.Confidence,
		ImagePath:  e.ImagePath,
		RecordedAt: models.Timestamp(e.RecordedAt),
	}
}
