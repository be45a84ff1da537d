package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tuskwatch/tuskwatch/internal/api/models"
	"github.com/tuskwatch/tuskwatch/internal/api/response"
	"github.com/tuskwatch/tuskwatch/internal/notify"
)

// NotifyHandler handles push broadcast endpoints.
type NotifyHandler struct {
	dispatcher *notify.Dispatcher
	logger     zerolog.Logger
}

// NewNotifyHandler creates a new NotifyHandler.
func NewNotifyHandler(dispatcher *notify.Dispatcher, logger zerolog.Logger) *NotifyHandler {
	return &NotifyHandler{dispatcher: dispatcher, logger: logger}
}

// Send handles POST /v1/notifications/send - broadcast one push notification
// to every registered token. Per-token failures are reported in the response;
// nothing is retried.
func (h *NotifyHandler) Send(w http.ResponseWriter, r *http.Request) {
	var input models.PushSendRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Message(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.dispatcher.Dispatch(r.Context(), &notify.PushRequest{
		Title:        input.Title,
		Body:         input.Body,
		RedirectPath: input.RedirectURL,
	})
	if err != nil {
		var validationErr *notify.ValidationError
		if errors.As(err, &validationErr) {
			response.Message(w, r, http.StatusBadRequest, "Title, body, and redirectUrl are required")
			return
		}

		h.logger.Error().Err(err).Msg("push delivery failed")
		response.JSON(w, r, http.StatusBadGateway, models.ErrorEnvelope{
			Message: "Failed to send push notification",
			Error:   err.Error(),
		})
		return
	}

	out := make([]models.PushOutcome, 0, len(result.Responses))
	for _, o := range result.Responses {
		out = append(out, models.PushOutcome{
			Success:   o.Success,
			MessageID: o.MessageID,
			Error:     o.Error,
		})
	}

	response.JSON(w, r, http.StatusOK, models.PushSendResponse{
		Message:      "Push notification sent successfully",
		SuccessCount: result.SuccessCount,
		FailureCount: result.FailureCount,
		Responses:    out,
	})
}
