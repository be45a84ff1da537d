package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tuskwatch/tuskwatch/internal/api/models"
	"github.com/tuskwatch/tuskwatch/internal/api/response"
	"github.com/tuskwatch/tuskwatch/internal/telegram"
)

// TelegramHandler relays alert messages to the configured Telegram chat.
type TelegramHandler struct {
	client *telegram.Client
	logger zerolog.Logger
}

// NewTelegramHandler creates a new TelegramHandler.
func NewTelegramHandler(client *telegram.Client, logger zerolog.Logger) *TelegramHandler {
	return &TelegramHandler{client: client, logger: logger}
}

// Send handles POST /v1/telegram - relay one message to the alert chat.
func (h *TelegramHandler) Send(w http.ResponseWriter, r *http.Request) {
	var input models.TelegramSendRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if input.Message == "" {
		response.BadRequest(w, r, "message is required", []models.FieldError{
			{Field: "message", Message: "required"},
		})
		return
	}

	if err := h.client.SendMessage(r.Context(), input.Message); err != nil {
		h.logger.Error().Err(err).Msg("telegram relay failed")
		response.JSON(w, r, http.StatusBadGateway, models.ErrorEnvelope{
			Message: "Failed to send message",
			Error:   err.Error(),
		})
		return
	}

	response.JSON(w, r, http.StatusOK, models.TelegramSendResponse{
		Success: true,
		Message: "Message sent successfully",
	})
}
