package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tuskwatch/tuskwatch/internal/api/models"
	"github.com/tuskwatch/tuskwatch/internal/api/response"
	"github.com/tuskwatch/tuskwatch/internal/token"
)

// TokenHandler handles push-token registry endpoints.
type TokenHandler struct {
	tokens *token.Service
	logger zerolog.Logger
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(tokens *token.Service, logger zerolog.Logger) *TokenHandler {
	return &TokenHandler{tokens: tokens, logger: logger}
}

// Register handles POST /v1/tokens - register a push token.
// Re-registering an existing token is a soft negative, not an error.
func (h *TokenHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input models.TokenRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	result, err := h.tokens.Register(r.Context(), input.Token)
	if err != nil {
		if errors.Is(err, token.ErrEmptyToken) {
			response.BadRequest(w, r, "token is required", []models.FieldError{
				{Field: "token", Message: "required"},
			})
			return
		}
		h.logger.Error().Err(err).Msg("failed to register token")
		response.InternalError(w, r, "failed to register token")
		return
	}

	if !result.Accepted {
		response.JSON(w, r, http.StatusOK, models.TokenRegisterResponse{
			Message: "Token already exists",
			Success: false,
		})
		return
	}

	response.Created(w, r, "", models.TokenRegisterResponse{
		Message: "Token registered",
		Success: true,
	})
}

// List handles GET /v1/tokens - list registered tokens, newest first.
func (h *TokenHandler) List(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.tokens.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list tokens")
		response.InternalError(w, r, "failed to fetch tokens")
		return
	}

	response.JSON(w, r, http.StatusOK, tokens)
}
