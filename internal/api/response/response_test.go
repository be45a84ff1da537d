package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuskwatch/tuskwatch/internal/api/response"
)

func TestJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/alerts", nil)
	w := httptest.NewRecorder()

	response.JSON(w, req, http.StatusOK, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "world", body["hello"])
}

func TestMessage(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/notifications/send", nil)
	w := httptest.NewRecorder()

	response.Message(w, req, http.StatusBadRequest, "Title, body, and redirectUrl are required")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Title, body, and redirectUrl are required", body["message"])
}

func TestBadRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/tokens", nil)
	w := httptest.NewRecorder()

	response.BadRequest(w, req, "invalid JSON body", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}
