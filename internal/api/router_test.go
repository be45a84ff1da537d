package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuskwatch/tuskwatch/internal/alert"
	"github.com/tuskwatch/tuskwatch/internal/api"
	"github.com/tuskwatch/tuskwatch/internal/api/models"
	"github.com/tuskwatch/tuskwatch/internal/notify"
	"github.com/tuskwatch/tuskwatch/internal/token"
)

// fakeSender plays back a scripted multicast response.
type fakeSender struct {
	calls    int
	response *messaging.BatchResponse
}

func (s *fakeSender) SendEachForMulticast(_ context.Context, _ *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	s.calls++
	if s.response == nil {
		return &messaging.BatchResponse{}, nil
	}
	return s.response, nil
}

type testEnv struct {
	router http.Handler
	tokens *token.Service
	sender *fakeSender
}

func newTestEnv() *testEnv {
	logger := zerolog.New(io.Discard)
	tokenService := token.NewService(token.NewInMemoryRepository())
	alertService := alert.NewService(alert.NewInMemoryRepository())
	sender := &fakeSender{}

	dispatcher := notify.NewDispatcher(notify.DispatcherConfig{
		Tokens:  tokenService,
		Sender:  sender,
		BaseURL: "https://example.org",
		Logger:  logger,
	})

	router := api.NewRouter(api.RouterConfig{
		Version:      "test",
		BuildTime:    "2026-01-01T00:00:00Z",
		Logger:       logger,
		AlertService: alertService,
		TokenService: tokenService,
		Dispatcher:   dispatcher,
	})

	return &testEnv{router: router, tokens: tokenService, sender: sender}
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	env := newTestEnv()

	w := doJSON(t, env.router, http.MethodGet, "/v1/ops/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var health models.Health
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, models.HealthStatusOK, health.Status)
}

func TestRouter_IngestAndListAlerts(t *testing.T) {
	env := newTestEnv()

	w := doJSON(t, env.router, http.MethodPost, "/v1/alerts", models.AlertCreateRequest{
		Type:       "elephant_detection",
		CameraID:   "camera_1",
		Location:   "Main Entrance",
		Message:    "Elephant detected with 92.5% confidence!",
		Timestamp:  "2026-08-30T18:04:11Z",
		Confidence: 92.5,
		ImagePath:  "https://i.ibb.co/abc123/elephant.jpg",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var ack models.AlertIngestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	assert.True(t, ack.Success)
	assert.Equal(t, "Data added successfully", ack.Message)

	w = doJSON(t, env.router, http.MethodGet, "/v1/alerts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var alerts []models.Alert
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, "camera_1", alerts[0].CameraID)
	assert.Equal(t, 92.5, alerts[0].Confidence)
	assert.Equal(t, "2026-08-30T18:04:11Z", alerts[0].Timestamp)
}

func TestRouter_RegisterToken_Duplicate(t *testing.T) {
	env := newTestEnv()

	w := doJSON(t, env.router, http.MethodPost, "/v1/tokens", models.TokenRegisterRequest{Token: "fcm-abc"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, env.router, http.MethodPost, "/v1/tokens", models.TokenRegisterRequest{Token: "fcm-abc"})
	require.Equal(t, http.StatusOK, w.Code)

	var result models.TokenRegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Equal(t, "Token already exists", result.Message)

	count, err := env.tokens.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRouter_SendPush_MissingTitle(t *testing.T) {
	env := newTestEnv()

	w := doJSON(t, env.router, http.MethodPost, "/v1/notifications/send", models.PushSendRequest{
		Body:        "Elephant detected",
		RedirectURL: "/mobile",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, env.sender.calls, "provider must not be invoked on validation failure")

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Title, body, and redirectUrl are required", body["message"])
}

func TestRouter_SendPush(t *testing.T) {
	env := newTestEnv()

	_, err := env.tokens.Register(context.Background(), "fcm-abc")
	require.NoError(t, err)

	env.sender.response = &messaging.BatchResponse{
		SuccessCount: 1,
		Responses: []*messaging.SendResponse{
			{Success: true, MessageID: "projects/tuskwatch/messages/1"},
		},
	}

	w := doJSON(t, env.router, http.MethodPost, "/v1/notifications/send", models.PushSendRequest{
		Title:       "Elephant Detected!",
		Body:        "Elephant detected at Main Entrance with 92.5% confidence.",
		RedirectURL: "/mobile",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result models.PushSendResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 0, result.FailureCount)
	require.Len(t, result.Responses, 1)
	assert.True(t, result.Responses[0].Success)
	assert.Equal(t, 1, env.sender.calls)
}

func TestRouter_RequestIDHeader(t *testing.T) {
	env := newTestEnv()

	w := doJSON(t, env.router, http.MethodGet, "/v1/ops/health", nil)

	assert.Contains(t, w.Header().Get("X-Request-Id"), "req_")
}
