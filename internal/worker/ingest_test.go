package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuskwatch/tuskwatch/internal/alert"
	"github.com/tuskwatch/tuskwatch/internal/notify"
	"github.com/tuskwatch/tuskwatch/internal/telegram"
	"github.com/tuskwatch/tuskwatch/internal/token"
	"github.com/tuskwatch/tuskwatch/internal/worker"
)

type fakeSender struct {
	calls []*messaging.MulticastMessage
	resp  *messaging.BatchResponse
	err   error
}

func (f *fakeSender) SendEachForMulticast(_ context.Context, msg *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	f.calls = append(f.calls, msg)
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &messaging.BatchResponse{
		SuccessCount: len(msg.Tokens),
		Responses:    successResponses(len(msg.Tokens)),
	}, nil
}

func successResponses(n int) []*messaging.SendResponse {
	responses := make([]*messaging.SendResponse, n)
	for i := range responses {
		responses[i] = &messaging.SendResponse{Success: true, MessageID: "msg-1"}
	}
	return responses
}

type testEnv struct {
	alerts    *alert.Service
	sender    *fakeSender
	processor *worker.Processor
	clock     *time.Time
}

func newTestEnv(t *testing.T, tg *telegram.Client) *testEnv {
	t.Helper()

	tokens := token.NewService(token.NewInMemoryRepository())
	_, err := tokens.Register(context.Background(), "device-token-1")
	require.NoError(t, err)

	alerts := alert.NewService(alert.NewInMemoryRepository())
	sender := &fakeSender{}
	dispatcher := notify.NewDispatcher(notify.DispatcherConfig{
		Tokens:  tokens,
		Sender:  sender,
		BaseURL: "https://example.org",
		Logger:  zerolog.Nop(),
	})

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := &now

	processor := worker.NewProcessor(worker.ProcessorConfig{
		Alerts:     alerts,
		Dispatcher: dispatcher,
		Telegram:   tg,
		Logger:     zerolog.Nop(),
		Now:        func() time.Time { return *clock },
	})

	return &testEnv{alerts: alerts, sender: sender, processor: processor, clock: clock}
}

func detection(cameraID string) *worker.DetectionMessage {
	return &worker.DetectionMessage{
		Type:       "elephant_detection",
		CameraID:   cameraID,
		Location:   "North Fence",
		Message:    "Elephant detected",
		Timestamp:  "2025-06-01 12:00:00",
		Confidence: 0.925,
	}
}

func TestProcess_RecordsAndDispatches(t *testing.T) {
	env := newTestEnv(t, nil)

	result, err := env.processor.Process(context.Background(), detection("cam-1"))

	require.NoError(t, err)
	require.NotNil(t, result.Event)
	assert.Equal(t, "cam-1", result.Event.CameraID)
	assert.Equal(t, "North Fence", result.Event.Location)
	assert.Equal(t, 0.925, result.Event.Confidence)

	stored, err := env.alerts.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)

	require.Len(t, env.sender.calls, 1)
	msg := env.sender.calls[0]
	assert.Equal(t, "Elephant Detected!", msg.Notification.Title)
	assert.Equal(t, "Elephant detected at North Fence with 92.5% confidence.", msg.Notification.Body)
	assert.Equal(t, "https://example.org/mobile", msg.Data["url"])

	require.NotNil(t, result.Push)
	assert.Equal(t, 1, result.Push.SuccessCount)
	assert.Equal(t, 0, result.Push.FailureCount)
}

func TestProcess_CameraCooldown(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.processor.Process(ctx, detection("cam-1"))
	require.NoError(t, err)

	*env.clock = env.clock.Add(5 * time.Second)
	_, err = env.processor.Process(ctx, detection("cam-1"))
	assert.ErrorIs(t, err, worker.ErrCoolingDown)

	stored, err := env.alerts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
	assert.Len(t, env.sender.calls, 1)

	*env.clock = env.clock.Add(6 * time.Second)
	_, err = env.processor.Process(ctx, detection("cam-1"))
	require.NoError(t, err)

	stored, err = env.alerts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestProcess_DistinctCamerasNotBlocked(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.processor.Process(ctx, detection("cam-1"))
	require.NoError(t, err)

	_, err = env.processor.Process(ctx, detection("cam-2"))
	require.NoError(t, err)

	stored, err := env.alerts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestProcess_PushFailureStillStored(t *testing.T) {
	env := newTestEnv(t, nil)
	env.sender.err = errors.New("provider unavailable")

	result, err := env.processor.Process(context.Background(), detection("cam-1"))

	require.NoError(t, err)
	assert.Nil(t, result.Push)

	stored, err := env.alerts.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestProcess_DefaultsAbsentLocation(t *testing.T) {
	env := newTestEnv(t, nil)

	msg := detection("cam-1")
	msg.Location = ""

	_, err := env.processor.Process(context.Background(), msg)
	require.NoError(t, err)

	require.Len(t, env.sender.calls, 1)
	assert.Equal(t,
		"Elephant detected at Unknown with 92.5% confidence.",
		env.sender.calls[0].Notification.Body)
}

func TestProcess_TelegramRelay(t *testing.T) {
	var received struct {
		ChatID string `json:"chat_id"`
		Text   string `json:"text"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tg := telegram.NewClient(telegram.ClientConfig{
		BotToken: "bot-token",
		ChatID:   "chat-42",
		BaseURL:  server.URL,
		Logger:   zerolog.Nop(),
	})

	env := newTestEnv(t, tg)

	_, err := env.processor.Process(context.Background(), detection("cam-1"))
	require.NoError(t, err)

	assert.Equal(t, "chat-42", received.ChatID)
	assert.Equal(t, "Elephant detected at North Fence with 92.5% confidence.", received.Text)
}
