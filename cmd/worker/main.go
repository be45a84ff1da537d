// Package main provides the entrypoint for the TuskWatch detection worker.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tuskwatch/tuskwatch/internal/alert"
	"github.com/tuskwatch/tuskwatch/internal/database"
	"github.com/tuskwatch/tuskwatch/internal/notify"
	"github.com/tuskwatch/tuskwatch/internal/telegram"
	"github.com/tuskwatch/tuskwatch/internal/token"
	"github.com/tuskwatch/tuskwatch/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "tuskwatch-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting TuskWatch worker")

	// Worker also exposes a health endpoint for Cloud Run
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Str("database", dbConfig.Database).
		Msg("database connected")

	tokenService := token.NewService(token.NewPostgresRepository(pool))
	alertService := alert.NewService(alert.NewPostgresRepository(pool))

	sender, err := notify.NewMessagingClient(ctx, os.Getenv("FIREBASE_CREDENTIALS_FILE"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize messaging client")
	}

	pushBaseURL := os.Getenv("PUSH_BASE_URL")
	if pushBaseURL == "" {
		pushBaseURL = "http://localhost:3000"
		log.Warn().Msg("PUSH_BASE_URL not set, deep links point at localhost")
	}

	dispatcher := notify.NewDispatcher(notify.DispatcherConfig{
		Tokens:  tokenService,
		Sender:  sender,
		BaseURL: pushBaseURL,
		Logger:  log,
	})

	var telegramClient *telegram.Client
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if botToken != "" && chatID != "" {
		telegramClient = telegram.NewClient(telegram.ClientConfig{
			BotToken: botToken,
			ChatID:   chatID,
			Logger:   log,
		})
		log.Info().Msg("telegram relay initialized")
	}

	processor := worker.NewProcessor(worker.ProcessorConfig{
		Alerts:     alertService,
		Dispatcher: dispatcher,
		Telegram:   telegramClient,
		Logger:     log,
	})

	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	if projectID == "" {
		log.Fatal().Msg("PUBSUB_PROJECT_ID is required")
	}

	subscription := os.Getenv("PUBSUB_SUBSCRIPTION")
	if subscription == "" {
		subscription = "detection-events"
	}

	handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
		ProjectID:        projectID,
		SubscriptionName: subscription,
		Processor:        processor,
		Logger:           log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create pubsub handler")
	}
	defer handler.Close()

	// Create HTTP server for health checks
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start health check server
	go func() {
		log.Info().Str("addr", server.Addr).Msg("health check server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Start consuming detection events
	go func() {
		if err := handler.Start(ctx); err != nil {
			log.Error().Err(err).Msg("pubsub handler stopped")
			cancel()
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down worker")
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
