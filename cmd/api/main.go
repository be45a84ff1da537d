// Package main provides the entrypoint for the TuskWatch API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tuskwatch/tuskwatch/internal/alert"
	"github.com/tuskwatch/tuskwatch/internal/api"
	"github.com/tuskwatch/tuskwatch/internal/api/middleware"
	"github.com/tuskwatch/tuskwatch/internal/database"
	"github.com/tuskwatch/tuskwatch/internal/notify"
	"github.com/tuskwatch/tuskwatch/internal/telegram"
	"github.com/tuskwatch/tuskwatch/internal/telemetry"
	"github.com/tuskwatch/tuskwatch/internal/token"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "tuskwatch-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting TuskWatch API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Initialize token registry and alert store
	tokenService := token.NewService(token.NewPostgresRepository(pool))
	alertService := alert.NewService(alert.NewPostgresRepository(pool))
	log.Info().Msg("token and alert services initialized")

	// Initialize push messaging client.
	// FIREBASE_CREDENTIALS_FILE is optional; without it the Firebase SDK
	// falls back to application default credentials.
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
	log.Info().Str("base_url", pushBaseURL).Msg("push dispatcher initialized")

	// Initialize Telegram relay (may be nil if not configured)
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
	} else {
		log.Warn().Msg("Telegram not configured - relay endpoint disabled")
	}

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:      Version,
		BuildTime:    BuildTime,
		Logger:       log,
		ServiceName:  serviceName,
		Metrics:      metrics,
		AlertService: alertService,
		TokenService: tokenService,
		Dispatcher:   dispatcher,
		Telegram:     telegramClient,
		DB:           pool,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
