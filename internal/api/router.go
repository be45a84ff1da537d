// Package api provides the HTTP API for TuskWatch.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/tuskwatch/tuskwatch/internal/alert"
	"github.com/tuskwatch/tuskwatch/internal/api/handler"
	"github.com/tuskwatch/tuskwatch/internal/api/middleware"
	"github.com/tuskwatch/tuskwatch/internal/notify"
	"github.com/tuskwatch/tuskwatch/internal/telegram"
	"github.com/tuskwatch/tuskwatch/internal/token"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version      string
	BuildTime    string
	Logger       zerolog.Logger
	ServiceName  string
	Metrics      *middleware.Metrics
	AlertService *alert.Service
	TokenService *token.Service
	Dispatcher   *notify.Dispatcher
	Telegram     *telegram.Client
	DB           handler.Pinger
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "tuskwatch-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(serviceName))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequireTLS)
	r.Use(middleware.ContentTypeJSON)

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB)
	alertHandler := handler.NewAlertHandler(cfg.AlertService, cfg.Logger)
	tokenHandler := handler.NewTokenHandler(cfg.TokenService, cfg.Logger)
	notifyHandler := handler.NewNotifyHandler(cfg.Dispatcher, cfg.Logger)

	// Rate limits per endpoint category
	ingestRateLimit := middleware.RateLimitByIP(middleware.IngestRateLimit)       // 300 req/min
	broadcastRateLimit := middleware.RateLimitByIP(middleware.BroadcastRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		// Detection events: ingestion takes detector bursts, list serves the dashboard
		r.Route("/alerts", func(r chi.Router) {
			r.With(ingestRateLimit).Post("/", alertHandler.Ingest)
			r.With(standardRateLimit).Get("/", alertHandler.List)
		})

		// Push-token registry
		r.Route("/tokens", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", tokenHandler.List)
			r.Post("/", tokenHandler.Register)
		})

		// Push broadcast - fans out to every registered token
		r.With(broadcastRateLimit).Post("/notifications/send", notifyHandler.Send)

		// Telegram relay (optional, configured via TELEGRAM_BOT_TOKEN)
		if cfg.Telegram != nil {
			telegramHandler := handler.NewTelegramHandler(cfg.Telegram, cfg.Logger)
			r.With(broadcastRateLimit).Post("/telegram", telegramHandler.Send)
		}
	})

	return r
}
