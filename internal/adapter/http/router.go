package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/ledgercore/internal/adapter/http/handler"
	"github.com/iho/ledgercore/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	EntryHandler       *handler.EntryHandler
	LedgerHandler      *handler.LedgerHandler
	HealthHandler      *handler.HealthHandler

	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *middleware.RateLimiter
	// MetricsHandler serves /metrics. Defaults to the default Prometheus registry.
	MetricsHandler http.Handler
	Logger         zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Service endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/{id}/balance", cfg.AccountHandler.Balance)
			r.Get("/{id}/transactions", cfg.EntryHandler.History)
		})

		r.Post("/transactions", cfg.TransactionHandler.Post)
		r.Get("/ledger/consistency", cfg.LedgerHandler.Consistency)
	})

	return r
}
