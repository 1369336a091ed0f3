package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/kinsonleung/bankgo/internal/adapter/http/handler"
	"github.com/kinsonleung/bankgo/internal/adapter/http/middleware"
	"github.com/kinsonleung/bankgo/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	UserHandler      *handler.UserHandler
	AccountHandler   *handler.AccountHandler
	LedgerHandler    *handler.LedgerHandler
	HealthHandler    *handler.HealthHandler
	Logger           zerolog.Logger
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/user", func(r chi.Router) {
		r.Post("/create", cfg.UserHandler.Create)
		r.Get("/{userId}", cfg.UserHandler.Get)
	})

	r.Route("/bank-account", func(r chi.Router) {
		r.Post("/create", cfg.AccountHandler.Create)
		r.Get("/{userId}", cfg.AccountHandler.ListByUser)
		r.Get("/transactions/{bankAccountId}", cfg.LedgerHandler.History)

		// Idempotency keys only matter for the balance-mutating routes.
		r.Group(func(r chi.Router) {
			if cfg.IdempotencyStore != nil {
				idem := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
				r.Use(idem.Wrap)
			}

			r.Post("/deposit", cfg.LedgerHandler.Deposit)
			r.Post("/withdraw", cfg.LedgerHandler.Withdraw)
			r.Post("/transfer", cfg.LedgerHandler.Transfer)
		})
	})

	return r
}
