package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/peerpay/peerledger/internal/adapter/http/handler"
	"github.com/peerpay/peerledger/internal/adapter/http/middleware"
	"github.com/peerpay/peerledger/internal/infrastructure/auth"
	"github.com/peerpay/peerledger/internal/infrastructure/metrics"
	"github.com/peerpay/peerledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler  *handler.AccountHandler
	TransferHandler *handler.TransferHandler
	EntryHandler    *handler.EntryHandler
	LedgerHandler   *handler.LedgerHandler
	HealthHandler   *handler.HealthHandler

	JWTManager       *auth.JWTManager
	Counter          usecase.Counter
	IdempotencyStore usecase.IdempotencyStore
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger

	TransferRateLimit  int
	TransferRateWindow time.Duration
	ReadRateLimit      int
	ReadRateWindow     time.Duration
	IdempotencyTTL     time.Duration
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	logging := middleware.NewLoggingMiddleware(cfg.Logger)

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(logging.Wrap)
	r.Use(middleware.Metrics)

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	transferLimiter := middleware.NewRateLimiter(
		cfg.Counter, cfg.TransferRateLimit, cfg.TransferRateWindow,
		"transfer", middleware.KeyByActor, cfg.Metrics, cfg.Logger,
	)
	readLimiter := middleware.NewRateLimiter(
		cfg.Counter, cfg.ReadRateLimit, cfg.ReadRateWindow,
		"read", middleware.KeyByIP, cfg.Metrics, cfg.Logger,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// End-user surface, actor identity from the bearer token.
		r.Route("/account", func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			r.Group(func(r chi.Router) {
				r.Use(readLimiter.Limit)

				r.Get("/balance", cfg.AccountHandler.GetBalance)
				r.Get("/transactions", cfg.EntryHandler.History)
				r.Get("/transactions/{reference}", cfg.EntryHandler.Detail)
			})

			r.Group(func(r chi.Router) {
				r.Use(transferLimiter.Limit)

				if cfg.IdempotencyStore != nil {
					idem := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
					r.Use(idem.Wrap)
				}

				r.Post("/transfer", cfg.TransferHandler.Create)
			})
		})

		// Collaborator surface. Exposed on the private ingress only;
		// registration and reconciliation tooling, not end users.
		r.Route("/internal", func(r chi.Router) {
			r.Post("/accounts", cfg.AccountHandler.Open)
			r.Get("/ledger/consistency", cfg.LedgerHandler.Consistency)
		})
	})

	return r
}
