package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/peerpay/peerledger/internal/adapter/http"
	"github.com/peerpay/peerledger/internal/adapter/http/handler"
	postgresRepo "github.com/peerpay/peerledger/internal/adapter/repository/postgres"
	redisRepo "github.com/peerpay/peerledger/internal/adapter/repository/redis"
	"github.com/peerpay/peerledger/internal/infrastructure/auth"
	"github.com/peerpay/peerledger/internal/infrastructure/config"
	"github.com/peerpay/peerledger/internal/infrastructure/logger"
	"github.com/peerpay/peerledger/internal/infrastructure/metrics"
	"github.com/peerpay/peerledger/internal/infrastructure/postgres"
	"github.com/peerpay/peerledger/internal/infrastructure/redis"
	"github.com/peerpay/peerledger/internal/risk"
	"github.com/peerpay/peerledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	if cfg.JWTSecret == "" {
		appLogger.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories and adapters
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	refGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger, m)
	rateCounter := redisRepo.NewRateCounter(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	riskEvaluator := risk.NewEvaluator(m)

	// Use cases
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, ledgerRepo, refGen, retrier, riskEvaluator, appLogger)
	queryUC := usecase.NewQueryUseCase(accountRepo, ledgerRepo)
	accountUC := usecase.NewAccountUseCase(accountRepo)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)

	// Handlers
	// Verification only; tokens are issued by the identity service. The
	// duration matters only for tokens minted by tooling.
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, 24*time.Hour)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:  handler.NewAccountHandler(accountUC, queryUC, m),
		TransferHandler: handler.NewTransferHandler(transferUC, m),
		EntryHandler:    handler.NewEntryHandler(queryUC),
		LedgerHandler:   handler.NewLedgerHandler(ledgerUC),
		HealthHandler:   handler.NewHealthHandler(pool, redisClient),

		JWTManager:       jwtManager,
		Counter:          rateCounter,
		IdempotencyStore: idempotencyStore,
		Metrics:          m,
		Logger:           appLogger,

		TransferRateLimit:  cfg.TransferRateLimit,
		TransferRateWindow: cfg.TransferRateWindow,
		ReadRateLimit:      cfg.ReadRateLimit,
		ReadRateWindow:     cfg.ReadRateWindow,
		IdempotencyTTL:     cfg.IdempotencyTTL,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
