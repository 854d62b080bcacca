package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/gstbooks/gstbooks/internal/adapter/http"
	"github.com/gstbooks/gstbooks/internal/adapter/http/handler"
	"github.com/gstbooks/gstbooks/internal/adapter/http/middleware"
	postgresRepo "github.com/gstbooks/gstbooks/internal/adapter/repository/postgres"
	redisRepo "github.com/gstbooks/gstbooks/internal/adapter/repository/redis"
	"github.com/gstbooks/gstbooks/internal/infrastructure/config"
	"github.com/gstbooks/gstbooks/internal/infrastructure/logger"
	"github.com/gstbooks/gstbooks/internal/infrastructure/metrics"
	"github.com/gstbooks/gstbooks/internal/infrastructure/postgres"
	"github.com/gstbooks/gstbooks/internal/infrastructure/redis"
	"github.com/gstbooks/gstbooks/internal/usecase"
)

func main() {
	// Monetary amounts serialize as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	voucherRepo := postgresRepo.NewVoucherRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	stockItemRepo := postgresRepo.NewStockItemRepository(pool)
	reportRepo := postgresRepo.NewReportRepository(pool)
	outstandingRepo := postgresRepo.NewOutstandingRepository(pool)
	stockRepo := postgresRepo.NewStockRepository(pool)
	settingsRepo := postgresRepo.NewSettingsRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	appMetrics := metrics.New()

	// Initialize use cases
	postingUC := usecase.NewPostingUseCase(txManager, voucherRepo, ledgerRepo, stockItemRepo, idGen, retrier, appMetrics)
	reportUC := usecase.NewLedgerReportUseCase(ledgerRepo, reportRepo)
	statementUC := usecase.NewStatementUseCase(reportRepo, cache)
	outstandingUC := usecase.NewOutstandingUseCase(ledgerRepo, outstandingRepo)
	cashFlowUC := usecase.NewCashFlowUseCase(reportRepo, cache)
	stockUC := usecase.NewStockUseCase(stockRepo)
	registryUC := usecase.NewRegistryUseCase(ledgerRepo, stockItemRepo, cache)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo)

	// Initialize handlers
	voucherHandler := handler.NewVoucherHandler(postingUC)
	reportHandler := handler.NewReportHandler(reportUC, statementUC)
	outstandingHandler := handler.NewOutstandingHandler(outstandingUC)
	cashFlowHandler := handler.NewCashFlowHandler(cashFlowUC)
	stockHandler := handler.NewStockHandler(stockUC)
	registryHandler := handler.NewRegistryHandler(registryUC)
	settingsHandler := handler.NewSettingsHandler(settingsUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		VoucherHandler:     voucherHandler,
		ReportHandler:      reportHandler,
		OutstandingHandler: outstandingHandler,
		CashFlowHandler:    cashFlowHandler,
		StockHandler:       stockHandler,
		RegistryHandler:    registryHandler,
		SettingsHandler:    settingsHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		RateLimiter:        rateLimiter,
		Logger:             &log.Logger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
