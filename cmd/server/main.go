package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/karat/bullionledger/internal/adapter/http"
	"github.com/karat/bullionledger/internal/adapter/http/handler"
	postgresRepo "github.com/karat/bullionledger/internal/adapter/repository/postgres"
	redisRepo "github.com/karat/bullionledger/internal/adapter/repository/redis"
	"github.com/karat/bullionledger/internal/infrastructure/config"
	"github.com/karat/bullionledger/internal/infrastructure/eventpublisher"
	"github.com/karat/bullionledger/internal/infrastructure/logger"
	"github.com/karat/bullionledger/internal/infrastructure/metrics"
	"github.com/karat/bullionledger/internal/infrastructure/postgres"
	"github.com/karat/bullionledger/internal/infrastructure/redis"
	"github.com/karat/bullionledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, resolveMigrationsPath()); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	registryRepo := postgresRepo.NewRegistryRepository(pool)
	partyRepo := postgresRepo.NewPartyRepository(pool)
	stockRepo := postgresRepo.NewStockRepository(pool)
	cashAccountRepo := postgresRepo.NewCashAccountRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	purchaseRepo := postgresRepo.NewPurchaseRepository(pool)
	voucherRepo := postgresRepo.NewVoucherRepository(pool)
	fixingRepo := postgresRepo.NewFixingRepository(pool)
	transferRepo := postgresRepo.NewFundTransferRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)
	appMetrics := metrics.New()

	// Posting engine shared by every writing use case
	engine := usecase.NewPostingEngine(
		txManager,
		retrier,
		registryRepo,
		partyRepo,
		stockRepo,
		cashAccountRepo,
		outboxRepo,
		auditRepo,
		idGen,
		appMetrics,
	)

	// Initialize use cases
	partyUC := usecase.NewPartyUseCase(partyRepo, cache, idGen)
	transactionUC := usecase.NewMetalTransactionUseCase(engine, transactionRepo, idGen)
	purchaseUC := usecase.NewMetalPurchaseUseCase(engine, purchaseRepo, idGen)
	voucherUC := usecase.NewVoucherUseCase(engine, voucherRepo, idGen)
	fixingUC := usecase.NewFixingUseCase(engine, fixingRepo, idGen)
	transferUC := usecase.NewFundTransferUseCase(engine, transferRepo, idGen)
	registryUC := usecase.NewRegistryUseCase(registryRepo)
	reconciliationUC := usecase.NewReconciliationUseCase(registryRepo, appLogger)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		PartyHandler:          handler.NewPartyHandler(partyUC),
		TransactionHandler:    handler.NewTransactionHandler(transactionUC),
		PurchaseHandler:       handler.NewPurchaseHandler(purchaseUC),
		VoucherHandler:        handler.NewVoucherHandler(voucherUC),
		FixingHandler:         handler.NewFixingHandler(fixingUC),
		TransferHandler:       handler.NewTransferHandler(transferUC),
		RegistryHandler:       handler.NewRegistryHandler(registryUC),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC),
		HealthHandler:         handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:      idempotencyStore,
		IdempotencyTTL:        cfg.IdempotencyTTL,
		Logger:                appLogger,
	})

	// Start outbox publisher
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(appLogger),
		Logger:     appLogger,
		BatchSize:  cfg.PublisherBatchSize,
		Interval:   cfg.PublisherInterval,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && err != context.Canceled {
			appLogger.Error().Err(err).Msg("outbox publisher stopped")
		}
	}()

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
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")
	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}

func resolveMigrationsPath() string {
	if path := os.Getenv("MIGRATIONS_PATH"); path != "" {
		return path
	}
	return "migrations"
}
