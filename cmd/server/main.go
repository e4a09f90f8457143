package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/nuvobank/ledger/internal/adapter/http"
	"github.com/nuvobank/ledger/internal/adapter/http/handler"
	postgresRepo "github.com/nuvobank/ledger/internal/adapter/repository/postgres"
	redisRepo "github.com/nuvobank/ledger/internal/adapter/repository/redis"
	"github.com/nuvobank/ledger/internal/infrastructure/config"
	"github.com/nuvobank/ledger/internal/infrastructure/logger"
	"github.com/nuvobank/ledger/internal/infrastructure/metrics"
	"github.com/nuvobank/ledger/internal/infrastructure/postgres"
	"github.com/nuvobank/ledger/internal/infrastructure/redis"
	"github.com/nuvobank/ledger/internal/infrastructure/scheduler"
	"github.com/nuvobank/ledger/internal/usecase"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "ledger",
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

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
	accountRepo := postgresRepo.NewAccountRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	corporateRepo := postgresRepo.NewCorporateRepository(pool)
	depositRepo := postgresRepo.NewDepositRepository(pool)
	disputeRepo := postgresRepo.NewDisputeRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, entryRepo, retrier, idGen)
	entryUC := usecase.NewEntryUseCase(txManager, entryRepo)
	settlementUC := usecase.NewSettlementUseCase(txManager, accountRepo, entryRepo, corporateRepo, retrier, idGen, cfg.CorporateAccountID)
	depositUC := usecase.NewDepositUseCase(txManager, accountRepo, entryRepo, depositRepo, retrier, idGen)
	disputeUC := usecase.NewDisputeUseCase(txManager, entryRepo, disputeRepo, retrier, idGen)
	interestUC := usecase.NewInterestUseCase(txManager, accountRepo, entryRepo, retrier, idGen, cfg.RateTable())
	reconUC := usecase.NewReconciliationUseCase(accountRepo, entryRepo, corporateRepo, cache)

	m := metrics.New()

	// Background jobs: deposit maturity sweep and monthly interest accrual
	sched := scheduler.New(scheduler.Config{
		Interest: interestUC,
		Deposits: depositUC,
		Metrics:  m,
		Interval: cfg.SchedulerInterval,
	})
	schedCtx, stopScheduler := context.WithCancel(ctx)
	defer stopScheduler()
	go func() {
		if err := sched.Start(schedCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("scheduler stopped")
		}
	}()

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:    handler.NewAccountHandler(accountUC),
		TransferHandler:   handler.NewTransferHandler(transferUC),
		EntryHandler:      handler.NewEntryHandler(entryUC),
		SettlementHandler: handler.NewSettlementHandler(settlementUC, m),
		DepositHandler:    handler.NewDepositHandler(depositUC),
		DisputeHandler:    handler.NewDisputeHandler(disputeUC),
		LedgerHandler:     handler.NewLedgerHandler(reconUC, interestUC, cfg.CorporateAccountID, m),
		HealthHandler:     handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:  idempotencyStore,
		IdempotencyTTL:    cfg.IdempotencyTTL,
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
	stopScheduler()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
