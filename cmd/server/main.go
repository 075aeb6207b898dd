package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/mcsoftware/atmledger/internal/adapter/http"
	"github.com/mcsoftware/atmledger/internal/adapter/http/handler"
	memoryRepo "github.com/mcsoftware/atmledger/internal/adapter/repository/memory"
	postgresRepo "github.com/mcsoftware/atmledger/internal/adapter/repository/postgres"
	redisRepo "github.com/mcsoftware/atmledger/internal/adapter/repository/redis"
	"github.com/mcsoftware/atmledger/internal/infrastructure/config"
	"github.com/mcsoftware/atmledger/internal/infrastructure/logger"
	"github.com/mcsoftware/atmledger/internal/infrastructure/metrics"
	"github.com/mcsoftware/atmledger/internal/infrastructure/postgres"
	"github.com/mcsoftware/atmledger/internal/infrastructure/redis"
	"github.com/mcsoftware/atmledger/internal/usecase"
)

// repositories bundles one storage driver's implementations.
type repositories struct {
	txManager   usecase.TransactionManager
	accountRepo usecase.AccountRepository
	userRepo    usecase.UserRepository
	bankRepo    usecase.BankRepository
	branchRepo  usecase.BranchRepository
	atmRepo     usecase.ATMRepository
	txnRepo     usecase.TransactionRepository
	ledgerRepo  usecase.LedgerRepository
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	zerolog.DefaultContextLogger = &log.Logger

	ctx := context.Background()

	var (
		pool  *pgxpool.Pool
		repos repositories
	)

	switch cfg.StorageDriver {
	case "memory":
		store := memoryRepo.NewStore()
		repos = repositories{
			txManager:   memoryRepo.NewTxManager(store),
			accountRepo: memoryRepo.NewAccountRepository(store),
			userRepo:    memoryRepo.NewUserRepository(store),
			bankRepo:    memoryRepo.NewBankRepository(store),
			branchRepo:  memoryRepo.NewBranchRepository(store),
			atmRepo:     memoryRepo.NewATMRepository(store),
			txnRepo:     memoryRepo.NewTransactionRepository(store),
			ledgerRepo:  memoryRepo.NewLedgerRepository(store),
		}
		log.Info().Msg("using in-memory storage")

	case "postgres":
		pool, err = postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()
		log.Info().Msg("connected to postgres")

		if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		repos = repositories{
			txManager:   postgresRepo.NewTxManager(pool),
			accountRepo: postgresRepo.NewAccountRepository(pool),
			userRepo:    postgresRepo.NewUserRepository(pool),
			bankRepo:    postgresRepo.NewBankRepository(pool),
			branchRepo:  postgresRepo.NewBranchRepository(pool),
			atmRepo:     postgresRepo.NewATMRepository(pool),
			txnRepo:     postgresRepo.NewTransactionRepository(pool),
			ledgerRepo:  postgresRepo.NewLedgerRepository(pool),
		}

	default:
		log.Fatal().Str("driver", cfg.StorageDriver).Msg("unknown storage driver")
	}

	// Redis is optional: without it idempotency keys and the
	// transaction cache are disabled.
	var (
		redisClient      *redislib.Client
		idempotencyStore usecase.IdempotencyStore
		txnCache         usecase.Cache
	)
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, idempotency keys disabled")
		} else {
			defer redisClient.Close()
			idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
			txnCache = redisRepo.NewCache(redisClient)
			log.Info().Msg("connected to redis")
		}
	}

	idGen := postgresRepo.NewULIDGenerator()
	m := metrics.New()

	// Initialize use cases
	userUC := usecase.NewUserUseCase(repos.userRepo, idGen)
	accountUC := usecase.NewAccountUseCase(repos.txManager, repos.accountRepo, repos.userRepo, repos.txnRepo, idGen, m)
	transferUC := usecase.NewTransferUseCase(repos.txManager, repos.accountRepo, repos.bankRepo, repos.branchRepo, repos.atmRepo, repos.txnRepo, idGen, m)
	bankUC := usecase.NewBankUseCase(repos.txManager, repos.bankRepo, repos.branchRepo, repos.atmRepo, repos.accountRepo, idGen)
	txnUC := usecase.NewTransactionUseCase(repos.txnRepo, txnCache)
	ledgerUC := usecase.NewLedgerUseCase(repos.ledgerRepo, m)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		UserHandler:        handler.NewUserHandler(userUC),
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransferHandler:    handler.NewTransferHandler(transferUC),
		BankHandler:        handler.NewBankHandler(bankUC),
		TransactionHandler: handler.NewTransactionHandler(txnUC),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:   idempotencyStore,
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
