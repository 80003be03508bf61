package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/kaditech/saccoledger/internal/adapter/http"
	"github.com/kaditech/saccoledger/internal/adapter/http/handler"
	"github.com/kaditech/saccoledger/internal/adapter/http/middleware"
	postgresRepo "github.com/kaditech/saccoledger/internal/adapter/repository/postgres"
	redisRepo "github.com/kaditech/saccoledger/internal/adapter/repository/redis"
	"github.com/kaditech/saccoledger/internal/infrastructure/auth"
	"github.com/kaditech/saccoledger/internal/infrastructure/config"
	"github.com/kaditech/saccoledger/internal/infrastructure/eventpublisher"
	"github.com/kaditech/saccoledger/internal/infrastructure/logger"
	"github.com/kaditech/saccoledger/internal/infrastructure/metrics"
	"github.com/kaditech/saccoledger/internal/infrastructure/postgres"
	"github.com/kaditech/saccoledger/internal/infrastructure/redis"
	"github.com/kaditech/saccoledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})

	ctx := context.Background()

	// PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolConfig{
		MaxConns: cfg.DatabaseMaxConns,
		MinConns: cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL, cfg.RedisPoolSize)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	productRepo := postgresRepo.NewProductRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	numberGen := postgresRepo.NewNumberGenerator(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Services
	ledgerService := usecase.NewLedgerService(ledgerRepo, log)
	transactionService := usecase.NewTransactionService(usecase.TransactionServiceConfig{
		TxManager:   txManager,
		AccountRepo: accountRepo,
		ProductRepo: productRepo,
		TxnRepo:     transactionRepo,
		OutboxRepo:  outboxRepo,
		NumberGen:   numberGen,
		IDGen:       idGen,
		Validator:   usecase.NewValidationService(transactionRepo),
		Balances:    usecase.NewBalanceService(accountRepo),
		Ledger:      ledgerService,
		Cache:       cache,
		Retry:       retrier,
		Metrics:     metrics.New(),
		Logger:      log,
	})

	// HTTP
	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		log.Info().Msg("jwt authentication enabled")
	} else {
		log.Warn().Msg("authentication disabled, requests run as system actor")
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(transactionService, ledgerService),
		AccountHandler:     handler.NewAccountHandler(transactionService),
		LedgerHandler:      handler.NewLedgerHandler(ledgerService),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		JWTManager:         jwtManager,
		DefaultTenant:      cfg.DefaultTenant,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimiter:        rateLimiter,
		Logger:             log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Outbox publisher
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	var publisher eventpublisher.Publisher
	if cfg.EventsEnabled() {
		kafkaPublisher := eventpublisher.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("kafka publisher enabled")
	} else {
		publisher = eventpublisher.NewLogPublisher(log)
	}

	outboxPublisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  publisher,
		Logger:     log,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxPollPeriod,
		Retention:  cfg.OutboxRetainUntil,
	})
	go func() {
		if err := outboxPublisher.Start(publisherCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("outbox publisher stopped")
		}
	}()

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopPublisher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
