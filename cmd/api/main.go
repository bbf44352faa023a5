package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vtu-billing/config"
	httpHandler "vtu-billing/internal/adapter/http/handler"
	"vtu-billing/internal/adapter/payment/paystack"
	"vtu-billing/internal/adapter/provider/dataup"
	memStorage "vtu-billing/internal/adapter/storage/memory"
	pgStorage "vtu-billing/internal/adapter/storage/postgres"
	redisStorage "vtu-billing/internal/adapter/storage/redis"
	"vtu-billing/internal/core/ports"
	"vtu-billing/internal/service"
	"vtu-billing/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// storage bundles the ledger repositories for the configured driver.
type storage struct {
	wallets      ports.WalletRepository
	transactions ports.TransactionRepository
	users        ports.UserRepository
	idempotency  ports.IdempotencyRepository
	transactor   ports.DBTransactor
	health       ports.HealthChecker
	close        func()
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("driver", cfg.Database.Driver).
		Int("port", cfg.Server.Port).
		Msg("Starting VTU billing service")

	ctx := context.Background()

	store, err := openStorage(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer store.close()

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	referralRate, err := cfg.Referral.Rate()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid referral rate")
	}

	// Upstream providers
	reseller := dataup.NewClient(cfg.Provider, nil, logger.Component(log, "dataup"))
	catalog := redisStorage.NewPlanCache(rdb, reseller, cfg.Provider.CatalogTTL, logger.Component(log, "plan_cache"))
	gateway := paystack.NewClient(cfg.Paystack, nil, logger.Component(log, "paystack"))

	// Core services
	walletSvc := service.NewWalletService(
		store.wallets,
		store.transactions,
		store.transactor,
		redisStorage.NewEventPublisher(rdb),
		logger.Component(log, "wallet"),
	)
	referralSvc := service.NewReferralService(store.users, store.transactions, walletSvc, referralRate, logger.Component(log, "referral"))
	settlementSvc := service.NewSettlementService(
		walletSvc,
		referralSvc,
		reseller,
		catalog,
		store.idempotency,
		redisStorage.NewIdempotencyCache(rdb),
		redisStorage.NewClaimStore(rdb),
		cfg.Settlement,
		logger.Component(log, "settlement"),
	)
	fundingSvc := service.NewFundingService(walletSvc, gateway, logger.Component(log, "funding"))
	reportingSvc := service.NewReportingService(store.transactions, walletSvc)
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)
	webhookVerifier := service.NewWebhookSignatureService(cfg.Paystack.SecretKey)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		WalletSvc:       walletSvc,
		SettlementSvc:   settlementSvc,
		FundingSvc:      fundingSvc,
		ReferralSvc:     referralSvc,
		ReportingSvc:    reportingSvc,
		TokenSvc:        tokenSvc,
		WebhookVerifier: webhookVerifier,
		RateLimitStore:  redisStorage.NewRateLimitStore(rdb),
		HealthCheckers:  []ports.HealthChecker{store.health, redisStorage.NewHealthCheck(rdb)},
		Logger:          log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	// In-flight purchases may still be waiting on the provider.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Settlement.FulfillmentTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func openStorage(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (*storage, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn().Msg("Using in-memory ledger store, balances are lost on restart")
		mem := memStorage.NewStore()
		return &storage{
			wallets:      memStorage.NewWalletRepo(mem),
			transactions: memStorage.NewTransactionRepo(mem),
			users:        memStorage.NewUserRepo(mem),
			idempotency:  memStorage.NewIdempotencyRepo(mem),
			transactor:   mem,
			health:       mem,
			close:        func() {},
		}, nil
	}

	pool, err := pgStorage.NewPool(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("connecting to PostgreSQL: %w", err)
	}
	log.Info().Msg("PostgreSQL connected")
	return &storage{
		wallets:      pgStorage.NewWalletRepo(pool),
		transactions: pgStorage.NewTransactionRepo(pool),
		users:        pgStorage.NewUserRepo(pool),
		idempotency:  pgStorage.NewIdempotencyRepo(pool),
		transactor:   pgStorage.NewTransactor(pool, cfg.LockTimeout),
		health:       pgStorage.NewHealthCheck(pool),
		close:        pool.Close,
	}, nil
}
