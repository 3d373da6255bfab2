package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/threadline/pos-service/internal/adapters/postgres"
	"github.com/threadline/pos-service/internal/config"
	"github.com/threadline/pos-service/internal/domain/ports"
	"github.com/threadline/pos-service/internal/handlers"
	authService "github.com/threadline/pos-service/internal/services/auth"
	bankService "github.com/threadline/pos-service/internal/services/bank"
	customerService "github.com/threadline/pos-service/internal/services/customer"
	orderService "github.com/threadline/pos-service/internal/services/order"
	paymentService "github.com/threadline/pos-service/internal/services/payment"
	"github.com/threadline/pos-service/pkg/logging"
	"github.com/threadline/pos-service/pkg/middleware"
	"github.com/threadline/pos-service/pkg/observability"
	"github.com/threadline/pos-service/pkg/resilience"
	"github.com/threadline/pos-service/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting pos service",
		ports.String("environment", cfg.Environment),
		ports.String("server_port", cfg.ServerPort),
		ports.String("metrics_port", cfg.MetricsPort))

	pool, err := initDatabase(cfg, logger)
	if err != nil {
		logger.Error("database init failed", ports.Err(err))
		os.Exit(1)
	}

	db := postgres.NewDBExecutor(pool)

	paymentRepo := postgres.NewPaymentRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	accountRepo := postgres.NewBankAccountRepository(db)
	collectionRepo := postgres.NewBankCollectionRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	userRepo := postgres.NewUserRepository(db)

	payments := paymentService.NewService(db, paymentRepo, orderRepo, accountRepo, logger)
	orders := orderService.NewService(orderRepo, logger)
	banks := bankService.NewService(db, accountRepo, collectionRepo, logger)
	customers := customerService.NewService(customerRepo, logger)
	auth := authService.NewService(userRepo, cfg.JWTSecret, cfg.TokenTTL, logger)

	healthChecker := observability.NewHealthChecker(pool)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	router := handlers.NewRouter(handlers.RouterConfig{
		PaymentService:  payments,
		OrderService:    orders,
		BankService:     banks,
		CustomerService: customers,
		AuthService:     auth,
		Logger:          logger,
		HealthChecker:   healthChecker,
		RateLimiter:     rateLimiter,
		AllowedOrigins:  cfg.Origins(),
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	metricsServer := observability.StartMetricsServer(cfg.MetricsPort, healthChecker, logger)

	manager := shutdown.NewManager(logger, cfg.ShutdownTimeout)
	manager.RegisterNoErr("database_pool", pool.Close)
	manager.RegisterNoErr("rate_limiter", rateLimiter.Shutdown)
	manager.Register("metrics_server", func(context.Context) error {
		return observability.ShutdownMetricsServer(metricsServer)
	})
	manager.RegisterHTTPServer("http_server", server)

	go func() {
		logger.Info("http server listening", ports.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", ports.Err(err))
			os.Exit(1)
		}
	}()

	manager.WaitForShutdown()
	logger.Info("service stopped")
}

func initLogger(cfg *config.Config) (*logging.ZapAdapter, error) {
	if cfg.IsDevelopment() {
		return logging.NewDevelopment()
	}
	return logging.NewProduction()
}

// initDatabase builds the pgx pool and retries the first ping, so the
// service survives starting before the database does.
func initDatabase(cfg *config.Config, logger ports.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	backoff := resilience.DefaultExponentialBackoff()
	err = resilience.Retry(ctx, 5, backoff, func(ctx context.Context) error {
		if pingErr := pool.Ping(ctx); pingErr != nil {
			logger.Warn("database ping failed, retrying", ports.Err(pingErr))
			return pingErr
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connection established")
	return pool, nil
}
