package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/usecase/balance"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/usecase/deposit"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/usecase/identity"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/usecase/order"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/usecase/purchase"

	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/api/handler"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/api/routes"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/database"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/logger"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/metrics"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/notifier"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/oracle"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/repository"
	timeProvider "github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/time"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	appLogger.SetLevel(logger.ParseLevel(cfg.Logger.Level))
	defer func() {
		_ = appLogger.Flush()
	}()

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(database.FromAppConfig(cfg), appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		_ = dbManager.Close()
	}()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Metrics registry
	m := metrics.Registry("shoq")

	// Oracle adapter
	oracleClient := oracle.NewClient(oracle.Config{
		BaseURL: cfg.Oracle.BaseURL,
		Timeout: cfg.Oracle.Timeout,
	}, appLogger, m)

	// Initialize repositories and the unit of work
	userRepo := repository.NewUserRepository(dbManager.DB(), tp, appLogger, m)
	uow := dbManager.CreateUnitOfWork(m)

	// Initialize use cases
	resolver := identity.NewResolver(userRepo, tp, appLogger)
	ledger := balance.NewLedger(uow, appLogger)

	policy, err := verificationPolicy(cfg)
	if err != nil {
		appLogger.Error("Invalid verification policy configuration", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	verifier := deposit.NewVerifier(oracleClient, uow, resolver, ledger, policy, tp, appLogger)

	orderService := order.NewService(uow, ledger, tp, appLogger)
	orchestrator := purchase.NewOrchestrator(resolver, verifier, orderService, notifier.NewLogNotifier(appLogger), appLogger)

	// Initialize API handlers
	purchaseHandler := handler.NewPurchaseHandler(orchestrator, appLogger, m)
	depositHandler := handler.NewDepositHandler(verifier, appLogger, m)
	userHandler := handler.NewUserHandler(userRepo, orderService, appLogger, m)
	orderHandler := handler.NewOrderHandler(orderService, appLogger, m)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger, m)

	// Setup routes
	routes.SetupRoutes(router, purchaseHandler, depositHandler, userHandler, orderHandler, dbManager)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// verificationPolicy builds the deposit verification policy from configuration
func verificationPolicy(cfg *config.Config) (deposit.Policy, error) {
	policy := deposit.DefaultPolicy()

	policy.TreasuryAccountID = cfg.Treasury.AccountID
	policy.TokenID = cfg.Treasury.TokenID
	if cfg.Treasury.TokenDecimals > 0 {
		policy.TokenDecimals = cfg.Treasury.TokenDecimals
	}
	if cfg.Treasury.MinDeposit != "" {
		minDeposit, err := decimal.NewFromString(cfg.Treasury.MinDeposit)
		if err != nil {
			return deposit.Policy{}, fmt.Errorf("treasury.minDeposit: %w", err)
		}
		policy.MinDeposit = minDeposit
	}
	if cfg.Treasury.RecencyWindow > 0 {
		policy.RecencyWindow = cfg.Treasury.RecencyWindow
	}
	if cfg.Oracle.RetryAttempts > 0 {
		policy.OracleRetryAttempts = cfg.Oracle.RetryAttempts
	}
	if cfg.Oracle.RetryBackoff > 0 {
		policy.OracleRetryBackoff = cfg.Oracle.RetryBackoff
	}

	return policy, nil
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host (or SHOQ_DB_HOST environment variable)")
	}
	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username (or SHOQ_DB_USERNAME environment variable)")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or SHOQ_DB_NAME environment variable)")
	}

	if cfg.Oracle.BaseURL == "" {
		missingConfigs = append(missingConfigs, "oracle.baseUrl")
	}
	if cfg.Treasury.AccountID == "" {
		missingConfigs = append(missingConfigs, "treasury.accountId")
	}
	if cfg.Treasury.TokenID == "" {
		missingConfigs = append(missingConfigs, "treasury.tokenId")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	return nil
}
