package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fekuna/omnipos-billing-terminal/config"
	"github.com/fekuna/omnipos-billing-terminal/internal/api"
	cartUCPkg "github.com/fekuna/omnipos-billing-terminal/internal/cart/usecase"
	catRepoPkg "github.com/fekuna/omnipos-billing-terminal/internal/catalog/repository"
	catUCPkg "github.com/fekuna/omnipos-billing-terminal/internal/catalog/usecase"
	custRepoPkg "github.com/fekuna/omnipos-billing-terminal/internal/customer/repository"
	custUCPkg "github.com/fekuna/omnipos-billing-terminal/internal/customer/usecase"
	invRepoPkg "github.com/fekuna/omnipos-billing-terminal/internal/invoice/repository"
	invUCPkg "github.com/fekuna/omnipos-billing-terminal/internal/invoice/usecase"
	"github.com/fekuna/omnipos-billing-terminal/internal/session"
	"github.com/fekuna/omnipos-billing-terminal/internal/store"
	"github.com/fekuna/omnipos-billing-terminal/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Open Local Store
	localStore, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		// The terminal can bill without local state; preferences and the
		// reprint log are just unavailable.
		appLogger.Warn("Could not open local store", zap.Error(err))
		localStore = nil
	} else {
		defer localStore.Close()
		appLogger.Info("Opened local store", zap.String("path", cfg.Store.Path))
	}

	// 4. Initialize API Client
	apiClient := api.NewClient(&api.Config{
		BaseURL: cfg.Server.BaseURL,
		Timeout: cfg.Server.Timeout,
	})
	appLogger.Info("Billing server configured", zap.String("base_url", cfg.Server.BaseURL))

	// 5. Initialize Repositories
	catRepo := catRepoPkg.NewAPIRepository(apiClient)
	custRepo := custRepoPkg.NewAPIRepository(apiClient)
	invRepo := invRepoPkg.NewAPIRepository(apiClient)

	// 6. Initialize UseCases
	catUC := catUCPkg.NewCatalogUseCase(catRepo, appLogger)
	cartUC := cartUCPkg.NewCartUseCase(appLogger)
	custUC := custUCPkg.NewCustomerUseCase(custRepo, appLogger)
	invUC := invUCPkg.NewInvoiceUseCase(invRepo, appLogger)

	// 7. Wire Session + Terminal UI
	ui := newTerminalUI(os.Stdin, os.Stdout)
	sess := session.New(cfg, appLogger, catUC, cartUC, invUC, custUC, localStore, ui)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go sess.Run(ctx)
	sess.Start()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		ui.commandLoop(sess, localStore)
		close(done)
	}()

	select {
	case <-quit:
	case <-done:
	}

	appLogger.Info("Shutting down terminal")
	cancel()
}
