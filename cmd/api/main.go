package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"shop-billing/internal/config"
	"shop-billing/internal/handler"
	"shop-billing/internal/logging"
	"shop-billing/internal/middleware"
	"shop-billing/internal/repository"
	"shop-billing/internal/service"
	"shop-billing/internal/ws"
	"shop-billing/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env
	cfg, envFound, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.Development)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if !envFound {
		logger.Warn(".env file not found, using system environment")
	}

	// 2. Open storage
	store, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	receipts := repository.NewReceiptRepo(cfg.ReceiptDir)
	orphans, err := service.PruneReceipts(context.Background(), store.Ledger(), receipts, false)
	if err != nil {
		logger.Fatal("failed to check receipts", zap.Error(err))
	}
	if len(orphans) > 0 {
		logger.Warn("removed receipts of uncommitted sales", zap.Strings("bills", orphans))
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub(logger.Named("ws"))
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	lock := &sync.Mutex{}

	catalogService := service.NewCatalogService(store.Catalog(), logger)
	checkoutService := service.NewCheckoutService(store, receipts, wsHub, logger, time.Now)
	registerService := service.NewRegisterService(store.Catalog(), checkoutService, lock, logger)
	reportService := service.NewReportService(store.Ledger(), time.Now)
	customerService := service.NewCustomerService(store.Customers(), receipts)
	adminService, err := service.NewAdminService(store.Catalog(), service.AdminConfig{
		Pin:        cfg.AdminPIN,
		Secret:     cfg.JWTSecret,
		SessionTTL: cfg.AdminSessionTTL,
	}, lock, wsHub, logger, time.Now)
	if err != nil {
		logger.Fatal("failed to set up admin", zap.Error(err))
	}

	// 5. Seed default catalog
	if _, err := catalogService.SeedDefaults(context.Background()); err != nil {
		logger.Fatal("failed to seed catalog", zap.Error(err))
	}

	handlers := handler.NewHandlers(catalogService, registerService, adminService, reportService, customerService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:               "Shop Billing v1.0",
		DisableStartupMessage: !cfg.Development,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(logger.Named("http")))
	app.Use(cors.New())

	// 7. Routes
	handlers.Routes(app.Group("/api/v1"), adminService)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		logger.Info("listening", zap.String("port", cfg.Port), zap.String("storage", cfg.StorageDriver))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Panic("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}

func openStore(cfg *config.Config, logger *zap.Logger) (repository.Store, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := database.ConnectDB(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		store := repository.NewGormStore(db)
		if err := store.Migrate(); err != nil {
			return nil, err
		}
		return store, nil
	default:
		store, err := repository.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		if store.RolledBack() {
			logger.Warn("rolled back an interrupted sale", zap.String("dir", cfg.DataDir))
		}
		return store, nil
	}
}
