package main

import (
	"context"
	"flag"

	"shop-billing/internal/config"
	"shop-billing/internal/logging"
	"shop-billing/internal/repository"
	"shop-billing/internal/service"
	"shop-billing/pkg/database"

	"go.uber.org/zap"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report drift without writing")
	flag.Parse()

	// 1. Load Env
	cfg, _, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := logging.New(cfg.Development)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// 2. Open storage. The file store rolls back an interrupted sale on open.
	var ledgerRepo repository.LedgerRepository
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := database.ConnectDB(cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		ledgerRepo = repository.NewGormStore(db).Ledger()
	default:
		store, err := repository.NewFileStore(cfg.DataDir)
		if err != nil {
			logger.Fatal("failed to open data directory", zap.String("dir", cfg.DataDir), zap.Error(err))
		}
		if store.RolledBack() {
			logger.Warn("rolled back an interrupted sale", zap.String("dir", cfg.DataDir))
		}
		ledgerRepo = store.Ledger()
	}

	// 3. Check and fix the running total
	check, err := service.RepairLedger(context.Background(), ledgerRepo, *dryRun)
	if err != nil {
		logger.Fatal("ledger repair failed", zap.Error(err))
	}

	// 4. Drop receipts of sales that never reached the ledger
	orphans, err := service.PruneReceipts(context.Background(), ledgerRepo, repository.NewReceiptRepo(cfg.ReceiptDir), *dryRun)
	if err != nil {
		logger.Fatal("receipt check failed", zap.Error(err))
	}
	if len(orphans) > 0 {
		logger.Warn("receipts without a recorded sale", zap.Strings("bills", orphans), zap.Bool("removed", !*dryRun))
	}

	fields := []zap.Field{
		zap.Int("sales", check.Sales),
		zap.String("recorded", check.Recorded.StringFixed(2)),
		zap.String("computed", check.Computed.StringFixed(2)),
	}
	switch {
	case check.Consistent():
		logger.Info("ledger is consistent", fields...)
	case check.Repaired:
		logger.Info("ledger total repaired", fields...)
	default:
		logger.Warn("ledger total drifted (dry run, nothing written)", fields...)
	}
}
