package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/address-parser/app/config"
	"github.com/address-parser/internal/catalog"
)

// refreshInterval controls how often the worker reloads the catalog from
// Postgres and checks for a new version.
const refreshInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load("config/parser.yaml")
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("starting catalog refresh worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	currentVersion := ""
	if cat, err := catalog.Load(ctx, cfg.DBConnection); err == nil {
		currentVersion = cat.Version()
		logger.Info("loaded initial catalog", zap.Int("locations", cat.Len()), zap.String("version", currentVersion))
	} else {
		logger.Error("initial catalog load failed", zap.Error(err))
	}

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cat, err := catalog.Load(ctx, cfg.DBConnection)
			if err != nil {
				logger.Error("catalog reload failed", zap.Error(err))
				continue
			}
			if cat.Version() != currentVersion {
				currentVersion = cat.Version()
				logger.Info("catalog version changed", zap.Int("locations", cat.Len()), zap.String("version", currentVersion))
			}
		case <-ctx.Done():
			logger.Info("worker shutting down")
			return
		}
	}
}
