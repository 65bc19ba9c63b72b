package main

import (
	"context"

	"github.com/cristianortiz/proxyBidding/internal/app"
	"github.com/cristianortiz/proxyBidding/internal/shared/clock"
	"github.com/cristianortiz/proxyBidding/internal/shared/config"
	"github.com/cristianortiz/proxyBidding/internal/shared/logger"
	"go.uber.org/zap"
)

func main() {
	log := logger.GetLogger()
	defer log.Sync()

	cfg := config.Load()
	log.Info("Starting proxy bidding server...",
		zap.String("env", cfg.Environment),
		zap.String("store", cfg.StoreDriver),
	)

	a, err := app.New(context.Background(), cfg, clock.System{})
	if err != nil {
		log.Fatal("Application setup failed", zap.Error(err))
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		log.Fatal("HTTP server failed", zap.Error(err))
	}
	log.Info("Server stopped")
}
