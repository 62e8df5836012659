package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/flavorinthejar/smakosz/backend/config"
	"github.com/flavorinthejar/smakosz/backend/internal/logger"
	"github.com/flavorinthejar/smakosz/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLog, err := logger.New(cfg.LogLevel, cfg.Environment.String())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()

	srv, err := server.Build(context.Background(), cfg, zapLog)
	if err != nil {
		zapLog.Fatal("Failed to build server", zap.Error(err))
	}

	if err := srv.Start(); err != nil {
		zapLog.Fatal("Server error", zap.Error(err))
	}
}
