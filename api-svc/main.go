package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/quixjob/backend/api-svc/config"
	"github.com/quixjob/backend/api-svc/internal/api"
	"github.com/quixjob/backend/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zl := logger.ForEnvironment(cfg.Env, cfg.LogLevel, cfg.LogFormat)
	defer zl.Sync()

	if err := api.StartServer(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
