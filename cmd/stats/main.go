package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"afisha_backend/internal/config"
	"afisha_backend/internal/logger"
	"afisha_backend/internal/statsserver"
)

func main() {
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	if cfg.Server.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := statsserver.NewStore(context.Background(), cfg.Stats.DSN)
	if err != nil {
		logger.Fatal("stats service failed to start", "error", err)
	}
	defer store.Close()

	router := statsserver.NewRouter(store)

	addr := fmt.Sprintf(":%d", cfg.Stats.Port)
	logger.Info("stats service listening", "addr", addr)
	if err := router.Run(addr); err != nil {
		logger.Fatal("stats service stopped", "error", err)
	}
}
