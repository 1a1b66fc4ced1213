package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calebmh/mnemo/internal/api"
	"github.com/calebmh/mnemo/internal/buildconfig"
	"github.com/calebmh/mnemo/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	loadErr := config.Load()

	logCfg := zap.NewProductionConfig()
	if level, err := zapcore.ParseLevel(config.LogLevel()); err == nil {
		logCfg.Level = zap.NewAtomicLevelAt(level)
	}
	logger, _ := logCfg.Build()
	defer func() { _ = logger.Sync() }()

	if loadErr != nil {
		logger.Fatal("failed to load config", zap.Error(loadErr))
	}

	if config.HostAPIURL() == "" {
		logger.Fatal("HOST_API_URL is required")
	}

	app := api.NewApp(logger)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting",
			zap.String("addr", addr),
			zap.String("version", buildconfig.Version()),
			zap.String("commit", buildconfig.Commit()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
