package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tsekovTriesCoding/activity-log-service/internal/infrastructure/di"
	"github.com/tsekovTriesCoding/activity-log-service/internal/infrastructure/worker"
	"github.com/tsekovTriesCoding/activity-log-service/internal/interface/router"
	"github.com/tsekovTriesCoding/activity-log-service/internal/interface/server"
	"github.com/tsekovTriesCoding/activity-log-service/pkg/config"
	"github.com/tsekovTriesCoding/activity-log-service/pkg/logger"
)

// @title Activity Log API
// @version 1.0
// @description ユーザーのアクティビティログを記録・参照・論理削除する REST API
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Logger setup
	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	if err := logger.Setup(logCfg); err != nil {
		slog.Error("failed to setup logger", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Initialize DI Container
	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	handlers := di.NewHandlers(container)
	middlewares := di.NewMiddlewares(container)

	// Setup Server
	serverConfig := server.DefaultConfig()
	serverConfig.Port = cfg.Server.Port
	serverConfig.Debug = cfg.Server.Debug
	serverConfig.CORSOrigins = cfg.Security.CORSOrigins
	serverConfig.EnableHSTS = cfg.Security.EnableHSTS
	srv := server.NewServer(serverConfig)

	// Setup Router
	router.NewRouter(srv.Echo(), handlers, middlewares).Setup()

	// Start background workers
	workerMgr := worker.NewManager()
	workerMgr.Register(worker.NewHealthCheckJob(worker.DefaultHealthCheckInterval, handlers.Health.CheckFuncs()))
	workerMgr.Start()

	// Start server
	slog.Info("starting server", "port", cfg.Server.Port, "store", cfg.Store.Driver)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	workerMgr.Shutdown(10 * time.Second)

	if err := srv.Shutdown(context.Background()); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
