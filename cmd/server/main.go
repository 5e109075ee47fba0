package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jtheoden/papuenvios-sub001/internal/api"
	"github.com/jtheoden/papuenvios-sub001/internal/config"
	"github.com/jtheoden/papuenvios-sub001/internal/realtime"
	"github.com/jtheoden/papuenvios-sub001/internal/repository/postgres"
	"github.com/jtheoden/papuenvios-sub001/internal/storage"
	"github.com/jtheoden/papuenvios-sub001/internal/workflow"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting admin API server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	// Initialize database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	repos := postgres.NewRepositories(db, logger)

	// Proof image storage
	proofs, err := storage.NewLocalProofStore(cfg.Uploads.Dir, cfg.Uploads.BaseURL, logger)
	if err != nil {
		logger.Fatal("Failed to initialize proof storage", zap.Error(err))
	}

	// Realtime publisher for list refresh and admin notifications
	publisher := realtime.NewPublisher(cfg.Redis.Addr, logger)
	defer publisher.Close()

	// Workflow core
	executor := workflow.NewExecutor(repos, logger)
	ctrl := workflow.NewController(executor, proofs, repos.ActivityLog, publisher, publisher, logger)

	// Initialize router
	router := api.NewRouter(cfg, repos, ctrl, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
