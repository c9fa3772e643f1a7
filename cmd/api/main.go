package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"resumeats/ats-analyzer/internal/app"
	"resumeats/ats-analyzer/internal/config"
	"resumeats/ats-analyzer/internal/handlers"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("✅ Config loaded successfully", "env", cfg.Server.Env)

	// Initialize services
	components, err := app.Build(context.Background(), cfg, logger)
	if err != nil {
		fail(logger, "Failed to initialize services", err)
	}
	if err := components.Storage.EnsureUploadDir(); err != nil {
		fail(logger, "Failed to create upload directory", err)
	}
	logger.Info("✅ Services initialized successfully")

	// Initialize Handlers
	server := handlers.NewApp(
		cfg.Storage.MaxFileSize,
		handlers.NewAnalysisHandler(components.Storage, components.Pipeline, logger),
		handlers.NewValidateHandler(components.Storage, components.Documents, components.Validator, logger),
	)
	logger.Info("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("🛑 Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("❌ Server forced to shutdown", "err", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("🚀 Server starting", "addr", addr)

	if err := server.Listen(addr); err != nil {
		fail(logger, "Failed to start server", err)
	}
}

func fail(logger *slog.Logger, msg string, err error) {
	logger.Error("❌ "+msg, "err", err)
	os.Exit(1)
}
