package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiwitts/kiwi-go/internal/api"
	"github.com/kiwitts/kiwi-go/internal/config"
	"github.com/kiwitts/kiwi-go/internal/logging"
	"github.com/kiwitts/kiwi-go/internal/store"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		// Use stderr before logger is initialized
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Initialize structured logger
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting kiwi server", "version", "0.1.0")

	// Warn if bearer token auth is disabled
	if cfg.AuthDisabled() {
		logger.Warn("HTTP bearer authentication is disabled (BEARER_TOKEN is empty)")
	}

	// Log loaded configuration (without sensitive values)
	logger.Info("configuration loaded",
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"http_port", cfg.HTTPPort,
		"voice", cfg.Voice,
		"format", cfg.Format,
		"temp_dir", cfg.TempDir,
		"file_ttl", cfg.FileTTL,
	)

	if err := os.MkdirAll(cfg.TempDir, 0o755); err != nil {
		logger.Error("failed to create temp directory", "path", cfg.TempDir, "error", err)
		os.Exit(1)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig.String())
		cancel()
	}()

	// Track generated files and reap expired ones
	files := store.New(cfg.FileTTL, logger)
	files.Start(cfg.CleanupInterval)
	defer files.Stop()

	// Create and start HTTP server
	server := api.New(cfg, logger, files)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}

	logger.Info("shutdown complete")
}
