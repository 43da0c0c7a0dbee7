// Package main implements the entry point for the triage API server, which
// classifies to-do items into Eisenhower quadrants through LLM backends and
// persists the results.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/quadrantly/triage-api/internal/config"
	"github.com/quadrantly/triage-api/internal/platform/logger"
)

// main wires configuration, logging, storage, and the orchestration layer
// together, then runs the HTTP server until shutdown.
func main() {
	// A missing .env file is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_path", cfg.Database.Path)

	if cfg.LLM.GeminiAPIKey != "" {
		slog.Debug("LLM configuration", "gemini_key_present", true)
	}
	if cfg.LLM.SiliconFlowAPIKey != "" {
		slog.Debug("LLM configuration", "siliconflow_key_present", true)
	}

	return cfg, appLogger, nil
}
