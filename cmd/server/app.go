package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quadrantly/triage-api/internal/config"
	"github.com/quadrantly/triage-api/internal/llm"
	"github.com/quadrantly/triage-api/internal/platform/sqlite"
	"github.com/quadrantly/triage-api/internal/service"
	"github.com/quadrantly/triage-api/internal/triage"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore   *sqlite.TaskStore
	taskService *service.TaskService
	analyzer    *triage.Analyzer
}

// newApplication creates a new application instance with all dependencies
// initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	taskStore, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open task store: %w", err)
	}
	app.taskStore = taskStore
	logger.Info("task store initialized", "path", cfg.Database.Path)

	app.taskService = service.NewTaskService(logger, taskStore)

	executor := llm.NewExecutor(
		logger.With("component", "llm_executor"),
		cfg.LLM.MaxRetries,
		cfg.LLM.RetryDelay,
	)
	app.analyzer = triage.NewAnalyzer(
		logger.With("component", "analyzer"),
		executor,
		serverKeyFallbackFactory(cfg),
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// serverKeyFallbackFactory wraps the default provider dispatch so requests
// that carry no API key of their own fall back to the server-configured
// credentials before the provider's own fallbacks apply.
func serverKeyFallbackFactory(cfg *config.Config) triage.ProviderFactory {
	return func(logger *slog.Logger, s triage.Settings) (llm.Provider, error) {
		if s.GeminiAPIKey == "" {
			s.GeminiAPIKey = cfg.LLM.GeminiAPIKey
		}
		if s.SiliconFlowAPIKey == "" {
			s.SiliconFlowAPIKey = cfg.LLM.SiliconFlowAPIKey
		}
		return triage.DefaultProviderFactory(logger, s)
	}
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskStore != nil {
		if err := app.taskStore.Close(); err != nil {
			app.logger.Error("Error closing task store", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
