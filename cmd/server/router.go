package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/quadrantly/triage-api/internal/api"
	apiMiddleware "github.com/quadrantly/triage-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	triageHandler := api.NewTriageHandler(app.analyzer, app.taskService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Orchestration endpoints
		r.Post("/triage/questions", triageHandler.GenerateQuestions)
		r.Post("/triage/classify", triageHandler.ClassifyTask)
		r.Post("/triage/batch/questions", triageHandler.GenerateBatchQuestions)
		r.Post("/triage/batch/classify", triageHandler.ClassifyBatch)
		r.Post("/triage/connection-test", triageHandler.TestConnection)

		// Task persistence endpoints
		r.Get("/tasks", taskHandler.ListTasks)
		r.Post("/tasks", taskHandler.CreateTask)
		r.Get("/tasks/{id}", taskHandler.GetTask)
		r.Put("/tasks/{id}", taskHandler.UpdateTask)
		r.Delete("/tasks/{id}", taskHandler.DeleteTask)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
