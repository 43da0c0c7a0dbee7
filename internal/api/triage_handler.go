// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/quadrantly/triage-api/internal/api/shared"
	"github.com/quadrantly/triage-api/internal/redact"
	"github.com/quadrantly/triage-api/internal/service"
	"github.com/quadrantly/triage-api/internal/triage"
)

// TriageHandler handles the AI orchestration endpoints.
type TriageHandler struct {
	analyzer *triage.Analyzer
	tasks    *service.TaskService
	logger   *slog.Logger
}

// NewTriageHandler creates a new TriageHandler.
func NewTriageHandler(
	analyzer *triage.Analyzer,
	tasks *service.TaskService,
	logger *slog.Logger,
) *TriageHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TriageHandler")
	}

	return &TriageHandler{
		analyzer: analyzer,
		tasks:    tasks,
		logger:   logger.With(slog.String("component", "triage_handler")),
	}
}

// GenerateQuestions handles POST /api/triage/questions requests.
func (h *TriageHandler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req GenerateQuestionsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req.Settings); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	questions, err := h.analyzer.GenerateQuestions(r.Context(), req.Task, req.Settings)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateQuestionsResponse{Questions: questions})
}

// ClassifyTask handles POST /api/triage/classify requests.
func (h *TriageHandler) ClassifyTask(w http.ResponseWriter, r *http.Request) {
	var req ClassifyTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req.Settings); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.analyzer.ClassifyTask(r.Context(), req.Task, req.Questions, req.Answers, req.Settings)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, analysisToResponse(result))
}

// GenerateBatchQuestions handles POST /api/triage/batch/questions requests.
func (h *TriageHandler) GenerateBatchQuestions(w http.ResponseWriter, r *http.Request) {
	var req BatchQuestionsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req.Settings); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	questions, err := h.analyzer.GenerateBatchQuestions(r.Context(), req.Tasks, req.Settings)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BatchQuestionsResponse{Questions: questions})
}

// ClassifyBatch handles POST /api/triage/batch/classify requests. On success
// the classified tasks are persisted and returned.
func (h *TriageHandler) ClassifyBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchClassifyRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req.Settings); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	results, err := h.analyzer.ClassifyBatch(r.Context(), req.Tasks, req.Questions, req.Answers, req.Settings)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	tasks, err := h.tasks.MaterializeBatch(r.Context(), req.Tasks, results)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BatchClassifyResponse{Tasks: tasks})
}

// TestConnection handles POST /api/triage/connection-test requests. It
// always answers 200: the boolean in the body is the whole result.
func (h *TriageHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	var req ConnectionTestRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	connected := h.analyzer.TestConnection(r.Context(), req.Settings)
	shared.RespondWithJSON(w, r, http.StatusOK, ConnectionTestResponse{Connected: connected})
}
