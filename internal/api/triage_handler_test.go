package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/quadrantly/triage-api/internal/llm"
	"github.com/quadrantly/triage-api/internal/platform/sqlite"
	"github.com/quadrantly/triage-api/internal/service"
	"github.com/quadrantly/triage-api/internal/triage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider returns scripted responses in order. A response may instead
// be an error to exercise failure paths.
type stubProvider struct {
	responses []string
	errs      []error
	pingErr   error
	calls     int
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Complete(_ context.Context, _ llm.Request) (string, error) {
	i := p.calls
	p.calls++
	if i < len(p.errs) && p.errs[i] != nil {
		return "", p.errs[i]
	}
	if i < len(p.responses) {
		return p.responses[i], nil
	}
	return "", fmt.Errorf("stub exhausted after %d calls", i)
}

func (p *stubProvider) Ping(_ context.Context) error { return p.pingErr }

// newTestRouter wires handlers against an in-memory store and the given
// provider, mirroring the production route table.
func newTestRouter(t *testing.T, provider llm.Provider) http.Handler {
	t.Helper()

	taskStore, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = taskStore.Close()
	})

	tasks := service.NewTaskService(slog.Default(), taskStore)
	executor := llm.NewExecutor(slog.Default(), 3, time.Millisecond)
	analyzer := triage.NewAnalyzer(slog.Default(), executor,
		func(_ *slog.Logger, _ triage.Settings) (llm.Provider, error) {
			return provider, nil
		})

	triageHandler := NewTriageHandler(analyzer, tasks, slog.Default())
	taskHandler := NewTaskHandler(tasks, slog.Default())

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/triage/questions", triageHandler.GenerateQuestions)
		r.Post("/triage/classify", triageHandler.ClassifyTask)
		r.Post("/triage/batch/questions", triageHandler.GenerateBatchQuestions)
		r.Post("/triage/batch/classify", triageHandler.ClassifyBatch)
		r.Post("/triage/connection-test", triageHandler.TestConnection)
		r.Get("/tasks", taskHandler.ListTasks)
		r.Post("/tasks", taskHandler.CreateTask)
		r.Get("/tasks/{id}", taskHandler.GetTask)
		r.Put("/tasks/{id}", taskHandler.UpdateTask)
		r.Delete("/tasks/{id}", taskHandler.DeleteTask)
	})
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func geminiSettings() map[string]any {
	return map[string]any{
		"aiProvider":   "gemini",
		"geminiApiKey": "test-key",
		"creativity":   0.5,
	}
}

func TestGenerateQuestionsEndpoint(t *testing.T) {
	provider := &stubProvider{responses: []string{
		`{"questions": ["这件事今天必须完成吗？", "它影响你的季度目标吗？", "同事可以接手吗？"]}`,
	}}
	router := newTestRouter(t, provider)

	rec := postJSON(t, router, "/api/triage/questions", map[string]any{
		"task":     map[string]any{"name": "Finish Q3 report", "estimatedTime": "2025-01-10"},
		"settings": geminiSettings(),
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp GenerateQuestionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Questions, 3)
	assert.Equal(t, "0", resp.Questions[0].ID)
	assert.Equal(t, "这件事今天必须完成吗？", resp.Questions[0].Text)
}

func TestGenerateQuestionsRejectsBadSettings(t *testing.T) {
	router := newTestRouter(t, &stubProvider{})

	rec := postJSON(t, router, "/api/triage/questions", map[string]any{
		"task":     map[string]any{"name": "Finish Q3 report"},
		"settings": map[string]any{"aiProvider": "watson"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateQuestionsMalformedBody(t *testing.T) {
	router := newTestRouter(t, &stubProvider{})

	req := httptest.NewRequest(http.MethodPost, "/api/triage/questions",
		bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClassifyEndpoint(t *testing.T) {
	provider := &stubProvider{responses: []string{
		`{
			"quadrantName": "Do",
			"isImportant": true,
			"isUrgent": true,
			"reasoning": {"cn": "截止临近", "en": "deadline is close"},
			"steps": ["outline", "draft", "review"],
			"advice": {"cn": "用番茄钟", "en": "use pomodoro"}
		}`,
	}}
	router := newTestRouter(t, provider)

	rec := postJSON(t, router, "/api/triage/classify", map[string]any{
		"task": map[string]any{"name": "Finish Q3 report"},
		"questions": []map[string]string{
			{"id": "0", "text": "q1"},
			{"id": "1", "text": "q2"},
			{"id": "2", "text": "q3"},
		},
		"answers":  map[string]bool{"0": true, "1": true, "2": false},
		"settings": geminiSettings(),
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Do", resp["quadrantName"], "quadrant travels under the quadrantName key")
	assert.Equal(t, true, resp["isImportant"])
}

func TestClassifyRejectsIncompleteAnswers(t *testing.T) {
	router := newTestRouter(t, &stubProvider{})

	rec := postJSON(t, router, "/api/triage/classify", map[string]any{
		"task": map[string]any{"name": "Finish Q3 report"},
		"questions": []map[string]string{
			{"id": "0", "text": "q1"},
			{"id": "1", "text": "q2"},
		},
		"answers":  map[string]bool{"0": true},
		"settings": geminiSettings(),
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClassifyRateLimitedMapsTo429(t *testing.T) {
	rateErr := &llm.RequestError{Provider: "stub", StatusCode: 429, Message: "quota"}
	provider := &stubProvider{errs: []error{rateErr, rateErr, rateErr}}
	router := newTestRouter(t, provider)

	rec := postJSON(t, router, "/api/triage/classify", map[string]any{
		"task":      map[string]any{"name": "Finish Q3 report"},
		"questions": []map[string]string{{"id": "0", "text": "q1"}},
		"answers":   map[string]bool{"0": true},
		"settings":  geminiSettings(),
	})

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotContains(t, resp["error"], "stub", "raw provider detail must not leak")
}

func TestClassifyParseFailureMapsTo502(t *testing.T) {
	provider := &stubProvider{responses: []string{"total nonsense, not even json"}}
	router := newTestRouter(t, provider)

	rec := postJSON(t, router, "/api/triage/classify", map[string]any{
		"task":      map[string]any{"name": "Finish Q3 report"},
		"questions": []map[string]string{{"id": "0", "text": "q1"}},
		"answers":   map[string]bool{"0": true},
		"settings":  geminiSettings(),
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, 1, provider.calls, "parse failures must not be retried")
}

func TestBatchQuestionsEndpoint(t *testing.T) {
	provider := &stubProvider{responses: []string{
		`{"t1": ["q1", "q2", "q3"], "t2": ["q4", "q5", "q6"]}`,
	}}
	router := newTestRouter(t, provider)

	rec := postJSON(t, router, "/api/triage/batch/questions", map[string]any{
		"tasks": []map[string]any{
			{"id": "t1", "name": "Write report"},
			{"id": "t2", "name": "Water plants"},
		},
		"settings": geminiSettings(),
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp BatchQuestionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Questions["t1"], 3)
	assert.Len(t, resp.Questions["t2"], 3)
	assert.Equal(t, 1, provider.calls, "one batch is one round-trip")
}

func TestBatchQuestionsTooLarge(t *testing.T) {
	provider := &stubProvider{}
	router := newTestRouter(t, provider)

	tasks := make([]map[string]any, 21)
	for i := range tasks {
		tasks[i] = map[string]any{"id": fmt.Sprintf("t%d", i), "name": fmt.Sprintf("task %d", i)}
	}

	rec := postJSON(t, router, "/api/triage/batch/questions", map[string]any{
		"tasks":    tasks,
		"settings": geminiSettings(),
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, provider.calls, "oversized batches fail before any provider call")
}

func TestBatchClassifyEndpointPersists(t *testing.T) {
	provider := &stubProvider{responses: []string{
		`[
			{"taskId": "t1", "quadrantName": "Do", "reasoning": "urgent and important", "advice": "start now"},
			{"taskId": "t2", "quadrantName": "Eliminate", "reasoning": "neither", "advice": "drop it"}
		]`,
	}}
	router := newTestRouter(t, provider)

	rec := postJSON(t, router, "/api/triage/batch/classify", map[string]any{
		"tasks": []map[string]any{
			{"id": "t1", "name": "Write report"},
			{"id": "t2", "name": "Scroll feeds"},
		},
		"questions": map[string][]string{
			"t1": {"q1", "q2", "q3"},
			"t2": {"q1", "q2", "q3"},
		},
		"answers": map[string]map[string]bool{
			"t1": {"0": true, "1": true, "2": false},
			"t2": {"0": false, "1": false, "2": false},
		},
		"settings": geminiSettings(),
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp BatchClassifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Tasks, 2)
	assert.Equal(t, "Write report", resp.Tasks[0].Name)

	// The classified tasks are persisted, not just returned.
	listReq := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, listReq)
	require.Equal(t, http.StatusOK, listRec.Code)

	var list TaskListResponse
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &list))
	assert.Len(t, list.Tasks, 2)
}

func TestConnectionTestEndpointNeverErrors(t *testing.T) {
	provider := &stubProvider{pingErr: &llm.RequestError{Provider: "stub", StatusCode: 401, Message: "bad key"}}
	router := newTestRouter(t, provider)

	rec := postJSON(t, router, "/api/triage/connection-test", map[string]any{
		"settings": geminiSettings(),
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ConnectionTestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Connected)
}
