package api

import (
	"github.com/quadrantly/triage-api/internal/domain"
	"github.com/quadrantly/triage-api/internal/triage"
)

// GenerateQuestionsRequest is the body for POST /api/triage/questions.
type GenerateQuestionsRequest struct {
	Task     domain.TaskInput `json:"task" validate:"required"`
	Settings triage.Settings  `json:"settings" validate:"required"`
}

// GenerateQuestionsResponse carries the generated assessment questions.
type GenerateQuestionsResponse struct {
	Questions []domain.Question `json:"questions"`
}

// ClassifyTaskRequest is the body for POST /api/triage/classify. Answers are
// keyed by question id.
type ClassifyTaskRequest struct {
	Task      domain.TaskInput  `json:"task" validate:"required"`
	Questions []domain.Question `json:"questions" validate:"required,min=1"`
	Answers   map[string]bool   `json:"answers" validate:"required"`
	Settings  triage.Settings   `json:"settings" validate:"required"`
}

// AnalysisResponse is the classification payload rendered to clients. The
// quadrant travels under the quadrantName key, matching the provider wire
// shape the rest of the product speaks.
type AnalysisResponse struct {
	QuadrantName domain.Quadrant        `json:"quadrantName"`
	IsImportant  bool                   `json:"isImportant"`
	IsUrgent     bool                   `json:"isUrgent"`
	Reasoning    domain.BilingualText   `json:"reasoning"`
	Steps        []domain.BilingualText `json:"steps"`
	Advice       domain.BilingualText   `json:"advice"`
}

func analysisToResponse(result *domain.AnalysisResult) AnalysisResponse {
	steps := result.Steps
	if steps == nil {
		steps = []domain.BilingualText{}
	}
	return AnalysisResponse{
		QuadrantName: result.Quadrant,
		IsImportant:  result.IsImportant,
		IsUrgent:     result.IsUrgent,
		Reasoning:    result.Reasoning,
		Steps:        steps,
		Advice:       result.Advice,
	}
}

// BatchQuestionsRequest is the body for POST /api/triage/batch/questions.
type BatchQuestionsRequest struct {
	Tasks    []domain.BatchTaskInput `json:"tasks" validate:"required"`
	Settings triage.Settings         `json:"settings" validate:"required"`
}

// BatchQuestionsResponse maps batch task ids to their question texts.
type BatchQuestionsResponse struct {
	Questions map[string][]string `json:"questions"`
}

// BatchClassifyRequest is the body for POST /api/triage/batch/classify.
// Questions and answers are keyed by batch task id; per-task answers are
// keyed by question index.
type BatchClassifyRequest struct {
	Tasks     []domain.BatchTaskInput    `json:"tasks" validate:"required"`
	Questions map[string][]string        `json:"questions" validate:"required"`
	Answers   map[string]map[string]bool `json:"answers" validate:"required"`
	Settings  triage.Settings            `json:"settings" validate:"required"`
}

// BatchClassifyResponse carries the persisted tasks materialized from a
// batch classification.
type BatchClassifyResponse struct {
	Tasks []*domain.Task `json:"tasks"`
}

// ConnectionTestRequest is the body for POST /api/triage/connection-test.
type ConnectionTestRequest struct {
	Settings triage.Settings `json:"settings" validate:"required"`
}

// ConnectionTestResponse reports whether the configured provider answered a
// minimal completion.
type ConnectionTestResponse struct {
	Connected bool `json:"connected"`
}

// CreateTaskRequest is the body for POST /api/tasks: a task input plus the
// analysis to materialize it with.
type CreateTaskRequest struct {
	Task     domain.TaskInput      `json:"task" validate:"required"`
	Analysis domain.AnalysisResult `json:"analysis" validate:"required"`
}

// UpdateTaskRequest is the body for PUT /api/tasks/{id}. All fields are
// required; the handler overwrites the stored task wholesale.
type UpdateTaskRequest struct {
	Name          string                 `json:"name" validate:"required,min=1"`
	EstimatedTime string                 `json:"estimatedTime"`
	Quadrant      domain.Quadrant        `json:"quadrant" validate:"required"`
	IsImportant   bool                   `json:"isImportant"`
	IsUrgent      bool                   `json:"isUrgent"`
	Reasoning     domain.BilingualText   `json:"reasoning"`
	Steps         []domain.BilingualText `json:"steps"`
	Advice        domain.BilingualText   `json:"advice"`
	Completed     bool                   `json:"completed"`
}

// TaskListResponse wraps the stored task list.
type TaskListResponse struct {
	Tasks []*domain.Task `json:"tasks"`
}
