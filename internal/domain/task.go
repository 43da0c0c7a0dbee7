package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskNameEmpty is returned when a task name is empty.
	ErrTaskNameEmpty = errors.New("task name cannot be empty")

	// ErrTaskQuadrantInvalid is returned when a task carries a quadrant
	// outside the four known values.
	ErrTaskQuadrantInvalid = errors.New("task quadrant must be one of Do, Plan, Delegate, Eliminate")
)

// Task is a classified to-do item as persisted by the task store. It is the
// materialization of a TaskInput plus the analysis the model produced for
// it.
type Task struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	EstimatedTime string          `json:"estimatedTime"`
	Quadrant      Quadrant        `json:"quadrant"`
	IsImportant   bool            `json:"isImportant"`
	IsUrgent      bool            `json:"isUrgent"`
	Reasoning     BilingualText   `json:"reasoning"`
	Steps         []BilingualText `json:"steps,omitempty"`
	Advice        BilingualText   `json:"advice"`
	Completed     bool            `json:"completed"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewTask creates a Task from the original input and its analysis result.
// It generates a new UUID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewTask(input TaskInput, analysis AnalysisResult) (*Task, error) {
	task := &Task{
		ID:            uuid.New(),
		Name:          input.Name,
		EstimatedTime: input.EstimatedTime,
		Quadrant:      analysis.Quadrant,
		IsImportant:   analysis.IsImportant,
		IsUrgent:      analysis.IsUrgent,
		Reasoning:     analysis.Reasoning,
		Steps:         analysis.Steps,
		Advice:        analysis.Advice,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// NewTaskFromBatch creates a Task from a batch input and its batch result.
// Batch results carry no steps, so the field stays empty.
func NewTaskFromBatch(input BatchTaskInput, result BatchAnalysisResult) (*Task, error) {
	task := &Task{
		ID:            uuid.New(),
		Name:          input.Name,
		EstimatedTime: input.EstimatedTime,
		Quadrant:      result.Quadrant,
		IsImportant:   result.Quadrant == QuadrantDo || result.Quadrant == QuadrantPlan,
		IsUrgent:      result.Quadrant == QuadrantDo || result.Quadrant == QuadrantDelegate,
		Reasoning:     result.Reasoning,
		Advice:        result.Advice,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.Name == "" {
		return ErrTaskNameEmpty
	}

	if !t.Quadrant.Valid() {
		return ErrTaskQuadrantInvalid
	}

	return nil
}
