// Package service contains the application services sitting between the
// HTTP layer and the stores: validation, persistence, and the
// materialization of analysis results into stored tasks.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/quadrantly/triage-api/internal/domain"
	"github.com/quadrantly/triage-api/internal/store"
)

// TaskService manages the persisted task list.
type TaskService struct {
	logger *slog.Logger
	tasks  store.TaskStore
}

// NewTaskService creates a TaskService.
func NewTaskService(logger *slog.Logger, tasks store.TaskStore) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{logger: logger, tasks: tasks}
}

// GetTask retrieves a single task.
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.tasks.GetTask(ctx, id)
}

// ListTasks returns all persisted tasks, newest first.
func (s *TaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	return s.tasks.ListTasks(ctx)
}

// UpdateTask persists modifications to an existing task.
func (s *TaskService) UpdateTask(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	return s.tasks.UpdateTask(ctx, task)
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return s.tasks.DeleteTask(ctx, id)
}

// MaterializeAnalysis turns a single-task classification into a stored
// Task.
func (s *TaskService) MaterializeAnalysis(
	ctx context.Context,
	input domain.TaskInput,
	analysis *domain.AnalysisResult,
) (*domain.Task, error) {
	task, err := domain.NewTask(input, *analysis)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if err := s.tasks.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "stored classified task",
		"task_id", task.ID,
		"quadrant", task.Quadrant)
	return task, nil
}

// MaterializeBatch turns batch classification results into stored Tasks,
// correlating each result back to its input by the temporary batch id. The
// ids themselves are not persisted; they exist only to thread the batch
// round-trip.
func (s *TaskService) MaterializeBatch(
	ctx context.Context,
	inputs []domain.BatchTaskInput,
	results []domain.BatchAnalysisResult,
) ([]*domain.Task, error) {
	byID := make(map[string]domain.BatchTaskInput, len(inputs))
	for _, input := range inputs {
		byID[input.ID] = input
	}

	tasks := make([]*domain.Task, 0, len(results))
	for _, result := range results {
		input, ok := byID[result.TaskID]
		if !ok {
			return nil, fmt.Errorf("%w: result for unknown batch id %q", store.ErrInvalidEntity, result.TaskID)
		}

		task, err := domain.NewTaskFromBatch(input, result)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
		if err := s.tasks.CreateTask(ctx, task); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	s.logger.InfoContext(ctx, "stored batch classification",
		"task_count", len(tasks))
	return tasks, nil
}
