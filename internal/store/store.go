// Package store defines the persistence interfaces the service depends on,
// keeping storage details out of the domain and API layers.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/quadrantly/triage-api/internal/domain"
)

// Common store errors
var (
	// ErrTaskNotFound is returned when a task with the given ID does not
	// exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// a write.
	ErrInvalidEntity = errors.New("invalid entity")
)

// TaskStore is the narrow fetch/add/update/delete interface the triage
// caller persists classified tasks through.
type TaskStore interface {
	// CreateTask saves a new task. Returns ErrInvalidEntity if the task
	// fails validation.
	CreateTask(ctx context.Context, task *domain.Task) error

	// GetTask retrieves a task by ID. Returns ErrTaskNotFound if no task
	// exists with the given ID.
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListTasks returns all tasks, newest first.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// UpdateTask saves modifications to an existing task. Returns
	// ErrTaskNotFound if no task exists with the given ID.
	UpdateTask(ctx context.Context, task *domain.Task) error

	// DeleteTask removes a task by ID. Returns ErrTaskNotFound if no task
	// exists with the given ID.
	DeleteTask(ctx context.Context, id uuid.UUID) error
}
