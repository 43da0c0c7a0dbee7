// Package sqlite implements the store interfaces on an embedded SQLite
// database, the natural server-side analog of the product's local-first
// task list.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quadrantly/triage-api/internal/domain"
	"github.com/quadrantly/triage-api/internal/store"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	estimated_time TEXT NOT NULL DEFAULT '',
	quadrant       TEXT NOT NULL,
	is_important   INTEGER NOT NULL,
	is_urgent      INTEGER NOT NULL,
	reasoning      TEXT NOT NULL DEFAULT '""',
	steps          TEXT NOT NULL DEFAULT '[]',
	advice         TEXT NOT NULL DEFAULT '""',
	completed      INTEGER NOT NULL DEFAULT 0,
	created_at     INTEGER NOT NULL,
	updated_at     INTEGER NOT NULL
);
`

// TaskStore is the SQLite implementation of store.TaskStore. Bilingual
// fields are persisted as JSON so they round-trip in the shape they
// arrived in.
type TaskStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and initializes the
// schema. Use ":memory:" for an ephemeral store.
func Open(path string) (*TaskStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &TaskStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *TaskStore) Close() error {
	return s.db.Close()
}

// CreateTask saves a new task.
func (s *TaskStore) CreateTask(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	reasoning, steps, advice, err := marshalAnalysisFields(task)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, name, estimated_time, quadrant, is_important, is_urgent,
			reasoning, steps, advice, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID.String(), task.Name, task.EstimatedTime, string(task.Quadrant),
		boolToInt(task.IsImportant), boolToInt(task.IsUrgent),
		reasoning, steps, advice, boolToInt(task.Completed),
		task.CreatedAt.Unix(), task.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetTask retrieves a task by ID.
func (s *TaskStore) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, estimated_time, quadrant, is_important, is_urgent,
			reasoning, steps, advice, completed, created_at, updated_at
		FROM tasks WHERE id = ?`, id.String())

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks returns all tasks, newest first.
func (s *TaskStore) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, estimated_time, quadrant, is_important, is_urgent,
			reasoning, steps, advice, completed, created_at, updated_at
		FROM tasks ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// UpdateTask saves modifications to an existing task.
func (s *TaskStore) UpdateTask(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	reasoning, steps, advice, err := marshalAnalysisFields(task)
	if err != nil {
		return err
	}

	task.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET name = ?, estimated_time = ?, quadrant = ?, is_important = ?,
			is_urgent = ?, reasoning = ?, steps = ?, advice = ?, completed = ?, updated_at = ?
		WHERE id = ?`,
		task.Name, task.EstimatedTime, string(task.Quadrant),
		boolToInt(task.IsImportant), boolToInt(task.IsUrgent),
		reasoning, steps, advice, boolToInt(task.Completed),
		task.UpdatedAt.Unix(), task.ID.String())
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// DeleteTask removes a task by ID.
func (s *TaskStore) DeleteTask(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		idText, name, estimatedTime, quadrant string
		reasoning, steps, advice              string
		isImportant, isUrgent, completed      int
		createdAt, updatedAt                  int64
	)

	if err := row.Scan(&idText, &name, &estimatedTime, &quadrant,
		&isImportant, &isUrgent, &reasoning, &steps, &advice,
		&completed, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idText)
	if err != nil {
		return nil, fmt.Errorf("parse task id %q: %w", idText, err)
	}

	task := &domain.Task{
		ID:            id,
		Name:          name,
		EstimatedTime: estimatedTime,
		Quadrant:      domain.Quadrant(quadrant),
		IsImportant:   isImportant != 0,
		IsUrgent:      isUrgent != 0,
		Completed:     completed != 0,
		CreatedAt:     time.Unix(createdAt, 0).UTC(),
		UpdatedAt:     time.Unix(updatedAt, 0).UTC(),
	}

	if err := json.Unmarshal([]byte(reasoning), &task.Reasoning); err != nil {
		return nil, fmt.Errorf("decode reasoning for task %s: %w", idText, err)
	}
	if err := json.Unmarshal([]byte(steps), &task.Steps); err != nil {
		return nil, fmt.Errorf("decode steps for task %s: %w", idText, err)
	}
	if err := json.Unmarshal([]byte(advice), &task.Advice); err != nil {
		return nil, fmt.Errorf("decode advice for task %s: %w", idText, err)
	}

	return task, nil
}

func marshalAnalysisFields(task *domain.Task) (reasoning, steps, advice string, err error) {
	r, err := json.Marshal(task.Reasoning)
	if err != nil {
		return "", "", "", fmt.Errorf("encode reasoning: %w", err)
	}

	stepValues := task.Steps
	if stepValues == nil {
		stepValues = []domain.BilingualText{}
	}
	st, err := json.Marshal(stepValues)
	if err != nil {
		return "", "", "", fmt.Errorf("encode steps: %w", err)
	}

	a, err := json.Marshal(task.Advice)
	if err != nil {
		return "", "", "", fmt.Errorf("encode advice: %w", err)
	}

	return string(r), string(st), string(a), nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
