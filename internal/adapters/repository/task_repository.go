package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/ports"
)

const taskColumns = `id, title, description, status, priority, assigned_to, assigned_by, created_at, updated_at`

// TaskRepositoryImpl implements ports.TaskRepository
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

// Create creates a new task
func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.ApplyDefaults()
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	query := r.db.Rebind(`
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, string(task.Status), string(task.Priority),
		nullableString(task.AssignedTo), nullableString(task.AssignedBy),
		task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return translateWriteError("create task", err)
	}
	return nil
}

// GetByID retrieves a task by ID
func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.Task, error) {
	var task entities.Task
	query := r.db.Rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`)

	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}
	return &task, nil
}

// List returns tasks in creation order
func (r *TaskRepositoryImpl) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	var conditions []string
	var args []interface{}

	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*filter.Status))
	}

	if filter.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, string(*filter.Priority))
	}

	if filter.AssignedTo != nil {
		conditions = append(conditions, "assigned_to = ?")
		args = append(args, *filter.AssignedTo)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s FROM tasks %s ORDER BY created_at, id`, taskColumns, whereClause)
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	tasks := []*entities.Task{}
	if err := r.db.SelectContext(ctx, &tasks, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update applies the non-nil fields of patch in a single statement and
// returns the stored result.
func (r *TaskRepositoryImpl) Update(ctx context.Context, id string, patch ports.TaskPatch) (*entities.Task, error) {
	var set setClause
	if patch.Title != nil {
		set.add("title", *patch.Title)
	}
	if patch.Description != nil {
		set.add("description", *patch.Description)
	}
	if patch.Status != nil {
		set.add("status", string(*patch.Status))
	}
	if patch.Priority != nil {
		set.add("priority", string(*patch.Priority))
	}
	if patch.AssignedTo != nil {
		set.add("assigned_to", nullableString(patch.AssignedTo))
	}
	if patch.AssignedBy != nil {
		set.add("assigned_by", nullableString(patch.AssignedBy))
	}
	set.add("updated_at", time.Now().UTC())

	query := r.db.Rebind(`UPDATE tasks SET ` + set.String() + ` WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, append(set.args, id)...)
	if err != nil {
		return nil, translateWriteError("update task", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, entities.ErrTaskNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete deletes a task
func (r *TaskRepositoryImpl) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM tasks WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}
	return nil
}

// DeleteAll empties the task collection and reports how many rows went
func (r *TaskRepositoryImpl) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks`)
	if err != nil {
		return 0, fmt.Errorf("delete all tasks: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return deleted, nil
}
