package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
)

// TaskService handles task-related operations
type TaskService struct {
	taskRepo ports.TaskRepository
	resolver *ReferenceResolver
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, resolver *ReferenceResolver, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		resolver: resolver,
		logger:   logger.WithComponent("tasks"),
	}
}

func optionalID(id string) *string {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	return &id
}

// CreateTask creates a new task and returns it with resolved contact references
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.ResolvedTask, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", entities.ErrValidation)
	}

	task := &entities.Task{
		Title:       title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssignedTo:  optionalID(req.AssignedTo),
		AssignedBy:  optionalID(req.AssignedBy),
	}
	task.ApplyDefaults()
	if !task.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", entities.ErrValidation, task.Status)
	}
	if !task.Priority.IsValid() {
		return nil, fmt.Errorf("%w: unknown priority %q", entities.ErrValidation, task.Priority)
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Infow("Task created", "task_id", task.ID, "status", task.Status, "priority", task.Priority)
	return s.resolver.ResolveTask(ctx, task), nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id string) (*entities.ResolvedTask, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolver.ResolveTask(ctx, task), nil
}

// ListTasks lists tasks with their references resolved
func (s *TaskService) ListTasks(ctx context.Context, filter ports.TaskFilter) ([]*entities.ResolvedTask, error) {
	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return s.resolver.ResolveTasks(ctx, tasks), nil
}

// UpdateTask merges the supplied fields into the stored task
func (s *TaskService) UpdateTask(ctx context.Context, id string, req ports.UpdateTaskRequest) (*entities.ResolvedTask, error) {
	patch := ports.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		AssignedBy:  req.AssignedBy,
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", entities.ErrValidation)
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", entities.ErrValidation, *patch.Status)
	}
	if patch.Priority != nil && !patch.Priority.IsValid() {
		return nil, fmt.Errorf("%w: unknown priority %q", entities.ErrValidation, *patch.Priority)
	}
	if patch.IsEmpty() {
		return s.GetTask(ctx, id)
	}

	task, err := s.taskRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Task updated", "task_id", id)
	return s.resolver.ResolveTask(ctx, task), nil
}

// UpdateTaskStatus sets the status of a task. Setting the current status again is a no-op success.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, id string, status entities.TaskStatus) (*entities.ResolvedTask, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", entities.ErrValidation, status)
	}

	task, err := s.taskRepo.Update(ctx, id, ports.TaskPatch{Status: &status})
	if err != nil {
		return nil, err
	}

	if task.IsCompleted() {
		s.logger.Infow("Task completed", "task_id", id)
	} else {
		s.logger.Infow("Task status updated", "task_id", id, "status", status)
	}
	return s.resolver.ResolveTask(ctx, task), nil
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("Task deleted", "task_id", id)
	return nil
}

// DeleteAllTasks empties the task collection
func (s *TaskService) DeleteAllTasks(ctx context.Context) (int64, error) {
	deleted, err := s.taskRepo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Warnw("Task collection reset", "deleted", deleted)
	return deleted, nil
}
