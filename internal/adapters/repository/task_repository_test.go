package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/ports"
	"github.com/nyaysathi/core/internal/testfixtures"
)

func setupTaskRepository(t *testing.T) ports.TaskRepository {
	t.Helper()
	db := testfixtures.NewSQLiteDB(t)
	return NewTaskRepository(db.DB)
}

func strPtr(s string) *string { return &s }

func TestTaskRepository_CreateAppliesDefaults(t *testing.T) {
	repo := setupTaskRepository(t)
	ctx := context.Background()

	task := &entities.Task{Title: "File affidavit"}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != entities.TaskStatusPending {
		t.Errorf("status = %q, want Pending", got.Status)
	}
	if got.Priority != entities.PriorityNormal {
		t.Errorf("priority = %q, want Normal", got.Priority)
	}
	if got.AssignedTo != nil || got.AssignedBy != nil {
		t.Errorf("expected empty references, got %v %v", got.AssignedTo, got.AssignedBy)
	}
}

func TestTaskRepository_RejectsInvalidStatus(t *testing.T) {
	repo := setupTaskRepository(t)

	err := repo.Create(context.Background(), &entities.Task{Title: "x", Status: "Archived"})
	if !errors.Is(err, entities.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestTaskRepository_UpdatePartial(t *testing.T) {
	repo := setupTaskRepository(t)
	ctx := context.Background()

	task := &entities.Task{Title: "Draft notice", Description: "keep", AssignedTo: strPtr("c-1")}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	completed := entities.TaskStatusCompleted
	got, err := repo.Update(ctx, task.ID, ports.TaskPatch{Status: &completed, AssignedTo: strPtr("")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Status != entities.TaskStatusCompleted {
		t.Errorf("status = %q", got.Status)
	}
	if got.Description != "keep" || got.Title != "Draft notice" {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if got.AssignedTo != nil {
		t.Errorf("assignedTo = %q, want cleared", *got.AssignedTo)
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Errorf("updatedAt %v before createdAt %v", got.UpdatedAt, got.CreatedAt)
	}

	if _, err := repo.Update(ctx, "missing", ports.TaskPatch{Status: &completed}); !errors.Is(err, entities.ErrTaskNotFound) {
		t.Fatalf("Update missing err = %v", err)
	}
}

func TestTaskRepository_ListFilters(t *testing.T) {
	repo := setupTaskRepository(t)
	ctx := context.Background()

	for _, task := range []*entities.Task{
		{Title: "a", Priority: entities.PriorityHigh, AssignedTo: strPtr("c-1")},
		{Title: "b", Status: entities.TaskStatusCompleted},
		{Title: "c"},
	} {
		if err := repo.Create(ctx, task); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	pending := entities.TaskStatusPending
	got, err := repo.List(ctx, ports.TaskFilter{Status: &pending})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("pending tasks = %d, want 2", len(got))
	}

	got, err = repo.List(ctx, ports.TaskFilter{AssignedTo: strPtr("c-1")})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "a" {
		t.Fatalf("assigned filter returned %+v", got)
	}

	got, err = repo.List(ctx, ports.TaskFilter{Limit: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("limited list = %d, want 1", len(got))
	}
}

func TestTaskRepository_DeleteAll(t *testing.T) {
	repo := setupTaskRepository(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.Create(ctx, &entities.Task{Title: "t"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	deleted, err := repo.DeleteAll(ctx)
	if err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}

	left, err := repo.List(ctx, ports.TaskFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("expected empty collection, got %d", len(left))
	}
}
