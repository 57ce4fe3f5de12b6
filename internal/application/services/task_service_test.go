package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
)

func TestTaskService_CreateDefaultsAndResolves(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	c1, err := svc.contacts.CreateContact(ctx, ports.CreateContactRequest{Name: "Asha", Email: "asha@example.com", Phone: "1"})
	if err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}

	task, err := svc.tasks.CreateTask(ctx, ports.CreateTaskRequest{Title: "Draft notice", AssignedTo: c1.ID})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.Status != entities.TaskStatusPending || task.Priority != entities.PriorityNormal {
		t.Fatalf("defaults not applied: %+v", task)
	}
	if task.AssignedTo == nil || !task.AssignedTo.Resolved || task.AssignedTo.Name != "Asha" {
		t.Fatalf("assignedTo not resolved: %+v", task.AssignedTo)
	}
	if task.AssignedBy != nil {
		t.Fatalf("assignedBy = %+v, want nil", task.AssignedBy)
	}

	body, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `"assignedTo":{"id":"` + c1.ID + `","name":"Asha"}`
	if !strings.Contains(string(body), want) {
		t.Fatalf("json %s does not contain %s", body, want)
	}
}

func TestTaskService_DanglingReferenceStaysRawID(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	c1, err := svc.contacts.CreateContact(ctx, ports.CreateContactRequest{Name: "Asha", Email: "asha@example.com", Phone: "1"})
	if err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}
	task, err := svc.tasks.CreateTask(ctx, ports.CreateTaskRequest{Title: "t", AssignedTo: c1.ID})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if err := svc.contacts.DeleteContact(ctx, c1.ID); err != nil {
		t.Fatalf("DeleteContact failed: %v", err)
	}

	got, err := svc.tasks.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.AssignedTo == nil || got.AssignedTo.Resolved || got.AssignedTo.ID != c1.ID {
		t.Fatalf("assignedTo = %+v, want unresolved raw id", got.AssignedTo)
	}

	body, _ := json.Marshal(got)
	if !strings.Contains(string(body), `"assignedTo":"`+c1.ID+`"`) {
		t.Fatalf("dangling reference should render as raw id: %s", body)
	}
}

func TestTaskService_UpdateStatusIdempotent(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	task, err := svc.tasks.CreateTask(ctx, ports.CreateTaskRequest{Title: "t"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		got, err := svc.tasks.UpdateTaskStatus(ctx, task.ID, entities.TaskStatusCompleted)
		if err != nil {
			t.Fatalf("UpdateTaskStatus #%d failed: %v", i+1, err)
		}
		if got.Status != entities.TaskStatusCompleted {
			t.Fatalf("status = %q", got.Status)
		}
	}

	if _, err := svc.tasks.UpdateTaskStatus(ctx, "missing", entities.TaskStatusCompleted); !errors.Is(err, entities.ErrTaskNotFound) {
		t.Fatalf("missing task err = %v", err)
	}
	if _, err := svc.tasks.UpdateTaskStatus(ctx, task.ID, "Done"); !errors.Is(err, entities.ErrValidation) {
		t.Fatalf("invalid status err = %v", err)
	}
}

func TestTaskService_CompletionIsLogged(t *testing.T) {
	core, observed := observer.New(zap.InfoLevel)
	svc := newTestServicesWithLogger(t, logger.NewFromZap(zap.New(core)))
	ctx := context.Background()

	task, err := svc.tasks.CreateTask(ctx, ports.CreateTaskRequest{Title: "File reply"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if _, err := svc.tasks.UpdateTaskStatus(ctx, task.ID, entities.TaskStatusPending); err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}
	if n := observed.FilterMessage("Task completed").Len(); n != 0 {
		t.Fatalf("pending task logged as completed %d times", n)
	}

	if _, err := svc.tasks.UpdateTaskStatus(ctx, task.ID, entities.TaskStatusCompleted); err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}
	entries := observed.FilterMessage("Task completed").All()
	if len(entries) != 1 || entries[0].ContextMap()["task_id"] != task.ID {
		t.Fatalf("expected one completion entry for %s, got %v", task.ID, entries)
	}
}

func TestTaskService_UpdatePartial(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	task, err := svc.tasks.CreateTask(ctx, ports.CreateTaskRequest{Title: "t", Description: "d", Priority: entities.PriorityHigh})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	got, err := svc.tasks.UpdateTask(ctx, task.ID, ports.UpdateTaskRequest{Title: strPtr("renamed")})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if got.Title != "renamed" || got.Description != "d" || got.Priority != entities.PriorityHigh {
		t.Fatalf("unexpected task after update: %+v", got)
	}

	if _, err := svc.tasks.UpdateTask(ctx, task.ID, ports.UpdateTaskRequest{Title: strPtr("")}); !errors.Is(err, entities.ErrValidation) {
		t.Fatalf("empty title err = %v", err)
	}

	unchanged, err := svc.tasks.UpdateTask(ctx, task.ID, ports.UpdateTaskRequest{})
	if err != nil || unchanged.Title != "renamed" {
		t.Fatalf("empty update = %+v, %v", unchanged, err)
	}
}

func TestTaskService_DeleteAll(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.tasks.CreateTask(ctx, ports.CreateTaskRequest{Title: "t"}); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}
	deleted, err := svc.tasks.DeleteAllTasks(ctx)
	if err != nil || deleted != 2 {
		t.Fatalf("DeleteAllTasks = %d, %v", deleted, err)
	}
	tasks, err := svc.tasks.ListTasks(ctx, ports.TaskFilter{})
	if err != nil || len(tasks) != 0 {
		t.Fatalf("ListTasks after reset = %d, %v", len(tasks), err)
	}
}
