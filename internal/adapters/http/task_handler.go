package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService ports.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// CreateTask godoc
// @Summary      Create a task or reset the collection
// @Description  With resetCollection set the request deletes every task and requires an admin token.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        task  body      ports.CreateTaskRequest  true  "Task"
// @Success      201   {object}  entities.ResolvedTask
// @Success      200   {object}  ports.DeleteAllResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := decodeStrict(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	if req.ResetCollection {
		return h.deleteAll(c)
	}
	if err := validate(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, task)
}

// ListTasks godoc
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Param        status      query     string  false  "Pending or Completed"
// @Param        priority    query     string  false  "High, Normal or Low"
// @Param        assignedTo  query     string  false  "Contact ID"
// @Param        limit       query     int     false  "Page size"
// @Param        offset      query     int     false  "Page offset"
// @Success      200         {array}   entities.ResolvedTask
// @Failure      400         {object}  ErrorResponse
// @Router       /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	filter := ports.TaskFilter{AssignedTo: queryString(c, "assignedTo")}

	if v := c.QueryParam("status"); v != "" {
		status := entities.TaskStatus(v)
		if !status.IsValid() {
			return respondError(c, h.logger, fmt.Errorf("%w: unknown status %q", entities.ErrValidation, v))
		}
		filter.Status = &status
	}
	if v := c.QueryParam("priority"); v != "" {
		priority := entities.Priority(v)
		if !priority.IsValid() {
			return respondError(c, h.logger, fmt.Errorf("%w: unknown priority %q", entities.ErrValidation, v))
		}
		filter.Priority = &priority
	}

	var err error
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		return respondError(c, h.logger, err)
	}
	if filter.Offset, err = queryInt(c, "offset"); err != nil {
		return respondError(c, h.logger, err)
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, tasks)
}

// GetTask godoc
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  entities.ResolvedTask
// @Failure      404  {object}  ErrorResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTask godoc
// @Summary      Partially update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "Task ID"
// @Param        task  body      ports.UpdateTaskRequest  true  "Fields to change"
// @Success      200   {object}  entities.ResolvedTask
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	var req ports.UpdateTaskRequest
	if err := bindStrict(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus godoc
// @Summary      Change the status of a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id      path      string                         true  "Task ID"
// @Param        status  body      ports.UpdateTaskStatusRequest  true  "New status"
// @Success      200     {object}  entities.ResolvedTask
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /tasks/{id}/status [patch]
func (h *TaskHandler) UpdateTaskStatus(c echo.Context) error {
	var req ports.UpdateTaskStatusRequest
	if err := bindStrict(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	task, err := h.taskService.UpdateTaskStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  ports.MessageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Task deleted"})
}

// DeleteAllTasks godoc
// @Summary      Delete every task
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  ports.DeleteAllResponse
// @Failure      401  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /tasks [delete]
func (h *TaskHandler) DeleteAllTasks(c echo.Context) error {
	return h.deleteAll(c)
}

func (h *TaskHandler) deleteAll(c echo.Context) error {
	if !isAdmin(c) {
		h.logger.LogSecurityEvent("task_reset_denied", "", c.RealIP(), map[string]interface{}{
			"endpoint": c.Request().URL.Path,
		})
		return respondError(c, h.logger, fmt.Errorf("%w: admin token required", entities.ErrUnauthorized))
	}

	deleted, err := h.taskService.DeleteAllTasks(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, ports.DeleteAllResponse{Message: "All tasks deleted", Deleted: deleted})
}
