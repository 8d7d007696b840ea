package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prati1/taskapp/internal/domain/entities"
	"github.com/prati1/taskapp/internal/infrastructure/logger"
	"github.com/prati1/taskapp/internal/ports"
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

// CreateTaskRequest is the create payload
type CreateTaskRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	DueDate     time.Time  `json:"due_date" validate:"required"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// UpdateTaskRequest is the update payload. Omitted description and
// start_date leave the stored values untouched.
type UpdateTaskRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	DueDate     time.Time  `json:"due_date" validate:"required"`
	Status      string     `json:"status" validate:"required,oneof=new in_progress finished"`
	Priority    string     `json:"priority" validate:"required,oneof=low medium high"`
}

// CreateTask handles task creation
// @Summary Create a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param task body CreateTaskRequest true "Task to create"
// @Success 201 {object} entities.Task
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), ports.CreateTaskRequest{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Priority:    entities.Priority(req.Priority),
	})
	if err != nil {
		h.logger.Errorw("Create task failed", "error", err)
		return taskError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

// GetTask handles getting a task by ID
// @Summary Get a task
// @Tags Tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} entities.Task
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return taskError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTask handles updating a task
// @Summary Update a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param task body UpdateTaskRequest true "Proposed task state"
// @Success 200 {object} entities.Task
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), id, ports.UpdateTaskRequest{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Status:      entities.TaskStatus(req.Status),
		Priority:    entities.Priority(req.Priority),
	})
	if err != nil {
		h.logger.Errorw("Update task failed", "error", err, "task_id", id)
		return taskError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask handles deleting a task
// @Summary Delete a task
// @Tags Tasks
// @Param id path int true "Task ID"
// @Success 204
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		h.logger.Errorw("Delete task failed", "error", err, "task_id", id)
		return taskError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListTasks handles listing all tasks
// @Summary List tasks
// @Tags Tasks
// @Produce json
// @Success 200 {array} entities.Task
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List tasks failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve tasks")
	}

	return c.JSON(http.StatusOK, tasks)
}

func taskID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}
	return id, nil
}

// taskError translates the service's error kinds into HTTP responses.
func taskError(err error) error {
	switch {
	case errors.Is(err, entities.ErrTaskNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrHighPriorityLimit):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, entities.ErrPastDueDate),
		errors.Is(err, entities.ErrWeekendDueDate),
		errors.Is(err, entities.ErrHolidayDueDate):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
