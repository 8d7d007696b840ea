package services

import (
	"context"
	"fmt"
	"time"

	"github.com/prati1/taskapp/internal/domain/entities"
	"github.com/prati1/taskapp/internal/infrastructure/logger"
	"github.com/prati1/taskapp/internal/ports"
)

// highPriorityTaskLimit caps unfinished high-priority tasks sharing a
// calendar due date.
const highPriorityTaskLimit = 100

// TaskService decides admissibility of create and update requests and
// applies the lifecycle mutation rules. All writes run inside a single
// store transaction per request, so the quota check and the insert (or
// the read and the update) see a consistent snapshot.
type TaskService struct {
	taskRepo ports.TaskRepository
	holidays ports.HolidayCalendar
	logger   *logger.Logger
	now      func() time.Time
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, holidays ports.HolidayCalendar, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		holidays: holidays,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateTask validates and persists a new task. The due date must not
// be in the past, on a weekend, or on a holiday, and high-priority
// tasks must not exceed the per-due-date quota. Accepted tasks always
// start as new; the store assigns the id.
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	now := s.now()

	if calendarDay(req.DueDate).Before(calendarDay(now)) {
		return nil, entities.ErrPastDueDate
	}
	if err := s.checkDueDatePlacement(req.DueDate); err != nil {
		return nil, err
	}

	task := &entities.Task{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Status:      entities.TaskStatusNew,
		Priority:    req.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Priority == "" {
		task.Priority = entities.PriorityMedium
	}

	tx, err := s.taskRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if task.Priority == entities.PriorityHigh {
		count, err := tx.CountHighPriorityUnfinished(ctx, task.DueDate)
		if err != nil {
			return nil, fmt.Errorf("count high priority tasks: %w", err)
		}
		if count >= highPriorityTaskLimit {
			return nil, entities.ErrHighPriorityLimit
		}
	}

	if err := tx.Add(ctx, task); err != nil {
		return nil, fmt.Errorf("add task: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit task creation: %w", err)
	}

	s.logger.Infow("Task created", "task_id", task.ID, "name", task.Name, "due_date", task.DueDate)

	return task, nil
}

// UpdateTask validates and applies a proposed mutation to an existing
// task. The due-date placement check always runs, even when the due
// date did not change. The quota check runs only when the priority is
// changing and the proposed status is not finished; finishing a task
// never competes for a quota slot. The past-due check from creation is
// deliberately not re-applied here.
func (s *TaskService) UpdateTask(ctx context.Context, id int, req ports.UpdateTaskRequest) (*entities.Task, error) {
	tx, err := s.taskRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := tx.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkDueDatePlacement(req.DueDate); err != nil {
		return nil, err
	}

	if existing.Priority != req.Priority && req.Status != entities.TaskStatusFinished {
		count, err := tx.CountHighPriorityUnfinished(ctx, req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("count high priority tasks: %w", err)
		}
		if count >= highPriorityTaskLimit {
			return nil, entities.ErrHighPriorityLimit
		}
	}

	existing.ApplyUpdate(entities.TaskUpdate{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Status:      req.Status,
		Priority:    req.Priority,
	}, s.now())

	if err := tx.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit task update: %w", err)
	}

	s.logger.Infow("Task updated", "task_id", existing.ID, "status", existing.Status)

	return existing, nil
}

// DeleteTask removes a task by identity. No validator rules apply.
func (s *TaskService) DeleteTask(ctx context.Context, id int) error {
	tx, err := s.taskRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := tx.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := tx.Remove(ctx, existing); err != nil {
		return fmt.Errorf("remove task: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit task deletion: %w", err)
	}

	s.logger.Infow("Task deleted", "task_id", id)

	return nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id int) (*entities.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

// ListTasks retrieves all tasks
func (s *TaskService) ListTasks(ctx context.Context) ([]*entities.Task, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// checkDueDatePlacement rejects due dates landing on a weekend or a
// recognized holiday.
func (s *TaskService) checkDueDatePlacement(dueDate time.Time) error {
	switch dueDate.Weekday() {
	case time.Saturday, time.Sunday:
		return entities.ErrWeekendDueDate
	}
	if s.holidays.IsHoliday(dueDate) {
		return entities.ErrHolidayDueDate
	}
	return nil
}

// calendarDay strips the time-of-day component.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
