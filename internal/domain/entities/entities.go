package entities

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrPastDueDate       = errors.New("Due date cannot be in the past.")
	ErrWeekendDueDate    = errors.New("Due date cannot fall on a weekend.")
	ErrHolidayDueDate    = errors.New("Due date cannot be on a holiday.")
	ErrHighPriorityLimit = errors.New("Cannot add task. High priority task limit exceeded for the given due date.")
)

type TaskStatus string

const (
	TaskStatusNew        TaskStatus = "new"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusFinished   TaskStatus = "finished"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task represents a tracked unit of work
type Task struct {
	ID          int        `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description" db:"description"`
	StartDate   *time.Time `json:"start_date" db:"start_date"`
	DueDate     time.Time  `json:"due_date" db:"due_date"`
	Status      TaskStatus `json:"status" db:"status"`
	Priority    Priority   `json:"priority" db:"priority"`
	EndDate     *time.Time `json:"end_date" db:"end_date"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// TaskUpdate carries a proposed set of field values for an update.
// Nil Description/StartDate mean "leave unchanged", not "clear".
type TaskUpdate struct {
	Name        string
	Description *string
	StartDate   *time.Time
	DueDate     time.Time
	Status      TaskStatus
	Priority    Priority
}

// ApplyUpdate mutates the task with the proposed field values. Derived
// side effects are evaluated against the task's state before the update:
// the first transition into finished stamps EndDate, and moving a new
// task into in_progress without an explicit start date stamps StartDate.
// EndDate is never cleared or overwritten once set.
func (t *Task) ApplyUpdate(upd TaskUpdate, now time.Time) {
	t.Name = upd.Name
	t.DueDate = upd.DueDate
	t.Priority = upd.Priority

	if upd.Description != nil {
		t.Description = upd.Description
	}
	if upd.StartDate != nil {
		t.StartDate = upd.StartDate
	}

	if upd.Status == TaskStatusFinished && t.Status != TaskStatusFinished && t.EndDate == nil {
		end := now
		t.EndDate = &end
	}
	if upd.StartDate == nil && upd.Status == TaskStatusInProgress && t.Status == TaskStatusNew {
		start := now
		t.StartDate = &start
	}

	t.Status = upd.Status
	t.UpdatedAt = now
}

// IsFinished reports whether the task has reached its terminal status.
func (t *Task) IsFinished() bool {
	return t.Status == TaskStatusFinished
}

// IsOverdue reports whether the task's due date has passed without it finishing.
func (t *Task) IsOverdue() bool {
	return time.Now().After(t.DueDate) && t.Status != TaskStatusFinished
}

func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusNew, TaskStatusInProgress, TaskStatusFinished:
		return true
	default:
		return false
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}
