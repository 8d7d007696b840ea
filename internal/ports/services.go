package ports

import (
	"context"
	"time"

	"github.com/prati1/taskapp/internal/domain/entities"
)

// TaskService interface for task lifecycle operations
type TaskService interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*entities.Task, error)
	GetTask(ctx context.Context, id int) (*entities.Task, error)
	UpdateTask(ctx context.Context, id int, req UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, id int) error
	ListTasks(ctx context.Context) ([]*entities.Task, error)
}

// CreateTaskRequest is the proposal for a new task. Status is not part
// of the proposal; accepted tasks always start as new.
type CreateTaskRequest struct {
	Name        string
	Description *string
	StartDate   *time.Time
	DueDate     time.Time
	Priority    entities.Priority
}

// UpdateTaskRequest is the proposal for mutating an existing task.
// Description and StartDate are optional: nil leaves the stored value
// untouched, which is distinct from supplying an empty value.
type UpdateTaskRequest struct {
	Name        string
	Description *string
	StartDate   *time.Time
	DueDate     time.Time
	Status      entities.TaskStatus
	Priority    entities.Priority
}
