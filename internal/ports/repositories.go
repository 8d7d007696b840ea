package ports

import (
	"context"
	"time"

	"github.com/prati1/taskapp/internal/domain/entities"
)

// TaskRepository defines the interface for task data operations.
// Reads outside a unit of work hit the store directly; all writes go
// through a TaskTx so that check-and-write sequences stay atomic.
type TaskRepository interface {
	List(ctx context.Context) ([]*entities.Task, error)
	GetByID(ctx context.Context, id int) (*entities.Task, error)
	CountHighPriorityUnfinished(ctx context.Context, dueDate time.Time) (int, error)
	Begin(ctx context.Context) (TaskTx, error)
}

// TaskTx is a unit of work against the task store. Implementations must
// give the read-validate-write sequence a consistent snapshot: two
// transactions racing on the same due-date quota or the same task id
// must not both commit conflicting writes. Commit durably applies the
// staged writes; the accept path of a request calls it exactly once.
type TaskTx interface {
	GetByID(ctx context.Context, id int) (*entities.Task, error)
	CountHighPriorityUnfinished(ctx context.Context, dueDate time.Time) (int, error)
	Add(ctx context.Context, task *entities.Task) error
	Update(ctx context.Context, task *entities.Task) error
	Remove(ctx context.Context, task *entities.Task) error
	Commit() error
	Rollback() error
}

// HolidayCalendar answers whether a calendar date is a recognized
// holiday. Time-of-day is ignored.
type HolidayCalendar interface {
	IsHoliday(date time.Time) bool
}
