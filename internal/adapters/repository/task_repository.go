package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/prati1/taskapp/internal/domain/entities"
	"github.com/prati1/taskapp/internal/ports"
)

// TaskRepositoryImpl implements the TaskRepository interface against
// Postgres.
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) List(ctx context.Context) ([]*entities.Task, error) {
	query := `
		SELECT id, name, description, start_date, due_date, status, priority, end_date, created_at, updated_at
		FROM tasks
		ORDER BY id`

	var tasks []*entities.Task
	if err := r.db.SelectContext(ctx, &tasks, query); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.Task, error) {
	return getTaskByID(ctx, r.db, id, false)
}

func (r *TaskRepositoryImpl) CountHighPriorityUnfinished(ctx context.Context, dueDate time.Time) (int, error) {
	return countHighPriorityUnfinished(ctx, r.db, dueDate)
}

// Begin opens a serializable transaction. Serializable isolation closes
// the count-then-insert race on the high-priority quota: two concurrent
// units of work for the same due date cannot both observe the old count
// and both commit.
func (r *TaskRepositoryImpl) Begin(ctx context.Context) (ports.TaskTx, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &taskTx{tx: tx}, nil
}

// taskTx is a unit of work backed by a sqlx transaction.
type taskTx struct {
	tx *sqlx.Tx
}

func (t *taskTx) GetByID(ctx context.Context, id int) (*entities.Task, error) {
	// Row lock keeps concurrent updates and deletes of the same task
	// mutually exclusive.
	return getTaskByID(ctx, t.tx, id, true)
}

func (t *taskTx) CountHighPriorityUnfinished(ctx context.Context, dueDate time.Time) (int, error) {
	return countHighPriorityUnfinished(ctx, t.tx, dueDate)
}

func (t *taskTx) Add(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (name, description, start_date, due_date, status, priority, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := t.tx.QueryRowContext(ctx, query,
		task.Name, task.Description, task.StartDate, task.DueDate,
		task.Status, task.Priority, task.EndDate, task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}

	return nil
}

func (t *taskTx) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET name = $2, description = $3, start_date = $4, due_date = $5,
			status = $6, priority = $7, end_date = $8, updated_at = $9
		WHERE id = $1`

	result, err := t.tx.ExecContext(ctx, query,
		task.ID, task.Name, task.Description, task.StartDate, task.DueDate,
		task.Status, task.Priority, task.EndDate, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if rows == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (t *taskTx) Remove(ctx context.Context, task *entities.Task) error {
	result, err := t.tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, task.ID)
	if err != nil {
		return fmt.Errorf("remove task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove task: %w", err)
	}
	if rows == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (t *taskTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (t *taskTx) Rollback() error {
	return t.tx.Rollback()
}

// queryer covers both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func getTaskByID(ctx context.Context, q queryer, id int, forUpdate bool) (*entities.Task, error) {
	query := `
		SELECT id, name, description, start_date, due_date, status, priority, end_date, created_at, updated_at
		FROM tasks
		WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var task entities.Task
	err := q.GetContext(ctx, &task, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	return &task, nil
}

func countHighPriorityUnfinished(ctx context.Context, q queryer, dueDate time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM tasks
		WHERE priority = $1 AND status <> $2 AND due_date::date = $3::date`

	var count int
	err := q.GetContext(ctx, &count, query, entities.PriorityHigh, entities.TaskStatusFinished, dueDate)
	if err != nil {
		return 0, fmt.Errorf("count high priority tasks: %w", err)
	}

	return count, nil
}
