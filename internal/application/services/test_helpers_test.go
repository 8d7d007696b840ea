package services

import (
	"context"
	"sync"
	"time"

	"github.com/prati1/taskapp/internal/domain/entities"
	"github.com/prati1/taskapp/internal/infrastructure/logger"
	"github.com/prati1/taskapp/internal/ports"
)

// fakeStore is an in-memory TaskRepository. Begin takes an exclusive
// lock held until Commit or Rollback, mirroring the serializable
// isolation of the Postgres adapter, so concurrent units of work
// observe each other's committed writes.
type fakeStore struct {
	mu         sync.Mutex
	tasks      map[int]*entities.Task
	nextID     int
	commits    int
	countCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tasks:  make(map[int]*entities.Task),
		nextID: 1,
	}
}

func (s *fakeStore) seed(task entities.Task) *entities.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if task.ID == 0 {
		task.ID = s.nextID
		s.nextID++
	} else if task.ID >= s.nextID {
		s.nextID = task.ID + 1
	}
	stored := task
	s.tasks[stored.ID] = &stored
	return &stored
}

func (s *fakeStore) List(ctx context.Context) ([]*entities.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := make([]*entities.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		clone := *t
		tasks = append(tasks, &clone)
	}
	return tasks, nil
}

func (s *fakeStore) GetByID(ctx context.Context, id int) (*entities.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(id)
}

func (s *fakeStore) CountHighPriorityUnfinished(ctx context.Context, dueDate time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLocked(dueDate), nil
}

func (s *fakeStore) Begin(ctx context.Context) (ports.TaskTx, error) {
	s.mu.Lock()
	return &fakeTx{store: s}, nil
}

func (s *fakeStore) getLocked(id int) (*entities.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (s *fakeStore) countLocked(dueDate time.Time) int {
	s.countCalls++
	count := 0
	for _, t := range s.tasks {
		if t.Priority == entities.PriorityHigh &&
			t.Status != entities.TaskStatusFinished &&
			sameDay(t.DueDate, dueDate) {
			count++
		}
	}
	return count
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// fakeTx applies writes directly to the locked store. Rejected requests
// roll back before any write, so no undo log is needed here.
type fakeTx struct {
	store *fakeStore
	done  bool
}

func (t *fakeTx) GetByID(ctx context.Context, id int) (*entities.Task, error) {
	return t.store.getLocked(id)
}

func (t *fakeTx) CountHighPriorityUnfinished(ctx context.Context, dueDate time.Time) (int, error) {
	return t.store.countLocked(dueDate), nil
}

func (t *fakeTx) Add(ctx context.Context, task *entities.Task) error {
	task.ID = t.store.nextID
	t.store.nextID++
	clone := *task
	t.store.tasks[task.ID] = &clone
	return nil
}

func (t *fakeTx) Update(ctx context.Context, task *entities.Task) error {
	if _, ok := t.store.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}
	clone := *task
	t.store.tasks[task.ID] = &clone
	return nil
}

func (t *fakeTx) Remove(ctx context.Context, task *entities.Task) error {
	if _, ok := t.store.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(t.store.tasks, task.ID)
	return nil
}

func (t *fakeTx) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.commits++
	t.store.mu.Unlock()
	return nil
}

func (t *fakeTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

// stubCalendar marks an explicit set of days as holidays.
type stubCalendar struct {
	holidays map[string]bool
}

func newStubCalendar(dates ...time.Time) *stubCalendar {
	holidays := make(map[string]bool, len(dates))
	for _, d := range dates {
		holidays[d.Format("2006-01-02")] = true
	}
	return &stubCalendar{holidays: holidays}
}

func (c *stubCalendar) IsHoliday(date time.Time) bool {
	return c.holidays[date.Format("2006-01-02")]
}

func newTestService(store *fakeStore, calendar ports.HolidayCalendar) *TaskService {
	return NewTaskService(store, calendar, logger.NewNop())
}

// nextWeekday returns a future date at least daysAhead out that is
// neither Saturday nor Sunday.
func nextWeekday(daysAhead int) time.Time {
	date := time.Now().AddDate(0, 0, daysAhead)
	for date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		date = date.AddDate(0, 0, 1)
	}
	return date
}

// nextSaturday returns the next upcoming Saturday.
func nextSaturday() time.Time {
	date := time.Now().AddDate(0, 0, 1)
	for date.Weekday() != time.Saturday {
		date = date.AddDate(0, 0, 1)
	}
	return date
}

// previousWeekday returns a past date that is neither Saturday nor Sunday.
func previousWeekday() time.Time {
	date := time.Now().AddDate(0, 0, -1)
	for date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		date = date.AddDate(0, 0, -1)
	}
	return date
}
