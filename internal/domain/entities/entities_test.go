package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func baseTask() Task {
	return Task{
		ID:          1,
		Name:        "Original",
		Description: strPtr("original description"),
		StartDate:   timePtr(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
		DueDate:     time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		Status:      TaskStatusNew,
		Priority:    PriorityMedium,
	}
}

func baseUpdate(t Task) TaskUpdate {
	return TaskUpdate{
		Name:     t.Name,
		DueDate:  t.DueDate,
		Status:   t.Status,
		Priority: t.Priority,
	}
}

func TestTask_ApplyUpdate_OverwritesMandatoryFields(t *testing.T) {
	task := baseTask()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	upd := baseUpdate(task)
	upd.Name = "Renamed"
	upd.DueDate = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	upd.Priority = PriorityHigh
	task.ApplyUpdate(upd, now)

	assert.Equal(t, "Renamed", task.Name)
	assert.True(t, task.DueDate.Equal(upd.DueDate))
	assert.Equal(t, PriorityHigh, task.Priority)
	assert.True(t, task.UpdatedAt.Equal(now))
}

func TestTask_ApplyUpdate_PreservesOmittedOptionalFields(t *testing.T) {
	task := baseTask()
	now := time.Now()

	task.ApplyUpdate(baseUpdate(task), now)

	require.NotNil(t, task.Description)
	assert.Equal(t, "original description", *task.Description)
	require.NotNil(t, task.StartDate)
	assert.True(t, task.StartDate.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)))
}

func TestTask_ApplyUpdate_OverwritesSuppliedOptionalFields(t *testing.T) {
	task := baseTask()
	now := time.Now()

	newStart := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)
	upd := baseUpdate(task)
	upd.Description = strPtr("")
	upd.StartDate = timePtr(newStart)
	task.ApplyUpdate(upd, now)

	// Supplied-as-empty is distinct from omitted.
	require.NotNil(t, task.Description)
	assert.Equal(t, "", *task.Description)
	require.NotNil(t, task.StartDate)
	assert.True(t, task.StartDate.Equal(newStart))
}

func TestTask_ApplyUpdate_StampsEndDateOnFirstFinish(t *testing.T) {
	task := baseTask()
	now := time.Date(2026, 3, 4, 17, 0, 0, 0, time.UTC)

	upd := baseUpdate(task)
	upd.Status = TaskStatusFinished
	task.ApplyUpdate(upd, now)

	require.NotNil(t, task.EndDate)
	assert.True(t, task.EndDate.Equal(now))
	assert.Equal(t, TaskStatusFinished, task.Status)
}

func TestTask_ApplyUpdate_EndDateIsNeverRewritten(t *testing.T) {
	task := baseTask()
	t1 := time.Date(2026, 3, 4, 17, 0, 0, 0, time.UTC)

	upd := baseUpdate(task)
	upd.Status = TaskStatusFinished
	task.ApplyUpdate(upd, t1)
	require.NotNil(t, task.EndDate)

	// Away from finished and back again, later.
	upd.Status = TaskStatusInProgress
	task.ApplyUpdate(upd, t1.Add(24*time.Hour))
	require.NotNil(t, task.EndDate)
	assert.True(t, task.EndDate.Equal(t1))

	upd.Status = TaskStatusFinished
	task.ApplyUpdate(upd, t1.Add(48*time.Hour))
	assert.True(t, task.EndDate.Equal(t1))
}

func TestTask_ApplyUpdate_AutoStart(t *testing.T) {
	task := baseTask()
	task.StartDate = nil
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	upd := baseUpdate(task)
	upd.Status = TaskStatusInProgress
	task.ApplyUpdate(upd, now)

	require.NotNil(t, task.StartDate)
	assert.True(t, task.StartDate.Equal(now))
}

func TestTask_ApplyUpdate_NoAutoStartFromInProgress(t *testing.T) {
	task := baseTask()
	task.StartDate = nil
	task.Status = TaskStatusInProgress
	now := time.Now()

	upd := baseUpdate(task)
	upd.Status = TaskStatusInProgress
	task.ApplyUpdate(upd, now)

	assert.Nil(t, task.StartDate)
}

func TestTask_ApplyUpdate_StatusHasNoTransitionGraph(t *testing.T) {
	task := baseTask()
	now := time.Now()

	// Any status may follow any other.
	for _, status := range []TaskStatus{TaskStatusFinished, TaskStatusNew, TaskStatusInProgress, TaskStatusNew} {
		upd := baseUpdate(task)
		upd.Status = status
		task.ApplyUpdate(upd, now)
		assert.Equal(t, status, task.Status)
	}
}

func TestTaskStatus_IsValid(t *testing.T) {
	assert.True(t, TaskStatusNew.IsValid())
	assert.True(t, TaskStatusInProgress.IsValid())
	assert.True(t, TaskStatusFinished.IsValid())
	assert.False(t, TaskStatus("cancelled").IsValid())
}

func TestPriority_IsValid(t *testing.T) {
	assert.True(t, PriorityLow.IsValid())
	assert.True(t, PriorityMedium.IsValid())
	assert.True(t, PriorityHigh.IsValid())
	assert.False(t, Priority("critical").IsValid())
}
