package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"Mansoor88-6/time-tracking-api/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStartTimer_SupersedesRunningTimer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.task(t, "taskA", "u1", nil)
	f.task(t, "taskB", "u1", nil)

	e1, err := f.timers.StartTimer(ctx, "u1", "taskA", nil)
	require.NoError(t, err)
	assert.True(t, e1.IsRunning)
	assert.Equal(t, t0, e1.StartTime)
	assert.Nil(t, e1.Duration)
	assert.Nil(t, e1.EndTime)

	f.clock.Advance(125 * time.Second)
	e2, err := f.timers.StartTimer(ctx, "u1", "taskB", ptr("second"))
	require.NoError(t, err)
	assert.True(t, e2.IsRunning)
	assert.Equal(t, t0.Add(125*time.Second), e2.StartTime)
	assert.Equal(t, "second", *e2.Description)

	old, err := f.entries.GetByID(ctx, "u1", e1.ID)
	require.NoError(t, err, "superseded entry is kept")
	assert.False(t, old.IsRunning)
	require.NotNil(t, old.EndTime)
	assert.Equal(t, t0.Add(125*time.Second), *old.EndTime)
	assert.Equal(t, int64(125), *old.Duration)
	assert.Equal(t, 1, f.runningCount(t, "u1"))

	f.clock.Advance(175 * time.Second)
	stopped, err := f.timers.StopTimer(ctx, "u1", e2.ID)
	require.NoError(t, err)
	assert.False(t, stopped.IsRunning)
	assert.Equal(t, int64(175), *stopped.Duration)
	assert.Equal(t, t0.Add(300*time.Second), *stopped.EndTime)
	assert.Equal(t, 0, f.runningCount(t, "u1"))

	summary, err := f.analytics.DashboardSummary(ctx, "u1", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(300), summary.Summary.TotalTimeSpent)
	assert.Equal(t, int64(300), summary.Summary.TrackedTime)
	assert.Zero(t, summary.Summary.LiveTime)
}

func TestStartTimer_TaskOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.task(t, "t1", "u1", nil)

	_, err := f.timers.StartTimer(ctx, "u2", "t1", nil)
	assert.True(t, apperr.IsErrorType(err, apperr.ErrorTypeNotFound))

	_, err = f.timers.StartTimer(ctx, "u1", "missing", nil)
	assert.True(t, apperr.IsErrorType(err, apperr.ErrorTypeNotFound))

	_, err = f.timers.StartTimer(ctx, "u1", "", nil)
	assert.True(t, apperr.IsErrorType(err, apperr.ErrorTypeValidation))

	_, err = f.timers.StartTimer(ctx, "", "t1", nil)
	assert.True(t, apperr.IsErrorType(err, apperr.ErrorTypeUnauthorized))

	assert.Equal(t, 0, f.runningCount(t, "u1"))
	assert.Equal(t, 0, f.runningCount(t, "u2"))
}

func TestStopTimer_IsSingleShot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.task(t, "t1", "u1", nil)

	entry, err := f.timers.StartTimer(ctx, "u1", "t1", nil)
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	_, err = f.timers.StopTimer(ctx, "u1", entry.ID)
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	_, err = f.timers.StopTimer(ctx, "u1", entry.ID)
	assert.True(t, apperr.IsErrorType(err, apperr.ErrorTypeNotFound))

	stored, err := f.entries.GetByID(ctx, "u1", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(60), *stored.Duration, "second stop changes nothing")
}

func TestStopTimer_ForeignOrMissingEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.task(t, "t1", "u1", nil)

	entry, err := f.timers.StartTimer(ctx, "u1", "t1", nil)
	require.NoError(t, err)

	_, err = f.timers.StopTimer(ctx, "u2", entry.ID)
	assert.True(t, apperr.IsErrorType(err, apperr.ErrorTypeNotFound))

	_, err = f.timers.StopTimer(ctx, "u1", "missing")
	assert.True(t, apperr.IsErrorType(err, apperr.ErrorTypeNotFound))

	assert.Equal(t, 1, f.runningCount(t, "u1"))
}

func TestGetActiveTimer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.project(t, "p1", "u1", "Website")
	f.task(t, "t1", "u1", ptr("p1"))

	active, err := f.timers.GetActiveTimer(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, active)

	entry, err := f.timers.StartTimer(ctx, "u1", "t1", nil)
	require.NoError(t, err)

	f.clock.Advance(42 * time.Second)
	active, err = f.timers.GetActiveTimer(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, entry.ID, active.ID)
	require.NotNil(t, active.CurrentDuration)
	assert.Equal(t, int64(42), *active.CurrentDuration)
	assert.Nil(t, active.Duration)
	require.NotNil(t, active.Task)
	assert.Equal(t, "Website", *active.Task.ProjectName)
}

func TestStartTimer_SequenceKeepsOneRunning(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.task(t, "t1", "u1", nil)
	f.task(t, "t2", "u1", nil)

	var last string
	for i := 0; i < 10; i++ {
		taskID := "t1"
		if i%2 == 1 {
			taskID = "t2"
		}
		entry, err := f.timers.StartTimer(ctx, "u1", taskID, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, f.runningCount(t, "u1"))

		if i%3 == 2 {
			_, err = f.timers.StopTimer(ctx, "u1", entry.ID)
			require.NoError(t, err)
			assert.Equal(t, 0, f.runningCount(t, "u1"))
		}
		last = entry.ID
		f.clock.Advance(time.Duration(i+1) * time.Second)
	}
	assert.NotEmpty(t, last)
}

func TestStartTimer_ConcurrentStartsKeepOneRunning(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.task(t, "t1", "u1", nil)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.timers.StartTimer(ctx, "u1", "t1", nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, f.runningCount(t, "u1"))
}

func TestStartTimer_FailedInsertKeepsPreviousTimerRunning(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.task(t, "t1", "u1", nil)
	f.task(t, "t2", "u1", nil)

	first, err := f.timers.StartTimer(ctx, "u1", "t1", nil)
	require.NoError(t, err)

	failing := NewTimerService(&hookedStore{
		TimeEntryStore: f.entries,
		createErr:      apperr.NewInternalError("create time entry", errors.New("disk I/O error")),
	}, f.tasks, f.clock, zap.NewNop())

	f.clock.Advance(time.Minute)
	_, err = failing.StartTimer(ctx, "u1", "t2", nil)
	require.Error(t, err)
	assert.True(t, apperr.IsErrorType(err, apperr.ErrorTypeInternal))

	old, err := f.entries.GetByID(ctx, "u1", first.ID)
	require.NoError(t, err)
	assert.True(t, old.IsRunning, "stop of the previous timer is rolled back")
	assert.Nil(t, old.EndTime)
	assert.Nil(t, old.Duration)
	assert.Equal(t, 1, f.runningCount(t, "u1"))
}
