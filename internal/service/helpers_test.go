package service

import (
	"context"
	"testing"
	"time"

	"Mansoor88-6/time-tracking-api/internal/clock"
	"Mansoor88-6/time-tracking-api/internal/database"
	"Mansoor88-6/time-tracking-api/internal/models"
	"Mansoor88-6/time-tracking-api/internal/repository"
	"Mansoor88-6/time-tracking-api/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var t0 = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	entries   *repository.TimeEntryRepository
	tasks     *repository.TaskRepository
	clock     *clock.FakeClock
	timers    *TimerService
	manual    *TimeEntryService
	analytics *AnalyticsService
	reconcile *ReconcileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.NewMemory(zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	entries := repository.NewTimeEntryRepository(db)
	tasks := repository.NewTaskRepository(db)
	clk := clock.Fake(t0)
	logger := zap.NewNop()

	return &fixture{
		entries:   entries,
		tasks:     tasks,
		clock:     clk,
		timers:    NewTimerService(entries, tasks, clk, logger),
		manual:    NewTimeEntryService(entries, tasks, clk, logger),
		analytics: NewAnalyticsService(entries, tasks, clk, time.UTC, 30, logger),
		reconcile: NewReconcileService(entries, clk, 2, logger),
	}
}

func (f *fixture) project(t *testing.T, id, userID, name string) {
	t.Helper()
	require.NoError(t, f.tasks.CreateProject(context.Background(), &models.Project{
		ID: id, UserID: userID, Name: name, CreatedAt: t0,
	}))
}

func (f *fixture) task(t *testing.T, id, userID string, projectID *string) {
	t.Helper()
	require.NoError(t, f.tasks.CreateTask(context.Background(), &models.Task{
		ID: id, UserID: userID, ProjectID: projectID, Title: "Task " + id, CreatedAt: t0,
	}))
}

// entry records a closed manual entry of seconds starting at start.
func (f *fixture) entry(t *testing.T, userID, taskID string, start time.Time, seconds int64) *models.TimeEntry {
	t.Helper()
	end := start.Add(time.Duration(seconds) * time.Second)
	created, err := f.manual.CreateTimeEntry(context.Background(), userID, &models.CreateTimeEntryRequest{
		TaskID: taskID, StartTime: &start, EndTime: &end,
	})
	require.NoError(t, err)
	return created
}

func (f *fixture) runningCount(t *testing.T, userID string) int {
	t.Helper()
	page, _, err := f.entries.List(context.Background(), models.TimeEntryFilter{UserID: userID, Page: 1, Limit: models.MaxLimit})
	require.NoError(t, err)
	n := 0
	for _, e := range page {
		if e.IsRunning {
			n++
		}
	}
	return n
}

func ptr[T any](v T) *T { return &v }

// hookedStore wraps a TimeEntryStore, including the stores handed to
// RunInTx callbacks, to inject behavior between store calls.
type hookedStore struct {
	store.TimeEntryStore
	afterGet  func(entry *models.TimeEntry)
	createErr error
}

func (h *hookedStore) GetByID(ctx context.Context, userID, id string) (*models.TimeEntry, error) {
	entry, err := h.TimeEntryStore.GetByID(ctx, userID, id)
	if err == nil && h.afterGet != nil {
		h.afterGet(entry)
	}
	return entry, err
}

func (h *hookedStore) Create(ctx context.Context, entry *models.TimeEntry) error {
	if h.createErr != nil {
		return h.createErr
	}
	return h.TimeEntryStore.Create(ctx, entry)
}

func (h *hookedStore) RunInTx(ctx context.Context, fn func(tx store.TimeEntryStore) error) error {
	return h.TimeEntryStore.RunInTx(ctx, func(tx store.TimeEntryStore) error {
		return fn(&hookedStore{TimeEntryStore: tx, afterGet: h.afterGet, createErr: h.createErr})
	})
}
