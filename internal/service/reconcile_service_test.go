package service

import (
	"context"
	"testing"
	"time"

	"Mansoor88-6/time-tracking-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep_RepairsBrokenEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.task(t, "t1", "u1", nil)
	f.task(t, "t2", "u2", nil)

	healthy := f.entry(t, "u1", "t1", t0.Add(-5*time.Hour), 60)

	// three closed rows without a duration, more than one batch
	var broken []string
	for i := 0; i < 3; i++ {
		start := t0.Add(-time.Duration(i+1) * time.Hour)
		end := start.Add(15 * time.Minute)
		e := &models.TimeEntry{
			ID: "broken" + string(rune('a'+i)), UserID: "u1", TaskID: "t1",
			StartTime: start, EndTime: &end, CreatedAt: start, UpdatedAt: start,
		}
		require.NoError(t, f.entries.Create(ctx, e))
		broken = append(broken, e.ID)
	}

	// a row still flagged running although its end was written
	orphanEnd := t0.Add(-30 * time.Minute)
	require.NoError(t, f.entries.Create(ctx, &models.TimeEntry{
		ID: "orphan", UserID: "u2", TaskID: "t2", StartTime: t0.Add(-time.Hour), EndTime: &orphanEnd,
		IsRunning: true, CreatedAt: t0, UpdatedAt: t0,
	}))

	repaired, err := f.reconcile.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, repaired)

	for _, id := range broken {
		e, err := f.entries.GetByID(ctx, "u1", id)
		require.NoError(t, err)
		require.NotNil(t, e.Duration)
		assert.Equal(t, int64(900), *e.Duration)
		assert.Equal(t, int64(e.EndTime.Sub(e.StartTime)/time.Second), *e.Duration)
	}

	orphan, err := f.entries.GetByID(ctx, "u2", "orphan")
	require.NoError(t, err)
	assert.False(t, orphan.IsRunning)
	assert.Equal(t, int64(1800), *orphan.Duration)

	untouched, err := f.entries.GetByID(ctx, "u1", healthy.ID)
	require.NoError(t, err)
	assert.Equal(t, healthy.UpdatedAt, untouched.UpdatedAt)

	repaired, err = f.reconcile.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, repaired)
}

func TestSweep_LeavesRunningTimersAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.task(t, "t1", "u1", nil)

	running, err := f.timers.StartTimer(ctx, "u1", "t1", nil)
	require.NoError(t, err)

	repaired, err := f.reconcile.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, repaired)

	active, err := f.timers.GetActiveTimer(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, running.ID, active.ID)
}
