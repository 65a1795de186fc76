package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (c *countingSweeper) Sweep(ctx context.Context) (int, error) {
	c.calls.Add(1)
	return 0, c.err
}

func TestReconcileScheduler_SweepsOnStartAndTick(t *testing.T) {
	sweeper := &countingSweeper{}
	s := NewReconcileScheduler(sweeper, 10*time.Millisecond, zap.NewNop())

	s.Start(context.Background())
	s.Start(context.Background())

	assert.Eventually(t, func() bool { return sweeper.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	s.Stop()
	s.Stop()

	after := sweeper.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, sweeper.calls.Load(), "no sweeps after Stop")
}

func TestReconcileScheduler_KeepsRunningAfterError(t *testing.T) {
	sweeper := &countingSweeper{err: errors.New("database is locked")}
	s := NewReconcileScheduler(sweeper, 10*time.Millisecond, zap.NewNop())

	s.Start(context.Background())
	defer s.Stop()

	assert.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestReconcileScheduler_StopsWithContext(t *testing.T) {
	sweeper := &countingSweeper{}
	s := NewReconcileScheduler(sweeper, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	assert.Eventually(t, func() bool { return sweeper.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}
