package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sweeper repairs entries and reports how many it fixed.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// ReconcileScheduler runs a Sweeper on a fixed interval until stopped.
type ReconcileScheduler struct {
	sweeper  Sweeper
	interval time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	ticker   *time.Ticker
	cancel   context.CancelFunc
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewReconcileScheduler(sweeper Sweeper, interval time.Duration, logger *zap.Logger) *ReconcileScheduler {
	return &ReconcileScheduler{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger,
	}
}

// Start sweeps once immediately and then on every tick. Calling Start
// on a running scheduler does nothing.
func (s *ReconcileScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopChan != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.stopChan = make(chan struct{})
	s.ticker = time.NewTicker(s.interval)

	s.wg.Add(1)
	go s.loop(ctx, s.ticker, s.stopChan)

	s.logger.Info("Reconcile scheduler started", zap.Duration("interval", s.interval))
}

// Stop waits for an in-flight sweep to finish. It is safe to call more
// than once.
func (s *ReconcileScheduler) Stop() {
	s.mu.Lock()
	if s.stopChan == nil {
		s.mu.Unlock()
		return
	}
	close(s.stopChan)
	s.cancel()
	s.ticker.Stop()
	s.stopChan = nil
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("Reconcile scheduler stopped")
}

func (s *ReconcileScheduler) loop(ctx context.Context, ticker *time.Ticker, stop <-chan struct{}) {
	defer s.wg.Done()

	s.run(ctx)
	for {
		select {
		case <-ticker.C:
			s.run(ctx)
		case <-stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *ReconcileScheduler) run(ctx context.Context) {
	repaired, err := s.sweeper.Sweep(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error("Reconcile sweep failed", zap.Error(err))
		}
		return
	}
	s.logger.Debug("Reconcile sweep finished", zap.Int("repaired", repaired))
}
