package service

import (
	"context"
	"time"

	"Mansoor88-6/time-tracking-api/internal/clock"
	"Mansoor88-6/time-tracking-api/internal/models"
	"Mansoor88-6/time-tracking-api/internal/store"

	"go.uber.org/zap"
)

// ReconcileService repairs entries whose stop did not fully complete:
// closed rows missing a duration, and rows still flagged running even
// though an end time was written.
type ReconcileService struct {
	entries   store.TimeEntryStore
	clock     clock.Clock
	batchSize int
	logger    *zap.Logger
}

func NewReconcileService(entries store.TimeEntryStore, clk clock.Clock, batchSize int, logger *zap.Logger) *ReconcileService {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &ReconcileService{entries: entries, clock: clk, batchSize: batchSize, logger: logger}
}

// Sweep repairs every broken entry and returns how many were fixed.
// Running it again immediately fixes nothing.
func (s *ReconcileService) Sweep(ctx context.Context) (int, error) {
	repaired := 0
	for {
		if err := ctx.Err(); err != nil {
			return repaired, err
		}

		var fixed int
		err := s.entries.RunInTx(ctx, func(tx store.TimeEntryStore) error {
			batch, err := tx.ListUnreconciled(ctx, s.batchSize)
			if err != nil {
				return err
			}
			now := truncate(s.clock.Now())
			for _, entry := range batch {
				repair(entry, now)
				if err := tx.Update(ctx, entry); err != nil {
					return err
				}
			}
			fixed = len(batch)
			return nil
		})
		if err != nil {
			return repaired, err
		}

		repaired += fixed
		if fixed < s.batchSize {
			break
		}
	}

	if repaired > 0 {
		s.logger.Info("Reconciled time entries", zap.Int("repaired", repaired))
	} else {
		s.logger.Debug("No time entries needed reconciliation")
	}
	return repaired, nil
}

// repair recomputes the duration from the stored interval and clears
// the running flag. Stored intervals may be manual corrections, so a
// negative span is kept rather than rejected.
func repair(entry *models.TimeEntry, now time.Time) {
	duration := ReconcileAllowingAdjustment(entry.StartTime, *entry.EndTime)
	entry.Duration = &duration
	entry.IsRunning = false
	entry.UpdatedAt = now
}
