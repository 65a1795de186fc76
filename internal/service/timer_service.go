package service

import (
	"context"
	"time"

	"Mansoor88-6/time-tracking-api/internal/apperr"
	"Mansoor88-6/time-tracking-api/internal/clock"
	"Mansoor88-6/time-tracking-api/internal/models"
	"Mansoor88-6/time-tracking-api/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TimerService starts and stops live timers. Starting a timer closes
// whatever timer the user already has running, so a user never has
// more than one.
type TimerService struct {
	entries store.TimeEntryStore
	tasks   store.TaskLookup
	clock   clock.Clock
	logger  *zap.Logger
}

func NewTimerService(entries store.TimeEntryStore, tasks store.TaskLookup, clk clock.Clock, logger *zap.Logger) *TimerService {
	return &TimerService{entries: entries, tasks: tasks, clock: clk, logger: logger}
}

// StartTimer begins a timer on taskID. Stopping the previous timer and
// inserting the new one commit together or not at all.
func (s *TimerService) StartTimer(ctx context.Context, userID, taskID string, description *string) (*models.TimeEntry, error) {
	if userID == "" {
		return nil, apperr.NewUnauthorizedError("missing user identity")
	}
	if taskID == "" {
		return nil, apperr.NewInvalidFieldError("taskId", taskID, "is required")
	}

	if _, err := s.tasks.GetTask(ctx, userID, taskID); err != nil {
		return nil, err
	}

	now := truncate(s.clock.Now())
	entry := &models.TimeEntry{
		ID:          uuid.New().String(),
		UserID:      userID,
		TaskID:      taskID,
		Description: description,
		StartTime:   now,
		IsRunning:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var superseded *models.TimeEntry
	err := s.entries.RunInTx(ctx, func(tx store.TimeEntryStore) error {
		running, err := tx.GetRunning(ctx, userID)
		if err != nil {
			return err
		}
		if running != nil {
			if err := closeEntry(running, now); err != nil {
				return err
			}
			if err := tx.Update(ctx, running); err != nil {
				return err
			}
			superseded = running
		}
		return tx.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	if superseded != nil {
		s.logger.Info("Timer superseded",
			zap.String("user_id", userID),
			zap.String("entry_id", superseded.ID),
			zap.Int64("duration", *superseded.Duration))
	}
	s.logger.Info("Timer started",
		zap.String("user_id", userID),
		zap.String("entry_id", entry.ID),
		zap.String("task_id", taskID))

	return s.entries.GetByID(ctx, userID, entry.ID)
}

// StopTimer closes the running entry entryID. Stopping an entry that is
// not running, or not the caller's, reports NotFound.
func (s *TimerService) StopTimer(ctx context.Context, userID, entryID string) (*models.TimeEntry, error) {
	if userID == "" {
		return nil, apperr.NewUnauthorizedError("missing user identity")
	}

	now := truncate(s.clock.Now())
	var stopped *models.TimeEntry
	err := s.entries.RunInTx(ctx, func(tx store.TimeEntryStore) error {
		entry, err := tx.GetByID(ctx, userID, entryID)
		if apperr.IsErrorType(err, apperr.ErrorTypeNotFound) {
			return noActiveTimer(entryID)
		}
		if err != nil {
			return err
		}
		if !entry.IsRunning {
			return noActiveTimer(entryID)
		}
		if err := closeEntry(entry, now); err != nil {
			return err
		}
		if err := tx.Update(ctx, entry); err != nil {
			return err
		}
		stopped = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Timer stopped",
		zap.String("user_id", userID),
		zap.String("entry_id", stopped.ID),
		zap.Int64("duration", *stopped.Duration))

	return stopped, nil
}

// GetActiveTimer returns the running entry with its live duration, or
// nil when nothing is running.
func (s *TimerService) GetActiveTimer(ctx context.Context, userID string) (*models.TimeEntry, error) {
	if userID == "" {
		return nil, apperr.NewUnauthorizedError("missing user identity")
	}

	entry, err := s.entries.GetRunning(ctx, userID)
	if err != nil || entry == nil {
		return nil, err
	}
	withLiveDuration(entry, s.clock.Now())
	return entry, nil
}

// closeEntry finalizes a running entry at end. A start time edited into
// the future closes as a zero-length entry.
func closeEntry(entry *models.TimeEntry, end time.Time) error {
	if end.Before(entry.StartTime) {
		end = entry.StartTime
	}
	duration, err := Reconcile(entry.StartTime, end)
	if err != nil {
		return err
	}
	entry.EndTime = &end
	entry.Duration = &duration
	entry.IsRunning = false
	entry.UpdatedAt = end
	return nil
}

func withLiveDuration(entry *models.TimeEntry, now time.Time) {
	if !entry.IsRunning {
		return
	}
	live := LiveDuration(entry.StartTime, now)
	entry.CurrentDuration = &live
}

func noActiveTimer(entryID string) error {
	return apperr.NewNotFoundError("active timer", entryID)
}
