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

// TimeEntryService manages manually recorded entries and the listing
// and per-task views over all entries.
type TimeEntryService struct {
	entries store.TimeEntryStore
	tasks   store.TaskLookup
	clock   clock.Clock
	logger  *zap.Logger
}

func NewTimeEntryService(entries store.TimeEntryStore, tasks store.TaskLookup, clk clock.Clock, logger *zap.Logger) *TimeEntryService {
	return &TimeEntryService{entries: entries, tasks: tasks, clock: clk, logger: logger}
}

func (s *TimeEntryService) CreateTimeEntry(ctx context.Context, userID string, req *models.CreateTimeEntryRequest) (*models.TimeEntry, error) {
	if userID == "" {
		return nil, apperr.NewUnauthorizedError("missing user identity")
	}
	if req.TaskID == "" {
		return nil, apperr.NewInvalidFieldError("taskId", req.TaskID, "is required")
	}
	if _, err := s.tasks.GetTask(ctx, userID, req.TaskID); err != nil {
		return nil, err
	}

	now := truncate(s.clock.Now())
	start := now
	if req.StartTime != nil {
		start = truncate(*req.StartTime)
	}

	entry := &models.TimeEntry{
		ID:          uuid.New().String(),
		UserID:      userID,
		TaskID:      req.TaskID,
		Description: req.Description,
		StartTime:   start,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	switch {
	case req.EndTime != nil:
		end := truncate(*req.EndTime)
		duration, err := entryDuration(start, end, req.AllowManualAdjustment)
		if err != nil {
			return nil, err
		}
		entry.EndTime = &end
		entry.Duration = &duration
	case req.Duration != nil:
		if err := checkDuration(*req.Duration, req.AllowManualAdjustment); err != nil {
			return nil, err
		}
		duration := *req.Duration
		entry.Duration = &duration
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("Time entry created",
		zap.String("user_id", userID),
		zap.String("entry_id", entry.ID),
		zap.String("task_id", entry.TaskID))

	return s.entries.GetByID(ctx, userID, entry.ID)
}

// UpdateTimeEntry patches the fields present in req. When either end of
// the interval moves, the duration is recomputed from the resulting
// pair and any supplied duration is ignored. The read and the write
// commit as one unit, so a stop landing in between is not overwritten.
func (s *TimeEntryService) UpdateTimeEntry(ctx context.Context, userID, entryID string, req *models.UpdateTimeEntryRequest) (*models.TimeEntry, error) {
	if userID == "" {
		return nil, apperr.NewUnauthorizedError("missing user identity")
	}

	var updatedID string
	err := s.entries.RunInTx(ctx, func(tx store.TimeEntryStore) error {
		entry, err := tx.GetByID(ctx, userID, entryID)
		if err != nil {
			return err
		}
		if err := s.applyPatch(entry, req); err != nil {
			return err
		}
		updatedID = entry.ID
		return tx.Update(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Time entry updated",
		zap.String("user_id", userID),
		zap.String("entry_id", updatedID))

	updated, err := s.entries.GetByID(ctx, userID, updatedID)
	if err != nil {
		return nil, err
	}
	withLiveDuration(updated, s.clock.Now())
	return updated, nil
}

// applyPatch writes req onto entry. A running entry only accepts a new
// description or start time; it is closed through StopTimer.
func (s *TimeEntryService) applyPatch(entry *models.TimeEntry, req *models.UpdateTimeEntryRequest) error {
	if entry.IsRunning {
		if req.EndTime != nil {
			return apperr.NewInvalidFieldError("endTime", *req.EndTime, "cannot be set on a running entry; stop the timer instead").
				WithContext("entry_id", entry.ID)
		}
		if req.Duration != nil {
			return apperr.NewInvalidFieldError("duration", *req.Duration, "cannot be set on a running entry").
				WithContext("entry_id", entry.ID)
		}
	}

	if req.Description != nil {
		entry.Description = req.Description
	}
	if req.StartTime != nil {
		entry.StartTime = truncate(*req.StartTime)
	}
	if req.EndTime != nil {
		end := truncate(*req.EndTime)
		entry.EndTime = &end
	}

	intervalChanged := req.StartTime != nil || req.EndTime != nil
	switch {
	case intervalChanged && entry.EndTime != nil:
		duration, err := entryDuration(entry.StartTime, *entry.EndTime, req.AllowManualAdjustment)
		if err != nil {
			return err
		}
		entry.Duration = &duration
	case req.Duration != nil:
		if err := checkDuration(*req.Duration, req.AllowManualAdjustment); err != nil {
			return err
		}
		duration := *req.Duration
		entry.Duration = &duration
	}

	entry.UpdatedAt = truncate(s.clock.Now())
	return nil
}

func (s *TimeEntryService) DeleteTimeEntry(ctx context.Context, userID, entryID string) error {
	if userID == "" {
		return apperr.NewUnauthorizedError("missing user identity")
	}
	if err := s.entries.Delete(ctx, userID, entryID); err != nil {
		return err
	}

	s.logger.Info("Time entry deleted",
		zap.String("user_id", userID),
		zap.String("entry_id", entryID))
	return nil
}

func (s *TimeEntryService) ListTimeEntries(ctx context.Context, filter models.TimeEntryFilter) (models.Page[*models.TimeEntry], error) {
	if err := filter.Normalize(); err != nil {
		return models.Page[*models.TimeEntry]{}, err
	}

	entries, total, err := s.entries.List(ctx, filter)
	if err != nil {
		return models.Page[*models.TimeEntry]{}, err
	}

	now := s.clock.Now()
	for _, entry := range entries {
		withLiveDuration(entry, now)
	}
	return models.NewPage(entries, filter.Page, filter.Limit, total), nil
}

// GetTaskTimeStats sums the finalized time tracked against a task and
// reports its running timer, if any.
func (s *TimeEntryService) GetTaskTimeStats(ctx context.Context, userID, taskID string) (*models.TaskTimeStats, error) {
	if userID == "" {
		return nil, apperr.NewUnauthorizedError("missing user identity")
	}
	if _, err := s.tasks.GetTask(ctx, userID, taskID); err != nil {
		return nil, err
	}

	entries, err := s.entries.ListByTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	stats := &models.TaskTimeStats{TaskID: taskID, EntriesCount: len(entries)}
	for _, entry := range entries {
		if entry.IsRunning {
			withLiveDuration(entry, s.clock.Now())
			stats.HasActiveTimer = true
			stats.ActiveTimer = entry
			continue
		}
		if entry.Duration != nil {
			stats.TotalTime += *entry.Duration
		}
	}
	return stats, nil
}

func entryDuration(start, end time.Time, allowAdjustment bool) (int64, error) {
	if allowAdjustment {
		return ReconcileAllowingAdjustment(start, end), nil
	}
	return Reconcile(start, end)
}

func checkDuration(duration int64, allowAdjustment bool) error {
	if duration < 0 && !allowAdjustment {
		return apperr.NewInvalidFieldError("duration", duration, "must not be negative")
	}
	return nil
}
