// Package store declares the persistence boundary consumed by the
// timer, manual entry and analytics services.
package store

import (
	"context"

	"Mansoor88-6/time-tracking-api/internal/models"
)

// TimeEntryStore persists time entries. Every read and write is scoped
// to a user id except ListUnreconciled, which serves the maintenance
// sweep across all users.
type TimeEntryStore interface {
	Create(ctx context.Context, entry *models.TimeEntry) error
	// GetByID returns a NotFound error when the entry is missing or
	// belongs to another user.
	GetByID(ctx context.Context, userID, id string) (*models.TimeEntry, error)
	// GetRunning returns nil without error when no timer is running.
	GetRunning(ctx context.Context, userID string) (*models.TimeEntry, error)
	Update(ctx context.Context, entry *models.TimeEntry) error
	Delete(ctx context.Context, userID, id string) error
	// List returns one page of entries plus the total number matching.
	List(ctx context.Context, filter models.TimeEntryFilter) ([]*models.TimeEntry, int, error)
	// ListInWindow returns entries whose start time lies in window,
	// ordered by start time ascending.
	ListInWindow(ctx context.Context, userID string, window models.Window, projectID *string) ([]*models.TimeEntry, error)
	ListByTask(ctx context.Context, userID, taskID string) ([]*models.TimeEntry, error)
	// ListUnreconciled returns closed entries whose duration was never
	// written, and running entries that already carry an end time.
	ListUnreconciled(ctx context.Context, limit int) ([]*models.TimeEntry, error)
	// RunInTx executes fn as one atomic unit. If fn returns an error
	// nothing it wrote is kept.
	RunInTx(ctx context.Context, fn func(tx TimeEntryStore) error) error
}

// TaskLookup is the read-only view of tasks and projects owned by the
// task collaborator.
type TaskLookup interface {
	// GetTask returns a NotFound error when the task is missing or
	// belongs to another user.
	GetTask(ctx context.Context, userID, taskID string) (*models.Task, error)
	ListTasks(ctx context.Context, userID string, projectID *string) ([]*models.Task, error)
	ListProjects(ctx context.Context, userID string, includeArchived bool) ([]*models.Project, error)
}
