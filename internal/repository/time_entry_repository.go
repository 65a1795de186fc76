package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"Mansoor88-6/time-tracking-api/internal/apperr"
	"Mansoor88-6/time-tracking-api/internal/database"
	"Mansoor88-6/time-tracking-api/internal/models"
	"Mansoor88-6/time-tracking-api/internal/store"
)

const timeEntrySelect = `
	SELECT te.id, te.user_id, te.task_id, te.description, te.start_time, te.end_time,
		te.duration_seconds, te.is_running, te.created_at, te.updated_at,
		t.title, t.status, t.priority, t.project_id, p.name, p.color
	FROM time_entries te
	JOIN tasks t ON t.id = te.task_id
	LEFT JOIN projects p ON p.id = t.project_id
`

type TimeEntryRepository struct {
	db *database.DB
	q  queryer
}

var _ store.TimeEntryStore = (*TimeEntryRepository)(nil)

func NewTimeEntryRepository(db *database.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db, q: db}
}

// RunInTx runs fn against a repository bound to a single transaction.
// The pool holds one connection, so fn must only use the repository it
// is handed.
func (r *TimeEntryRepository) RunInTx(ctx context.Context, fn func(tx store.TimeEntryStore) error) error {
	if _, nested := r.q.(*sql.Tx); nested {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.NewInternalError("begin transaction", err)
	}

	if err := fn(&TimeEntryRepository{db: r.db, q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return handleDBError("commit transaction", err)
	}
	return nil
}

func (r *TimeEntryRepository) Create(ctx context.Context, entry *models.TimeEntry) error {
	query := `
		INSERT INTO time_entries (id, user_id, task_id, description, start_time, end_time,
			duration_seconds, is_running, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.q.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.TaskID,
		stringPtrArg(entry.Description),
		formatTime(entry.StartTime),
		formatTimePtr(entry.EndTime),
		int64PtrArg(entry.Duration),
		boolToInt(entry.IsRunning),
		formatTime(entry.CreatedAt),
		formatTime(entry.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.NewConflictError("a timer is already running", err)
		}
		return handleDBError("create time entry", err)
	}
	return nil
}

func (r *TimeEntryRepository) GetByID(ctx context.Context, userID, id string) (*models.TimeEntry, error) {
	query := timeEntrySelect + ` WHERE te.id = ? AND te.user_id = ?`

	entry, err := scanTimeEntry(r.q.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NewNotFoundError("time entry", id)
	}
	if err != nil {
		return nil, handleDBError("get time entry", err)
	}
	return entry, nil
}

func (r *TimeEntryRepository) GetRunning(ctx context.Context, userID string) (*models.TimeEntry, error) {
	query := timeEntrySelect + ` WHERE te.user_id = ? AND te.is_running = 1 LIMIT 1`

	entry, err := scanTimeEntry(r.q.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, handleDBError("get running time entry", err)
	}
	return entry, nil
}

func (r *TimeEntryRepository) Update(ctx context.Context, entry *models.TimeEntry) error {
	query := `
		UPDATE time_entries
		SET description = ?, start_time = ?, end_time = ?, duration_seconds = ?,
			is_running = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.q.ExecContext(ctx, query,
		stringPtrArg(entry.Description),
		formatTime(entry.StartTime),
		formatTimePtr(entry.EndTime),
		int64PtrArg(entry.Duration),
		boolToInt(entry.IsRunning),
		formatTime(entry.UpdatedAt),
		entry.ID,
		entry.UserID,
	)
	if err != nil {
		return handleDBError("update time entry", err)
	}
	return validateRowsAffected(result, "time entry", entry.ID)
}

func (r *TimeEntryRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return handleDBError("delete time entry", err)
	}
	return validateRowsAffected(result, "time entry", id)
}

func (r *TimeEntryRepository) List(ctx context.Context, filter models.TimeEntryFilter) ([]*models.TimeEntry, int, error) {
	where, args := entryFilterClause(filter)

	countQuery := `
		SELECT COUNT(*)
		FROM time_entries te
		JOIN tasks t ON t.id = te.task_id
	` + where

	var total int
	if err := r.q.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, handleDBError("count time entries", err)
	}

	query := timeEntrySelect + where + ` ORDER BY te.start_time DESC, te.id LIMIT ? OFFSET ?`
	pageArgs := append(append([]interface{}{}, args...), filter.Limit, filter.Offset())

	entries, err := r.queryEntries(ctx, "list time entries", query, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *TimeEntryRepository) ListInWindow(ctx context.Context, userID string, window models.Window, projectID *string) ([]*models.TimeEntry, error) {
	query := timeEntrySelect + ` WHERE te.user_id = ? AND te.start_time >= ? AND te.start_time <= ?`
	args := []interface{}{userID, formatTime(window.From), formatTime(window.To)}
	if projectID != nil {
		query += ` AND t.project_id = ?`
		args = append(args, *projectID)
	}
	query += ` ORDER BY te.start_time ASC, te.id`

	return r.queryEntries(ctx, "list time entries in window", query, args...)
}

func (r *TimeEntryRepository) ListByTask(ctx context.Context, userID, taskID string) ([]*models.TimeEntry, error) {
	query := timeEntrySelect + ` WHERE te.user_id = ? AND te.task_id = ? ORDER BY te.start_time ASC, te.id`
	return r.queryEntries(ctx, "list time entries by task", query, userID, taskID)
}

func (r *TimeEntryRepository) ListUnreconciled(ctx context.Context, limit int) ([]*models.TimeEntry, error) {
	query := timeEntrySelect + `
		WHERE te.end_time IS NOT NULL AND (te.duration_seconds IS NULL OR te.is_running = 1)
		ORDER BY te.end_time ASC
		LIMIT ?
	`
	return r.queryEntries(ctx, "list unreconciled time entries", query, limit)
}

func (r *TimeEntryRepository) queryEntries(ctx context.Context, operation, query string, args ...interface{}) ([]*models.TimeEntry, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, handleDBError(operation, err)
	}
	defer rows.Close()

	entries := make([]*models.TimeEntry, 0)
	for rows.Next() {
		entry, err := scanTimeEntry(rows)
		if err != nil {
			return nil, handleDBError(operation, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, handleDBError(operation, err)
	}
	return entries, nil
}

func entryFilterClause(filter models.TimeEntryFilter) (string, []interface{}) {
	conditions := []string{"te.user_id = ?"}
	args := []interface{}{filter.UserID}

	if filter.TaskID != nil {
		conditions = append(conditions, "te.task_id = ?")
		args = append(args, *filter.TaskID)
	}
	if filter.ProjectID != nil {
		conditions = append(conditions, "t.project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, "te.start_time >= ?")
		args = append(args, formatTime(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		conditions = append(conditions, "te.start_time <= ?")
		args = append(args, formatTime(*filter.DateTo))
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanTimeEntry(s scanner) (*models.TimeEntry, error) {
	var (
		entry                              models.TimeEntry
		task                               models.TaskContext
		description, endTime               sql.NullString
		projectID, projectName, projectClr sql.NullString
		duration                           sql.NullInt64
		isRunning                          int
		startTime, createdAt, updatedAt    string
		status, priority                   string
	)

	err := s.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.TaskID,
		&description,
		&startTime,
		&endTime,
		&duration,
		&isRunning,
		&createdAt,
		&updatedAt,
		&task.Title,
		&status,
		&priority,
		&projectID,
		&projectName,
		&projectClr,
	)
	if err != nil {
		return nil, err
	}

	if entry.StartTime, err = parseTime(startTime); err != nil {
		return nil, fmt.Errorf("parse start_time: %w", err)
	}
	if entry.EndTime, err = parseNullTime(endTime); err != nil {
		return nil, fmt.Errorf("parse end_time: %w", err)
	}
	if entry.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if entry.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	entry.Description = nullString(description)
	if duration.Valid {
		d := duration.Int64
		entry.Duration = &d
	}
	entry.IsRunning = isRunning == 1

	task.ID = entry.TaskID
	task.Status = models.TaskStatus(status)
	task.Priority = models.TaskPriority(priority)
	task.ProjectID = nullString(projectID)
	task.ProjectName = nullString(projectName)
	task.ProjectColor = nullString(projectClr)
	entry.Task = &task

	return &entry, nil
}
