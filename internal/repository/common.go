package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"Mansoor88-6/time-tracking-api/internal/apperr"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// queryer is satisfied by both *sql.DB and *sql.Tx so the same
// repository code runs inside and outside a transaction.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// scanner is the common behavior of sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// formatTime stores timestamps as second-precision RFC3339 in UTC so
// that lexicographic order in SQL matches chronological order.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func stringPtrArg(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// handleDBError converts driver errors to structured app errors.
func handleDBError(operation string, err error) error {
	if isUniqueViolation(err) {
		return apperr.NewConflictError("conflicting write: "+operation, err)
	}
	return apperr.NewInternalError(operation, err)
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

// validateRowsAffected reports NotFound when a write matched no rows.
func validateRowsAffected(result sql.Result, entityType string, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperr.NewInternalError("get rows affected", err)
	}
	if rows == 0 {
		return apperr.NewNotFoundError(entityType, id)
	}
	return nil
}

func int64PtrArg(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
