package apperr

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewNotFoundError("time entry", "abc"),
			expected: "not_found: time entry not found: abc",
		},
		{
			name:     "with cause",
			err:      NewInternalError("insert time entry", sql.ErrConnDone),
			expected: "internal: operation failed: insert time entry (caused by: sql: connection is already closed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAsAppError_ThroughWrapping(t *testing.T) {
	original := NewValidationError("taskId is required", nil)
	wrapped := fmt.Errorf("create entry: %w", original)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Same(t, original, appErr)
	assert.True(t, IsErrorType(wrapped, ErrorTypeValidation))
	assert.False(t, IsErrorType(wrapped, ErrorTypeNotFound))
}

func TestAppError_Is(t *testing.T) {
	err := NewNotFoundError("task", "t1")
	assert.ErrorIs(t, err, &AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND"})
	assert.NotErrorIs(t, err, &AppError{Type: ErrorTypeConflict, Code: "CONFLICT"})
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{NewUnauthorizedError("missing identity"), http.StatusUnauthorized},
		{NewNotFoundError("task", "x"), http.StatusNotFound},
		{NewValidationError("bad", nil), http.StatusBadRequest},
		{NewInvalidFieldError("limit", -1, "must be positive"), http.StatusBadRequest},
		{NewConflictError("timer already running", nil), http.StatusConflict},
		{NewInternalError("query", sql.ErrConnDone), http.StatusInternalServerError},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestGetUserMessage_HidesInternalDetail(t *testing.T) {
	assert.Equal(t, "task not found: t1", GetUserMessage(NewNotFoundError("task", "t1")))
	assert.NotContains(t, GetUserMessage(NewInternalError("query", sql.ErrConnDone)), "sql")
}

func TestShouldLogError(t *testing.T) {
	assert.False(t, ShouldLogError(NewValidationError("bad", nil)))
	assert.False(t, ShouldLogError(NewNotFoundError("task", "t1")))
	assert.True(t, ShouldLogError(NewConflictError("conflict", nil)))
	assert.True(t, ShouldLogError(NewInternalError("query", nil)))
	assert.True(t, ShouldLogError(fmt.Errorf("plain")))
}

func TestWithContext(t *testing.T) {
	err := NewValidationError("bad window", nil).WithContext("from", "2024-02-01")
	assert.Equal(t, "2024-02-01", err.Context["from"])
	assert.Equal(t, "VALIDATION_FAILED", GetErrorCode(err))
	assert.Equal(t, "UNKNOWN_ERROR", GetErrorCode(fmt.Errorf("plain")))
}
