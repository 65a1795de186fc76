package service

import (
	"testing"
	"time"

	"Mansoor88-6/time-tracking-api/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	d, err := Reconcile(start, start.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(5400), d)

	d, err = Reconcile(start, start.Add(1999*time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, int64(1), d, "sub-second remainder is dropped")

	d, err = Reconcile(start, start)
	require.NoError(t, err)
	assert.Zero(t, d)

	_, err = Reconcile(start, start.Add(-time.Second))
	assert.True(t, apperr.IsErrorType(err, apperr.ErrorTypeValidation))
}

func TestReconcileAllowingAdjustment(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, int64(-600), ReconcileAllowingAdjustment(start, start.Add(-10*time.Minute)))
	assert.Equal(t, int64(60), ReconcileAllowingAdjustment(start, start.Add(time.Minute)))
}

func TestLiveDuration(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, int64(125), LiveDuration(start, start.Add(125*time.Second)))
	assert.Zero(t, LiveDuration(start, start.Add(-time.Minute)))
}
