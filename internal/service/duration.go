package service

import (
	"time"

	"Mansoor88-6/time-tracking-api/internal/apperr"
)

// Reconcile returns the whole seconds between start and end, rounded
// down. An end before start is rejected.
func Reconcile(start, end time.Time) (int64, error) {
	if end.Before(start) {
		return 0, apperr.NewInvalidFieldError("endTime", end.Format(time.RFC3339), "must not be before startTime")
	}
	return ReconcileAllowingAdjustment(start, end), nil
}

// ReconcileAllowingAdjustment is Reconcile without the ordering check,
// used for manual corrections that may record negative time.
func ReconcileAllowingAdjustment(start, end time.Time) int64 {
	return int64(end.Sub(start) / time.Second)
}

// LiveDuration is the elapsed time of a running entry, never negative.
func LiveDuration(start, now time.Time) int64 {
	if now.Before(start) {
		return 0
	}
	return int64(now.Sub(start) / time.Second)
}

// truncate drops sub-second precision so stored and computed values agree.
func truncate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
