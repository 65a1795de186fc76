package models

import (
	"time"

	"Mansoor88-6/time-tracking-api/internal/apperr"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// TimeEntryFilter selects a user's time entries for listing.
// DateFrom and DateTo bound startTime inclusively.
type TimeEntryFilter struct {
	UserID    string
	TaskID    *string
	ProjectID *string
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	Limit     int
}

// Normalize applies pagination defaults and validates the filter.
func (f *TimeEntryFilter) Normalize() error {
	if f.UserID == "" {
		return apperr.NewUnauthorizedError("missing user identity")
	}
	if f.Page == 0 {
		f.Page = DefaultPage
	}
	if f.Page < 0 {
		return apperr.NewInvalidFieldError("page", f.Page, "must be positive")
	}
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit < 0 || f.Limit > MaxLimit {
		return apperr.NewInvalidFieldError("limit", f.Limit, "must be between 1 and 100")
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return apperr.NewInvalidFieldError("dateFrom", *f.DateFrom, "must not be after dateTo")
	}
	return nil
}

// Offset returns the row offset for the filter's page.
func (f *TimeEntryFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPage computes TotalPages from total and limit.
func NewPage[T any](items []T, page, limit, total int) Page[T] {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// Window is an inclusive [From, To] range over entry start times.
type Window struct {
	From time.Time
	To   time.Time
}

// ResolveWindow fills in the defaults for an analytics date window.
// Without bounds the window covers the last defaultDays calendar days
// up to and including today in loc. From snaps to the start of its day
// and To to the last second of its day.
func ResolveWindow(from, to *time.Time, defaultDays int, now time.Time, loc *time.Location) (Window, error) {
	end := now.In(loc)
	if to != nil {
		end = to.In(loc)
	}
	end = StartOfDay(end, loc).AddDate(0, 0, 1).Add(-time.Second)

	var start time.Time
	if from != nil {
		start = StartOfDay(from.In(loc), loc)
	} else {
		start = StartOfDay(end, loc).AddDate(0, 0, -(defaultDays - 1))
	}

	if start.After(end) {
		return Window{}, apperr.NewInvalidFieldError("from", start.Format(DateLayout), "must not be after to")
	}
	return Window{From: start, To: end}, nil
}

// DateLayout is the ISO calendar date used for query parameters and keys.
const DateLayout = "2006-01-02"

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
