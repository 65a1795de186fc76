package models

import "time"

// TimeEntry is one contiguous span of tracked work against a task.
// Duration is nil while the entry is running; CurrentDuration carries
// the live elapsed seconds on read and is never persisted.
type TimeEntry struct {
	ID              string       `json:"id"`
	UserID          string       `json:"userId"`
	TaskID          string       `json:"taskId"`
	Description     *string      `json:"description,omitempty"`
	StartTime       time.Time    `json:"startTime"`
	EndTime         *time.Time   `json:"endTime,omitempty"`
	Duration        *int64       `json:"duration"`
	IsRunning       bool         `json:"isRunning"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
	CurrentDuration *int64       `json:"currentDuration,omitempty"`
	Task            *TaskContext `json:"task,omitempty"`
}

type CreateTimeEntryRequest struct {
	TaskID      string     `json:"taskId"`
	Description *string    `json:"description,omitempty"`
	StartTime   *time.Time `json:"startTime,omitempty"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	Duration    *int64     `json:"duration,omitempty"`
	// AllowManualAdjustment permits negative durations (end before
	// start, or a negative duration value) for time corrections.
	AllowManualAdjustment bool `json:"allowManualAdjustment,omitempty"`
}

type UpdateTimeEntryRequest struct {
	Description           *string    `json:"description,omitempty"`
	StartTime             *time.Time `json:"startTime,omitempty"`
	EndTime               *time.Time `json:"endTime,omitempty"`
	Duration              *int64     `json:"duration,omitempty"`
	AllowManualAdjustment bool       `json:"allowManualAdjustment,omitempty"`
}

type StartTimerRequest struct {
	Description *string `json:"description,omitempty"`
}

// TaskTimeStats is the per-task rollup shown next to a task.
type TaskTimeStats struct {
	TaskID         string     `json:"taskId"`
	TotalTime      int64      `json:"totalTime"`
	EntriesCount   int        `json:"entriesCount"`
	HasActiveTimer bool       `json:"hasActiveTimer"`
	ActiveTimer    *TimeEntry `json:"activeTimer,omitempty"`
}
