package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// TaskStatuses lists every status in display order.
var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// TaskPriorities lists every priority in display order.
var TaskPriorities = []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent}

// Task is owned by the task collaborator; the engine only reads it.
type Task struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	ProjectID   *string      `json:"projectId,omitempty"`
	Title       string       `json:"title"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
}

// IsOverdue reports whether the task is past due and still open at now.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if t.Status == TaskStatusCompleted || t.Status == TaskStatusCancelled {
		return false
	}
	return t.DueDate.Before(now)
}

// Project is owned by the project collaborator; the engine only reads it.
type Project struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	IsArchived bool      `json:"isArchived"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TaskContext is the task/project display data joined onto a time entry.
type TaskContext struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	ProjectID    *string      `json:"projectId,omitempty"`
	ProjectName  *string      `json:"projectName,omitempty"`
	ProjectColor *string      `json:"projectColor,omitempty"`
}

// TaskTotal pairs a task with the time tracked against it in a window.
type TaskTotal struct {
	Task         Task    `json:"task"`
	ProjectName  *string `json:"projectName,omitempty"`
	TotalTime    int64   `json:"totalTime"`
	EntriesCount int     `json:"entriesCount"`
}
