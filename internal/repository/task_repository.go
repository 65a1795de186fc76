package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Mansoor88-6/time-tracking-api/internal/apperr"
	"Mansoor88-6/time-tracking-api/internal/database"
	"Mansoor88-6/time-tracking-api/internal/models"
	"Mansoor88-6/time-tracking-api/internal/store"
)

// TaskRepository reads the tasks and projects the time engine joins
// against. The create methods exist for seeding and fixtures.
type TaskRepository struct {
	db *database.DB
}

var _ store.TaskLookup = (*TaskRepository)(nil)

func NewTaskRepository(db *database.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) CreateProject(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (id, user_id, name, color, is_archived, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	color := project.Color
	if color == "" {
		color = "#6C63FF"
		project.Color = color
	}

	_, err := r.db.ExecContext(ctx, query,
		project.ID,
		project.UserID,
		project.Name,
		color,
		boolToInt(project.IsArchived),
		formatTime(project.CreatedAt),
	)
	if err != nil {
		return handleDBError("create project", err)
	}
	return nil
}

func (r *TaskRepository) CreateTask(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, project_id, title, status, priority, due_date, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}

	_, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.UserID,
		stringPtrArg(task.ProjectID),
		task.Title,
		string(task.Status),
		string(task.Priority),
		formatTimePtr(task.DueDate),
		formatTime(task.CreatedAt),
		formatTimePtr(task.CompletedAt),
	)
	if err != nil {
		return handleDBError("create task", err)
	}
	return nil
}

func (r *TaskRepository) GetTask(ctx context.Context, userID, taskID string) (*models.Task, error) {
	query := `
		SELECT id, user_id, project_id, title, status, priority, due_date, created_at, completed_at
		FROM tasks
		WHERE id = ? AND user_id = ?
	`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, taskID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NewNotFoundError("task", taskID)
	}
	if err != nil {
		return nil, handleDBError("get task", err)
	}
	return task, nil
}

func (r *TaskRepository) ListTasks(ctx context.Context, userID string, projectID *string) ([]*models.Task, error) {
	query := `
		SELECT id, user_id, project_id, title, status, priority, due_date, created_at, completed_at
		FROM tasks
		WHERE user_id = ?
	`
	args := []interface{}{userID}
	if projectID != nil {
		query += ` AND project_id = ?`
		args = append(args, *projectID)
	}
	query += ` ORDER BY created_at ASC, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, handleDBError("list tasks", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, handleDBError("list tasks", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, handleDBError("list tasks", err)
	}
	return tasks, nil
}

func (r *TaskRepository) ListProjects(ctx context.Context, userID string, includeArchived bool) ([]*models.Project, error) {
	query := `
		SELECT id, user_id, name, color, is_archived, created_at
		FROM projects
		WHERE user_id = ?
	`
	if !includeArchived {
		query += ` AND is_archived = 0`
	}
	query += ` ORDER BY name ASC, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, handleDBError("list projects", err)
	}
	defer rows.Close()

	projects := make([]*models.Project, 0)
	for rows.Next() {
		var (
			project    models.Project
			isArchived int
			createdAt  string
		)
		if err := rows.Scan(&project.ID, &project.UserID, &project.Name, &project.Color, &isArchived, &createdAt); err != nil {
			return nil, handleDBError("list projects", err)
		}
		project.IsArchived = isArchived == 1
		if project.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, handleDBError("list projects", fmt.Errorf("parse created_at: %w", err))
		}
		projects = append(projects, &project)
	}
	if err := rows.Err(); err != nil {
		return nil, handleDBError("list projects", err)
	}
	return projects, nil
}

func scanTask(s scanner) (*models.Task, error) {
	var (
		task                 models.Task
		projectID            sql.NullString
		dueDate, completedAt sql.NullString
		status, priority     string
		createdAt            string
	)

	err := s.Scan(
		&task.ID,
		&task.UserID,
		&projectID,
		&task.Title,
		&status,
		&priority,
		&dueDate,
		&createdAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	task.ProjectID = nullString(projectID)
	task.Status = models.TaskStatus(status)
	task.Priority = models.TaskPriority(priority)
	if task.DueDate, err = parseNullTime(dueDate); err != nil {
		return nil, fmt.Errorf("parse due_date: %w", err)
	}
	if task.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if task.CompletedAt, err = parseNullTime(completedAt); err != nil {
		return nil, fmt.Errorf("parse completed_at: %w", err)
	}
	return &task, nil
}
