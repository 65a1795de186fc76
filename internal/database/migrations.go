package database

import (
	"fmt"

	"go.uber.org/zap"
)

type migration struct {
	version int
	name    string
	up      string
}

// migrations are applied in order; each runs once inside its own
// transaction and is recorded in schema_migrations.
var migrations = []migration{
	{
		version: 1,
		name:    "create projects and tasks",
		up: `
		CREATE TABLE IF NOT EXISTS projects (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			name        TEXT NOT NULL,
			color       TEXT NOT NULL DEFAULT '#6C63FF',
			is_archived INTEGER NOT NULL DEFAULT 0,
			created_at  TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_projects_user ON projects(user_id);

		CREATE TABLE IF NOT EXISTS tasks (
			id           TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL,
			project_id   TEXT REFERENCES projects(id) ON DELETE SET NULL,
			title        TEXT NOT NULL,
			status       TEXT NOT NULL DEFAULT 'todo',
			priority     TEXT NOT NULL DEFAULT 'medium',
			due_date     TEXT,
			created_at   TEXT NOT NULL,
			completed_at TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);
		CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);`,
	},
	{
		version: 2,
		name:    "create time entries",
		up: `
		CREATE TABLE IF NOT EXISTS time_entries (
			id               TEXT PRIMARY KEY,
			user_id          TEXT NOT NULL,
			task_id          TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
			description      TEXT,
			start_time       TEXT NOT NULL,
			end_time         TEXT,
			duration_seconds INTEGER,
			is_running       INTEGER NOT NULL DEFAULT 0,
			created_at       TEXT NOT NULL,
			updated_at       TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_time_entries_user_start ON time_entries(user_id, start_time);
		CREATE INDEX IF NOT EXISTS idx_time_entries_task ON time_entries(task_id);`,
	},
	{
		version: 3,
		name:    "single running timer per user",
		up: `
		CREATE UNIQUE INDEX IF NOT EXISTS idx_time_entries_one_running
			ON time_entries(user_id) WHERE is_running = 1;
		CREATE INDEX IF NOT EXISTS idx_time_entries_unreconciled
			ON time_entries(end_time) WHERE duration_seconds IS NULL;`,
	},
}

func (db *DB) migrate() error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating migrations: %w", err)
	}
	rows.Close()

	for _, m := range migrations {
		if applied[m.version] {
			continue
		}
		if err := db.apply(m); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
		db.logger.Debug("Applied migration", zap.Int("version", m.version), zap.String("name", m.name))
	}

	db.logger.Info("Database migrations completed", zap.Int("version", migrations[len(migrations)-1].version))
	return nil
}

func (db *DB) apply(m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.up); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
		return err
	}
	return tx.Commit()
}
