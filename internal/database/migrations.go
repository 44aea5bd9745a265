package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// runMigrations creates the database schema and seeds default data if needed
func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	// sort_order is dense from zero within (project_id, status); the
	// repository keeps it that way inside every write transaction
	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL CHECK (status IN ('TODO', 'IN_PROGRESS', 'DONE')),
			sort_order INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
		)
	`)
	if err != nil {
		return err
	}

	// Create index for efficient queries
	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_tasks_project_status
		ON tasks(project_id, status, sort_order)
	`)
	if err != nil {
		return err
	}

	return seedDefaultProject(ctx, db)
}

// seedDefaultProject inserts a first project if the projects table is empty
func seedDefaultProject(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&count); err != nil {
		return err
	}

	// If projects exist, don't seed
	if count > 0 {
		return nil
	}

	_, err := db.ExecContext(ctx,
		"INSERT INTO projects (id, name, description) VALUES (?, ?, ?)",
		uuid.NewString(), "My Board", "Created on first run",
	)
	return err
}
