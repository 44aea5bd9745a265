package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ProjectRepo handles all project-related database operations.
type ProjectRepo struct {
	db *sql.DB
}

const projectColumns = `id, name, description, created_at`

func scanProject(row scanner) (*models.Project, error) {
	p := &models.Project{}
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateProject inserts a project with a fresh id
func (r *ProjectRepo) CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error) {
	name, err := validateTitle(req.Name, models.ErrEmptyName)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, description) VALUES (?, ?, ?)`,
		id, name, req.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert project '%s': %w", name, err)
	}

	return r.GetProjectByID(ctx, id)
}

// GetProjectByID retrieves a project by its ID
func (r *ProjectRepo) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", id, notFound(err, models.ErrProjectNotFound))
	}
	return p, nil
}

// ListProjects returns all projects, oldest first
func (r *ProjectRepo) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// UpdateProject applies the non-nil fields of req
func (r *ProjectRepo) UpdateProject(ctx context.Context, id string, req models.UpdateProjectRequest) (*models.Project, error) {
	current, err := r.GetProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := current.Name
	if req.Name != nil {
		if name, err = validateTitle(*req.Name, models.ErrEmptyName); err != nil {
			return nil, err
		}
	}
	description := current.Description
	if req.Description != nil {
		description = *req.Description
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ? WHERE id = ?`,
		name, description, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update project %s: %w", id, err)
	}
	return r.GetProjectByID(ctx, id)
}

// DeleteProject removes a project and all its tasks
func (r *ProjectRepo) DeleteProject(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete tasks for project %s: %w", id, err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete project %s: %w", id, err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return fmt.Errorf("failed to delete project %s: %w", id, models.ErrProjectNotFound)
		}
		return nil
	})
}

// GetTaskCount returns the total number of tasks in a project
func (r *ProjectRepo) GetTaskCount(ctx context.Context, projectID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE project_id = ?`, projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks for project %s: %w", projectID, err)
	}
	return count, nil
}
