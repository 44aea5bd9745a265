package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/thenoetrevino/tablero/internal/models"
)

// TaskRepo handles all task-related database operations. It is the final
// arbiter of status and order: every write keeps each (project, status)
// group numbered 0..n-1.
type TaskRepo struct {
	db *sql.DB
}

const taskColumns = `id, project_id, title, description, status, sort_order, created_at, updated_at`

func scanTask(row scanner) (*models.Task, error) {
	t := &models.Task{}
	if err := row.Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Description,
		&t.Status, &t.Order, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return t, nil
}

func getTask(ctx context.Context, q querier, id string) (*models.Task, error) {
	t, err := scanTask(q.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", id, notFound(err, models.ErrTaskNotFound))
	}
	return t, nil
}

// GetTaskByID retrieves a task by its ID
func (r *TaskRepo) GetTaskByID(ctx context.Context, id string) (*models.Task, error) {
	return getTask(ctx, r.db, id)
}

// GetTasksByProject returns a project's tasks in board order
func (r *TaskRepo) GetTasksByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	if err := projectExists(ctx, r.db, projectID); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE project_id = ?
		 ORDER BY CASE status WHEN 'TODO' THEN 0 WHEN 'IN_PROGRESS' THEN 1 ELSE 2 END, sort_order, id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks for project %s: %w", projectID, err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// CreateTask appends a task to the end of its status column
func (r *TaskRepo) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	title, err := validateTitle(req.Title, models.ErrEmptyTitle)
	if err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = models.StatusTodo
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
	}

	var created *models.Task
	err = withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := projectExists(ctx, tx, req.ProjectID); err != nil {
			return err
		}

		ids, err := columnIDs(ctx, tx, req.ProjectID, status, "")
		if err != nil {
			return err
		}

		id := uuid.NewString()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO tasks (id, project_id, title, description, status, sort_order)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, req.ProjectID, title, req.Description, status, len(ids),
		)
		if err != nil {
			return fmt.Errorf("failed to insert task: %w", err)
		}

		created, err = getTask(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateTask applies the non-nil fields of req. A status change appends the
// task to the end of its new column.
func (r *TaskRepo) UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (*models.Task, error) {
	var updated *models.Task
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		current, err := getTask(ctx, tx, id)
		if err != nil {
			return err
		}

		title := current.Title
		if req.Title != nil {
			if title, err = validateTitle(*req.Title, models.ErrEmptyTitle); err != nil {
				return err
			}
		}
		description := current.Description
		if req.Description != nil {
			description = *req.Description
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE tasks SET title = ?, description = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			title, description, id,
		)
		if err != nil {
			return fmt.Errorf("failed to update task %s: %w", id, err)
		}

		if req.Status != nil && *req.Status != current.Status {
			if !req.Status.Valid() {
				return fmt.Errorf("%w: %q", models.ErrInvalidStatus, *req.Status)
			}
			if _, err := reorder(ctx, tx, current, *req.Status, -1); err != nil {
				return err
			}
		}

		updated, err = getTask(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTask removes a task and closes the gap in its column
func (r *TaskRepo) DeleteTask(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		current, err := getTask(ctx, tx, id)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete task %s: %w", id, err)
		}

		ids, err := columnIDs(ctx, tx, current.ProjectID, current.Status, "")
		if err != nil {
			return err
		}
		return renumber(ctx, tx, current.Status, ids)
	})
}

// ReorderTask moves a task to position req.ToIndex of the req.ToStatus column.
// The index counts the other tasks of that column and is clamped to [0, len].
func (r *TaskRepo) ReorderTask(ctx context.Context, req models.ReorderRequest) (*models.Task, error) {
	if !req.ToStatus.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidStatus, req.ToStatus)
	}

	var moved *models.Task
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		current, err := getTask(ctx, tx, req.TaskID)
		if err != nil {
			return err
		}
		moved, err = reorder(ctx, tx, current, req.ToStatus, max(req.ToIndex, 0))
		return err
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// reorder places task at index of the to column (index < 0 appends) and
// renumbers the columns it left and entered.
func reorder(ctx context.Context, tx *sql.Tx, task *models.Task, to models.Status, index int) (*models.Task, error) {
	dest, err := columnIDs(ctx, tx, task.ProjectID, to, task.ID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index > len(dest) {
		index = len(dest)
	}

	ordered := make([]string, 0, len(dest)+1)
	ordered = append(ordered, dest[:index]...)
	ordered = append(ordered, task.ID)
	ordered = append(ordered, dest[index:]...)

	_, err = tx.ExecContext(ctx,
		`UPDATE tasks SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		to, task.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to move task %s: %w", task.ID, err)
	}
	if err := renumber(ctx, tx, to, ordered); err != nil {
		return nil, err
	}

	if task.Status != to {
		source, err := columnIDs(ctx, tx, task.ProjectID, task.Status, "")
		if err != nil {
			return nil, err
		}
		if err := renumber(ctx, tx, task.Status, source); err != nil {
			return nil, err
		}
	}

	return getTask(ctx, tx, task.ID)
}

// columnIDs returns the ids of one status group in order, leaving out skip
func columnIDs(ctx context.Context, q querier, projectID string, status models.Status, skip string) ([]string, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id FROM tasks
		 WHERE project_id = ? AND status = ? AND id != ?
		 ORDER BY sort_order, id`,
		projectID, status, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s column: %w", status, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// renumber assigns sort_order 0..n-1 following ids
func renumber(ctx context.Context, q querier, status models.Status, ids []string) error {
	for i, id := range ids {
		_, err := q.ExecContext(ctx,
			`UPDATE tasks SET sort_order = ? WHERE id = ? AND status = ?`,
			i, id, status,
		)
		if err != nil {
			return fmt.Errorf("failed to renumber %s column: %w", status, err)
		}
	}
	return nil
}

func projectExists(ctx context.Context, q querier, projectID string) error {
	var exists int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM projects WHERE id = ?`, projectID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("project %s: %w", projectID, notFound(err, models.ErrProjectNotFound))
	}
	return nil
}
