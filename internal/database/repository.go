package database

import (
	"context"
	"database/sql"

	"github.com/thenoetrevino/tablero/internal/models"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding and
// satisfies the board's task authority contract.
type Repository struct {
	*ProjectRepo
	*TaskRepo
	db *sql.DB
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		ProjectRepo: &ProjectRepo{db: db},
		TaskRepo:    &TaskRepo{db: db},
		db:          db,
	}
}

// DB returns the underlying connection
func (r *Repository) DB() *sql.DB {
	return r.db
}

// FetchTasks is the authority read used by the board
func (r *Repository) FetchTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	return r.GetTasksByProject(ctx, projectID)
}

// Close closes the underlying connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// Ping checks the connection is usable
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
