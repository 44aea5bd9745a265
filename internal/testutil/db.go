package testutil

import (
	"context"
	"testing"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
)

// SetupTestDB creates an in-memory database with full schema and wraps it
// in a repository
func SetupTestDB(t *testing.T) *database.Repository {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return database.NewRepository(db)
}

// CreateTestProject creates a project and returns its id
func CreateTestProject(t *testing.T, repo *database.Repository, name string) string {
	t.Helper()
	p, err := repo.CreateProject(context.Background(), models.CreateProjectRequest{
		Name:        name,
		Description: "Test description",
	})
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return p.ID
}

// CreateTestTask appends a task to a status column and returns it
func CreateTestTask(t *testing.T, repo *database.Repository, projectID string, status models.Status, title string) models.Task {
	t.Helper()
	task, err := repo.CreateTask(context.Background(), models.CreateTaskRequest{
		ProjectID: projectID,
		Title:     title,
		Status:    status,
	})
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return *task
}
