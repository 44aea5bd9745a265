package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestRepo creates an in-memory database, runs migrations and wraps it
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(db)
}

// setupTestDBFile creates a file-based database for testing persistence across restarts
func setupTestDBFile(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tablero-test.db")

	db, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	return db, path
}

// createTestProject creates a project and returns its id
func createTestProject(t *testing.T, repo *Repository, name string) string {
	t.Helper()
	p, err := repo.CreateProject(context.Background(), models.CreateProjectRequest{Name: name})
	require.NoError(t, err)
	return p.ID
}

// createTestTasks appends one task per title to a status column and returns their ids
func createTestTasks(t *testing.T, repo *Repository, projectID string, status models.Status, titles ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(titles))
	for _, title := range titles {
		task, err := repo.CreateTask(context.Background(), models.CreateTaskRequest{
			ProjectID: projectID,
			Title:     title,
			Status:    status,
		})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}
	return ids
}

// columnTitles returns the titles of one status column in order, checking dense order
func columnTitles(t *testing.T, repo *Repository, projectID string, status models.Status) []string {
	t.Helper()
	tasks, err := repo.GetTasksByProject(context.Background(), projectID)
	require.NoError(t, err)

	titles := []string{}
	for _, task := range tasks {
		if task.Status != status {
			continue
		}
		require.Equal(t, len(titles), task.Order, "task %q in %s has order %d", task.Title, status, task.Order)
		titles = append(titles, task.Title)
	}
	return titles
}
