package database

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tablero/internal/models"
	_ "modernc.org/sqlite"
)

func TestCreateTask(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	projectID := createTestProject(t, repo, "Board")

	first, err := repo.CreateTask(ctx, models.CreateTaskRequest{ProjectID: projectID, Title: "  first  "})
	require.NoError(t, err)
	assert.Equal(t, "first", first.Title)
	assert.Equal(t, models.StatusTodo, first.Status)
	assert.Equal(t, 0, first.Order)
	assert.Equal(t, projectID, first.ProjectID)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := repo.CreateTask(ctx, models.CreateTaskRequest{ProjectID: projectID, Title: "second"})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Order)

	done, err := repo.CreateTask(ctx, models.CreateTaskRequest{ProjectID: projectID, Title: "done", Status: models.StatusDone})
	require.NoError(t, err)
	assert.Equal(t, 0, done.Order)
}

func TestCreateTaskValidation(t *testing.T) {
	repo := setupTestRepo(t)
	projectID := createTestProject(t, repo, "Board")

	tests := []struct {
		name string
		req  models.CreateTaskRequest
		want error
	}{
		{name: "empty title", req: models.CreateTaskRequest{ProjectID: projectID, Title: "   "}, want: models.ErrEmptyTitle},
		{name: "long title", req: models.CreateTaskRequest{ProjectID: projectID, Title: strings.Repeat("x", 300)}, want: models.ErrTitleTooLong},
		{name: "bad status", req: models.CreateTaskRequest{ProjectID: projectID, Title: "x", Status: "LATER"}, want: models.ErrInvalidStatus},
		{name: "unknown project", req: models.CreateTaskRequest{ProjectID: "nope", Title: "x"}, want: models.ErrProjectNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.CreateTask(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReorderTask(t *testing.T) {
	tests := []struct {
		name       string
		move       string
		to         models.Status
		index      int
		todo       []string
		inProgress []string
		done       []string
	}{
		{
			name: "to empty column", move: "b", to: models.StatusDone, index: 0,
			todo: []string{"a", "c"}, inProgress: []string{"x"}, done: []string{"b"},
		},
		{
			name: "index past end appends", move: "a", to: models.StatusInProgress, index: 10,
			todo: []string{"b", "c"}, inProgress: []string{"x", "a"}, done: []string{},
		},
		{
			name: "negative index goes first", move: "c", to: models.StatusInProgress, index: -1,
			todo: []string{"a", "b"}, inProgress: []string{"c", "x"}, done: []string{},
		},
		{
			name: "within column counts other tasks", move: "a", to: models.StatusTodo, index: 2,
			todo: []string{"b", "c", "a"}, inProgress: []string{"x"}, done: []string{},
		},
		{
			name: "within column to front", move: "c", to: models.StatusTodo, index: 0,
			todo: []string{"c", "a", "b"}, inProgress: []string{"x"}, done: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := setupTestRepo(t)
			projectID := createTestProject(t, repo, "Board")
			ids := createTestTasks(t, repo, projectID, models.StatusTodo, "a", "b", "c")
			createTestTasks(t, repo, projectID, models.StatusInProgress, "x")
			byTitle := map[string]string{"a": ids[0], "b": ids[1], "c": ids[2]}

			moved, err := repo.ReorderTask(context.Background(), models.ReorderRequest{
				TaskID:   byTitle[tt.move],
				ToStatus: tt.to,
				ToIndex:  tt.index,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.to, moved.Status)

			assert.Equal(t, tt.todo, columnTitles(t, repo, projectID, models.StatusTodo))
			assert.Equal(t, tt.inProgress, columnTitles(t, repo, projectID, models.StatusInProgress))
			assert.Equal(t, tt.done, columnTitles(t, repo, projectID, models.StatusDone))
		})
	}
}

func TestReorderTaskErrors(t *testing.T) {
	repo := setupTestRepo(t)
	projectID := createTestProject(t, repo, "Board")
	ids := createTestTasks(t, repo, projectID, models.StatusTodo, "a")

	_, err := repo.ReorderTask(context.Background(), models.ReorderRequest{TaskID: "missing", ToStatus: models.StatusDone})
	assert.ErrorIs(t, err, models.ErrTaskNotFound)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = repo.ReorderTask(context.Background(), models.ReorderRequest{TaskID: ids[0], ToStatus: "ARCHIVED"})
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
}

func TestDeleteTaskClosesGap(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	projectID := createTestProject(t, repo, "Board")
	ids := createTestTasks(t, repo, projectID, models.StatusInProgress, "a", "b", "c")

	require.NoError(t, repo.DeleteTask(ctx, ids[1]))
	assert.Equal(t, []string{"a", "c"}, columnTitles(t, repo, projectID, models.StatusInProgress))

	err := repo.DeleteTask(ctx, ids[1])
	assert.ErrorIs(t, err, models.ErrTaskNotFound)
}

func TestUpdateTask(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	projectID := createTestProject(t, repo, "Board")
	ids := createTestTasks(t, repo, projectID, models.StatusTodo, "a", "b")
	createTestTasks(t, repo, projectID, models.StatusDone, "d")

	t.Run("fields", func(t *testing.T) {
		title, description := "renamed", "more words"
		got, err := repo.UpdateTask(ctx, ids[0], models.UpdateTaskRequest{Title: &title, Description: &description})
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Title)
		assert.Equal(t, "more words", got.Description)
		assert.Equal(t, 0, got.Order)
	})

	t.Run("status change appends to new column", func(t *testing.T) {
		status := models.StatusDone
		got, err := repo.UpdateTask(ctx, ids[0], models.UpdateTaskRequest{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, models.StatusDone, got.Status)
		assert.Equal(t, 1, got.Order)
		assert.Equal(t, []string{"b"}, columnTitles(t, repo, projectID, models.StatusTodo))
		assert.Equal(t, []string{"d", "renamed"}, columnTitles(t, repo, projectID, models.StatusDone))
	})

	t.Run("empty title rejected", func(t *testing.T) {
		empty := ""
		_, err := repo.UpdateTask(ctx, ids[1], models.UpdateTaskRequest{Title: &empty})
		assert.ErrorIs(t, err, models.ErrEmptyTitle)
	})

	t.Run("missing task", func(t *testing.T) {
		_, err := repo.UpdateTask(ctx, "missing", models.UpdateTaskRequest{})
		assert.ErrorIs(t, err, models.ErrTaskNotFound)
	})
}

func TestFetchTasksUnknownProject(t *testing.T) {
	repo := setupTestRepo(t)
	_, err := repo.FetchTasks(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrProjectNotFound)
}

func TestFetchTasksBoardOrder(t *testing.T) {
	repo := setupTestRepo(t)
	projectID := createTestProject(t, repo, "Board")
	other := createTestProject(t, repo, "Other")
	createTestTasks(t, repo, projectID, models.StatusDone, "d1")
	createTestTasks(t, repo, projectID, models.StatusTodo, "t1", "t2")
	createTestTasks(t, repo, other, models.StatusTodo, "elsewhere")

	tasks, err := repo.FetchTasks(context.Background(), projectID)
	require.NoError(t, err)

	var titles []string
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"t1", "t2", "d1"}, titles)
}
