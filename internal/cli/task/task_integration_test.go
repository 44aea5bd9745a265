package task

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tablero/internal/board"
	appcli "github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/testutil"
	"github.com/thenoetrevino/tablero/internal/testutil/cli"
)

// columnIDs returns the ids of a column in board order, straight from the database
func columnIDs(t *testing.T, repo *database.Repository, projectID string, status models.Status) []string {
	t.Helper()
	tasks, err := repo.FetchTasks(context.Background(), projectID)
	require.NoError(t, err)
	return board.Project(board.FromTasks(tasks)).IDs(status)
}

func TestCreateTask(t *testing.T) {
	repo, app := cli.SetupCLITest(t)
	projectID := testutil.CreateTestProject(t, repo, "Work")

	t.Run("defaults to the first column", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--project", projectID,
			"--title", "Write docs",
			"--quiet",
		})
		require.NoError(t, err)

		task, err := repo.GetTaskByID(context.Background(), strings.TrimSpace(output))
		require.NoError(t, err)
		assert.Equal(t, models.StatusTodo, task.Status)
		assert.Equal(t, projectID, task.ProjectID)
	})

	t.Run("status and description from stdin", func(t *testing.T) {
		output, err := cli.ExecuteCLICommandWithInput(t, app, CreateCmd(), []string{
			"--project", "work",
			"--title", "Review",
			"--status", "in progress",
			"--description", "-",
			"--json",
		}, "line one\nline two\n")
		require.NoError(t, err)

		result := testutil.ParseJSON(t, output)
		task := result["task"].(map[string]interface{})
		assert.Equal(t, "IN_PROGRESS", task["status"])
		assert.Equal(t, "line one\nline two", task["description"])
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--project", projectID, "--title", "x", "--status", "later",
		})
		require.Error(t, err)
		assert.Equal(t, appcli.ExitValidation, appcli.ExitCode(err))
	})

	t.Run("blank title", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--project", projectID, "--title", "  ",
		})
		require.Error(t, err)
		assert.Equal(t, appcli.ExitValidation, appcli.ExitCode(err))
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--project", "missing", "--title", "x",
		})
		require.Error(t, err)
		assert.Equal(t, appcli.ExitNotFound, appcli.ExitCode(err))
	})
}

func TestListTasks(t *testing.T) {
	repo, app := cli.SetupCLITest(t)
	projectID := testutil.CreateTestProject(t, repo, "Listing")
	a := testutil.CreateTestTask(t, repo, projectID, models.StatusTodo, "Alpha")
	b := testutil.CreateTestTask(t, repo, projectID, models.StatusDone, "Bravo")
	c := testutil.CreateTestTask(t, repo, projectID, models.StatusTodo, "Charlie")

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, output string)
	}{
		{
			name: "quiet lists ids in board order",
			args: []string{"--quiet"},
			check: func(t *testing.T, output string) {
				assert.Equal(t, []string{a.ID, c.ID, b.ID}, strings.Fields(output))
			},
		},
		{
			name: "status filter",
			args: []string{"--quiet", "--status", "done"},
			check: func(t *testing.T, output string) {
				assert.Equal(t, []string{b.ID}, strings.Fields(output))
			},
		},
		{
			name: "json",
			args: []string{"--json"},
			check: func(t *testing.T, output string) {
				tasks := testutil.ParseJSONList(t, output, "tasks")
				assert.Equal(t, []string{a.ID, c.ID, b.ID}, testutil.RecordIDs(tasks))
				assert.Equal(t, "DONE", tasks[2]["status"])
			},
		},
		{
			name: "human groups by column",
			args: []string{},
			check: func(t *testing.T, output string) {
				assert.Contains(t, output, "Todo (2)")
				assert.Contains(t, output, "In Progress (0)")
				assert.Contains(t, output, "Done (1)")
				assert.Less(t, strings.Index(output, "Alpha"), strings.Index(output, "Charlie"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--project", projectID}, tt.args...)
			output, err := cli.ExecuteCLICommand(t, app, ListCmd(), args)
			require.NoError(t, err)
			tt.check(t, output)
		})
	}
}

func TestShowTask(t *testing.T) {
	repo, app := cli.SetupCLITest(t)
	projectID := testutil.CreateTestProject(t, repo, "Showing")
	testutil.CreateTestTask(t, repo, projectID, models.StatusTodo, "First")
	task := testutil.CreateTestTask(t, repo, projectID, models.StatusTodo, "Second")

	output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{task.ID, "--project", projectID})
	require.NoError(t, err)
	assert.Contains(t, output, "Second")
	assert.Contains(t, output, "card 2 of 2")

	_, err = cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"--project", projectID})
	require.Error(t, err)
	assert.Equal(t, appcli.ExitUsage, appcli.ExitCode(err))

	_, err = cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"nope", "--project", projectID})
	require.Error(t, err)
	assert.Equal(t, appcli.ExitNotFound, appcli.ExitCode(err))
}

func TestUpdateTask(t *testing.T) {
	repo, app := cli.SetupCLITest(t)
	projectID := testutil.CreateTestProject(t, repo, "Updating")
	task := testutil.CreateTestTask(t, repo, projectID, models.StatusTodo, "Draft")

	_, err := cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{
		task.ID, "--project", projectID, "--title", "Final", "--status", "DONE",
	})
	require.NoError(t, err)

	updated, err := repo.GetTaskByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, models.StatusDone, updated.Status)

	_, err = cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{task.ID, "--project", projectID})
	require.Error(t, err)
	assert.Equal(t, appcli.ExitUsage, appcli.ExitCode(err))
}

func TestDeleteTask(t *testing.T) {
	repo, app := cli.SetupCLITest(t)
	projectID := testutil.CreateTestProject(t, repo, "Deleting")
	keep := testutil.CreateTestTask(t, repo, projectID, models.StatusTodo, "Keep")
	drop := testutil.CreateTestTask(t, repo, projectID, models.StatusTodo, "Drop")

	output, err := cli.ExecuteCLICommandWithInput(t, app, DeleteCmd(), []string{keep.ID, "--project", projectID}, "n\n")
	require.NoError(t, err)
	assert.Contains(t, output, "Cancelled")

	_, err = cli.ExecuteCLICommand(t, app, DeleteCmd(), []string{drop.ID, "--project", projectID, "--force"})
	require.NoError(t, err)

	assert.Equal(t, []string{keep.ID}, columnIDs(t, repo, projectID, models.StatusTodo))
}

func TestMoveTask(t *testing.T) {
	repo, app := cli.SetupCLITest(t)
	projectID := testutil.CreateTestProject(t, repo, "Moving")
	a := testutil.CreateTestTask(t, repo, projectID, models.StatusTodo, "A")
	b := testutil.CreateTestTask(t, repo, projectID, models.StatusTodo, "B")
	c := testutil.CreateTestTask(t, repo, projectID, models.StatusInProgress, "C")

	t.Run("next appends to the following column", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{
			"--project", projectID, "--id", a.ID, "next",
		})
		require.NoError(t, err)
		assert.Contains(t, output, "moved to 'In Progress' (position 2 of 2)")
		assert.Equal(t, []string{c.ID, a.ID}, columnIDs(t, repo, projectID, models.StatusInProgress))
	})

	t.Run("named column at an index", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{
			"--project", projectID, "--id", b.ID, "--status", "in progress", "--index", "0", "--json",
		})
		require.NoError(t, err)

		result := testutil.ParseJSON(t, output)
		assert.Equal(t, "merged", result["state"])
		assert.Equal(t, float64(0), result["position"])
		assert.Equal(t, []string{b.ID, c.ID, a.ID}, columnIDs(t, repo, projectID, models.StatusInProgress))
	})

	t.Run("reorder within a column", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{
			"--project", projectID, "--id", b.ID, "IN_PROGRESS",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{c.ID, a.ID, b.ID}, columnIDs(t, repo, projectID, models.StatusInProgress))
	})

	t.Run("prev from the first column", func(t *testing.T) {
		d := testutil.CreateTestTask(t, repo, projectID, models.StatusTodo, "D")
		_, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{
			"--project", projectID, "--id", d.ID, "prev",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoAdjacentColumn)
		assert.Equal(t, appcli.ExitUsage, appcli.ExitCode(err))
	})

	t.Run("missing target", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{"--project", projectID, "--id", a.ID})
		require.Error(t, err)
		assert.Equal(t, appcli.ExitUsage, appcli.ExitCode(err))
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{
			"--project", projectID, "--id", a.ID, "sideways",
		})
		require.Error(t, err)
		assert.Equal(t, appcli.ExitValidation, appcli.ExitCode(err))
	})

	t.Run("done puts the task on top", func(t *testing.T) {
		e := testutil.CreateTestTask(t, repo, projectID, models.StatusDone, "E")
		_, err := cli.ExecuteCLICommand(t, app, DoneCmd(), []string{c.ID, "--project", projectID})
		require.NoError(t, err)
		assert.Equal(t, []string{c.ID, e.ID}, columnIDs(t, repo, projectID, models.StatusDone))
	})
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		current models.Status
		target  string
		want    models.Status
		wantErr bool
	}{
		{models.StatusTodo, "next", models.StatusInProgress, false},
		{models.StatusDone, "PREV", models.StatusInProgress, false},
		{models.StatusInProgress, "todo", models.StatusTodo, false},
		{models.StatusDone, "next", "", true},
		{models.StatusTodo, "previous", "", true},
		{models.StatusTodo, "blocked", "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.current)+"_"+tt.target, func(t *testing.T) {
			got, err := resolveTarget(tt.current, tt.target)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
