package tui

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/board"
	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/testutil"
	"github.com/thenoetrevino/tablero/internal/tui/state"
)

func keyPress(s string) tea.KeyPressMsg {
	switch s {
	case "space":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeySpace})
	case "enter":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter})
	case "esc":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg(tea.Key{Code: r, Text: s})
}

// setupModel opens a board on a fresh project holding two todo cards and
// one in progress card
func setupModel(t *testing.T) (*Model, *database.Repository, string) {
	t.Helper()
	repo := testutil.SetupTestDB(t)
	projectID := testutil.CreateTestProject(t, repo, "Board")
	testutil.CreateTestTask(t, repo, projectID, models.StatusTodo, "Alpha")
	testutil.CreateTestTask(t, repo, projectID, models.StatusTodo, "Bravo")
	testutil.CreateTestTask(t, repo, projectID, models.StatusInProgress, "Charlie")

	m := New(context.Background(), app.New(repo), projectID)
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	// drive the load by hand; the listener commands block
	msg := m.Init()()
	_, open := m.Update(msg)
	require.NotNil(t, open)
	m.Update(open())
	require.NotNil(t, m.session, "board should be open")
	return m, repo, projectID
}

func titles(t *testing.T, repo *database.Repository, projectID string, status models.Status) []string {
	t.Helper()
	tasks, err := repo.FetchTasks(context.Background(), projectID)
	require.NoError(t, err)
	var out []string
	for _, task := range board.Project(board.FromTasks(tasks)).Of(status) {
		out = append(out, task.Title)
	}
	return out
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyPress(k))
	}
	return cmd
}

func TestModelOpensPreferredProject(t *testing.T) {
	m, _, projectID := setupModel(t)

	require.NotNil(t, m.Project())
	assert.Equal(t, projectID, m.Project().ID)
	assert.Equal(t, "Alpha", m.currentTask().Title)
	assert.Contains(t, m.View().Content, "Board")
}

func TestNavigation(t *testing.T) {
	m, _, _ := setupModel(t)

	press(m, "j")
	assert.Equal(t, "Bravo", m.currentTask().Title)

	press(m, "j")
	assert.Equal(t, "Bravo", m.currentTask().Title, "cursor stops at the last card")

	press(m, "l")
	assert.Equal(t, 1, m.UiState.SelectedColumn())
	assert.Equal(t, "Charlie", m.currentTask().Title, "selection clamps to the shorter column")

	press(m, "l")
	assert.Nil(t, m.currentTask())
}

func TestDragAcrossColumns(t *testing.T) {
	m, repo, projectID := setupModel(t)

	press(m, "space")
	require.Equal(t, state.DragMode, m.UiState.Mode())
	assert.True(t, m.DragState.Active())

	press(m, "l")
	assert.Equal(t, board.Location{Status: models.StatusInProgress, Index: 0}, m.DragState.Target())
	press(m, "j")
	assert.Equal(t, 1, m.DragState.Target().Index)
	press(m, "j")
	assert.Equal(t, 1, m.DragState.Target().Index, "marker stops after the last card")

	cmd := press(m, "space")
	assert.Equal(t, state.NormalMode, m.UiState.Mode())
	assert.False(t, m.DragState.Active())

	// the board shows the move before the server answers
	cols := m.session.columns()
	assert.Equal(t, []string{"Bravo"}, taskTitles(cols.Of(models.StatusTodo)))
	assert.Equal(t, []string{"Charlie", "Alpha"}, taskTitles(cols.Of(models.StatusInProgress)))
	assert.Equal(t, "Alpha", m.currentTask().Title, "cursor follows the dropped card")

	require.NotNil(t, cmd)
	settled, ok := cmd().(moveSettledMsg)
	require.True(t, ok)
	assert.Equal(t, board.MoveMerged, settled.state)
	m.Update(settled)

	assert.Equal(t, []string{"Bravo"}, titles(t, repo, projectID, models.StatusTodo))
	assert.Equal(t, []string{"Charlie", "Alpha"}, titles(t, repo, projectID, models.StatusInProgress))
}

func TestDragReorderWithinColumn(t *testing.T) {
	m, repo, projectID := setupModel(t)

	cmd := press(m, "space", "j", "enter")
	require.NotNil(t, cmd)
	settled := cmd().(moveSettledMsg)
	assert.Equal(t, board.MoveMerged, settled.state)

	assert.Equal(t, []string{"Bravo", "Alpha"}, titles(t, repo, projectID, models.StatusTodo))
	assert.Equal(t, 1, m.UiState.SelectedTask())
}

func TestDragCancel(t *testing.T) {
	m, repo, projectID := setupModel(t)

	cmd := press(m, "space", "l", "esc")
	assert.Nil(t, cmd, "cancelled drags submit nothing")
	assert.Equal(t, state.NormalMode, m.UiState.Mode())
	assert.Equal(t, []string{"Alpha", "Bravo"}, titles(t, repo, projectID, models.StatusTodo))
	assert.Equal(t, "Alpha", m.currentTask().Title)
}

func TestGrabEmptyColumn(t *testing.T) {
	m, _, _ := setupModel(t)

	press(m, "l", "l", "space")
	assert.Equal(t, state.NormalMode, m.UiState.Mode())
	assert.False(t, m.DragState.Active())
}

func TestStaleMessagesIgnored(t *testing.T) {
	m, _, _ := setupModel(t)
	gen := m.session.gen

	m.Update(notificationMsg{gen: gen + 1, notification: board.Notification{Message: "old board"}})
	assert.False(t, m.NotificationState.HasAny())

	m.Update(notificationMsg{gen: gen, notification: board.Notification{Message: "this board"}})
	assert.True(t, m.NotificationState.HasAny())
}

func TestSwitchProject(t *testing.T) {
	m, _, projectID := setupModel(t)
	require.Len(t, m.projects, 2)
	first := m.session

	_, cmd := m.Update(keyPress("}"))
	require.NotNil(t, cmd)
	assert.Nil(t, m.session, "old board closes right away")
	select {
	case <-first.done:
	default:
		t.Fatal("old session should be closed")
	}

	m.Update(cmd())
	require.NotNil(t, m.session)
	assert.NotEqual(t, projectID, m.Project().ID)

	_, cmd = m.Update(keyPress("{"))
	m.Update(cmd())
	assert.Equal(t, projectID, m.Project().ID)
}

func TestSwitchWhileLoadingDropsStaleBoard(t *testing.T) {
	m, _, _ := setupModel(t)

	_, first := m.Update(keyPress("}"))
	_, second := m.Update(keyPress("}"))

	stale := first().(boardOpenedMsg)
	m.Update(stale)
	assert.Nil(t, m.session)
	select {
	case <-stale.session.done:
	default:
		t.Fatal("stale board should be closed")
	}

	m.Update(second())
	require.NotNil(t, m.session)
	assert.Equal(t, m.gen, m.session.gen)
}

func TestDetailSummarizesOnce(t *testing.T) {
	m, _, _ := setupModel(t)

	cmd := press(m, "enter")
	require.Equal(t, state.DetailMode, m.UiState.Mode())
	require.NotNil(t, cmd)
	assert.True(t, m.Detail.Loading)

	m.Update(cmd())
	assert.False(t, m.Detail.Loading)
	assert.Contains(t, m.Detail.Summary, "Alpha")

	press(m, "esc")
	assert.Equal(t, state.NormalMode, m.UiState.Mode())

	cmd = press(m, "enter")
	assert.Nil(t, cmd, "reopening the same card does not summarize again")

	// another card, then back to the first
	press(m, "esc")
	press(m, "j")
	cmd = press(m, "enter")
	require.NotNil(t, cmd, "a new card summarizes on open")
	m.Update(cmd())
	assert.Contains(t, m.Detail.Summary, "Bravo")

	press(m, "esc")
	press(m, "k")
	cmd = press(m, "enter")
	assert.Nil(t, cmd, "returning to a card does not summarize again")

	press(m, "esc")
	cmd = press(m, "s")
	assert.NotNil(t, cmd, "s always summarizes")
}

func TestProjectSummary(t *testing.T) {
	m, _, _ := setupModel(t)

	cmd := press(m, "S")
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, state.DetailMode, m.UiState.Mode())
	assert.Contains(t, m.Detail.Summary, "# Board")
	assert.Contains(t, m.Detail.Summary, "3 tasks")
}

func TestTaskSavedSelectsTask(t *testing.T) {
	m, repo, projectID := setupModel(t)
	task := testutil.CreateTestTask(t, repo, projectID, models.StatusDone, "Delta")
	require.NoError(t, m.session.ctrl.Refresh(context.Background()))

	m.Update(taskSavedMsg{gen: m.session.gen, action: "created", task: &task})
	assert.Equal(t, 2, m.UiState.SelectedColumn())
	assert.Equal(t, "Delta", m.currentTask().Title)
	assert.True(t, m.NotificationState.HasAny())
}

func TestNotificationsExpire(t *testing.T) {
	m, _, _ := setupModel(t)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = time.Now })

	m.Update(notificationMsg{gen: m.session.gen, notification: board.Notification{Message: "hello"}})
	require.True(t, m.NotificationState.HasAny())

	m.Update(expireMsg{at: now.Add(notificationTTL + time.Second)})
	assert.False(t, m.NotificationState.HasAny())
}

func TestHelpAndQuit(t *testing.T) {
	m, _, _ := setupModel(t)

	press(m, "?")
	assert.Equal(t, state.HelpMode, m.UiState.Mode())
	assert.Contains(t, m.View().Content, "Keyboard Shortcuts")

	press(m, "x")
	assert.Equal(t, state.NormalMode, m.UiState.Mode())

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Nil(t, m.session)
}

func TestFormCancel(t *testing.T) {
	m, _, _ := setupModel(t)

	press(m, "n")
	require.Equal(t, state.TaskFormMode, m.UiState.Mode())
	require.NotNil(t, m.FormState.Form)
	assert.Equal(t, models.StatusTodo, m.FormState.Values.Status)

	press(m, "esc")
	assert.Equal(t, state.NormalMode, m.UiState.Mode())
	assert.Nil(t, m.FormState.Form)
}

func TestSubmitForm(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(m *Model)
		want   string
		nilCmd bool
	}{
		{
			name: "create",
			setup: func(m *Model) {
				m.openTaskForm(nil)
				m.FormState.Values.Title = "  Echo  "
				m.FormState.Values.Confirm = true
			},
			want: "created",
		},
		{
			name: "edit",
			setup: func(m *Model) {
				m.openTaskForm(m.currentTask())
				m.FormState.Values.Title = "Alpha 2"
				m.FormState.Values.Confirm = true
			},
			want: "updated",
		},
		{
			name: "not confirmed",
			setup: func(m *Model) {
				m.openTaskForm(nil)
				m.FormState.Values.Title = "Nope"
			},
			nilCmd: true,
		},
		{
			name: "delete",
			setup: func(m *Model) {
				m.openDeleteConfirm(m.currentTask())
				m.FormState.DeleteConfirm = true
			},
			want: "deleted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := setupModel(t)
			tt.setup(m)

			cmd := m.submitForm()
			if tt.nilCmd {
				assert.Nil(t, cmd)
				return
			}
			require.NotNil(t, cmd)
			saved := cmd().(taskSavedMsg)
			require.NoError(t, saved.err)
			assert.Equal(t, tt.want, saved.action)
		})
	}
}

func TestPreferredIndex(t *testing.T) {
	projects := []models.Project{{ID: "a", Name: "Home"}, {ID: "b", Name: "Work"}}
	tests := []struct {
		ref  string
		want int
	}{
		{"", 0},
		{"b", 1},
		{"work", 1},
		{"missing", 0},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, preferredIndex(projects, tt.ref))
		})
	}
}

func taskTitles(tasks []models.Task) []string {
	var out []string
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestStatusBarShowsSyncState(t *testing.T) {
	m, _, _ := setupModel(t)
	assert.Equal(t, "3 tasks", m.syncStatus())

	cmd := press(m, "space", "l", "space")
	require.NotNil(t, cmd)
	m.Update(cmd())
	assert.Equal(t, "3 tasks", m.syncStatus(), "settled moves are not shown")
}
