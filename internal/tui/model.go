// Package tui is the interactive board: three columns of cards that can be
// grabbed and carried between and within columns with the keyboard.
package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"
	"github.com/thenoetrevino/tablero/internal/ai"
	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/tui/components"
	"github.com/thenoetrevino/tablero/internal/tui/huhforms"
	"github.com/thenoetrevino/tablero/internal/tui/state"
)

// notificationTTL is how long a banner stays up
const notificationTTL = 5 * time.Second

// timeNow is replaced in tests
var timeNow = time.Now

// FormState holds the open form and the values bound to it
type FormState struct {
	Form   *huh.Form
	Values *huhforms.TaskFormValues
	// EditingID is empty when the form creates a task
	EditingID string
	// DeleteID is the task the confirm form is about
	DeleteID      string
	DeleteConfirm bool
}

func (f *FormState) clear() {
	*f = FormState{}
}

// DetailState is the task or board shown in the detail overlay
type DetailState struct {
	TaskID   string
	Title    string
	Body     string
	Summary  string
	Loading  bool
	SumError error
}

// Model represents the application state for the TUI
type Model struct {
	ctx    context.Context
	app    *app.App
	cfg    *config.Config
	keys   KeyMap
	logger *slog.Logger

	UiState           *state.UIState
	DragState         *state.DragState
	NotificationState *state.NotificationState
	FormState         FormState
	Detail            DetailState

	projects   []models.Project
	projectIdx int
	// preferred is resolved against the project list once it loads
	preferred string

	session *boardSession
	gen     int
	loadErr error

	summaries ai.OnceGuard
}

// New creates the board model. projectID picks the first project to show;
// empty means the configured one, then the first.
func New(ctx context.Context, a *app.App, projectID string) *Model {
	cfg := a.Config()
	components.InitStyles(cfg.ColorScheme)
	if projectID == "" {
		projectID = cfg.ProjectID
	}
	return &Model{
		ctx:               ctx,
		app:               a,
		cfg:               cfg,
		keys:              NewKeyMap(cfg.KeyMappings),
		logger:            slog.Default().With("component", "tui"),
		UiState:           state.NewUIState(),
		DragState:         state.NewDragState(),
		NotificationState: state.NewNotificationState(notificationTTL),
		preferred:         projectID,
	}
}

// Init loads the project list; the first board opens once it arrives
func (m *Model) Init() tea.Cmd {
	return loadProjects(m.ctx, m.app)
}

// Close releases the open board. Call after the program exits.
func (m *Model) Close() {
	m.session.close()
	m.session = nil
}

// Project returns the project on screen, nil before the first board loads
func (m *Model) Project() *models.Project {
	if m.session == nil {
		return nil
	}
	p := m.session.project
	return &p
}

// currentStatus is the status of the column under the cursor
func (m *Model) currentStatus() models.Status {
	return models.Statuses[m.UiState.SelectedColumn()]
}

// currentTask returns the card under the cursor, nil for an empty column
func (m *Model) currentTask() *models.Task {
	if m.session == nil {
		return nil
	}
	tasks := m.session.columns().Of(m.currentStatus())
	i := m.UiState.SelectedTask()
	if i < 0 || i >= len(tasks) {
		return nil
	}
	t := tasks[i]
	return &t
}

// clampSelection keeps the cursor on a card after the columns change
func (m *Model) clampSelection() {
	if m.session == nil {
		m.UiState.ResetSelection()
		return
	}
	l := m.session.lens()
	m.UiState.Clamp(l[:])
}

// selectTask puts the cursor on taskID if it is on the board
func (m *Model) selectTask(taskID string) {
	if m.session == nil {
		return
	}
	cols := m.session.columns()
	for c, tasks := range cols {
		for i, t := range tasks {
			if t.ID == taskID {
				m.UiState.Select(c, i)
				return
			}
		}
	}
	m.clampSelection()
}

// switchProject closes the current board and opens the project at idx
func (m *Model) switchProject(idx int) tea.Cmd {
	if len(m.projects) == 0 {
		return nil
	}
	idx = (idx%len(m.projects) + len(m.projects)) % len(m.projects)
	m.projectIdx = idx
	m.gen++
	m.session.close()
	m.session = nil
	m.summaries.Reset()
	m.DragState.Cancel()
	m.Detail = DetailState{}
	m.UiState.SetMode(state.NormalMode)
	m.UiState.ResetSelection()
	return openBoard(m.ctx, m.app, m.projects[idx], m.gen)
}

// preferredIndex finds the project named by ref, by id or name
func preferredIndex(projects []models.Project, ref string) int {
	if ref == "" {
		return 0
	}
	for i, p := range projects {
		if p.ID == ref {
			return i
		}
	}
	for i, p := range projects {
		if strings.EqualFold(p.Name, ref) {
			return i
		}
	}
	return 0
}
