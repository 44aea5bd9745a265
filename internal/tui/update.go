package tui

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/tablero/internal/board"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/tui/state"
)

// Update handles all messages and updates the model accordingly
// This implements the "Update" part of the Model-View-Update pattern
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.UiState.SetSize(msg.Width, msg.Height)
		return m, nil

	case projectsLoadedMsg:
		return m, m.handleProjectsLoaded(msg)

	case boardOpenedMsg:
		return m, m.handleBoardOpened(msg)

	case boardChangedMsg:
		if m.session == nil || msg.gen != m.session.gen {
			return m, nil
		}
		m.clampSelection()
		return m, waitForChange(m.session)

	case notificationMsg:
		if m.session == nil || msg.gen != m.session.gen {
			return m, nil
		}
		m.notify(msg.notification)
		return m, tea.Batch(waitForNotification(m.session), expireAfter(notificationTTL))

	case expireMsg:
		m.NotificationState.Expire(msg.at)
		return m, nil

	case moveSettledMsg:
		m.handleMoveSettled(msg)
		return m, nil

	case taskSavedMsg:
		m.handleTaskSaved(msg)
		return m, nil

	case summaryMsg:
		m.handleSummary(msg)
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}

	// huh forms run on their own internal messages
	if m.FormState.Form != nil {
		return m, m.updateForm(msg)
	}
	return m, nil
}

func (m *Model) handleProjectsLoaded(msg projectsLoadedMsg) tea.Cmd {
	if msg.err != nil {
		m.loadErr = msg.err
		return nil
	}
	if len(msg.projects) == 0 {
		m.loadErr = fmt.Errorf("no projects: create one with 'tablero project create'")
		return nil
	}
	m.projects = msg.projects
	return m.switchProject(preferredIndex(m.projects, m.preferred))
}

func (m *Model) handleBoardOpened(msg boardOpenedMsg) tea.Cmd {
	if msg.err != nil {
		m.loadErr = msg.err
		m.logger.Error("failed to open board", "error", msg.err)
		return nil
	}
	if msg.session.gen != m.gen {
		// the user switched again while this board was loading
		msg.session.close()
		return nil
	}
	m.loadErr = nil
	m.session = msg.session
	m.clampSelection()
	return tea.Batch(waitForChange(m.session), waitForNotification(m.session))
}

func (m *Model) notify(n board.Notification) {
	m.NotificationState.Add(n, timeNow())
}

func (m *Model) handleMoveSettled(msg moveSettledMsg) {
	if m.session == nil || msg.gen != m.session.gen {
		return
	}
	log := m.logger.With("task_id", msg.taskID, "state", msg.state.String())
	switch msg.state {
	case board.MoveRejected:
		// rejected moves never reached the authority, so nothing else reports them
		log.Warn("move rejected", "error", msg.err)
		m.notify(board.Notification{Severity: board.SeverityWarning, Message: rejectedMessage(msg.err)})
	case board.MoveRolledBack:
		log.Info("move rolled back", "error", msg.err)
	default:
		log.Debug("move settled")
	}
}

func rejectedMessage(err error) string {
	if errors.Is(err, models.ErrTaskNotFound) {
		return "That task is no longer on the board"
	}
	return "Move was not applied"
}

func (m *Model) handleTaskSaved(msg taskSavedMsg) {
	if m.session == nil || msg.gen != m.session.gen {
		return
	}
	if msg.err != nil {
		// the controller already raised a notification
		m.logger.Warn("task save failed", "action", msg.action, "error", msg.err)
		return
	}
	if msg.task != nil {
		m.selectTask(msg.task.ID)
	} else {
		m.clampSelection()
	}
	title := ""
	if msg.task != nil {
		title = fmt.Sprintf(" '%s'", msg.task.Title)
	}
	m.notify(board.Notification{Severity: board.SeverityInfo, Message: fmt.Sprintf("Task%s %s", title, msg.action)})
}

func (m *Model) handleSummary(msg summaryMsg) {
	if m.Detail.TaskID != msg.key {
		return
	}
	m.Detail.Loading = false
	if msg.err != nil {
		m.Detail.SumError = msg.err
		return
	}
	m.Detail.Summary = msg.markdown
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch m.UiState.Mode() {
	case state.DragMode:
		return m.handleDragKey(msg)
	case state.TaskFormMode, state.DeleteConfirmMode:
		return m.handleFormKey(msg)
	case state.DetailMode:
		return m.handleDetailKey(msg)
	case state.HelpMode:
		m.UiState.SetMode(state.NormalMode)
		return nil
	default:
		return m.handleNormalKey(msg)
	}
}
