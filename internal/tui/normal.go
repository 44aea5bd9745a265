package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/tablero/internal/board"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/tui/components"
	"github.com/thenoetrevino/tablero/internal/tui/state"
)

// handleNormalKey dispatches keyboard input in normal mode
func (m *Model) handleNormalKey(msg tea.KeyPressMsg) tea.Cmd {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		m.Close()
		return tea.Quit
	case key.Matches(msg, k.ShowHelp):
		m.UiState.SetMode(state.HelpMode)
		return nil
	case key.Matches(msg, k.PrevProject):
		return m.switchProject(m.projectIdx - 1)
	case key.Matches(msg, k.NextProject):
		return m.switchProject(m.projectIdx + 1)
	}

	if m.session == nil {
		return nil
	}

	switch {
	case key.Matches(msg, k.PrevColumn):
		m.UiState.MoveColumn(-1, len(models.Statuses))
		m.clampSelection()
	case key.Matches(msg, k.NextColumn):
		m.UiState.MoveColumn(1, len(models.Statuses))
		m.clampSelection()
	case key.Matches(msg, k.PrevTask):
		m.UiState.MoveTask(-1, len(m.session.columns().Of(m.currentStatus())))
	case key.Matches(msg, k.NextTask):
		m.UiState.MoveTask(1, len(m.session.columns().Of(m.currentStatus())))
	case key.Matches(msg, k.Grab):
		m.grab()
	case key.Matches(msg, k.AddTask):
		return m.openTaskForm(nil)
	case key.Matches(msg, k.EditTask):
		if t := m.currentTask(); t != nil {
			return m.openTaskForm(t)
		}
	case key.Matches(msg, k.DeleteTask):
		if t := m.currentTask(); t != nil {
			return m.openDeleteConfirm(t)
		}
	case key.Matches(msg, k.ViewTask):
		if t := m.currentTask(); t != nil {
			return m.openDetail(t, false)
		}
	case key.Matches(msg, k.SummarizeTask):
		if t := m.currentTask(); t != nil {
			return m.openDetail(t, true)
		}
	case key.Matches(msg, k.SummarizeProject):
		return m.openProjectSummary()
	case key.Matches(msg, k.Refresh):
		m.session.ctrl.RequestRefresh()
		m.notify(board.Notification{Severity: board.SeverityInfo, Message: "Refreshing..."})
	}
	return nil
}

// grab picks up the card under the cursor
func (m *Model) grab() {
	t := m.currentTask()
	if t == nil {
		return
	}
	m.DragState.Grab(t.ID, board.Location{Status: t.Status, Index: m.UiState.SelectedTask()})
	m.UiState.SetMode(state.DragMode)
}

// handleDragKey carries the drop marker and ends the gesture
func (m *Model) handleDragKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.session == nil {
		m.DragState.Cancel()
		m.UiState.SetMode(state.NormalMode)
		return nil
	}
	k := m.keys
	lens := m.session.lens()
	switch {
	case key.Matches(msg, k.Quit):
		m.Close()
		return tea.Quit
	case key.Matches(msg, k.Cancel):
		return m.endDrag(m.DragState.Cancel())
	case key.Matches(msg, k.Grab), key.Matches(msg, k.ViewTask):
		return m.endDrag(m.DragState.Drop())
	case key.Matches(msg, k.PrevColumn):
		m.DragState.MoveColumn(-1, lens)
	case key.Matches(msg, k.NextColumn):
		m.DragState.MoveColumn(1, lens)
	case key.Matches(msg, k.PrevTask):
		m.DragState.MoveIndex(-1, lens)
	case key.Matches(msg, k.NextTask):
		m.DragState.MoveIndex(1, lens)
	}
	return nil
}

// endDrag hands the finished gesture to the board. The store already holds
// the new order when HandleDragEnd returns, so the cursor can follow it.
func (m *Model) endDrag(ev board.DragEvent) tea.Cmd {
	m.UiState.SetMode(state.NormalMode)
	move := board.DragAdapter{Mover: m.session.ctrl}.HandleDragEnd(ev)
	m.selectTask(ev.TaskID)
	if move == nil {
		return nil
	}
	return waitForMove(m.ctx, m.session.gen, ev.TaskID, move)
}

// dropIndex returns where the marker goes in column status, -1 for none
func (m *Model) dropIndex(status models.Status) int {
	if !m.DragState.Active() || m.DragState.Target().Status != status {
		return -1
	}
	return m.DragState.Target().Index
}

func (m *Model) openDetail(t *models.Task, summarize bool) tea.Cmd {
	m.Detail = DetailState{TaskID: t.ID, Title: t.Title, Body: t.Description}
	m.UiState.SetMode(state.DetailMode)
	// opening a card summarizes it once; s asks again on demand
	if summarize || m.summaries.Claim(t.ID) {
		m.Detail.Loading = true
		return summarizeTask(m.ctx, m.app, t.ID)
	}
	return nil
}

func (m *Model) openProjectSummary() tea.Cmd {
	p := m.session.project
	m.Detail = DetailState{TaskID: p.ID, Title: p.Name, Body: p.Description, Loading: true}
	m.UiState.SetMode(state.DetailMode)
	return summarizeProject(m.ctx, m.app, p.ID)
}

func (m *Model) handleDetailKey(msg tea.KeyPressMsg) tea.Cmd {
	k := m.keys
	switch {
	case key.Matches(msg, k.SummarizeTask) && m.session != nil && m.Detail.TaskID != m.session.project.ID:
		m.Detail.Loading = true
		m.Detail.SumError = nil
		return summarizeTask(m.ctx, m.app, m.Detail.TaskID)
	case key.Matches(msg, k.Cancel), key.Matches(msg, k.Quit), key.Matches(msg, k.ViewTask):
		m.Detail = DetailState{}
		m.UiState.SetMode(state.NormalMode)
	}
	return nil
}

// columnProps builds the render props of every column
func (m *Model) columnProps(width, height int) []components.ColumnProps {
	cols := m.session.columns()
	props := make([]components.ColumnProps, 0, len(models.Statuses))
	for i, status := range models.Statuses {
		p := components.ColumnProps{
			Status:       status,
			Tasks:        cols[i],
			Width:        width,
			Height:       height,
			Selected:     i == m.UiState.SelectedColumn() && !m.DragState.Active(),
			SelectedTask: m.UiState.SelectedTask(),
			DropIndex:    m.dropIndex(status),
		}
		if m.DragState.Active() {
			p.CarriedID = m.DragState.TaskID()
			p.Selected = m.DragState.Target().Status == status
			p.DropTitle = m.carriedTitle()
		}
		props = append(props, p)
	}
	return props
}

func (m *Model) carriedTitle() string {
	id := m.DragState.TaskID()
	for _, tasks := range m.session.columns() {
		for _, t := range tasks {
			if t.ID == id {
				return t.Title
			}
		}
	}
	return ""
}
