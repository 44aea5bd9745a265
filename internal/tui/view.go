package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/tablero/internal/board"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/tui/components"
	"github.com/thenoetrevino/tablero/internal/tui/notifications"
	"github.com/thenoetrevino/tablero/internal/tui/state"
)

const (
	tabBarHeight    = 3
	statusBarHeight = 1
	minColumnWidth  = 20
)

// View renders the current state of the application
// This implements the "View" part of the Model-View-Update pattern
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	// Wait for terminal size to be initialized
	if m.UiState.Width() == 0 {
		view.Content = "Loading..."
		return view
	}

	base := m.viewBoard()
	layers := []*lipgloss.Layer{lipgloss.NewLayer(base)}
	if modal := m.modal(); modal != "" {
		layers = append(layers, centeredLayer(modal, m.UiState.Width(), m.UiState.Height()))
	}
	view.Content = lipgloss.NewCanvas(layers...).Render()
	return view
}

// centeredLayer positions content at the center of the screen
func centeredLayer(content string, screenWidth, screenHeight int) *lipgloss.Layer {
	x := max((screenWidth-lipgloss.Width(content))/2, 0)
	y := max((screenHeight-lipgloss.Height(content))/2, 0)
	return lipgloss.NewLayer(content).X(x).Y(y).Z(1)
}

// viewBoard renders tabs, the three columns and the status bar
func (m *Model) viewBoard() string {
	width, height := m.UiState.Width(), m.UiState.Height()

	if m.session == nil {
		msg := "Loading board..."
		if m.loadErr != nil {
			msg = "Error: " + m.loadErr.Error()
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.SubtleStyle.Render(msg))
	}

	names := make([]string, len(m.projects))
	for i, p := range m.projects {
		names[i] = p.Name
	}
	tabs := components.RenderTabs(components.TabsProps{
		Names:        names,
		Selected:     m.projectIdx,
		Width:        width,
		Notification: m.inlineNotification(),
	})

	columnWidth := max(width/len(models.Statuses), minColumnWidth)
	columnHeight := max(height-tabBarHeight-statusBarHeight, 5)
	var columns []string
	for _, p := range m.columnProps(columnWidth, columnHeight) {
		columns = append(columns, components.RenderColumn(p))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	status := components.RenderStatusBar(components.StatusBarProps{
		Width: width,
		Left:  m.statusHint(),
		Right: m.syncStatus(),
	})
	return lipgloss.JoinVertical(lipgloss.Left, tabs, row, status)
}

// syncStatus summarizes the board and how its moves have settled
func (m *Model) syncStatus() string {
	parts := []string{fmt.Sprintf("%d tasks", m.session.columns().Len())}
	snap := m.session.ctrl.Metrics().Snapshot()
	if snap.InFlight > 0 {
		parts = append(parts, fmt.Sprintf("syncing %d", snap.InFlight))
	}
	if snap.MovesRolledBack > 0 {
		parts = append(parts, fmt.Sprintf("%d rolled back", snap.MovesRolledBack))
	}
	return strings.Join(parts, " · ")
}

// inlineNotification shows the newest banner in the tab bar
func (m *Model) inlineNotification() string {
	all := m.NotificationState.All()
	if len(all) == 0 {
		return ""
	}
	return notifications.RenderInline(all[len(all)-1].Notification, components.Scheme())
}

func (m *Model) statusHint() string {
	k := m.cfg.KeyMappings
	switch m.UiState.Mode() {
	case state.DragMode:
		target := m.DragState.Target()
		return fmt.Sprintf("CARRYING → %s #%d  %s/%s drop  %s cancel",
			target.Status.Label(), target.Index+1, k.Grab, k.ViewTask, k.Cancel)
	default:
		return fmt.Sprintf("%s grab  %s add  %s edit  %s delete  %s help  %s quit",
			k.Grab, k.AddTask, k.EditTask, k.DeleteTask, k.ShowHelp, k.Quit)
	}
}

// modal renders the overlay for the current mode, empty for none
func (m *Model) modal() string {
	width := max(m.UiState.Width()/2, 40)
	switch m.UiState.Mode() {
	case state.TaskFormMode, state.DeleteConfirmMode:
		if m.FormState.Form == nil {
			return ""
		}
		title := "Edit Task"
		if m.UiState.Mode() == state.DeleteConfirmMode {
			title = "Delete Task"
		} else if m.FormState.EditingID == "" {
			title = "New Task"
		}
		return components.FormBoxStyle.Width(width).
			Render(components.TitleStyle.Render(title) + "\n\n" + m.FormState.Form.View())
	case state.DetailMode:
		return components.FormBoxStyle.Width(width).Render(m.viewDetail(width - 6))
	case state.HelpMode:
		return components.FormBoxStyle.Width(50).Render(m.helpText())
	}
	return ""
}

func (m *Model) viewDetail(width int) string {
	var b strings.Builder
	b.WriteString(components.TitleStyle.Render(m.Detail.Title))
	b.WriteString("\n\n")
	b.WriteString(components.RenderMarkdown(components.DescriptionProps{Markdown: m.Detail.Body, Width: width}))
	b.WriteString("\n")
	b.WriteString(components.TitleStyle.Render("Summary"))
	b.WriteString("\n")
	switch {
	case m.Detail.Loading:
		b.WriteString(components.SubtleStyle.Render("Summarizing..."))
	case m.Detail.SumError != nil:
		b.WriteString(notifications.RenderInline(board.Notification{
			Severity: board.SeverityError,
			Message:  m.Detail.SumError.Error(),
		}, components.Scheme()))
	default:
		b.WriteString(components.RenderMarkdown(components.DescriptionProps{Markdown: m.Detail.Summary, Width: width}))
	}
	return b.String()
}

// helpText creates help text based on current key mappings
func (m *Model) helpText() string {
	km := m.cfg.KeyMappings
	return fmt.Sprintf(`TABLERO - Keyboard Shortcuts

TASKS
  %s     Add new task
  %s     Edit selected task
  %s     Delete selected task
  %s     View task details

DRAG
  %s     Grab card / drop it
  %s     Cancel drag
  %s %s   Carry to previous / next column
  %s %s   Carry up / down

NAVIGATION
  %s %s   Previous / next column
  %s %s   Previous / next task
  %s %s   Previous / next project

ASSISTANT
  %s     Summarize task
  %s     Summarize project

OTHER
  %s     Refresh from server
  %s     Toggle help
  %s     Quit

Press any key to close`,
		km.AddTask, km.EditTask, km.DeleteTask, km.ViewTask,
		km.Grab, km.Cancel, km.PrevColumn, km.NextColumn, km.PrevTask, km.NextTask,
		km.PrevColumn, km.NextColumn, km.PrevTask, km.NextTask, km.PrevProject, km.NextProject,
		km.SummarizeTask, km.SummarizeProject,
		km.Refresh, km.ShowHelp, km.Quit)
}
