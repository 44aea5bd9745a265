package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/tui/components"
	"github.com/thenoetrevino/tablero/internal/tui/huhforms"
	"github.com/thenoetrevino/tablero/internal/tui/state"
)

// descriptionLines is the height of the description field
const descriptionLines = 6

// openTaskForm opens the create form, or the edit form for t
func (m *Model) openTaskForm(t *models.Task) tea.Cmd {
	values := &huhforms.TaskFormValues{Status: m.currentStatus()}
	editingID := ""
	if t != nil {
		values.Title = t.Title
		values.Description = t.Description
		values.Status = t.Status
		editingID = t.ID
	}

	form := huhforms.CreateTaskForm(values, t == nil, descriptionLines).
		WithTheme(huhforms.CreateTheme(components.Scheme()))
	m.FormState = FormState{Form: form, Values: values, EditingID: editingID}
	m.UiState.SetMode(state.TaskFormMode)
	return form.Init()
}

func (m *Model) openDeleteConfirm(t *models.Task) tea.Cmd {
	m.FormState = FormState{DeleteID: t.ID}
	form := huhforms.CreateConfirmForm(fmt.Sprintf("Delete '%s'?", t.Title), &m.FormState.DeleteConfirm).
		WithTheme(huhforms.CreateTheme(components.Scheme()))
	m.FormState.Form = form
	m.UiState.SetMode(state.DeleteConfirmMode)
	return form.Init()
}

func (m *Model) closeForm() {
	m.FormState.clear()
	m.UiState.SetMode(state.NormalMode)
}

func (m *Model) handleFormKey(msg tea.KeyPressMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Cancel) {
		m.closeForm()
		return nil
	}
	return m.updateForm(msg)
}

// updateForm forwards msg to the open form and acts once it finishes
func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	model, cmd := m.FormState.Form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.FormState.Form = f
	}

	switch m.FormState.Form.State {
	case huh.StateAborted:
		m.closeForm()
		return nil
	case huh.StateCompleted:
		save := m.submitForm()
		m.closeForm()
		return save
	}
	return cmd
}

// submitForm turns a completed form into a board command
func (m *Model) submitForm() tea.Cmd {
	if m.session == nil {
		return nil
	}
	if m.UiState.Mode() == state.DeleteConfirmMode {
		if !m.FormState.DeleteConfirm {
			return nil
		}
		return deleteTask(m.ctx, m.session, m.FormState.DeleteID)
	}

	v := m.FormState.Values
	if v == nil || !v.Confirm {
		return nil
	}
	title := strings.TrimSpace(v.Title)
	description := strings.TrimSpace(v.Description)

	if m.FormState.EditingID == "" {
		return createTask(m.ctx, m.session, models.CreateTaskRequest{
			ProjectID:   m.session.project.ID,
			Title:       title,
			Description: description,
			Status:      v.Status,
		})
	}
	return updateTask(m.ctx, m.session, m.FormState.EditingID, models.UpdateTaskRequest{
		Title:       &title,
		Description: &description,
	})
}
