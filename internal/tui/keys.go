package tui

import (
	"charm.land/bubbles/v2/key"
	"github.com/thenoetrevino/tablero/internal/config"
)

// KeyMap holds the board's bindings, built from the configured mappings
type KeyMap struct {
	AddTask    key.Binding
	EditTask   key.Binding
	DeleteTask key.Binding
	ViewTask   key.Binding

	Grab   key.Binding
	Cancel key.Binding

	PrevColumn  key.Binding
	NextColumn  key.Binding
	PrevTask    key.Binding
	NextTask    key.Binding
	PrevProject key.Binding
	NextProject key.Binding

	SummarizeTask    key.Binding
	SummarizeProject key.Binding

	Refresh  key.Binding
	ShowHelp key.Binding
	Quit     key.Binding
}

// NewKeyMap builds bindings from km. Arrow keys always work for navigation.
func NewKeyMap(km config.KeyMappings) KeyMap {
	return KeyMap{
		AddTask:    key.NewBinding(key.WithKeys(km.AddTask), key.WithHelp(km.AddTask, "add task")),
		EditTask:   key.NewBinding(key.WithKeys(km.EditTask), key.WithHelp(km.EditTask, "edit task")),
		DeleteTask: key.NewBinding(key.WithKeys(km.DeleteTask), key.WithHelp(km.DeleteTask, "delete task")),
		ViewTask:   key.NewBinding(key.WithKeys(km.ViewTask), key.WithHelp(km.ViewTask, "view task")),

		Grab:   key.NewBinding(key.WithKeys(km.Grab), key.WithHelp(km.Grab, "grab / drop")),
		Cancel: key.NewBinding(key.WithKeys(km.Cancel), key.WithHelp(km.Cancel, "cancel")),

		PrevColumn:  key.NewBinding(key.WithKeys(km.PrevColumn, "left"), key.WithHelp(km.PrevColumn, "previous column")),
		NextColumn:  key.NewBinding(key.WithKeys(km.NextColumn, "right"), key.WithHelp(km.NextColumn, "next column")),
		PrevTask:    key.NewBinding(key.WithKeys(km.PrevTask, "up"), key.WithHelp(km.PrevTask, "previous task")),
		NextTask:    key.NewBinding(key.WithKeys(km.NextTask, "down"), key.WithHelp(km.NextTask, "next task")),
		PrevProject: key.NewBinding(key.WithKeys(km.PrevProject), key.WithHelp(km.PrevProject, "previous project")),
		NextProject: key.NewBinding(key.WithKeys(km.NextProject), key.WithHelp(km.NextProject, "next project")),

		SummarizeTask:    key.NewBinding(key.WithKeys(km.SummarizeTask), key.WithHelp(km.SummarizeTask, "summarize task")),
		SummarizeProject: key.NewBinding(key.WithKeys(km.SummarizeProject), key.WithHelp(km.SummarizeProject, "summarize project")),

		Refresh:  key.NewBinding(key.WithKeys(km.Refresh), key.WithHelp(km.Refresh, "refresh")),
		ShowHelp: key.NewBinding(key.WithKeys(km.ShowHelp), key.WithHelp(km.ShowHelp, "help")),
		Quit:     key.NewBinding(key.WithKeys(km.Quit, "ctrl+c"), key.WithHelp(km.Quit, "quit")),
	}
}
