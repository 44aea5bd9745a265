package components

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/tablero/internal/models"
)

// RenderTask renders a single task as a card
//
//	╭─────────────────────╮
//	│ {Task Title}        │
//	╰─────────────────────╯
//
// A selected card gets the selected border; a carried card is dimmed in
// place until it is dropped.
func RenderTask(task models.Task, width int, selected, carried bool) string {
	style := TaskStyle.Width(width)

	switch {
	case carried:
		style = style.
			BorderForeground(lipgloss.Color(scheme.Subtle)).
			Foreground(lipgloss.Color(scheme.Subtle)).
			Italic(true)
	case selected:
		style = style.
			BorderForeground(lipgloss.Color(scheme.SelectedBorder)).
			Bold(true)
	}

	return style.Render(truncate(task.Title, width-4))
}

// RenderDropMarker renders the slot a carried card would land in
func RenderDropMarker(title string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(scheme.DropMarker)).
		Foreground(lipgloss.Color(scheme.DropMarker)).
		Padding(0, 1).
		Render(truncate("▸ "+title, width-4))
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
