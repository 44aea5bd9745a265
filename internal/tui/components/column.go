package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/tablero/internal/models"
)

// taskCardHeight is the rendered height of one card including its border
const taskCardHeight = 3

// ColumnProps describes one column to render
type ColumnProps struct {
	Status   models.Status
	Tasks    []models.Task
	Width    int
	Height   int
	Selected bool
	// SelectedTask is the cursor index when Selected
	SelectedTask int
	// CarriedID is the card being dragged, if any
	CarriedID string
	// DropIndex is where the marker goes in this column, -1 for none
	DropIndex int
	DropTitle string
}

// RenderColumn renders a complete column with its title and tasks
//
// Layout:
//
//	{Column Name} ({count})
//	▲ (if scrolled down)
//	{Task 1}
//	{Task 2}
//	...
//	▼ (if more tasks below)
func RenderColumn(p ColumnProps) string {
	inner := max(p.Width-4, 8)

	header := TitleStyle.
		Foreground(lipgloss.Color(StatusColor(p.Status))).
		Render(fmt.Sprintf("%s (%d)", p.Status.Label(), len(p.Tasks)))

	// Cards without the carried one, so the marker index lines up with the
	// index the move will use.
	var cards []string
	cursor := 0
	for i, t := range p.Tasks {
		carried := t.ID == p.CarriedID
		if p.Selected && i == p.SelectedTask {
			cursor = len(cards)
		}
		cards = append(cards, RenderTask(t, inner, p.Selected && i == p.SelectedTask && p.CarriedID == "", carried))
	}
	if p.DropIndex >= 0 {
		cards, cursor = insertMarker(cards, p.Tasks, p.CarriedID, p.DropIndex, RenderDropMarker(p.DropTitle, inner))
	}

	var content string
	if len(cards) == 0 {
		content = SubtleStyle.Render("No tasks")
	} else {
		content = visibleCards(cards, cursor, p.Height-4)
	}

	style := ColumnStyle.Width(p.Width)
	if p.Height > 0 {
		style = style.Height(p.Height)
	}
	if p.Selected {
		style = style.BorderForeground(lipgloss.Color(scheme.Accent))
	}
	return style.Render(header + "\n" + content)
}

// insertMarker places the marker before the dropIndex-th card not counting
// the carried card, and returns where it went.
func insertMarker(cards []string, tasks []models.Task, carriedID string, dropIndex int, marker string) ([]string, int) {
	at := len(cards)
	seen := 0
	for i, t := range tasks {
		if t.ID == carriedID {
			continue
		}
		if seen == dropIndex {
			at = i
			break
		}
		seen++
	}
	out := make([]string, 0, len(cards)+1)
	out = append(out, cards[:at]...)
	out = append(out, marker)
	return append(out, cards[at:]...), at
}

// visibleCards windows the cards around cursor to fit height lines
func visibleCards(cards []string, cursor, height int) string {
	fit := max(height/taskCardHeight, 1)
	if len(cards) <= fit || height <= 0 {
		return strings.Join(cards, "\n")
	}

	start := max(0, min(cursor-fit/2, len(cards)-fit))
	end := start + fit

	var b strings.Builder
	if start > 0 {
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("▲ %d more", start)))
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(cards[start:end], "\n"))
	if end < len(cards) {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("▼ %d more", len(cards)-end)))
	}
	return b.String()
}
