// Package components provides reusable UI components and styles.
// Call InitStyles() before use to initialize all style variables.
package components

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/tablero/internal/config/colors"
	"github.com/thenoetrevino/tablero/internal/models"
)

var (
	activeTabBorder = lipgloss.Border{
		Top:         "─",
		Bottom:      " ",
		Left:        "│",
		Right:       "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "┘",
		BottomRight: "└",
	}

	tabBorder = lipgloss.Border{
		Top:         "─",
		Bottom:      "─",
		Left:        "│",
		Right:       "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "┴",
		BottomRight: "┴",
	}

	// TabStyle defines inactive tabs
	TabStyle lipgloss.Style

	// ActiveTabStyle defines the selected tab
	ActiveTabStyle lipgloss.Style

	// TabGapStyle fills the remaining space after tabs
	TabGapStyle lipgloss.Style

	// ColumnStyle defines the appearance of board columns
	ColumnStyle lipgloss.Style

	// TaskStyle defines the appearance of individual tasks as cards
	TaskStyle lipgloss.Style

	// TitleStyle defines the appearance of titles
	TitleStyle lipgloss.Style

	// SubtleStyle is for hints and empty states
	SubtleStyle lipgloss.Style

	// FormBoxStyle frames forms and the detail view
	FormBoxStyle lipgloss.Style

	scheme colors.ColorScheme
)

// InitStyles initializes all styles with the given color scheme
func InitStyles(c colors.ColorScheme) {
	scheme = c

	TabStyle = lipgloss.NewStyle().
		Border(tabBorder, true).
		BorderForeground(lipgloss.Color(c.ColumnBorder)).
		Foreground(lipgloss.Color(c.Subtle)).
		Padding(0, 1)

	ActiveTabStyle = TabStyle.
		Border(activeTabBorder, true).
		Foreground(lipgloss.Color(c.Title)).
		Bold(true)

	TabGapStyle = lipgloss.NewStyle().
		Border(lipgloss.Border{Bottom: "─"}, false, false, true, false).
		BorderForeground(lipgloss.Color(c.ColumnBorder))

	ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.ColumnBorder)).
		Padding(0, 1)

	TaskStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.TaskBorder)).
		Foreground(lipgloss.Color(c.Normal)).
		Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Title))

	SubtleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Subtle)).
		Italic(true)

	FormBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.Accent)).
		Padding(1, 2)
}

// Scheme returns the color scheme styles were initialized with
func Scheme() colors.ColorScheme {
	return scheme
}

// StatusColor returns the accent color of a column
func StatusColor(s models.Status) string {
	switch s {
	case models.StatusInProgress:
		return scheme.InProgress
	case models.StatusDone:
		return scheme.Done
	default:
		return scheme.Todo
	}
}
