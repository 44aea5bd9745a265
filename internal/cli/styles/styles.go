// Package styles renders CLI output with the configured color scheme
package styles

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/tablero/internal/config/colors"
	"github.com/thenoetrevino/tablero/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 72

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Status:"
	ValueStyle    lipgloss.Style
	SectionStyle  lipgloss.Style // For column headers

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style

	scheme colors.ColorScheme
)

func init() {
	Init(*colors.Default())
}

// Init initializes all CLI styles with the given color scheme
func Init(c colors.ColorScheme) {
	scheme = c

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Normal))

	SectionStyle = lipgloss.NewStyle().
		Bold(true).
		MarginTop(1)

	SuccessStyle = chip(c.InfoFg, c.InfoBg)
	ErrorStyle = chip(c.ErrorFg, c.ErrorBg)
	WarningStyle = chip(c.WarningFg, c.WarningBg)
}

func chip(fg, bg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(bg)).
		Padding(0, 1)
}

// StatusColor returns the scheme color of a column
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

// ColoredText renders text with a hex color
func ColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// RenderStatusChip renders a status as "[In Progress]" in its column color
func RenderStatusChip(s models.Status) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(StatusColor(s))).
		Bold(true).
		Render("[" + s.Label() + "]")
}

// RenderColumnHeader renders "Label (n)" for a column listing
func RenderColumnHeader(s models.Status, n int) string {
	return SectionStyle.
		Foreground(lipgloss.Color(StatusColor(s))).
		Render(fmt.Sprintf("%s (%d)", s.Label(), n))
}

// RenderTaskLine renders one task of a listing
// Format: "  1. Title  id"
func RenderTaskLine(position int, t models.Task) string {
	return fmt.Sprintf("  %d. %s  %s",
		position+1,
		ValueStyle.Render(t.Title),
		SubtitleStyle.Render(t.ID))
}

// RenderTaskCard renders the full view of a task
func RenderTaskCard(t models.Task, position, size int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(t.Title))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(t.ID))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s  %s\n",
		LabelStyle.Render("Status:"),
		RenderStatusChip(t.Status),
		SubtitleStyle.Render(fmt.Sprintf("card %d of %d", position+1, size)))
	fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Created:"), ValueStyle.Render(t.CreatedAt.Format("2006-01-02 15:04")))
	fmt.Fprintf(&b, "%s %s", LabelStyle.Render("Updated:"), ValueStyle.Render(t.UpdatedAt.Format("2006-01-02 15:04")))
	if t.Description != "" {
		b.WriteString("\n")
		b.WriteString(SectionStyle.Render("Description"))
		b.WriteString("\n")
		b.WriteString(ValueStyle.Render(t.Description))
	}
	return CardStyle.Render(b.String())
}
