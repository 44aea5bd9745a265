package components

import (
	"strings"

	"charm.land/lipgloss/v2"
)

type StatusBarProps struct {
	Width int
	// Left is the mode or hint text, Right the sync indicator
	Left  string
	Right string
}

// RenderStatusBar renders a status bar with left and right aligned text
func RenderStatusBar(props StatusBarProps) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Subtle))

	leftRendered := style.Render(props.Left)
	rightRendered := style.Render(props.Right)

	gapWidth := max(props.Width-lipgloss.Width(leftRendered)-lipgloss.Width(rightRendered), 1)
	gap := strings.Repeat(" ", gapWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftRendered, gap, rightRendered)
}
