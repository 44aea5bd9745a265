// Package notifications renders board notifications as banners
package notifications

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/tablero/internal/board"
	"github.com/thenoetrevino/tablero/internal/config/colors"
)

type style struct {
	icon       string
	foreground string
	background string
}

func styleFor(severity board.Severity, c colors.ColorScheme) style {
	switch severity {
	case board.SeverityWarning:
		return style{icon: "⚠", foreground: c.WarningFg, background: c.WarningBg}
	case board.SeverityError:
		return style{icon: "✕", foreground: c.ErrorFg, background: c.ErrorBg}
	default:
		return style{icon: "🔔", foreground: c.InfoFg, background: c.InfoBg}
	}
}

// RenderInline renders a compact single line notification (for the tab bar)
func RenderInline(n board.Notification, c colors.ColorScheme) string {
	s := styleFor(n.Severity, c)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.foreground)).
		Background(lipgloss.Color(s.background)).
		Padding(0, 1).
		Render(s.icon + " " + n.Message)
}
