package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

const (
	// maxTabName is the widest a project name may render in its tab
	maxTabName = 20
	// overflowWidth is the room kept for each "‹N" / "N›" marker
	overflowWidth = 4
)

// TabsProps describes the project tab bar
type TabsProps struct {
	Names        []string
	Selected     int
	Width        int
	Notification string
}

// RenderTabs renders one tab per project with the selected one raised.
// When the tabs don't fit, a window around the selected tab is shown and
// the hidden ones are counted at either end.
//
// Layout:
//
//	    ╭──────╮ ╭──────╮                    [Notification]
//	‹2  │ Tab3 │ │ Tab4 │  1›────────────────
//	       active   inactive
func RenderTabs(p TabsProps) string {
	rendered := make([]string, len(p.Names))
	widths := make([]int, len(p.Names))
	for i, name := range p.Names {
		name = ansi.Truncate(name, maxTabName, "…")
		if i == p.Selected {
			rendered[i] = ActiveTabStyle.Render(name)
		} else {
			rendered[i] = TabStyle.Render(name)
		}
		widths[i] = lipgloss.Width(rendered[i])
	}

	// The notification sits at the right end; the 2 keeps the gap's corner
	notificationWidth := lipgloss.Width(p.Notification)
	lo, hi := tabWindow(widths, p.Selected, p.Width-notificationWidth-2)

	var parts []string
	if lo > 0 {
		parts = append(parts, TabGapStyle.Render(fmt.Sprintf("‹%d ", lo)))
	}
	parts = append(parts, rendered[lo:hi]...)
	if hi < len(rendered) {
		parts = append(parts, TabGapStyle.Render(fmt.Sprintf(" %d›", len(rendered)-hi)))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Bottom, parts...)

	// Whatever is left becomes the underline running to the notification
	gapWidth := max(p.Width-lipgloss.Width(row)-notificationWidth-2, 0)
	gap := TabGapStyle.Render(strings.Repeat(" ", gapWidth))

	if p.Notification != "" {
		return lipgloss.JoinHorizontal(lipgloss.Bottom, row, gap, p.Notification)
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, row, gap)
}

// tabWindow returns the half-open range of tabs to draw. It grows outwards
// from selected, alternating right and left, until the next tab would not fit.
func tabWindow(widths []int, selected, room int) (int, int) {
	total := 0
	for _, w := range widths {
		total += w
	}
	if len(widths) == 0 || total <= room {
		return 0, len(widths)
	}
	selected = min(max(selected, 0), len(widths)-1)

	room -= 2 * overflowWidth
	lo, hi := selected, selected+1
	used := widths[selected]
	for {
		grew := false
		if hi < len(widths) && used+widths[hi] <= room {
			used += widths[hi]
			hi++
			grew = true
		}
		if lo > 0 && used+widths[lo-1] <= room {
			lo--
			used += widths[lo]
			grew = true
		}
		if !grew {
			return lo, hi
		}
	}
}
