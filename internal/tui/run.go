package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/tablero/internal/app"
)

// Run shows the board until the user quits or ctx is cancelled
func Run(ctx context.Context, a *app.App, projectID string) error {
	model := New(ctx, a, projectID)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
