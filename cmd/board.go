package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/launcher"
)

// BoardCmd opens the interactive board
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board",
		Long: `Open the interactive board.

Grab a card with space, carry it with h/j/k/l and drop it with space or
enter. Press ? inside the board for all key bindings.`,
		Args: cobra.NoArgs,
		RunE: runBoard,
	}
	cmd.Flags().String("project", "", "Project to open (ID or name)")
	return cmd
}

func runBoard(cmd *cobra.Command, _ []string) error {
	ref, _ := cmd.Flags().GetString("project")
	cfg, err := cli.ConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	return launcher.Launch(cmd.Context(), cfg, strings.TrimSpace(ref))
}
