// Package use holds all cli commands related to setting contextual information
// e.g., tablero use ...
package use

import (
	"github.com/spf13/cobra"
)

// UseCmd returns the use parent command
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use",
		Short: "Manage contextual settings for the current shell",
		Long: `Set and manage contextual information for the current shell session.

The 'use' command sets context that applies to subsequent commands,
so flags like --project don't have to be repeated.

Examples:
  eval $(tablero use project "Backend API") # Use a project by name
  eval $(tablero use project --clear)       # Clear project context
  tablero use project --show                # Show current project`,
	}

	cmd.AddCommand(ProjectCmd())

	return cmd
}
