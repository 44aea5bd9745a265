// Package task holds all cli commands related to tasks
//
// e.g., tablero task ...
package task

import (
	"github.com/spf13/cobra"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
		Long: `Manage the tasks of a project board. Every command works on one project,
given by --project (id or name), TABLERO_PROJECT_ID, or the first project.`,
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(DoneCmd())

	return cmd
}
