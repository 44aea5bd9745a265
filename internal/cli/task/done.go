package task

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// DoneCmd returns the task done subcommand
func DoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done [id]",
		Short: "Mark a task as done",
		Long:  "Move a task to the top of the Done column.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDone,
	}

	cmd.Flags().String("id", "", "Task ID (can also be provided as positional argument)")
	addProjectFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDone(cmd *cobra.Command, args []string) error {
	id, err := requireTaskID(cmd, args, cli.Formatter(cmd))
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	task, _, _, err := s.mustFind(id)
	if err != nil {
		return err
	}

	top := 0
	return settleMove(cmd, s, task, models.StatusDone, &top)
}
