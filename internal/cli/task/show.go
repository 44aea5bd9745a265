package task

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/styles"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show task details",
		Long:  "Display a task with its column, position and description.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}

	cmd.Flags().String("id", "", "Task ID (can also be provided as positional argument)")
	addProjectFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := requireTaskID(cmd, args, cli.Formatter(cmd))
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	task, position, size, err := s.mustFind(id)
	if err != nil {
		return err
	}

	if s.formatter.Quiet {
		fmt.Println(task.ID)
		return nil
	}

	if s.formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":  true,
			"task":     task,
			"position": position,
		})
	}

	fmt.Println(styles.RenderTaskCard(task, position, size))
	return nil
}
