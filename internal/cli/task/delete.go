package task

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Long:  "Delete a task by ID (requires confirmation unless --force or --quiet).",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDelete,
	}

	cmd.Flags().String("id", "", "Task ID (can also be provided as positional argument)")
	cmd.Flags().Bool("force", false, "Skip confirmation")
	addProjectFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)
	force, _ := cmd.Flags().GetBool("force")

	id, err := requireTaskID(cmd, args, formatter)
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

	if !force && !formatter.Quiet {
		if !cli.Confirm(fmt.Sprintf("Delete task '%s'?", task.Title), cmd.InOrStdin()) {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := s.board.DeleteTask(ctx, id); err != nil {
		return formatter.Fail("DELETE_ERROR", err, "")
	}

	if formatter.Quiet {
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"task_id": id,
		})
	}

	fmt.Printf("✓ Task '%s' deleted successfully\n", task.Title)
	return nil
}
