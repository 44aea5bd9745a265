package task

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a task",
		Long: `Change a task's title, description or column. Changing the column with
--status moves the task to the bottom of that column; use 'tablero task move'
to place it at a position.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("id", "", "Task ID (can also be provided as positional argument)")
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description (use - to read from stdin)")
	cmd.Flags().String("status", "", "New column (TODO, IN_PROGRESS, DONE)")
	addProjectFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	id, err := requireTaskID(cmd, args, formatter)
	if err != nil {
		return err
	}

	var req models.UpdateTaskRequest
	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		req.Title = &title
	}
	if cmd.Flags().Changed("description") {
		raw, _ := cmd.Flags().GetString("description")
		description, err := cli.ReadDescription(raw, cmd.InOrStdin())
		if err != nil {
			return formatter.Fail("STDIN_ERROR", &cli.ExitCodeError{Code: cli.ExitDataErr, Err: err}, "")
		}
		req.Description = &description
	}
	if cmd.Flags().Changed("status") {
		raw, _ := cmd.Flags().GetString("status")
		status, err := models.ParseStatus(raw)
		if err != nil {
			return formatter.Fail("INVALID_STATUS", err, "Valid statuses: TODO, IN_PROGRESS, DONE")
		}
		req.Status = &status
	}
	if req.Title == nil && req.Description == nil && req.Status == nil {
		return formatter.Fail("NO_UPDATES",
			fmt.Errorf("%w: nothing to update", cli.ErrUsage),
			"Pass --title, --description or --status")
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, _, _, err := s.mustFind(id); err != nil {
		return err
	}

	task, err := s.board.UpdateTask(ctx, id, req)
	if err != nil {
		return formatter.Fail("TASK_UPDATE_ERROR", err, "")
	}

	if formatter.Quiet {
		fmt.Println(task.ID)
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"task":    task,
		})
	}

	fmt.Printf("✓ Task '%s' updated successfully\n", task.Title)
	return nil
}
