package task

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a task at the bottom of a column (Todo unless --status is given).

Examples:
  # Simple task (human-readable output)
  tablero task create --title="Fix bug"

  # Straight into a column
  tablero task create --title="Review PR" --status=IN_PROGRESS

  # Description from stdin
  git log -1 --format=%B | tablero task create --title="Release notes" --description=-

  # Quiet mode for bash capture
  TASK_ID=$(tablero task create --title="Fix bug" --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("title", "", "Task title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("description", "", "Task description (use - to read from stdin)")
	cmd.Flags().String("status", "", "Column to create the task in (TODO, IN_PROGRESS, DONE)")
	addProjectFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	title, _ := cmd.Flags().GetString("title")
	rawDescription, _ := cmd.Flags().GetString("description")
	rawStatus, _ := cmd.Flags().GetString("status")

	status, err := cli.ParseStatusFlag(rawStatus)
	if err != nil {
		return formatter.Fail("INVALID_STATUS", err, "Valid statuses: TODO, IN_PROGRESS, DONE")
	}
	description, err := cli.ReadDescription(rawDescription, cmd.InOrStdin())
	if err != nil {
		return formatter.Fail("STDIN_ERROR", &cli.ExitCodeError{Code: cli.ExitDataErr, Err: err}, "")
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	task, err := s.board.CreateTask(ctx, models.CreateTaskRequest{
		Title:       title,
		Description: description,
		Status:      status,
	})
	if err != nil {
		return formatter.Fail("TASK_CREATE_ERROR", err, "")
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

	fmt.Printf("✓ Task '%s' created in %s (ID: %s)\n", task.Title, task.Status.Label(), task.ID)
	return nil
}
