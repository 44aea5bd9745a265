package task

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/styles"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long:  "List the tasks of a project column by column, in board order.",
		RunE:  runList,
	}

	addProjectFlag(cmd)
	cmd.Flags().String("status", "", "Only list one column (TODO, IN_PROGRESS, DONE)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	formatter := cli.Formatter(cmd)
	rawStatus, _ := cmd.Flags().GetString("status")
	only, err := cli.ParseStatusFlag(rawStatus)
	if err != nil {
		return formatter.Fail("INVALID_STATUS", err, "Valid statuses: TODO, IN_PROGRESS, DONE")
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	cols := s.board.Columns()
	statuses := models.Statuses[:]
	if only != "" {
		statuses = []models.Status{only}
	}

	var tasks []models.Task
	for _, status := range statuses {
		tasks = append(tasks, cols.Of(status)...)
	}

	if formatter.Quiet {
		for _, t := range tasks {
			fmt.Println(t.ID)
		}
		return nil
	}

	if formatter.JSON {
		if tasks == nil {
			tasks = []models.Task{}
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"project": s.project,
			"tasks":   tasks,
		})
	}

	if len(tasks) == 0 {
		fmt.Printf("No tasks found in %s\n", s.project.Name)
		return nil
	}

	fmt.Println(styles.TitleStyle.Render(s.project.Name))
	for _, status := range statuses {
		column := cols.Of(status)
		fmt.Println(styles.RenderColumnHeader(status, len(column)))
		for i, t := range column {
			fmt.Println(styles.RenderTaskLine(i, t))
		}
	}

	return nil
}
