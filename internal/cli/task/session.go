package task

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/board"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
	projectservice "github.com/thenoetrevino/tablero/internal/services/project"
)

const useProjectHint = "Set project with: eval $(tablero use project <project>)"

// session is an open board for one command invocation
type session struct {
	cli       *cli.CLI
	formatter *cli.OutputFormatter
	project   *models.Project
	board     *board.Controller
}

func addProjectFlag(cmd *cobra.Command) {
	cmd.Flags().String("project", "", "Project ID or name (uses TABLERO_PROJECT_ID if not specified)")
}

func openSession(cmd *cobra.Command) (*session, error) {
	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return nil, err
	}

	project, ctrl, err := cli.OpenBoard(cmd.Context(), cliInstance, cli.ProjectRef(cmd))
	if err != nil {
		cli.CloseCLI(cliInstance)
		if errors.Is(err, models.ErrProjectNotFound) ||
			errors.Is(err, projectservice.ErrNoProjects) ||
			errors.Is(err, projectservice.ErrAmbiguousProject) {
			return nil, formatter.Fail("NO_PROJECT", err, useProjectHint)
		}
		return nil, formatter.Fail("BOARD_LOAD_ERROR", err, "")
	}

	return &session{
		cli:       cliInstance,
		formatter: formatter,
		project:   project,
		board:     ctrl,
	}, nil
}

func (s *session) Close() {
	s.board.Close()
	cli.CloseCLI(s.cli)
}

// find returns the task with its position in its column and the column size
func (s *session) find(id string) (models.Task, int, int, error) {
	cols := s.board.Columns()
	for _, status := range models.Statuses {
		column := cols.Of(status)
		for i, t := range column {
			if t.ID == id {
				return t, i, len(column), nil
			}
		}
	}
	return models.Task{}, 0, 0, fmt.Errorf("%w in project '%s': %s", models.ErrTaskNotFound, s.project.Name, id)
}

// mustFind is find with the failure already reported
func (s *session) mustFind(id string) (models.Task, int, int, error) {
	task, position, size, err := s.find(id)
	if err != nil {
		return task, position, size, s.formatter.Fail("TASK_NOT_FOUND", err, "Use 'tablero task list' to see the project's tasks")
	}
	return task, position, size, nil
}

func taskID(cmd *cobra.Command, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	id, _ := cmd.Flags().GetString("id")
	return id
}

func requireTaskID(cmd *cobra.Command, args []string, formatter *cli.OutputFormatter) (string, error) {
	id := taskID(cmd, args)
	if id == "" {
		return "", formatter.Fail("INVALID_TASK_ID",
			fmt.Errorf("%w: task ID is required", cli.ErrUsage),
			fmt.Sprintf("Usage: tablero task %s <id> or tablero task %s --id=<id>", cmd.Name(), cmd.Name()))
	}
	return id, nil
}
