package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/board"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ErrNoAdjacentColumn is returned when next/prev runs off the board
var ErrNoAdjacentColumn = errors.New("no column in that direction")

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move [next|prev|status]",
		Short: "Move a task to another column or position",
		Long: `Move a task to the next or previous column, or to a named column, and
wait until the server confirms it. If the server rejects the move the task
goes back where it was and the command fails.

--index is the position in the destination column, 0 being the top; by
default the task goes to the bottom. Moving within the same column reorders
it.

The destination is the positional argument or --status.

Examples:
  tablero task move --id=$TASK_ID next
  tablero task move --id=$TASK_ID --status=DONE --index=0
  tablero task move --id=$TASK_ID "in progress"
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runMove,
	}

	cmd.Flags().String("id", "", "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("status", "", "Destination column (TODO, IN_PROGRESS, DONE)")
	cmd.Flags().Int("index", 0, "Position in the destination column (default: bottom)")
	addProjectFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("id")

	target, _ := cmd.Flags().GetString("status")
	if len(args) > 0 {
		target = args[0]
	}
	if strings.TrimSpace(target) == "" {
		return cli.Formatter(cmd).Fail("MISSING_TARGET",
			fmt.Errorf("%w: destination required", cli.ErrUsage),
			"Usage: tablero task move --id=<id> <next|prev|status>")
	}

	var index *int
	if cmd.Flags().Changed("index") {
		v, _ := cmd.Flags().GetInt("index")
		index = &v
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

	to, err := resolveTarget(task.Status, target)
	if err != nil {
		return s.formatter.Fail("INVALID_TARGET", err, "Use next, prev, or one of TODO, IN_PROGRESS, DONE")
	}

	return settleMove(cmd, s, task, to, index)
}

// resolveTarget turns next/prev or a status name into a destination column
func resolveTarget(current models.Status, target string) (models.Status, error) {
	step := 0
	switch strings.ToLower(strings.TrimSpace(target)) {
	case "next":
		step = 1
	case "prev", "previous":
		step = -1
	default:
		return models.ParseStatus(target)
	}

	i := current.Index() + step
	if i < 0 || i >= len(models.Statuses) {
		return "", fmt.Errorf("%w: %w from %s", cli.ErrUsage, ErrNoAdjacentColumn, current.Label())
	}
	return models.Statuses[i], nil
}

// settleMove submits the move, waits for the authority and reports where
// the task ended up. A nil index appends to the destination column.
func settleMove(cmd *cobra.Command, s *session, task models.Task, target models.Status, index *int) error {
	ctx := cmd.Context()

	toIndex := len(s.board.Columns().Of(target))
	if task.Status == target {
		toIndex--
	}
	if index != nil {
		toIndex = *index
	}

	move := s.board.SubmitMove(task.ID, target, toIndex)
	state, err := move.Wait(ctx)
	if err != nil {
		return s.formatter.Fail("MOVE_FAILED", moveError(state, err), "")
	}
	if err := s.board.WaitIdle(ctx); err != nil {
		slog.Warn("board did not settle after move", "task_id", task.ID, "error", err)
	}

	moved, position, size, err := s.find(task.ID)
	if err != nil {
		return s.formatter.Fail("MOVE_FAILED", err, "")
	}

	if s.formatter.Quiet {
		fmt.Println(moved.ID)
		return nil
	}

	if s.formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":  true,
			"state":    state.String(),
			"task":     moved,
			"position": position,
		})
	}

	fmt.Printf("✓ Task '%s' moved to '%s' (position %d of %d)\n",
		moved.Title, moved.Status.Label(), position+1, size)
	return nil
}

// moveError marks a rolled back move as bad data unless a more specific
// exit code applies.
func moveError(state board.MoveState, err error) error {
	if state == board.MoveRolledBack && cli.ExitCode(err) == cli.ExitError {
		return &cli.ExitCodeError{Code: cli.ExitDataErr, Err: fmt.Errorf("move rolled back: %w", err)}
	}
	return err
}
