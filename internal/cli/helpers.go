package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/board"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ProjectRef returns the --project flag value. Empty means the configured
// project (TABLERO_PROJECT_ID or project_id) or else the first one.
func ProjectRef(cmd *cobra.Command) string {
	ref, _ := cmd.Flags().GetString("project")
	return strings.TrimSpace(ref)
}

// ParseStatusFlag parses a --status value; empty yields "".
func ParseStatusFlag(raw string) (models.Status, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return models.ParseStatus(raw)
}

// ReadDescription returns value, or all of stdin when value is "-"
func ReadDescription(value string, stdin io.Reader) (string, error) {
	if value != "-" {
		return value, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read description from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// Confirm asks a yes/no question on stdout and reads the answer from in
func Confirm(prompt string, in io.Reader) bool {
	fmt.Printf("%s (y/N): ", prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// OpenBoard resolves the command's project and loads its board. Commands
// report failures themselves, so the controller only logs them.
func OpenBoard(ctx context.Context, c *CLI, ref string) (*models.Project, *board.Controller, error) {
	project, err := c.App.ResolveProject(ctx, ref)
	if err != nil {
		return nil, nil, err
	}
	ctrl, err := c.App.OpenBoard(ctx, project.ID, nil)
	if err != nil {
		return nil, nil, err
	}
	return project, ctrl, nil
}

// AddOutputFlags registers the agent-friendly --json and --quiet flags
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// Formatter builds the output formatter from the --json and --quiet flags
func Formatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// Setup returns the CLI for the command and its formatter. Initialization
// failures are reported before returning.
func Setup(cmd *cobra.Command) (*CLI, *OutputFormatter, error) {
	formatter := Formatter(cmd)
	c, err := GetCLIFromContext(cmd.Context())
	if err != nil {
		return nil, formatter, formatter.Fail("INITIALIZATION_ERROR", err, "")
	}
	return c, formatter, nil
}

// CloseCLI closes c, logging any failure
func CloseCLI(c *CLI) {
	if err := c.Close(); err != nil {
		slog.Error("Error closing CLI", "error", err)
	}
}
