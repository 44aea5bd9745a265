package use

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
)

const projectEnv = "TABLERO_PROJECT_ID"

// ProjectCmd returns the use project subcommand
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [project]",
		Short: "Set project context for current shell session",
		Long: `Set the current project context using environment variables.
This command outputs shell commands that should be evaluated:

  eval $(tablero use project "Backend API")   # Use a project by name
  eval $(tablero use project <project-id>)    # Use a project by id
  eval $(tablero use project --clear)         # Clear project context
  tablero use project --show                  # Show current project

The TABLERO_PROJECT_ID environment variable will be set in your current
shell session only. The --project flag on other commands takes precedence
over this environment variable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUseProject,
	}

	cmd.Flags().Bool("clear", false, "Clear the current project context")
	cmd.Flags().Bool("show", false, "Show the current project context")
	cmd.Flags().Bool("dry-run", false, "Show what would be exported without outputting shell commands")

	return cmd
}

func runUseProject(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := &cli.OutputFormatter{}

	clearFlag, _ := cmd.Flags().GetBool("clear")
	showFlag, _ := cmd.Flags().GetBool("show")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if showFlag {
		return showCurrentProject(cmd)
	}

	if clearFlag {
		if dryRun {
			fmt.Fprintf(os.Stderr, "Would clear %s\n", projectEnv)
			return nil
		}
		fmt.Printf("unset %s\n", projectEnv)
		fmt.Fprintf(os.Stderr, "Cleared project context\n")
		return nil
	}

	if len(args) == 0 {
		return formatter.Fail("MISSING_PROJECT",
			fmt.Errorf("%w: project required", cli.ErrUsage),
			"Usage: eval $(tablero use project <project>)")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", err, "")
	}
	defer cli.CloseCLI(cliInstance)

	project, err := cliInstance.App.ProjectService.Resolve(ctx, args[0])
	if err != nil {
		return formatter.Fail("PROJECT_NOT_FOUND", err, "Use 'tablero project list' to see available projects")
	}

	if dryRun {
		fmt.Fprintf(os.Stderr, "Would set %s=%s (%s)\n", projectEnv, project.ID, project.Name)
		return nil
	}

	fmt.Printf("export %s=%s\n", projectEnv, project.ID)
	fmt.Fprintf(os.Stderr, "Now using project %s: %s\n", project.ID, project.Name)

	return nil
}

func showCurrentProject(cmd *cobra.Command) error {
	current := os.Getenv(projectEnv)
	if current == "" {
		fmt.Println("No project context set")
		fmt.Println("Use 'eval $(tablero use project <project>)' to set one")
		return nil
	}

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return fmt.Errorf("initialization error: %w", err)
	}
	defer cli.CloseCLI(cliInstance)

	project, err := cliInstance.App.ProjectService.Get(cmd.Context(), current)
	if err != nil {
		fmt.Printf("Current project: %s (project not found)\n", current)
		return nil
	}

	fmt.Printf("Current project: %s (%s)\n", project.ID, project.Name)
	return nil
}
