package project

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a new project. Every project starts with the three columns
Todo, In Progress and Done.

Examples:
  # Simple project (human-readable output)
  tablero project create --name="Backend API"

  # JSON output for agents
  tablero project create --name="Backend API" --json

  # Quiet mode for bash capture
  PROJECT_ID=$(tablero project create --name="Backend API" --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Project name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("description", "", "Project description")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")

	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer cli.CloseCLI(cliInstance)

	project, err := cliInstance.App.ProjectService.Create(ctx, models.CreateProjectRequest{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return formatter.Fail("PROJECT_CREATE_ERROR", err, "")
	}

	if formatter.Quiet {
		fmt.Println(project.ID)
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"project": project,
		})
	}

	fmt.Printf("✓ Project '%s' created successfully (ID: %s)\n", project.Name, project.ID)
	if project.Description != "" {
		fmt.Printf("  Description: %s\n", project.Description)
	}

	return nil
}
