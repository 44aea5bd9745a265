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

// UpdateCmd returns the project update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Rename or redescribe a project",
		Long: `Update a project's name or description. The project is given by id or
by name.

Examples:
  tablero project update --id="Backend API" --name="Backend"
  tablero project update --id=$PROJECT_ID --description="Public REST API"
`,
		RunE: runUpdate,
	}

	cmd.Flags().String("id", "", "Project ID or name (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("name", "", "New project name")
	cmd.Flags().String("description", "", "New project description")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ref, _ := cmd.Flags().GetString("id")

	var req models.UpdateProjectRequest
	if cmd.Flags().Changed("name") {
		name, _ := cmd.Flags().GetString("name")
		req.Name = &name
	}
	if cmd.Flags().Changed("description") {
		description, _ := cmd.Flags().GetString("description")
		req.Description = &description
	}

	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer cli.CloseCLI(cliInstance)

	if req.Name == nil && req.Description == nil {
		return formatter.Fail("NO_UPDATES",
			fmt.Errorf("%w: nothing to update", cli.ErrUsage),
			"Pass --name or --description")
	}

	project, err := cliInstance.App.ProjectService.Resolve(ctx, ref)
	if err != nil {
		return formatter.Fail("PROJECT_NOT_FOUND", err, "Use 'tablero project list' to see available projects")
	}

	updated, err := cliInstance.App.ProjectService.Update(ctx, project.ID, req)
	if err != nil {
		return formatter.Fail("PROJECT_UPDATE_ERROR", err, "")
	}

	if formatter.Quiet {
		fmt.Println(updated.ID)
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"project": updated,
		})
	}

	fmt.Printf("✓ Project '%s' updated successfully\n", updated.Name)
	return nil
}
