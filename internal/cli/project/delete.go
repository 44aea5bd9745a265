package project

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
)

// DeleteCmd returns the project delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a project",
		Long: `Delete a project by id or name. Asks for confirmation unless --force or
--quiet is given. A project that still has tasks is only deleted with
--force, which deletes its tasks too.`,
		RunE: runDelete,
	}

	cmd.Flags().String("id", "", "Project ID or name (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().Bool("force", false, "Skip confirmation and delete the project's tasks")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ref, _ := cmd.Flags().GetString("id")
	force, _ := cmd.Flags().GetBool("force")

	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer cli.CloseCLI(cliInstance)

	project, err := cliInstance.App.ProjectService.Resolve(ctx, ref)
	if err != nil {
		return formatter.Fail("PROJECT_NOT_FOUND", err, "Use 'tablero project list' to see available projects")
	}

	if !force && !formatter.Quiet {
		if !cli.Confirm(fmt.Sprintf("Delete project '%s'?", project.Name), cmd.InOrStdin()) {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := cliInstance.App.ProjectService.Delete(ctx, project.ID, force); err != nil {
		return formatter.Fail("DELETE_ERROR", err, "Use --force to delete the project with its tasks")
	}

	if formatter.Quiet {
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":    true,
			"project_id": project.ID,
		})
	}

	fmt.Printf("✓ Project '%s' deleted successfully\n", project.Name)
	return nil
}
