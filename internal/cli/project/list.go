package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/styles"
)

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Long:  "List all projects with their details.",
		RunE:  runList,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer cli.CloseCLI(cliInstance)

	projects, err := cliInstance.App.ProjectService.List(ctx)
	if err != nil {
		return formatter.Fail("PROJECT_FETCH_ERROR", err, "")
	}

	if formatter.Quiet {
		for _, p := range projects {
			fmt.Println(p.ID)
		}
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":  true,
			"projects": projects,
		})
	}

	if len(projects) == 0 {
		fmt.Println("No projects found")
		return nil
	}

	fmt.Printf("Found %d projects:\n\n", len(projects))
	for _, p := range projects {
		fmt.Printf("  %s  %s", styles.TitleStyle.Render(p.Name), styles.SubtitleStyle.Render(p.ID))
		if p.Description != "" {
			fmt.Printf(" - %s", p.Description)
		}
		fmt.Println()
	}

	return nil
}
