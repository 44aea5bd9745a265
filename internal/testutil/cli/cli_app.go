// Package cli runs cobra commands against an in-memory board for tests.
package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/app"
	appcli "github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

// ExecuteCLICommand executes a CLI command with a test app instance.
// The app is injected through the context so the command never opens its
// own backend.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	return ExecuteCLICommandWithInput(t, testApp, cmd, args, "")
}

// ExecuteCLICommandWithInput is ExecuteCLICommand with stdin set to input
func ExecuteCLICommandWithInput(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string, input string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	ctx := appcli.WithApp(context.Background(), testApp)

	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(input))
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctx)
	})

	return output, executeErr
}
