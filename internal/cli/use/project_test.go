package use

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appcli "github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/testutil"
	"github.com/thenoetrevino/tablero/internal/testutil/cli"
)

func TestUseProject(t *testing.T) {
	repo, app := cli.SetupCLITest(t)
	id := testutil.CreateTestProject(t, repo, "Backend API")

	t.Run("by name exports the id", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ProjectCmd(), []string{"backend api"})
		require.NoError(t, err)
		assert.Equal(t, "export TABLERO_PROJECT_ID="+id, strings.TrimSpace(output))
	})

	t.Run("dry run prints nothing to eval", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ProjectCmd(), []string{id, "--dry-run"})
		require.NoError(t, err)
		assert.Empty(t, strings.TrimSpace(output))
	})

	t.Run("clear", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ProjectCmd(), []string{"--clear"})
		require.NoError(t, err)
		assert.Equal(t, "unset TABLERO_PROJECT_ID", strings.TrimSpace(output))
	})

	t.Run("show", func(t *testing.T) {
		t.Setenv("TABLERO_PROJECT_ID", id)
		output, err := cli.ExecuteCLICommand(t, app, ProjectCmd(), []string{"--show"})
		require.NoError(t, err)
		assert.Contains(t, output, "Backend API")
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, ProjectCmd(), []string{"nope"})
		require.Error(t, err)
		assert.Equal(t, appcli.ExitNotFound, appcli.ExitCode(err))
	})

	t.Run("missing argument", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, ProjectCmd(), []string{})
		require.Error(t, err)
		assert.Equal(t, appcli.ExitUsage, appcli.ExitCode(err))
	})
}
