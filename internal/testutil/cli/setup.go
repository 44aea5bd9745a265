package cli

import (
	"testing"

	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the repository and
// an App running against it. Both are closed when the test ends.
func SetupCLITest(t *testing.T) (*database.Repository, *app.App) {
	t.Helper()

	repo := testutil.SetupTestDB(t)
	return repo, app.New(repo)
}
