package project

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func setupService(t *testing.T) (Service, func(name string) string) {
	t.Helper()
	repo := testutil.SetupTestDB(t)
	svc := NewService(repo, nil)
	create := func(name string) string {
		return testutil.CreateTestProject(t, repo, name)
	}
	return svc, create
}

// ============================================================================
// CREATE
// ============================================================================

func TestCreateProject(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateProjectRequest
		wantErr error
	}{
		{"valid", models.CreateProjectRequest{Name: "Roadmap"}, nil},
		{"trims name", models.CreateProjectRequest{Name: "  Roadmap  "}, nil},
		{"empty name", models.CreateProjectRequest{Name: "   "}, ErrEmptyName},
		{"name too long", models.CreateProjectRequest{Name: strings.Repeat("x", models.MaxTitleLength+1)}, ErrNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := setupService(t)
			p, err := svc.Create(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Roadmap", p.Name)
			assert.NotEmpty(t, p.ID)
		})
	}
}

// ============================================================================
// READ
// ============================================================================

func TestResolveProject(t *testing.T) {
	ctx := context.Background()
	svc, create := setupService(t)
	roadmapID := create("Roadmap")
	create("Ops")

	p, err := svc.Resolve(ctx, roadmapID)
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", p.Name)

	p, err = svc.Resolve(ctx, "ops")
	require.NoError(t, err)
	assert.Equal(t, "Ops", p.Name)

	p, err = svc.Resolve(ctx, "")
	require.NoError(t, err, "empty ref picks the first project")
	assert.Equal(t, "My Board", p.Name)

	_, err = svc.Resolve(ctx, "nope")
	assert.ErrorIs(t, err, models.ErrNotFound)

	create("OPS")
	_, err = svc.Resolve(ctx, "ops")
	assert.ErrorIs(t, err, ErrAmbiguousProject)
}

func TestGetProject(t *testing.T) {
	ctx := context.Background()
	svc, create := setupService(t)
	id := create("Roadmap")

	p, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidProjectID)

	_, err = svc.Get(ctx, "Roadmap")
	assert.ErrorIs(t, err, ErrProjectNotFound, "Get does not match names")
}

// ============================================================================
// UPDATE / DELETE
// ============================================================================

func TestUpdateProject(t *testing.T) {
	ctx := context.Background()
	svc, create := setupService(t)
	id := create("Roadmap")

	name := " Plan "
	p, err := svc.Update(ctx, id, models.UpdateProjectRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Plan", p.Name)

	empty := ""
	_, err = svc.Update(ctx, id, models.UpdateProjectRequest{Name: &empty})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.Update(ctx, "missing", models.UpdateProjectRequest{Name: &name})
	assert.ErrorIs(t, err, models.ErrProjectNotFound)
}

func TestDeleteProjectWithTasks(t *testing.T) {
	ctx := context.Background()
	repo := testutil.SetupTestDB(t)
	svc := NewService(repo, nil)
	id := testutil.CreateTestProject(t, repo, "Roadmap")
	testutil.CreateTestTask(t, repo, id, models.StatusTodo, "Plan")

	err := svc.Delete(ctx, id, false)
	assert.ErrorIs(t, err, ErrProjectHasTasks)

	require.NoError(t, svc.Delete(ctx, id, true))

	_, err = svc.Get(ctx, id)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestDeleteEmptyProject(t *testing.T) {
	ctx := context.Background()
	svc, create := setupService(t)
	id := create("Scratch")

	require.NoError(t, svc.Delete(ctx, id, false))

	count, err := svc.GetTaskCount(ctx, id)
	assert.ErrorIs(t, err, models.ErrProjectNotFound)
	assert.Zero(t, count)

	assert.ErrorIs(t, svc.Delete(ctx, "", false), ErrInvalidProjectID)
}
