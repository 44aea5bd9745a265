package board

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

const testProject = "p1"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func task(id string, status models.Status, order int) models.Task {
	return testutil.Task(id, testProject, status, order)
}

// board builds a snapshot from column id lists: board([]string{"a","b"}, nil, []string{"c"})
func board(todo, inProgress, done []string) Snapshot {
	s := Snapshot{}
	for i, ids := range [][]string{todo, inProgress, done} {
		for order, id := range ids {
			s[id] = task(id, models.Statuses[i], order)
		}
	}
	return s
}

func requireColumns(t *testing.T, cols Columns, todo, inProgress, done []string) {
	t.Helper()
	want := [][]string{todo, inProgress, done}
	for i, status := range models.Statuses {
		got := cols.IDs(status)
		if want[i] == nil {
			want[i] = []string{}
		}
		require.Equal(t, want[i], got, "column %s", status)
		for pos, tk := range cols.Of(status) {
			require.Equal(t, pos, tk.Order, "order of %s in %s", tk.ID, status)
			require.Equal(t, status, tk.Status)
		}
	}
}

func newTestController(t *testing.T, auth Authority, opts ...ControllerOption) (*Controller, *ChannelNotifier) {
	t.Helper()
	notifier := NewChannelNotifier(16)
	store := NewStore(testProject, WithStoreLogger(discardLogger()))
	opts = append([]ControllerOption{
		WithNotifier(notifier),
		WithLogger(discardLogger()),
		WithRefreshDebounce(0),
		WithRequestTimeout(2 * time.Second),
	}, opts...)

	c := NewController(store, auth, opts...)
	t.Cleanup(c.Close)
	require.NoError(t, c.Load(t.Context()))
	return c, notifier
}

func seeded(s Snapshot) *testutil.Authority {
	return testutil.NewAuthority(s.Tasks()...)
}

func expectNotification(t *testing.T, n *ChannelNotifier, severity Severity) Notification {
	t.Helper()
	select {
	case got := <-n.C():
		require.Equal(t, severity, got.Severity, "notification %q", got.Message)
		return got
	case <-time.After(time.Second):
		t.Fatalf("expected a %s notification", severity)
		return Notification{}
	}
}
