package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tablero/internal/models"
)

type recordingMover struct {
	calls []models.ReorderRequest
}

func (m *recordingMover) SubmitMove(taskID string, to models.Status, toIndex int) *PendingMove {
	req := models.ReorderRequest{TaskID: taskID, ToStatus: to, ToIndex: toIndex}
	m.calls = append(m.calls, req)
	return newPendingMove(req)
}

func TestDragAdapter(t *testing.T) {
	tests := []struct {
		name  string
		event DragEvent
		want  []models.ReorderRequest
	}{
		{
			name: "drop on a column",
			event: DragEvent{
				TaskID:      "a",
				Source:      Location{Status: models.StatusTodo, Index: 0},
				Destination: &Location{Status: models.StatusDone, Index: 2},
			},
			want: []models.ReorderRequest{{TaskID: "a", ToStatus: models.StatusDone, ToIndex: 2}},
		},
		{
			name: "cancelled",
			event: DragEvent{
				TaskID: "a",
				Source: Location{Status: models.StatusTodo, Index: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mover := &recordingMover{}
			move := DragAdapter{Mover: mover}.HandleDragEnd(tt.event)

			assert.Equal(t, tt.want, mover.calls)
			if tt.want == nil {
				assert.Nil(t, move)
			} else {
				require.NotNil(t, move)
			}
		})
	}
}

func TestDragAdapterWithController(t *testing.T) {
	auth := seeded(board([]string{"a", "b"}, nil, nil))
	c, _ := newTestController(t, auth)
	adapter := DragAdapter{Mover: c}

	move := adapter.HandleDragEnd(DragEvent{
		TaskID:      "b",
		Source:      Location{Status: models.StatusTodo, Index: 1},
		Destination: &Location{Status: models.StatusDone, Index: 0},
	})
	requireColumns(t, c.Columns(), []string{"a"}, nil, []string{"b"})

	state, err := move.Wait(t.Context())
	require.NoError(t, err)
	assert.Equal(t, MoveMerged, state)
}
