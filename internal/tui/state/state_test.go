package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tablero/internal/board"
	"github.com/thenoetrevino/tablero/internal/models"
)

func TestUIState_Clamp(t *testing.T) {
	tests := []struct {
		name       string
		column     int
		task       int
		lens       []int
		wantColumn int
		wantTask   int
	}{
		{"in range", 1, 1, []int{2, 3, 0}, 1, 1},
		{"task past end", 0, 5, []int{2, 3, 0}, 0, 1},
		{"empty column", 2, 4, []int{2, 3, 0}, 2, 0},
		{"column past end", 7, 0, []int{2, 3, 1}, 2, 0},
		{"no columns", 1, 1, nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewUIState()
			s.Select(tt.column, tt.task)
			s.Clamp(tt.lens)
			assert.Equal(t, tt.wantColumn, s.SelectedColumn())
			assert.Equal(t, tt.wantTask, s.SelectedTask())
		})
	}
}

func TestUIState_Move(t *testing.T) {
	s := NewUIState()
	s.MoveColumn(1, 3)
	s.MoveColumn(5, 3)
	assert.Equal(t, 2, s.SelectedColumn())

	s.MoveTask(-1, 4)
	assert.Equal(t, 0, s.SelectedTask())
	s.MoveTask(2, 4)
	assert.Equal(t, 2, s.SelectedTask())
}

func TestDragState_Carry(t *testing.T) {
	lens := [3]int{2, 1, 0}

	d := NewDragState()
	d.Grab("a", board.Location{Status: models.StatusTodo, Index: 1})
	require.True(t, d.Active())

	// Within the source column the card can only reach the last slot left
	// once it is taken out.
	d.MoveIndex(3, lens)
	assert.Equal(t, 1, d.Target().Index)

	d.MoveColumn(1, lens)
	assert.Equal(t, models.StatusInProgress, d.Target().Status)
	assert.Equal(t, 1, d.Target().Index, "one card there, so index 1 appends")

	d.MoveColumn(1, lens)
	assert.Equal(t, board.Location{Status: models.StatusDone, Index: 0}, d.Target())

	d.MoveColumn(1, lens)
	assert.Equal(t, models.StatusDone, d.Target().Status, "no column past Done")

	d.MoveIndex(-1, lens)
	assert.Equal(t, 0, d.Target().Index)

	ev := d.Drop()
	assert.Equal(t, "a", ev.TaskID)
	assert.Equal(t, board.Location{Status: models.StatusTodo, Index: 1}, ev.Source)
	require.NotNil(t, ev.Destination)
	assert.Equal(t, board.Location{Status: models.StatusDone, Index: 0}, *ev.Destination)
	assert.False(t, d.Active())
}

func TestDragState_Cancel(t *testing.T) {
	d := NewDragState()
	d.Grab("a", board.Location{Status: models.StatusInProgress})
	d.MoveColumn(-1, [3]int{0, 1, 0})

	ev := d.Cancel()
	assert.Equal(t, "a", ev.TaskID)
	assert.Nil(t, ev.Destination)
	assert.False(t, d.Active())

	// Carrying without a grab is a no-op.
	d.MoveColumn(1, [3]int{})
	assert.False(t, d.Active())
}

func TestNotificationState(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewNotificationState(5 * time.Second)

	for i, msg := range []string{"one", "two", "three", "four"} {
		s.Add(board.Notification{Message: msg}, now.Add(time.Duration(i)*time.Second))
	}
	require.Len(t, s.All(), 3)
	assert.Equal(t, "two", s.All()[0].Message)

	s.Expire(now.Add(6500 * time.Millisecond))
	require.Len(t, s.All(), 2)
	assert.Equal(t, "three", s.All()[0].Message)

	s.Clear()
	assert.False(t, s.HasAny())
}
