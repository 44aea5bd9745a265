package board

import "github.com/thenoetrevino/tablero/internal/models"

// Location is a position on the board
type Location struct {
	Status models.Status
	Index  int
}

// DragEvent describes a finished drag gesture. Destination is nil when the
// gesture was cancelled or dropped outside any column.
type DragEvent struct {
	TaskID      string
	Source      Location
	Destination *Location
}

// Mover accepts move commands
type Mover interface {
	SubmitMove(taskID string, to models.Status, toIndex int) *PendingMove
}

// DragAdapter turns drag gestures into move commands. It holds no state.
type DragAdapter struct {
	Mover Mover
}

// HandleDragEnd submits the move for a completed gesture.
// Cancelled gestures are ignored and return nil.
func (a DragAdapter) HandleDragEnd(ev DragEvent) *PendingMove {
	if ev.Destination == nil {
		return nil
	}
	return a.Mover.SubmitMove(ev.TaskID, ev.Destination.Status, ev.Destination.Index)
}
