package state

import (
	"github.com/thenoetrevino/tablero/internal/board"
	"github.com/thenoetrevino/tablero/internal/models"
)

// DragState is a keyboard drag gesture: a grabbed card and the drop marker
// that follows the navigation keys until the card is dropped or released.
type DragState struct {
	active bool
	taskID string
	source board.Location
	target board.Location
}

func NewDragState() *DragState {
	return &DragState{}
}

// Active reports whether a card is being carried
func (d *DragState) Active() bool {
	return d.active
}

// TaskID returns the carried task
func (d *DragState) TaskID() string {
	return d.taskID
}

func (d *DragState) Source() board.Location {
	return d.source
}

// Target is where the card would land if dropped now
func (d *DragState) Target() board.Location {
	return d.target
}

// Grab starts carrying taskID from source. The marker starts on the source.
func (d *DragState) Grab(taskID string, source board.Location) {
	d.active = true
	d.taskID = taskID
	d.source = source
	d.target = source
}

// MoveColumn carries the marker to the neighbouring column. lens holds the
// card count of each column, counting the carried card where it still is.
func (d *DragState) MoveColumn(delta int, lens [3]int) {
	if !d.active {
		return
	}
	i := d.target.Status.Index() + delta
	if i < 0 || i >= len(models.Statuses) {
		return
	}
	d.target.Status = models.Statuses[i]
	d.target.Index = min(d.target.Index, d.maxIndex(lens))
}

// MoveIndex moves the marker up or down within its column
func (d *DragState) MoveIndex(delta int, lens [3]int) {
	if !d.active {
		return
	}
	d.target.Index = max(0, min(d.target.Index+delta, d.maxIndex(lens)))
}

// maxIndex is the last valid drop index in the target column once the
// carried card has been taken out of its source column.
func (d *DragState) maxIndex(lens [3]int) int {
	n := lens[d.target.Status.Index()]
	if d.target.Status == d.source.Status {
		n--
	}
	return max(n, 0)
}

// Drop ends the gesture with the marker as destination
func (d *DragState) Drop() board.DragEvent {
	target := d.target
	ev := board.DragEvent{TaskID: d.taskID, Source: d.source, Destination: &target}
	d.reset()
	return ev
}

// Cancel ends the gesture without a destination
func (d *DragState) Cancel() board.DragEvent {
	ev := board.DragEvent{TaskID: d.taskID, Source: d.source}
	d.reset()
	return ev
}

func (d *DragState) reset() {
	*d = DragState{}
}
