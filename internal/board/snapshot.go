// Package board is the optimistic synchronization engine behind the kanban
// view: an in-memory task store, the column projection, the pure move
// operation and the controller that reconciles optimistic moves with the
// remote authority.
package board

import (
	"fmt"
	"sort"

	"github.com/thenoetrevino/tablero/internal/models"
)

// Snapshot is the store state for one project: task records keyed by id.
// Snapshots are treated as immutable values; every transition builds a new map.
type Snapshot map[string]models.Task

// FromTasks builds a snapshot from a task list as returned by the authority
func FromTasks(tasks []models.Task) Snapshot {
	s := make(Snapshot, len(tasks))
	for _, t := range tasks {
		s[t.ID] = t
	}
	return s
}

// Clone returns an independent copy of the snapshot
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for id, t := range s {
		out[id] = t
	}
	return out
}

// Equal reports whether both snapshots hold identical task records
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s) != len(other) {
		return false
	}
	for id, t := range s {
		o, ok := other[id]
		if !ok || !t.Equal(o) {
			return false
		}
	}
	return true
}

// Tasks returns the records in board order (column, then order)
func (s Snapshot) Tasks() []models.Task {
	cols := Project(s)
	out := make([]models.Task, 0, len(s))
	for _, col := range cols {
		out = append(out, col...)
	}
	return out
}

// Validate checks the settled-state invariants: every task has a board status
// and each status group is numbered densely from zero.
func (s Snapshot) Validate() error {
	for id, t := range s {
		if id != t.ID {
			return fmt.Errorf("task keyed as %q carries id %q", id, t.ID)
		}
		if !t.Status.Valid() {
			return fmt.Errorf("task %q: %w %q", id, models.ErrInvalidStatus, t.Status)
		}
	}

	for _, status := range models.Statuses {
		var orders []int
		for _, t := range s {
			if t.Status == status {
				orders = append(orders, t.Order)
			}
		}
		sort.Ints(orders)
		for i, order := range orders {
			if order != i {
				return fmt.Errorf("status %s: order values %v are not dense from zero", status, orders)
			}
		}
	}
	return nil
}

// normalize drops records that cannot be placed on the board and renumbers
// every status group densely, keeping the incoming relative order.
func normalize(s Snapshot) Snapshot {
	return fromColumns(Project(s))
}

// fromColumns rebuilds a snapshot from projected columns, assigning order 0..n-1
// within each column.
func fromColumns(cols Columns) Snapshot {
	out := make(Snapshot, cols.Len())
	for i, col := range cols {
		for pos, t := range col {
			t.Status = models.Statuses[i]
			t.Order = pos
			out[t.ID] = t
		}
	}
	return out
}
