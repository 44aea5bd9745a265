package board

import "github.com/thenoetrevino/tablero/internal/models"

// Move computes the snapshot that results from moving taskID to position
// toIndex of the toStatus column.
//
// toIndex is the position in the destination column once the moved task has been
// taken out of consideration, so for a move within one column it counts the
// other tasks only. It is clamped to [0, len]: an index past the end appends.
// Every status group is renumbered densely afterwards.
//
// When taskID is not in the snapshot, or toStatus is not a board status, the
// input snapshot is returned unchanged together with false.
func Move(s Snapshot, taskID string, toStatus models.Status, toIndex int) (Snapshot, bool) {
	task, ok := s[taskID]
	if !ok || !toStatus.Valid() {
		return s, false
	}

	task.Status = toStatus
	return place(s, task, toIndex), true
}

// place removes the record with task.ID from wherever it currently is and
// inserts task into its own status column at index, clamped to the column.
func place(s Snapshot, task models.Task, index int) Snapshot {
	cols := Project(s)
	for i, col := range cols {
		cols[i] = without(col, task.ID)
	}

	dest := task.Status.Index()
	col := cols[dest]
	index = clamp(index, 0, len(col))

	inserted := make([]models.Task, 0, len(col)+1)
	inserted = append(inserted, col[:index]...)
	inserted = append(inserted, task)
	inserted = append(inserted, col[index:]...)
	cols[dest] = inserted

	return fromColumns(cols)
}

func without(col []models.Task, id string) []models.Task {
	out := make([]models.Task, 0, len(col))
	for _, t := range col {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// UpsertPatch inserts or replaces a task record, placing it at its own order
// within its status column.
func UpsertPatch(task models.Task) Patch {
	return func(s Snapshot) (Snapshot, bool) {
		if !task.Status.Valid() {
			return s, false
		}
		if existing, ok := s[task.ID]; ok && existing.Equal(task) {
			return s, false
		}
		return place(s, task, task.Order), true
	}
}

// RemovePatch drops a task and closes the gap it leaves in its column
func RemovePatch(taskID string) Patch {
	return func(s Snapshot) (Snapshot, bool) {
		if _, ok := s[taskID]; !ok {
			return s, false
		}
		next := s.Clone()
		delete(next, taskID)
		return normalize(next), true
	}
}
