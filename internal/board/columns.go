package board

import (
	"sort"

	"github.com/thenoetrevino/tablero/internal/models"
)

// Columns holds the three ordered status sequences, indexed like models.Statuses
type Columns [3][]models.Task

// Project derives the rendered columns from a snapshot.
// Each column is sorted by order with ties broken by id. Records whose status is
// not one of the board statuses are left out.
func Project(s Snapshot) Columns {
	var cols Columns
	for _, t := range s {
		idx := t.Status.Index()
		if idx < 0 {
			continue
		}
		cols[idx] = append(cols[idx], t)
	}

	for i := range cols {
		col := cols[i]
		sort.Slice(col, func(a, b int) bool {
			if col[a].Order != col[b].Order {
				return col[a].Order < col[b].Order
			}
			return col[a].ID < col[b].ID
		})
	}
	return cols
}

// Of returns the ordered tasks of one status
func (c Columns) Of(status models.Status) []models.Task {
	idx := status.Index()
	if idx < 0 {
		return nil
	}
	return c[idx]
}

// IDs returns the task ids of one status in order
func (c Columns) IDs(status models.Status) []string {
	tasks := c.Of(status)
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

// Len returns the total number of tasks across all columns
func (c Columns) Len() int {
	n := 0
	for _, col := range c {
		n += len(col)
	}
	return n
}
