package models

import (
	"fmt"
	"strings"
)

// Status is the column a task belongs to
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Statuses lists the columns in board order
var Statuses = [3]Status{StatusTodo, StatusInProgress, StatusDone}

// Index returns the column position of the status, or -1 if it is unknown
func (s Status) Index() int {
	for i, st := range Statuses {
		if st == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the three board statuses
func (s Status) Valid() bool {
	return s.Index() >= 0
}

// Label returns the human readable column title
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "Todo"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// ParseStatus accepts wire values and column labels, case-insensitively
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	switch normalized {
	case "TODO", "TO_DO":
		return StatusTodo, nil
	case "IN_PROGRESS", "INPROGRESS", "DOING":
		return StatusInProgress, nil
	case "DONE":
		return StatusDone, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}
