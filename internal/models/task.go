package models

import "time"

// Task represents a single card on the board.
// ProjectID and the timestamps are assigned by the authority and echoed back unchanged.
type Task struct {
	ID          string    `json:"_id"`
	ProjectID   string    `json:"projectId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Equal reports whether two task records are identical field by field
func (t Task) Equal(other Task) bool {
	return t.ID == other.ID &&
		t.ProjectID == other.ProjectID &&
		t.Title == other.Title &&
		t.Description == other.Description &&
		t.Status == other.Status &&
		t.Order == other.Order &&
		t.CreatedAt.Equal(other.CreatedAt) &&
		t.UpdatedAt.Equal(other.UpdatedAt)
}

// GetID is used by the CLI quiet output mode
func (t *Task) GetID() string {
	return t.ID
}

// CreateTaskRequest encapsulates all data needed to create a task.
// An empty Status means the first column.
type CreateTaskRequest struct {
	ProjectID   string `json:"projectId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status,omitempty"`
}

// UpdateTaskRequest encapsulates a partial task update.
// Fields with pointers are optional - nil means don't update
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *Status `json:"status,omitempty"`
}

// ReorderRequest moves a task to a status column at a position
type ReorderRequest struct {
	TaskID   string `json:"taskId"`
	ToStatus Status `json:"toStatus"`
	ToIndex  int    `json:"toIndex"`
}
