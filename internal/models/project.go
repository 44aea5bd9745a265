package models

import "time"

// Project scopes which tasks are loaded onto a board
type Project struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GetID is used by the CLI quiet output mode
func (p *Project) GetID() string {
	return p.ID
}

// CreateProjectRequest encapsulates all data needed to create a project
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateProjectRequest encapsulates a partial project update
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
