package project

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/models"
)

// Domain errors for project service
var (
	// Validation errors
	ErrEmptyName        = models.ErrEmptyName
	ErrNameTooLong      = fmt.Errorf("project name cannot exceed %d characters", models.MaxTitleLength)
	ErrInvalidProjectID = errors.New("invalid project ID")

	// Business logic errors
	ErrProjectNotFound  = models.ErrProjectNotFound
	ErrProjectHasTasks  = errors.New("cannot delete project with tasks")
	ErrAmbiguousProject = errors.New("more than one project has that name")
	ErrNoProjects       = errors.New("no projects exist")
)
