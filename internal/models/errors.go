package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is the root of every "entity no longer exists" error.
// Callers treat it as drift to be fixed by the next refresh.
var ErrNotFound = errors.New("not found")

var (
	ErrTaskNotFound    = fmt.Errorf("task %w", ErrNotFound)
	ErrProjectNotFound = fmt.Errorf("project %w", ErrNotFound)
)

// Validation errors
var (
	ErrInvalidStatus = errors.New("invalid status")
	ErrEmptyTitle    = errors.New("title cannot be empty")
	ErrTitleTooLong  = errors.New("title cannot exceed 255 characters")
	ErrEmptyName     = errors.New("project name cannot be empty")
)

// MaxTitleLength bounds task titles and project names
const MaxTitleLength = 255
