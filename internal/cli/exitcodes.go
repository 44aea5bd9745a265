package cli

import (
	"errors"

	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/remote"
	projectservice "github.com/thenoetrevino/tablero/internal/services/project"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, network errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, invalid flag combinations,
	// or when the user needs to provide different arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Task not found, project not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Unreadable stdin, a move the authority rolled back.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Invalid status, empty or overlong titles and names.
	ExitValidation = 5
)

// ErrUsage marks errors caused by how the command was invoked
var ErrUsage = errors.New("usage error")

// ExitCodeError carries the process exit code for a failed command. The
// error has already been reported to the user.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

var validationErrors = []error{
	models.ErrInvalidStatus,
	models.ErrEmptyTitle,
	models.ErrTitleTooLong,
	models.ErrEmptyName,
	projectservice.ErrNameTooLong,
	projectservice.ErrInvalidProjectID,
	projectservice.ErrProjectHasTasks,
	remote.ErrInvalidRequest,
}

// ExitCode maps an error to the exit code reported for it
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, ErrUsage) || errors.Is(err, projectservice.ErrAmbiguousProject) {
		return ExitUsage
	}
	if errors.Is(err, models.ErrNotFound) || errors.Is(err, projectservice.ErrNoProjects) {
		return ExitNotFound
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return ExitValidation
		}
	}
	return ExitError
}
