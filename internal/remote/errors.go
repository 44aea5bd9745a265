package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"

	"github.com/thenoetrevino/tablero/internal/models"
)

// ErrTransport matches every failure where the authority could not be reached
// or did not produce a usable answer (network errors, timeouts, 5xx).
var ErrTransport = errors.New("authority unavailable")

// ErrInvalidRequest matches requests the authority refused as malformed
var ErrInvalidRequest = errors.New("invalid request")

// ErrorCode represents request failure types.
type ErrorCode int

const (
	ErrConnectionRefused ErrorCode = iota
	ErrTimeout
	ErrUnreachable
	ErrServer
	ErrNotFound
	ErrInvalid
)

// RequestError represents a structured authority error with context.
type RequestError struct {
	Code    ErrorCode
	Status  int
	Message string
	Hint    string
	Err     error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Hint != "" {
		return e.Message + ". " + e.Hint
	}
	return e.Message
}

// Unwrap returns the underlying network error, if any
func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is lets callers test the failure class with errors.Is
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Transport()
	case models.ErrNotFound:
		return e.Code == ErrNotFound
	case ErrInvalidRequest:
		return e.Code == ErrInvalid
	}
	return false
}

// Transport reports whether the failure is worth retrying
func (e *RequestError) Transport() bool {
	switch e.Code {
	case ErrConnectionRefused, ErrTimeout, ErrUnreachable, ErrServer:
		return true
	}
	return false
}

// classifyTransportError maps errors from the HTTP round trip to RequestError
func classifyTransportError(err error) *RequestError {
	if err == nil {
		return nil
	}

	var errno syscall.Errno
	if errors.As(err, &errno) && errno == syscall.ECONNREFUSED {
		return &RequestError{
			Code:    ErrConnectionRefused,
			Message: "Connection refused",
			Hint:    "Is the server running? Start it with: tablero serve",
			Err:     err,
		}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &RequestError{
			Code:    ErrTimeout,
			Message: "Request timed out",
			Hint:    "Raise request_timeout in the config file if the server is slow",
			Err:     err,
		}
	}

	return &RequestError{
		Code:    ErrUnreachable,
		Message: "Cannot reach server",
		Hint:    "Check api_url in the config file",
		Err:     err,
	}
}

// classifyResponse maps a non-2xx response to RequestError. message is the
// server supplied text, possibly empty.
func classifyResponse(status int, message string) *RequestError {
	if message == "" {
		message = http.StatusText(status)
	}

	switch {
	case status == http.StatusNotFound:
		return &RequestError{Code: ErrNotFound, Status: status, Message: message}
	case status >= 400 && status < 500:
		return &RequestError{Code: ErrInvalid, Status: status, Message: message}
	default:
		return &RequestError{
			Code:    ErrServer,
			Status:  status,
			Message: fmt.Sprintf("Server error (%d): %s", status, message),
			Hint:    "Check the server log",
		}
	}
}
