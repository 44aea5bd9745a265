package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thenoetrevino/tablero/internal/ai"
	"github.com/thenoetrevino/tablero/internal/models"
)

type errorResponse struct {
	Message string `json:"message"`
}

var badRequestErrors = []error{
	models.ErrInvalidStatus,
	models.ErrEmptyTitle,
	models.ErrTitleTooLong,
	models.ErrEmptyName,
	ai.ErrEmptyQuestion,
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, models.ErrNotFound) {
		return http.StatusNotFound
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// errorHandler renders every failure as {"message": ...}.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := statusFor(err)
		message := err.Error()

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
		}

		if code >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
			if he == nil {
				message = http.StatusText(code)
			}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, errorResponse{Message: message})
		}
		if err != nil {
			logger.Error("failed to write error response", "error", err)
		}
	}
}
