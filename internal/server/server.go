// Package server is the reference task authority: a JSON API over the
// SQLite repository that keeps every column densely ordered.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/thenoetrevino/tablero/internal/ai"
	"github.com/thenoetrevino/tablero/internal/models"
)

const shutdownTimeout = 5 * time.Second

// Storage is what the API serves from.
type Storage interface {
	FetchTasks(ctx context.Context, projectID string) ([]models.Task, error)
	CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ReorderTask(ctx context.Context, req models.ReorderRequest) (*models.Task, error)

	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, id string, req models.UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error

	Ping(ctx context.Context) error
}

// New builds the echo instance with middleware and all routes.
func New(store Storage, assistant ai.Assistant, logger *slog.Logger) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = sonicSerializer{}
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	}))

	Register(e, store, assistant)
	return e
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
