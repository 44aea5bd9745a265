// Package launcher starts the interactive board
package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/logging"
	"github.com/thenoetrevino/tablero/internal/tui"
)

// drainTimeout bounds how long moves still settling may delay exit
const drainTimeout = 5 * time.Second

// Launch starts the TUI on projectRef (id or name, empty for the configured
// project) and blocks until the user quits or ctx is cancelled.
func Launch(ctx context.Context, cfg *config.Config, projectRef string) error {
	// The board owns the terminal, so logs go to a file
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logFile, err := logging.Init(level)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			slog.Error("error closing log file", "error", err)
		}
	}()

	application, err := app.Open(ctx, cfg, app.WithLogger(logging.Logger))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("error closing application", "error", err)
		}
	}()

	if projectRef != "" {
		project, err := application.ResolveProject(ctx, projectRef)
		if err != nil {
			return err
		}
		projectRef = project.ID
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- tui.Run(ctx, application, projectRef)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		slog.Info("shutdown signal received, cleaning up")
		select {
		case err := <-errChan:
			return err
		case <-time.After(drainTimeout):
			return ctx.Err()
		}
	}
}
