package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/config"
)

type appKey struct{}

type configKey struct{}

// CLI represents the CLI application context
type CLI struct {
	App *app.App // Application container with services

	// owned is false when the app was injected and belongs to the caller
	owned bool
}

// WithApp stores an already built app in ctx. Commands run against it
// instead of opening their own backend.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// WithConfig stores the resolved configuration in ctx
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFromContext returns the configuration stored by the root command,
// loading it from disk when there is none.
func ConfigFromContext(ctx context.Context) (*config.Config, error) {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
		return cfg, nil
	}
	return config.Load()
}

// NewCLI opens the backend described by cfg
func NewCLI(ctx context.Context, cfg *config.Config) (*CLI, error) {
	a, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return &CLI{App: a, owned: true}, nil
}

// GetCLIFromContext returns a CLI for the command's context, reusing an
// injected app when present.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey{}).(*app.App); ok && a != nil {
		return &CLI{App: a}, nil
	}
	cfg, err := ConfigFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return NewCLI(ctx, cfg)
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
