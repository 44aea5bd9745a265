package app

import (
	"log/slog"

	"github.com/thenoetrevino/tablero/internal/ai"
	"github.com/thenoetrevino/tablero/internal/config"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	cfg       *config.Config
	assistant ai.Assistant
	logger    *slog.Logger
}

// WithConfig sets the configuration the app reads timeouts and defaults from
func WithConfig(cfg *config.Config) Option {
	return func(c *appConfig) {
		c.cfg = cfg
	}
}

// WithAssistant overrides the assistant chosen for the backend
func WithAssistant(a ai.Assistant) Option {
	return func(c *appConfig) {
		c.assistant = a
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(c *appConfig) {
		c.logger = logger
	}
}
