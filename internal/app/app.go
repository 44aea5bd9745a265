package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/thenoetrevino/tablero/internal/ai"
	"github.com/thenoetrevino/tablero/internal/board"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/remote"
	projectservice "github.com/thenoetrevino/tablero/internal/services/project"
)

// Backend is the authority the application talks to: the board's task
// operations plus project management. *database.Repository and
// *remote.Client both satisfy it.
type Backend interface {
	board.Authority
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, id string, req models.UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	backend Backend
	cfg     *config.Config
	logger  *slog.Logger
	closers []io.Closer

	// Service layer (business logic)
	ProjectService projectservice.Service
	Assistant      ai.Assistant
}

// New creates a new App over an already constructed backend.
func New(backend Backend, opts ...Option) *App {
	ac := appConfig{}
	for _, opt := range opts {
		opt(&ac)
	}
	if ac.cfg == nil {
		ac.cfg = config.Default()
	}
	if ac.logger == nil {
		ac.logger = slog.Default()
	}

	a := &App{
		backend:        backend,
		cfg:            ac.cfg,
		logger:         ac.logger,
		ProjectService: projectservice.NewService(backend, ac.logger),
		Assistant:      ac.assistant,
	}
	if a.Assistant == nil {
		a.Assistant = defaultAssistant(backend)
	}
	if c, ok := backend.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}
	return a
}

// Open builds the backend described by cfg: the local SQLite database when
// cfg.Local is set, the HTTP authority otherwise.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	opts = append([]Option{WithConfig(cfg)}, opts...)
	ac := appConfig{}
	for _, opt := range opts {
		opt(&ac)
	}
	logger := ac.logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Local {
		path := cfg.DatabasePath
		if path == "" {
			var err error
			if path, err = database.DefaultPath(); err != nil {
				return nil, err
			}
		}
		db, err := database.Open(ctx, path)
		if err != nil {
			return nil, err
		}
		logger.Info("using local database", "path", path)
		return New(database.NewRepository(db), opts...), nil
	}

	client, err := remote.NewClient(cfg.APIURL,
		remote.WithTimeout(cfg.RequestTimeout),
		remote.WithRetry(cfg.Retry.MaxAttempts, cfg.Retry.BaseDelay),
		remote.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	logger.Info("using remote authority", "url", client.BaseURL())
	return New(client, opts...), nil
}

// defaultAssistant picks the summarizer matching the backend: the remote
// AI endpoints for the HTTP client, a local summarizer for the database.
func defaultAssistant(backend Backend) ai.Assistant {
	switch b := backend.(type) {
	case *remote.Client:
		return ai.NewClient(b)
	case ai.Source:
		return ai.NewSummarizer(b)
	}
	return nil
}

// Backend returns the authority behind the app
func (a *App) Backend() Backend {
	return a.backend
}

// Config returns the configuration the app was built with
func (a *App) Config() *config.Config {
	return a.cfg
}

// ResolveProject finds the project named by ref, falling back to the
// configured project and then to the first one.
func (a *App) ResolveProject(ctx context.Context, ref string) (*models.Project, error) {
	if ref == "" {
		ref = a.cfg.ProjectID
	}
	return a.ProjectService.Resolve(ctx, ref)
}

// OpenBoard creates a controller for projectID and loads its tasks. The
// caller owns the controller and must Close it.
func (a *App) OpenBoard(ctx context.Context, projectID string, notifier board.Notifier) (*board.Controller, error) {
	logger := a.logger.With("project_id", projectID)
	opts := []board.ControllerOption{
		board.WithLogger(logger),
		board.WithRequestTimeout(a.cfg.RequestTimeout),
		board.WithRefreshDebounce(a.cfg.RefreshDebounce),
	}
	if notifier != nil {
		opts = append(opts, board.WithNotifier(notifier))
	}

	store := board.NewStore(projectID, board.WithStoreLogger(logger))
	ctrl := board.NewController(store, a.backend, opts...)
	if err := ctrl.Load(ctx); err != nil {
		ctrl.Close()
		return nil, fmt.Errorf("failed to open board: %w", err)
	}
	return ctrl, nil
}

// Close performs cleanup of application resources.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
