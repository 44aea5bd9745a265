// Package project holds project business rules shared by the CLI and the
// terminal board, over either the local database or the remote authority.
package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/tablero/internal/models"
)

// Service defines all project-related business operations
type Service interface {
	// Read operations
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Resolve(ctx context.Context, ref string) (*models.Project, error)
	GetTaskCount(ctx context.Context, projectID string) (int, error)

	// Write operations
	Create(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error)
	Update(ctx context.Context, id string, req models.UpdateProjectRequest) (*models.Project, error)
	Delete(ctx context.Context, id string, force bool) error
}

// repository defines the data access methods needed by the project service.
// Both the SQLite repository and the HTTP client satisfy it.
type repository interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, id string, req models.UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error
	FetchTasks(ctx context.Context, projectID string) ([]models.Task, error)
}

type service struct {
	repo   repository
	logger *slog.Logger
}

// NewService creates a new project service over repo
func NewService(repo repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{repo: repo, logger: logger}
}

func (s *service) List(ctx context.Context) ([]models.Project, error) {
	return s.repo.ListProjects(ctx)
}

// Get finds a project by exact id.
func (s *service) Get(ctx context.Context, id string) (*models.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidProjectID
	}
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, fmt.Errorf("project %s: %w", id, ErrProjectNotFound)
}

// Resolve accepts a project id or a case-insensitive name. An empty ref
// picks the first project.
func (s *service) Resolve(ctx context.Context, ref string) (*models.Project, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	ref = strings.TrimSpace(ref)
	if ref == "" {
		if len(projects) == 0 {
			return nil, ErrNoProjects
		}
		return &projects[0], nil
	}

	var match *models.Project
	for i := range projects {
		p := &projects[i]
		if p.ID == ref {
			return p, nil
		}
		if strings.EqualFold(p.Name, ref) {
			if match != nil {
				return nil, fmt.Errorf("%q: %w", ref, ErrAmbiguousProject)
			}
			match = p
		}
	}
	if match == nil {
		return nil, fmt.Errorf("project %q: %w", ref, ErrProjectNotFound)
	}
	return match, nil
}

func (s *service) GetTaskCount(ctx context.Context, projectID string) (int, error) {
	if strings.TrimSpace(projectID) == "" {
		return 0, ErrInvalidProjectID
	}
	tasks, err := s.repo.FetchTasks(ctx, projectID)
	if err != nil {
		return 0, err
	}
	return len(tasks), nil
}

// Create creates a new project with validation
func (s *service) Create(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	req.Name = name

	p, err := s.repo.CreateProject(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("project created", "project_id", p.ID, "name", p.Name)
	return p, nil
}

// Update renames or re-describes a project
func (s *service) Update(ctx context.Context, id string, req models.UpdateProjectRequest) (*models.Project, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidProjectID
	}
	if req.Name != nil {
		name, err := validateName(*req.Name)
		if err != nil {
			return nil, err
		}
		req.Name = &name
	}

	p, err := s.repo.UpdateProject(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("project updated", "project_id", id)
	return p, nil
}

// Delete removes a project. Unless force is set, a project that still has
// tasks is kept.
func (s *service) Delete(ctx context.Context, id string, force bool) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidProjectID
	}

	if !force {
		count, err := s.GetTaskCount(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to check project tasks: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w (%d remaining)", ErrProjectHasTasks, count)
		}
	}

	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.logger.Info("project deleted", "project_id", id)
	return nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > models.MaxTitleLength {
		return "", ErrNameTooLong
	}
	return name, nil
}
