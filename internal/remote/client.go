// Package remote talks to a tablero authority over its REST API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thenoetrevino/tablero/internal/models"
)

// Client is an HTTP implementation of the task authority
type Client struct {
	baseURL     *url.URL
	http        *http.Client
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds every single request attempt
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithRetry sets how often idempotent requests are attempted and the first backoff delay
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(c *Client) {
		c.maxAttempts = maxAttempts
		c.baseDelay = baseDelay
	}
}

// WithLogger sets the client logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the authority at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:     u,
		http:        &http.Client{Timeout: 10 * time.Second},
		maxAttempts: 3,
		baseDelay:   200 * time.Millisecond,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.maxAttempts < 1 {
		c.maxAttempts = 1
	}
	return c, nil
}

// BaseURL returns the authority address
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Ping checks that the authority answers
func (c *Client) Ping(ctx context.Context) error {
	return c.Do(ctx, http.MethodGet, "/healthz", nil, nil)
}

// Do sends one JSON request and decodes the JSON answer into out (when non-nil).
// GET requests are retried on transport failures; see DoIdempotent for others.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, method == http.MethodGet)
}

// DoIdempotent is Do with retries for a non-GET request that is safe to repeat
func (c *Client) DoIdempotent(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, true)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, retry bool) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	attempts := 1
	if retry {
		attempts = c.maxAttempts
	}

	delay := c.baseDelay
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return lastErr
			case <-time.After(delay):
			}
			delay *= 2
		}

		err := c.roundTrip(ctx, method, path, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err

		var reqErr *RequestError
		if !errors.As(err, &reqErr) || !reqErr.Transport() || ctx.Err() != nil {
			return err
		}
		if i+1 < attempts {
			c.logger.Debug("retrying request", "method", method, "path", path, "attempt", i+1, "error", err)
		}
	}
	return lastErr
}

func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte, out any) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, &apiErr)
		return classifyResponse(resp.StatusCode, apiErr.Message)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// ============================================================================
// Tasks
// ============================================================================

func (c *Client) FetchTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.Do(ctx, http.MethodGet, "/api/tasks/project/"+url.PathEscape(projectID), nil, &tasks); err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := c.Do(ctx, http.MethodPost, "/api/tasks", req, &task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := c.Do(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(id), req, &task); err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := c.Do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return nil
}

// ReorderTask moves a task. Repeating the request lands the task in the same
// place, so it is retried like a read.
func (c *Client) ReorderTask(ctx context.Context, req models.ReorderRequest) (*models.Task, error) {
	var task models.Task
	if err := c.DoIdempotent(ctx, http.MethodPost, "/api/tasks/reorder", req, &task); err != nil {
		return nil, fmt.Errorf("failed to reorder task %s: %w", req.TaskID, err)
	}
	return &task, nil
}

// ============================================================================
// Projects
// ============================================================================

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.Do(ctx, http.MethodGet, "/api/projects", nil, &projects); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (c *Client) CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error) {
	var project models.Project
	if err := c.Do(ctx, http.MethodPost, "/api/projects", req, &project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, req models.UpdateProjectRequest) (*models.Project, error) {
	var project models.Project
	if err := c.Do(ctx, http.MethodPatch, "/api/projects/"+url.PathEscape(id), req, &project); err != nil {
		return nil, fmt.Errorf("failed to update project %s: %w", id, err)
	}
	return &project, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	if err := c.Do(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}
	return nil
}
