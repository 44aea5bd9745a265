package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/thenoetrevino/tablero/internal/models"
)

// DefaultRequestTimeout bounds every call to the authority
const DefaultRequestTimeout = 10 * time.Second

// Authority is the remote source of truth for tasks. It is the final arbiter
// of status and order.
type Authority interface {
	FetchTasks(ctx context.Context, projectID string) ([]models.Task, error)
	CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ReorderTask(ctx context.Context, req models.ReorderRequest) (*models.Task, error)
}

// ControllerOption configures a Controller
type ControllerOption func(*Controller)

// WithNotifier sets where user-facing failures are reported
func WithNotifier(n Notifier) ControllerOption {
	return func(c *Controller) {
		c.notifier = n
	}
}

// WithLogger sets the controller logger
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithRefreshDebounce sets the background refresh coalescing window
func WithRefreshDebounce(d time.Duration) ControllerOption {
	return func(c *Controller) {
		c.debounce = d
	}
}

// WithRequestTimeout sets the per-call deadline for authority requests
func WithRequestTimeout(d time.Duration) ControllerOption {
	return func(c *Controller) {
		c.timeout = d
	}
}

// Controller applies moves optimistically and reconciles them with the authority.
type Controller struct {
	store     *Store
	authority Authority
	notifier  Notifier
	logger    *slog.Logger
	timeout   time.Duration
	debounce  time.Duration

	refresher *Refresher
	settling  sync.WaitGroup
	metrics   *Metrics

	ctx    context.Context
	cancel context.CancelFunc
}

// NewController wires a store to an authority and starts background refresh
func NewController(store *Store, authority Authority, opts ...ControllerOption) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		store:     store,
		authority: authority,
		logger:    slog.Default(),
		timeout:   DefaultRequestTimeout,
		debounce:  DefaultRefreshDebounce,
		metrics:   NewMetrics(),
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notifier == nil {
		c.notifier = logNotifier{logger: c.logger}
	}

	c.refresher = NewRefresher(c.debounce, c.Refresh, func(err error) {
		c.logger.Warn("background refresh failed", "project_id", c.store.ProjectID(), "error", err)
		c.notifier.Notify(Notification{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Could not refresh the board: %v", err),
		})
	})
	return c
}

// Store returns the underlying task store
func (c *Controller) Store() *Store {
	return c.store
}

// Metrics returns the controller's sync counters
func (c *Controller) Metrics() *Metrics {
	return c.metrics
}

// Columns returns the current board columns
func (c *Controller) Columns() Columns {
	return c.store.Columns()
}

// Subscribe forwards to Store.Subscribe
func (c *Controller) Subscribe() (<-chan Change, func()) {
	return c.store.Subscribe()
}

// Load fetches the project's tasks and installs them as the initial state
func (c *Controller) Load(ctx context.Context) error {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	tasks, err := c.authority.FetchTasks(ctx, c.store.ProjectID())
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	c.store.Hydrate(FromTasks(tasks))
	return nil
}

// Refresh fetches the authority's view and replaces the store with it,
// subject to the store's stale and hold rules.
func (c *Controller) Refresh(ctx context.Context) error {
	token := c.store.FetchToken()

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	tasks, err := c.authority.FetchTasks(ctx, c.store.ProjectID())
	if err != nil {
		return fmt.Errorf("failed to refresh tasks: %w", err)
	}

	outcome := c.store.Replace(FromTasks(tasks), token)
	c.metrics.refreshed(outcome)
	c.logger.Debug("refresh finished", "project_id", c.store.ProjectID(), "outcome", outcome.String())
	return nil
}

// RequestRefresh schedules a debounced background refresh
func (c *Controller) RequestRefresh() {
	c.refresher.Trigger()
}

// SubmitMove applies the move to the store before returning, then asks the
// authority to confirm it in the background. The returned handle reports how
// the move settled.
func (c *Controller) SubmitMove(taskID string, to models.Status, toIndex int) *PendingMove {
	req := models.ReorderRequest{TaskID: taskID, ToStatus: to, ToIndex: toIndex}

	before, ok := c.store.beginMove(taskID, to, toIndex)
	if !ok {
		err := models.ErrTaskNotFound
		if !to.Valid() {
			err = models.ErrInvalidStatus
		}
		c.logger.Warn("ignoring move", "task_id", taskID, "status", to, "error", err)
		c.metrics.moveRejected()
		return rejectedMove(req, fmt.Errorf("move task %s: %w", taskID, err))
	}

	move := newPendingMove(req)
	c.metrics.moveSubmitted()
	c.settling.Add(1)
	go c.settle(move, before)
	return move
}

func (c *Controller) settle(move *PendingMove, before Snapshot) {
	defer c.settling.Done()
	move.transition(MoveSettling)

	ctx, cancel := c.callContext(c.ctx)
	task, err := c.authority.ReorderTask(ctx, move.Request)
	cancel()

	if err != nil {
		c.store.rollbackMove(before, move.Request.TaskID)
		c.store.endMove()
		c.reportMoveFailure(move.Request, err)
		c.refresher.Trigger()
		c.metrics.moveSettled(MoveRolledBack)
		move.finish(MoveRolledBack, err)
		return
	}

	c.store.mergeMove(task)
	c.store.endMove()
	c.refresher.Trigger()
	c.metrics.moveSettled(MoveMerged)
	move.finish(MoveMerged, nil)
}

func (c *Controller) reportMoveFailure(req models.ReorderRequest, err error) {
	c.logger.Warn("move rolled back", "task_id", req.TaskID, "status", req.ToStatus, "index", req.ToIndex, "error", err)

	if errors.Is(err, models.ErrNotFound) {
		c.notifier.Notify(Notification{
			Severity: SeverityWarning,
			Message:  "That task no longer exists. Refreshing the board.",
		})
		return
	}
	c.notifier.Notify(Notification{
		Severity: SeverityError,
		Message:  fmt.Sprintf("Move failed, board restored: %v", err),
	})
}

// CreateTask creates a task through the authority and adds the returned record.
// An empty ProjectID defaults to the store's project.
func (c *Controller) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	if req.ProjectID == "" {
		req.ProjectID = c.store.ProjectID()
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	task, err := c.authority.CreateTask(ctx, req)
	if err != nil {
		c.notifyFailure("create task", err)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	if task.ProjectID == c.store.ProjectID() {
		c.store.Upsert(*task)
	}
	c.refresher.Trigger()
	return task, nil
}

// UpdateTask changes task fields through the authority and stores the result
func (c *Controller) UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (*models.Task, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	task, err := c.authority.UpdateTask(ctx, id, req)
	if err != nil {
		c.notifyFailure("update task", err)
		c.refresher.Trigger()
		return nil, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	c.store.Upsert(*task)
	c.refresher.Trigger()
	return task, nil
}

// DeleteTask removes a task. A task the authority no longer knows about is
// removed locally as well.
func (c *Controller) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	err := c.authority.DeleteTask(ctx, id)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		c.notifyFailure("delete task", err)
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	if err != nil {
		c.logger.Info("task already gone at authority", "task_id", id)
	}

	c.store.Forget(id)
	c.refresher.Trigger()
	return nil
}

func (c *Controller) notifyFailure(action string, err error) {
	c.logger.Warn("authority call failed", "action", action, "project_id", c.store.ProjectID(), "error", err)

	severity := SeverityError
	if errors.Is(err, models.ErrNotFound) {
		severity = SeverityWarning
	}
	c.notifier.Notify(Notification{
		Severity: severity,
		Message:  fmt.Sprintf("Could not %s: %v", action, err),
	})
}

// WaitIdle blocks until every submitted move has settled and the background
// refreshes they scheduled have finished.
func (c *Controller) WaitIdle(ctx context.Context) error {
	settled := make(chan struct{})
	go func() {
		c.settling.Wait()
		close(settled)
	}()

	select {
	case <-settled:
	case <-ctx.Done():
		return ctx.Err()
	}
	return c.refresher.WaitIdle(ctx)
}

// Close cancels in-flight requests, waits for their reconciliation and stops
// background refresh.
func (c *Controller) Close() {
	c.cancel()
	c.settling.Wait()
	c.refresher.Close()
}

func (c *Controller) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, c.timeout)
}
