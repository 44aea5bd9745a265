package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/thenoetrevino/tablero/internal/models"
)

// Authority is an in-memory task authority for controller tests.
// It keeps dense order per status like the real one and lets tests hold
// or fail individual requests.
type Authority struct {
	mu    sync.Mutex
	tasks map[string]models.Task
	seq   int

	reorderGates map[string]chan struct{}
	reorderErrs  map[string]error
	fetchGate    chan struct{}
	fetchErr     error
	mutateErr    error

	reorderCalls int
	fetchCalls   int
}

// NewAuthority creates an authority holding the given tasks
func NewAuthority(tasks ...models.Task) *Authority {
	a := &Authority{
		tasks:        make(map[string]models.Task),
		reorderGates: make(map[string]chan struct{}),
		reorderErrs:  make(map[string]error),
	}
	for _, t := range tasks {
		a.tasks[t.ID] = t
	}
	return a
}

// Task builds a task record for seeding
func Task(id, projectID string, status models.Status, order int) models.Task {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return models.Task{
		ID:        id,
		ProjectID: projectID,
		Title:     "Task " + id,
		Status:    status,
		Order:     order,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// Seed inserts or overwrites records as given, without renumbering
func (a *Authority) Seed(tasks ...models.Task) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, t := range tasks {
		a.tasks[t.ID] = t
	}
}

// HoldReorder blocks reorder requests for taskID until release is called
func (a *Authority) HoldReorder(taskID string) (release func()) {
	gate := make(chan struct{})
	a.mu.Lock()
	a.reorderGates[taskID] = gate
	a.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { close(gate) })
	}
}

// FailReorder makes reorder requests for taskID return err
func (a *Authority) FailReorder(taskID string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reorderErrs[taskID] = err
}

// HoldFetches blocks FetchTasks until release is called
func (a *Authority) HoldFetches() (release func()) {
	gate := make(chan struct{})
	a.mu.Lock()
	a.fetchGate = gate
	a.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			a.mu.Lock()
			a.fetchGate = nil
			a.mu.Unlock()
			close(gate)
		})
	}
}

// FailFetches makes FetchTasks return err; nil restores normal behaviour
func (a *Authority) FailFetches(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fetchErr = err
}

// FailMutations makes create, update and delete return err
func (a *Authority) FailMutations(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mutateErr = err
}

// Remove deletes a task behind the client's back
func (a *Authority) Remove(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if t, ok := a.tasks[id]; ok {
		delete(a.tasks, id)
		a.renumber(t.Status, a.column(t.ProjectID, t.Status, ""))
	}
}

// ReorderCalls returns how many reorder requests were received
func (a *Authority) ReorderCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reorderCalls
}

// FetchCalls returns how many fetches were received
func (a *Authority) FetchCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fetchCalls
}

func (a *Authority) FetchTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	a.mu.Lock()
	a.fetchCalls++
	gate := a.fetchGate
	a.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fetchErr != nil {
		return nil, a.fetchErr
	}

	var out []models.Task
	for _, t := range a.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (a *Authority) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mutateErr != nil {
		return nil, a.mutateErr
	}

	status := req.Status
	if status == "" {
		status = models.StatusTodo
	}
	a.seq++
	now := time.Now().UTC()
	t := models.Task{
		ID:          fmt.Sprintf("new-%d", a.seq),
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Order:       len(a.column(req.ProjectID, status, "")),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	a.tasks[t.ID] = t
	return &t, nil
}

func (a *Authority) UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (*models.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mutateErr != nil {
		return nil, a.mutateErr
	}

	t, ok := a.tasks[id]
	if !ok {
		return nil, models.ErrTaskNotFound
	}
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	t.UpdatedAt = time.Now().UTC()
	a.tasks[id] = t
	return &t, nil
}

func (a *Authority) DeleteTask(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mutateErr != nil {
		return a.mutateErr
	}

	t, ok := a.tasks[id]
	if !ok {
		return models.ErrTaskNotFound
	}
	delete(a.tasks, id)
	a.renumber(t.Status, a.column(t.ProjectID, t.Status, ""))
	return nil
}

func (a *Authority) ReorderTask(ctx context.Context, req models.ReorderRequest) (*models.Task, error) {
	a.mu.Lock()
	a.reorderCalls++
	gate := a.reorderGates[req.TaskID]
	a.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.reorderErrs[req.TaskID]; err != nil {
		return nil, err
	}

	t, ok := a.tasks[req.TaskID]
	if !ok {
		return nil, models.ErrTaskNotFound
	}
	if !req.ToStatus.Valid() {
		return nil, models.ErrInvalidStatus
	}

	from := t.Status
	dest := a.column(t.ProjectID, req.ToStatus, t.ID)
	idx := max(0, min(req.ToIndex, len(dest)))
	dest = append(dest[:idx], append([]string{t.ID}, dest[idx:]...)...)

	t.Status = req.ToStatus
	t.UpdatedAt = time.Now().UTC()
	a.tasks[t.ID] = t
	a.renumber(req.ToStatus, dest)
	if from != req.ToStatus {
		a.renumber(from, a.column(t.ProjectID, from, ""))
	}

	out := a.tasks[t.ID]
	return &out, nil
}

// column returns the ids in one status ordered by order then id, leaving out skip
func (a *Authority) column(projectID string, status models.Status, skip string) []string {
	var col []models.Task
	for _, t := range a.tasks {
		if t.ProjectID == projectID && t.Status == status && t.ID != skip {
			col = append(col, t)
		}
	}
	sort.Slice(col, func(i, j int) bool {
		if col[i].Order != col[j].Order {
			return col[i].Order < col[j].Order
		}
		return col[i].ID < col[j].ID
	})
	ids := make([]string, len(col))
	for i, t := range col {
		ids[i] = t.ID
	}
	return ids
}

func (a *Authority) renumber(status models.Status, ids []string) {
	for i, id := range ids {
		t := a.tasks[id]
		t.Status = status
		t.Order = i
		a.tasks[id] = t
	}
}
