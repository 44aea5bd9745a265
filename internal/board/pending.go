package board

import (
	"context"
	"sync"

	"github.com/thenoetrevino/tablero/internal/models"
)

// MoveState is the reconciliation state of one submitted move
type MoveState int

const (
	// MoveApplied means the optimistic result is in the store and no request has gone out yet
	MoveApplied MoveState = iota
	// MoveSettling means the reorder request is in flight
	MoveSettling
	// MoveMerged means the authority accepted the move and its record was merged
	MoveMerged
	// MoveRolledBack means the authority call failed and the pre-move positions were restored
	MoveRolledBack
	// MoveRejected means the move was never applied (unknown task or status)
	MoveRejected
)

func (s MoveState) String() string {
	switch s {
	case MoveApplied:
		return "applied"
	case MoveSettling:
		return "settling"
	case MoveMerged:
		return "merged"
	case MoveRolledBack:
		return "rolled_back"
	case MoveRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen
func (s MoveState) Terminal() bool {
	return s == MoveMerged || s == MoveRolledBack || s == MoveRejected
}

// PendingMove is the handle returned by SubmitMove
type PendingMove struct {
	Request models.ReorderRequest

	mu    sync.Mutex
	state MoveState
	err   error
	done  chan struct{}
}

func newPendingMove(req models.ReorderRequest) *PendingMove {
	return &PendingMove{
		Request: req,
		state:   MoveApplied,
		done:    make(chan struct{}),
	}
}

func rejectedMove(req models.ReorderRequest, err error) *PendingMove {
	m := newPendingMove(req)
	m.finish(MoveRejected, err)
	return m
}

// State returns the current state
func (m *PendingMove) State() MoveState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err returns the failure that caused a rollback or rejection
func (m *PendingMove) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Done is closed once the move reaches a terminal state
func (m *PendingMove) Done() <-chan struct{} {
	return m.done
}

// Wait blocks until the move settles or ctx ends
func (m *PendingMove) Wait(ctx context.Context) (MoveState, error) {
	select {
	case <-m.done:
		return m.State(), m.Err()
	case <-ctx.Done():
		return m.State(), ctx.Err()
	}
}

func (m *PendingMove) transition(to MoveState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Terminal() {
		return
	}
	m.state = to
}

func (m *PendingMove) finish(to MoveState, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Terminal() {
		return
	}
	m.state = to
	m.err = err
	close(m.done)
}
