package board

import (
	"sync/atomic"
	"time"
)

// Metrics tracks how moves and refreshes settle, using atomic operations so
// the UI can read them while moves are in flight.
type Metrics struct {
	MovesSubmitted  atomic.Int64
	MovesMerged     atomic.Int64
	MovesRolledBack atomic.Int64
	MovesRejected   atomic.Int64
	InFlight        atomic.Int32

	RefreshesApplied atomic.Int64
	RefreshesDropped atomic.Int64
	RefreshesHeld    atomic.Int64

	StartTime time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

func (m *Metrics) moveSubmitted() {
	m.MovesSubmitted.Add(1)
	m.InFlight.Add(1)
}

func (m *Metrics) moveRejected() {
	m.MovesRejected.Add(1)
}

// moveSettled records the terminal state of a submitted move
func (m *Metrics) moveSettled(state MoveState) {
	m.InFlight.Add(-1)
	if state == MoveMerged {
		m.MovesMerged.Add(1)
	} else {
		m.MovesRolledBack.Add(1)
	}
}

func (m *Metrics) refreshed(outcome ReplaceOutcome) {
	switch outcome {
	case ReplaceApplied, ReplaceUnchanged:
		m.RefreshesApplied.Add(1)
	case ReplaceHeld:
		m.RefreshesHeld.Add(1)
	case ReplaceStale:
		m.RefreshesDropped.Add(1)
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	MovesSubmitted   int64  `json:"moves_submitted"`
	MovesMerged      int64  `json:"moves_merged"`
	MovesRolledBack  int64  `json:"moves_rolled_back"`
	MovesRejected    int64  `json:"moves_rejected"`
	InFlight         int32  `json:"in_flight"`
	RefreshesApplied int64  `json:"refreshes_applied"`
	RefreshesDropped int64  `json:"refreshes_dropped"`
	RefreshesHeld    int64  `json:"refreshes_held"`
	Uptime           string `json:"uptime"`
}

// Snapshot returns a snapshot of current metrics
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		MovesSubmitted:   m.MovesSubmitted.Load(),
		MovesMerged:      m.MovesMerged.Load(),
		MovesRolledBack:  m.MovesRolledBack.Load(),
		MovesRejected:    m.MovesRejected.Load(),
		InFlight:         m.InFlight.Load(),
		RefreshesApplied: m.RefreshesApplied.Load(),
		RefreshesDropped: m.RefreshesDropped.Load(),
		RefreshesHeld:    m.RefreshesHeld.Load(),
		Uptime:           time.Since(m.StartTime).Truncate(time.Second).String(),
	}
}
