package tui

import (
	"sync"

	"github.com/thenoetrevino/tablero/internal/board"
	"github.com/thenoetrevino/tablero/internal/models"
)

// notificationBuffer bounds notifications queued while the UI is busy
const notificationBuffer = 16

// boardSession is one open project: its controller and the channels the
// model listens on. gen identifies the session so messages from a board
// that was switched away from are dropped.
type boardSession struct {
	gen     int
	project models.Project
	ctrl    *board.Controller
	changes <-chan board.Change
	unsub   func()
	notes   *board.ChannelNotifier

	done      chan struct{}
	closeOnce sync.Once
}

func newBoardSession(gen int, project models.Project, ctrl *board.Controller, notes *board.ChannelNotifier) *boardSession {
	changes, unsub := ctrl.Subscribe()
	return &boardSession{
		gen:     gen,
		project: project,
		ctrl:    ctrl,
		changes: changes,
		unsub:   unsub,
		notes:   notes,
		done:    make(chan struct{}),
	}
}

// close stops the listeners and the controller. Safe to call twice.
func (s *boardSession) close() {
	if s == nil {
		return
	}
	s.closeOnce.Do(func() {
		close(s.done)
		s.unsub()
		s.ctrl.Close()
	})
}

func (s *boardSession) columns() board.Columns {
	return s.ctrl.Columns()
}

// lens returns the card count of each column
func (s *boardSession) lens() [3]int {
	cols := s.columns()
	return [3]int{len(cols[0]), len(cols[1]), len(cols[2])}
}
