package board

import (
	"context"
	"sync"
	"time"
)

// DefaultRefreshDebounce is the window in which refresh triggers coalesce
const DefaultRefreshDebounce = 150 * time.Millisecond

// Refresher runs a fetch in the background after one or more triggers.
// Triggers arriving within the debounce window collapse into a single call.
type Refresher struct {
	fn       func(context.Context) error
	onError  func(error)
	debounce time.Duration

	kick chan struct{}
	ctx  context.Context
	stop context.CancelFunc
	done chan struct{}

	mu     sync.Mutex
	busy   bool
	idle   chan struct{}
	closed bool
}

// NewRefresher starts the refresh loop. onError may be nil.
func NewRefresher(debounce time.Duration, fn func(context.Context) error, onError func(error)) *Refresher {
	if debounce < 0 {
		debounce = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &Refresher{
		fn:       fn,
		onError:  onError,
		debounce: debounce,
		kick:     make(chan struct{}, 1),
		ctx:      ctx,
		stop:     cancel,
		done:     make(chan struct{}),
	}
	go r.run()
	return r
}

// Trigger schedules a refresh without blocking
func (r *Refresher) Trigger() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	if !r.busy {
		r.busy = true
		r.idle = make(chan struct{})
	}

	select {
	case r.kick <- struct{}{}:
	default:
	}
}

// WaitIdle blocks until no refresh is queued or running
func (r *Refresher) WaitIdle(ctx context.Context) error {
	r.mu.Lock()
	if !r.busy {
		r.mu.Unlock()
		return nil
	}
	idle := r.idle
	r.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the loop. A refresh that is already running is cancelled.
func (r *Refresher) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.stop()
	<-r.done

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy {
		r.busy = false
		close(r.idle)
	}
}

func (r *Refresher) run() {
	defer close(r.done)

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-r.kick:
		}

		if r.debounce > 0 {
			timer := time.NewTimer(r.debounce)
			select {
			case <-r.ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}

		// collapse everything that arrived during the window
	drain:
		for {
			select {
			case <-r.kick:
			default:
				break drain
			}
		}

		if err := r.fn(r.ctx); err != nil && r.onError != nil && r.ctx.Err() == nil {
			r.onError(err)
		}

		r.mu.Lock()
		if len(r.kick) == 0 && r.busy {
			r.busy = false
			close(r.idle)
		}
		r.mu.Unlock()
	}
}
