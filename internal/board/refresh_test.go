package board

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefresherCoalescesTriggers(t *testing.T) {
	var calls atomic.Int32
	r := NewRefresher(30*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return nil
	}, nil)
	defer r.Close()

	for range 5 {
		r.Trigger()
	}
	require.NoError(t, r.WaitIdle(t.Context()))
	assert.Equal(t, int32(1), calls.Load())

	r.Trigger()
	require.NoError(t, r.WaitIdle(t.Context()))
	assert.Equal(t, int32(2), calls.Load())
}

func TestRefresherTriggerDuringRun(t *testing.T) {
	started := make(chan struct{})
	unblock := make(chan struct{})
	var calls atomic.Int32

	r := NewRefresher(0, func(context.Context) error {
		if calls.Add(1) == 1 {
			close(started)
			<-unblock
		}
		return nil
	}, nil)
	defer r.Close()

	r.Trigger()
	<-started
	r.Trigger()
	close(unblock)

	require.NoError(t, r.WaitIdle(t.Context()))
	assert.Equal(t, int32(2), calls.Load())
}

func TestRefresherReportsErrors(t *testing.T) {
	boom := errors.New("boom")
	errs := make(chan error, 1)
	r := NewRefresher(0, func(context.Context) error { return boom }, func(err error) { errs <- err })
	defer r.Close()

	r.Trigger()
	require.NoError(t, r.WaitIdle(t.Context()))
	assert.ErrorIs(t, <-errs, boom)
}

func TestRefresherIdleWithoutTriggers(t *testing.T) {
	r := NewRefresher(time.Hour, func(context.Context) error { return nil }, nil)
	defer r.Close()

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()
	assert.NoError(t, r.WaitIdle(ctx))
}

func TestRefresherClose(t *testing.T) {
	var calls atomic.Int32
	r := NewRefresher(time.Hour, func(context.Context) error {
		calls.Add(1)
		return nil
	}, nil)

	r.Trigger()
	r.Close()
	r.Close()

	// a queued refresh is abandoned and waiters are released
	assert.NoError(t, r.WaitIdle(t.Context()))
	r.Trigger()
	assert.Equal(t, int32(0), calls.Load())
}
