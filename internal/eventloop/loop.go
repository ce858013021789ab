// Package eventloop runs every state mutation of a map session on a single
// goroutine, in the order events are delivered.
//
// Blocking work (provider calls) never runs on the loop. It is started with
// Dispatch on its own goroutine and hands a completion back to the loop,
// which applies it like any other event.
package eventloop

import (
	"context"
	"errors"
)

// ErrStopped is returned when submitting to a loop that is no longer running
var ErrStopped = errors.New("event loop stopped")

// Dispatcher moves blocking work off the loop and its completion back onto it.
// work runs on its own goroutine; the func it returns runs on the loop.
type Dispatcher interface {
	Dispatch(work func() (complete func()))
}

// Loop is a single-writer task queue
type Loop struct {
	tasks   chan func()
	stopped chan struct{}
}

// New creates a loop whose queue holds up to buffer pending tasks
func New(buffer int) *Loop {
	return &Loop{
		tasks:   make(chan func(), buffer),
		stopped: make(chan struct{}),
	}
}

// Run executes queued tasks until ctx is cancelled. It must be called once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task := <-l.tasks:
			task()
		}
	}
}

// Do runs fn on the loop and waits for it to finish.
// It must not be called from a task already running on the loop.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	if l.isStopped() {
		return ErrStopped
	}

	done := make(chan struct{})
	task := func() {
		defer close(done)
		fn()
	}

	select {
	case l.tasks <- task:
	case <-l.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-l.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Post queues fn without waiting. It reports false if the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	if l.isStopped() {
		return false
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.stopped:
		return false
	}
}

func (l *Loop) isStopped() bool {
	select {
	case <-l.stopped:
		return true
	default:
		return false
	}
}

// Dispatch implements Dispatcher
func (l *Loop) Dispatch(work func() func()) {
	go func() {
		if complete := work(); complete != nil {
			l.Post(complete)
		}
	}()
}

// Inline is a Dispatcher that runs work and completion synchronously on the
// caller's goroutine. It suits callers that are themselves single threaded.
type Inline struct{}

// Dispatch implements Dispatcher
func (Inline) Dispatch(work func() func()) {
	if complete := work(); complete != nil {
		complete()
	}
}
