package pool

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Result is the one-shot handle a submitter uses to retrieve a task's
// outcome. It owns the task it was created for; the task only holds a
// non-owning back-reference to it.
//
// The readiness signal is implemented as a closed channel rather than a
// counting semaphore: closing a channel is a broadcast, so any number of
// Get/GetContext callers — before or after publish — observe the same
// happens-before edge a semaphore release would give a single acquirer,
// and unlike a single-resource semaphore a second caller never blocks
// forever waiting on an already-delivered value. See DESIGN.md, Open
// Question 2.
type Result struct {
	id    uuid.UUID
	task  *task
	valid bool

	done chan struct{}

	mu    sync.Mutex
	value any
	err   error
}

// newResult constructs a Result for the given id. When valid is false
// (submission overflow) the Result is never bound to a task and its done
// channel is pre-closed, so there is no code path that could ever call
// publish through it — publish-on-invalid is unreachable by construction
// rather than merely documented as a no-op.
func newResult(id uuid.UUID, t *task, valid bool) *Result {
	r := &Result{id: id, task: t, valid: valid, done: make(chan struct{})}
	if valid && t != nil {
		t.bind(r)
	} else {
		close(r.done)
	}
	return r
}

// ID returns the submission-time correlation id, used for logging and
// tracing.
func (r *Result) ID() uuid.UUID { return r.id }

// Valid reports whether this Result will ever receive a published value.
// It is false only when Submit's bounded back-pressure wait expired with
// the queue still full.
func (r *Result) Valid() bool { return r.valid }

// publish stores the task's outcome and wakes every current and future
// Get/GetContext caller. Called at most once, by the worker that ran the
// bound task.
func (r *Result) publish(value any, err error) {
	r.mu.Lock()
	r.value = value
	r.err = err
	r.mu.Unlock()
	close(r.done)
}

// Get blocks until the task publishes its outcome, then returns the
// value. It may be called any number of times; every call after the
// first delivery returns immediately. On an invalid Result, Get returns
// the zero value of any without blocking.
func (r *Result) Get() any {
	<-r.done
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value
}

// GetContext is Get with an escape hatch for the wait itself: it returns
// ctx.Err() if ctx is cancelled before the value arrives. This cancels
// only the caller's wait, never the task; per-task cancellation is not
// supported.
func (r *Result) GetContext(ctx context.Context) (any, error) {
	select {
	case <-r.done:
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.value, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Err returns the task's failure, if any, once delivered. It never
// blocks: before delivery it returns nil. A task that panicked reports an
// error wrapping ErrTaskPanicked here; a task that returned a non-nil error reports
// that error verbatim.
func (r *Result) Err() error {
	select {
	case <-r.done:
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.err
	default:
		return nil
	}
}
