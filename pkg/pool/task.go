package pool

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// TaskFunc is the user-supplied computation a worker runs. It is pure
// with respect to the pool: the pool never inspects or retries its
// return value, it only carries it to the bound Result. A non-nil error
// marks a user task failure; the worker survives it exactly
// as it survives a panic.
type TaskFunc func(ctx context.Context) (any, error)

// task wraps a TaskFunc together with the Result it must publish into.
// It is never exposed to submitters directly — Submit hands back the
// bound Result instead. The Result owns the task; the task only holds a
// non-owning pointer back to it.
type task struct {
	id     uuid.UUID
	fn     TaskFunc
	result *Result

	// submitCtx carries the trace context Submit created its span under,
	// so the worker that eventually runs this task can open gopool.exec
	// as a child of gopool.submit instead of an unrelated root span.
	submitCtx context.Context
}

func newTask(id uuid.UUID, fn TaskFunc) *task {
	return &task{id: id, fn: fn, submitCtx: context.Background()}
}

// bind attaches the Result this task must publish its outcome into.
// Called exactly once, by submit, before the task becomes visible to any
// worker.
func (t *task) bind(r *Result) {
	t.result = r
}

// exec is the worker entry point: run the task, then publish whatever it
// produced. A panic inside fn is recovered here so one bad task cannot
// take its worker down with it.
func (t *task) exec(ctx context.Context) (value any, err error) {
	value, err = t.safeRun(ctx)
	if t.result != nil {
		t.result.publish(value, err)
	}
	return value, err
}

func (t *task) safeRun(ctx context.Context) (v any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			v = nil
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, rec)
		}
	}()
	return t.fn(ctx)
}
