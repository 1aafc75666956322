package pool

import (
	"sync/atomic"
	"time"
)

// WorkerState is a worker's position in its state machine: idle ->
// running -> idle, with a terminal transition to exited from the idle
// state only; a running worker always returns to idle first.
type WorkerState int32

const (
	WorkerIdle WorkerState = iota
	WorkerRunning
	WorkerExited
)

func (s WorkerState) String() string {
	switch s {
	case WorkerIdle:
		return "idle"
	case WorkerRunning:
		return "running"
	case WorkerExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Worker is one long-running goroutine draining tasks from the pool's
// queue. Its id is assigned once by Pool.spawnWorkerLocked and never
// reused for the lifetime of the pool. lastActive and the
// state machine are only ever mutated by the worker's own goroutine, and
// only while it holds Pool.mu, except for state, which is also read by
// State without the lock and so is kept in an atomic.
type Worker struct {
	id         uint64
	lastActive time.Time
	state      atomic.Int32
}

func newWorker(id uint64) *Worker {
	w := &Worker{id: id, lastActive: time.Now()}
	w.state.Store(int32(WorkerIdle))
	return w
}

// ID returns the worker's pool-assigned identifier.
func (w *Worker) ID() uint64 { return w.id }

// State returns the worker's current position in the state machine. Safe
// to call without Pool.mu.
func (w *Worker) State() WorkerState { return WorkerState(w.state.Load()) }

func (w *Worker) setState(s WorkerState) { w.state.Store(int32(s)) }

// run is the worker's loop body. It is launched as its own
// goroutine by spawnWorkerLocked and returns only once the worker has
// retired or the pool is shutting down and the queue it was waiting on
// has gone empty.
func (p *Pool) run(w *Worker) {
	for {
		p.mu.Lock()

		for p.queue.empty() {
			if !p.running {
				p.retireLocked(w)
				p.drained.Broadcast()
				p.mu.Unlock()
				return
			}

			if p.mode == Cached {
				deadline := time.Now().Add(cachedPollInterval)
				if timedOut := !waitUntil(p.queue.notEmpty, deadline); timedOut {
					if p.shouldRetireLocked(w) {
						p.retireLocked(w)
						p.mu.Unlock()
						return
					}
				}
				continue
			}

			p.queue.notEmpty.Wait()
		}

		p.idleWorkers--
		t := p.queue.pop()
		if !p.queue.empty() {
			p.queue.notEmpty.Broadcast()
		}
		p.queue.notFull.Broadcast()
		w.setState(WorkerRunning)
		p.mu.Unlock()

		p.execTask(w, t)

		p.mu.Lock()
		w.lastActive = time.Now()
		w.setState(WorkerIdle)
		p.idleWorkers++
		p.mu.Unlock()
	}
}

// shouldRetireLocked reports whether an idle cached-mode worker that just
// timed out on notEmpty should exit rather than keep polling.
func (p *Pool) shouldRetireLocked(w *Worker) bool {
	return time.Since(w.lastActive) >= p.idleTimeout && p.currentWorkers > p.initialWorkers
}

// retireLocked removes w from the registry and the pool's live counters.
// Called with Pool.mu held, either because the pool is shutting down or
// because a cached-mode worker decided it has been idle too long.
func (p *Pool) retireLocked(w *Worker) {
	p.registry.erase(w.id)
	p.currentWorkers--
	p.idleWorkers--
	w.setState(WorkerExited)
	if p.metrics != nil {
		p.metrics.recordWorkerRetired()
	}
}

func (p *Pool) execTask(w *Worker, t *task) {
	ctx, span := p.startExecSpan(t.submitCtx, t.id, w.id)
	defer span.End()

	start := time.Now()
	_, err := t.exec(ctx)
	recordSpanOutcome(span, err)

	if p.metrics != nil {
		p.metrics.observeTaskDuration(time.Since(start))
		if err != nil {
			p.metrics.recordTaskFailed()
		} else {
			p.metrics.recordTaskCompleted()
		}
	}
	if err != nil {
		p.logger.Warnf("task %s failed: %v", t.id, err)
	}
}
