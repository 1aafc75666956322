package pool

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// Pool is a worker pool that runs submitted TaskFuncs on a bounded set of
// goroutines. A single mutex guards the task queue, the worker registry
// and the run-state counters below it; two named
// condition predicates on that mutex (the queue's notFull and notEmpty)
// coordinate submitters and workers, and a third (drained) lets Shutdown
// wait for every worker to retire without polling.
type Pool struct {
	mu       sync.Mutex
	queue    *taskQueue
	registry *workerRegistry
	drained  *sync.Cond

	mode           Mode
	queueCapacity  int
	maxWorkers     int
	idleTimeout    time.Duration
	submitTimeout  time.Duration
	initialWorkers int

	running        bool
	currentWorkers int
	idleWorkers    int

	nextWorkerID atomic.Uint64

	logger         Logger
	metrics        *poolMetrics
	tracerProvider trace.TracerProvider
}

// New constructs a Pool. It does not start any workers; call Start for
// that. Options applied here take effect immediately since the pool is
// not yet running; use the Set* methods to reconfigure a pool that might
// already be started.
func New(opts ...Option) *Pool {
	p := &Pool{
		mode:           Fixed,
		queueCapacity:  defaultQueueCapacity,
		maxWorkers:     defaultMaxWorkers,
		idleTimeout:    defaultIdleTimeout,
		submitTimeout:  defaultSubmitTimeout,
		logger:         NewDefaultLogger(),
		tracerProvider: defaultTracerProvider(),
	}
	p.registry = newWorkerRegistry()
	p.drained = sync.NewCond(&p.mu)

	for _, opt := range opts {
		opt(p)
	}

	p.queue = newTaskQueue(&p.mu, p.queueCapacity)
	return p
}

// Start launches initialWorkers goroutines and begins accepting
// submissions. A non-positive initialWorkers defaults to
// runtime.NumCPU(). Calling Start on an already-running pool returns
// ErrAlreadyRunning.
func (p *Pool) Start(initialWorkers int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return ErrAlreadyRunning
	}
	if initialWorkers <= 0 {
		initialWorkers = runtime.NumCPU()
	}

	p.running = true
	p.initialWorkers = initialWorkers
	for i := 0; i < initialWorkers; i++ {
		p.spawnWorkerLocked()
	}
	return nil
}

// spawnWorkerLocked creates and registers a new Worker and launches its
// run loop. The caller must hold p.mu.
func (p *Pool) spawnWorkerLocked() {
	w := newWorker(p.nextWorkerID.Add(1))
	p.registry.insert(w)
	p.currentWorkers++
	p.idleWorkers++
	go p.run(w)
}

// Submit hands fn to the pool for execution and returns a Result bound
// to it. If the queue is full, Submit waits up to the
// pool's submit timeout for room; if that expires, it returns an invalid
// Result rather than an error, since the submission itself succeeded in
// every other sense. Submitting to a pool that has not been started, or
// that is shutting down, returns ErrNotRunning.
func (p *Pool) Submit(fn TaskFunc) (*Result, error) {
	id := uuid.New()
	t := newTask(id, fn)
	res := newResult(id, t, true)

	submitCtx, span := p.startSubmitSpan(context.Background(), id)
	defer span.End()
	t.submitCtx = submitCtx

	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		p.metrics.recordRejected("not_running")
		recordSpanOutcome(span, ErrNotRunning)
		return nil, ErrNotRunning
	}

	if !p.queue.tryEnqueue(t, p.submitTimeout) {
		p.mu.Unlock()
		p.logger.Warnf("submission %s: queue still full after %s, rejecting", id, p.submitTimeout)
		p.metrics.recordRejected("queue_full")
		recordSpanOutcome(span, ErrQueueFull)
		return newResult(id, nil, false), nil
	}

	if p.mode == Cached && p.queue.len() > p.idleWorkers && p.currentWorkers < p.maxWorkers {
		p.spawnWorkerLocked()
	}

	depth, current, idle := p.queue.len(), p.currentWorkers, p.idleWorkers
	p.mu.Unlock()

	p.metrics.recordSubmitted()
	p.metrics.setGauges(current, idle, depth)
	recordSpanOutcome(span, nil)
	return res, nil
}

// SetMode changes the pool's sizing strategy. It is a no-op once the
// pool is running, since changing strategy mid-flight has no well-
// defined semantics for workers already spawned under the old one.
func (p *Pool) SetMode(m Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.mode = m
}

// SetQueueCapacity changes the bound Submit enforces on pending tasks.
// It is a no-op once the pool is running.
func (p *Pool) SetQueueCapacity(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running || n <= 0 {
		return
	}
	p.queueCapacity = n
	p.queue.capacity = n
}

// SetMaxWorkers changes how large a Cached-mode pool may grow. It is a
// no-op once the pool is running.
func (p *Pool) SetMaxWorkers(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running || n <= 0 {
		return
	}
	p.maxWorkers = n
}

// Stats is a point-in-time snapshot of the pool's run state.
type Stats struct {
	Mode           Mode
	Running        bool
	CurrentWorkers int
	IdleWorkers    int
	QueueDepth     int
	QueueCapacity  int
}

// Stats returns a snapshot of the pool's current run state.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Mode:           p.mode,
		Running:        p.running,
		CurrentWorkers: p.currentWorkers,
		IdleWorkers:    p.idleWorkers,
		QueueDepth:     p.queue.len(),
		QueueCapacity:  p.queueCapacity,
	}
}

// Shutdown stops accepting new submissions, lets every worker drain the
// queue, and waits for every worker to retire. It returns ctx's error if
// ctx is cancelled before every
// worker has retired; the pool is left half-drained in that case and a
// later call with a fresh context will wait for the rest.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	p.running = false
	p.queue.notEmpty.Broadcast()

	for p.registry.size() > 0 {
		if ctx != nil && ctx.Done() != nil {
			if !waitCondContext(p.drained, ctx) {
				p.mu.Unlock()
				return ctx.Err()
			}
			continue
		}
		p.drained.Wait()
	}
	p.mu.Unlock()
	return nil
}

// Close shuts the pool down unconditionally: it does not bound how long
// it waits for workers to drain, so any tasks still queued when the last
// worker observes shutdown still get run. It is equivalent to
// Shutdown(context.Background()) and is provided so Pool satisfies the
// io.Closer convention the rest of this module follows.
func (p *Pool) Close() error {
	return p.Shutdown(context.Background())
}

// waitCondContext waits on cond until either it is woken or ctx is
// cancelled, reporting which happened. sync.Cond has no native context
// support, so this arms a goroutine that turns ctx cancellation into a
// Broadcast, the same pattern waitUntil uses for deadlines in queue.go.
func waitCondContext(cond *sync.Cond, ctx context.Context) bool {
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		select {
		case <-ctx.Done():
			cond.Broadcast()
		case <-stop:
		}
	}()

	cond.Wait()

	select {
	case <-ctx.Done():
		return false
	default:
		return true
	}
}
