// Package pool implements a general-purpose worker pool: a bounded task
// queue guarded by a single mutex, a dynamic worker population that can
// run in a fixed or cached mode, and a one-shot Result handle through
// which a submitter retrieves a task's return value.
//
// # Basic usage
//
//	p := pool.New(pool.WithMode(pool.Fixed), pool.WithQueueCapacity(1024))
//	if err := p.Start(4); err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	res, err := p.Submit(func(ctx context.Context) (any, error) {
//	    return 42, nil
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v, err := pool.As[int](res.Get())
//
// # Modes
//
// In Fixed mode the worker count never changes after Start. In Cached mode
// the pool spawns workers on backlog (up to MaxWorkers) and retires idle
// surplus workers after IdleTimeout, never shrinking below the initial
// worker count.
//
// Submit applies a bounded, one-second-by-default back-pressure wait: if
// the queue is still full when the wait expires, Submit returns a Result
// whose Valid method reports false and whose Get returns the zero value
// immediately.
package pool
