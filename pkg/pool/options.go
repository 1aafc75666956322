package pool

import (
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	obsprom "github.com/zylabs/gopool/pkg/observability/prometheus"
)

// Mode selects between the pool's two sizing strategies.
type Mode int

const (
	// Fixed keeps exactly the number of workers passed to Start alive for
	// the life of the pool.
	Fixed Mode = iota
	// Cached grows up to MaxWorkers under sustained load and retires
	// workers above the initial count once they sit idle past
	// IdleTimeout.
	Cached
)

func (m Mode) String() string {
	if m == Cached {
		return "cached"
	}
	return "fixed"
}

const (
	defaultQueueCapacity = 1024
	defaultMaxWorkers    = 100
	defaultIdleTimeout   = 10 * time.Second
	defaultSubmitTimeout = time.Second
	cachedPollInterval   = time.Second
)

// Option configures a Pool at construction time, before Start is called.
// Applying one after Start is a caller error the pool does not detect;
// use the Set* methods for changes that must be safe to attempt at any
// time, since those are no-ops while the pool is running.
type Option func(*Pool)

// WithMode sets the pool's sizing strategy. The default is Fixed.
func WithMode(m Mode) Option {
	return func(p *Pool) { p.mode = m }
}

// WithQueueCapacity bounds the number of tasks Submit may queue before it
// blocks. The default is 1024, matching the original
// implementation's TASK_MAX_THRESHOLD.
func WithQueueCapacity(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.queueCapacity = n
		}
	}
}

// WithMaxWorkers caps how large a Cached-mode pool may grow. It has no
// effect in Fixed mode, where worker count never changes after Start.
// The default is 100, matching the original implementation's
// THREAD_MAX_THRESHOLD.
func WithMaxWorkers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.maxWorkers = n
		}
	}
}

// WithIdleTimeout sets how long a Cached-mode worker above the initial
// count waits idle before retiring. The default is 10 seconds, matching
// the original implementation's THREAD_MAX_IDLE_TIME.
func WithIdleTimeout(d time.Duration) Option {
	return func(p *Pool) {
		if d > 0 {
			p.idleTimeout = d
		}
	}
}

// WithSubmitTimeout bounds how long Submit blocks for room in a full
// queue before returning an invalid Result.
func WithSubmitTimeout(d time.Duration) Option {
	return func(p *Pool) {
		if d > 0 {
			p.submitTimeout = d
		}
	}
}

// WithLogger overrides the pool's Logger. The default logs to the
// standard library's log package with a "[pool]" prefix.
func WithLogger(l Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMetrics enables Prometheus instrumentation against reg. A nil reg
// uses the package's process-wide default registry. Metrics are disabled
// until this option is supplied.
func WithMetrics(reg *obsprom.Registry) Option {
	return func(p *Pool) { p.metrics = newPoolMetrics(reg) }
}

// WithTracerProvider sets the OpenTelemetry TracerProvider the pool draws
// its tracer from. The default is otel.GetTracerProvider(), which is the
// global no-op provider until an embedding program installs an SDK
// provider of its own.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(p *Pool) {
		if tp != nil {
			p.tracerProvider = tp
		}
	}
}

func defaultTracerProvider() trace.TracerProvider {
	return otel.GetTracerProvider()
}
