package pool

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	obsprom "github.com/zylabs/gopool/pkg/observability/prometheus"
)

// poolMetrics is the Prometheus instrumentation a Pool reports through
// when WithMetrics is supplied. It is nil-safe: every recording method
// tolerates a nil receiver so call sites never need their own
// "metrics enabled?" branch, the way p.logger.Warnf never needs one
// either (see logger.go's noopLogger).
type poolMetrics struct {
	submittedTotal prometheus.Counter
	rejectedTotal  *prometheus.CounterVec
	completedTotal prometheus.Counter
	failedTotal    prometheus.Counter
	workersRetired prometheus.Counter
	currentWorkers prometheus.Gauge
	idleWorkers    prometheus.Gauge
	queueDepth     prometheus.Gauge
	taskDuration   prometheus.Observer
}

func newPoolMetrics(reg *obsprom.Registry) *poolMetrics {
	if reg == nil {
		reg = obsprom.GetRegistry()
	}
	return &poolMetrics{
		submittedTotal: reg.Counter("gopool_tasks_submitted_total", "Tasks accepted by Submit.").WithLabelValues(),
		rejectedTotal:  reg.Counter("gopool_tasks_rejected_total", "Tasks rejected by Submit, by reason.", "reason"),
		completedTotal: reg.Counter("gopool_tasks_completed_total", "Tasks that ran to completion without error.").WithLabelValues(),
		failedTotal:    reg.Counter("gopool_tasks_failed_total", "Tasks that returned an error or panicked.").WithLabelValues(),
		workersRetired: reg.Counter("gopool_workers_retired_total", "Cached-mode workers retired for sitting idle.").WithLabelValues(),
		currentWorkers: reg.Gauge("gopool_current_workers", "Workers currently alive.").WithLabelValues(),
		idleWorkers:    reg.Gauge("gopool_idle_workers", "Workers currently parked in notEmpty.Wait.").WithLabelValues(),
		queueDepth:     reg.Gauge("gopool_queue_depth", "Tasks currently queued but not yet claimed.").WithLabelValues(),
		taskDuration:   reg.Histogram("gopool_task_duration_seconds", "Task execution time.", prometheus.DefBuckets).WithLabelValues(),
	}
}

func (m *poolMetrics) recordSubmitted() {
	if m == nil {
		return
	}
	m.submittedTotal.Inc()
}

func (m *poolMetrics) recordRejected(reason string) {
	if m == nil {
		return
	}
	m.rejectedTotal.WithLabelValues(reason).Inc()
}

func (m *poolMetrics) recordTaskCompleted() {
	if m == nil {
		return
	}
	m.completedTotal.Inc()
}

func (m *poolMetrics) recordTaskFailed() {
	if m == nil {
		return
	}
	m.failedTotal.Inc()
}

func (m *poolMetrics) recordWorkerRetired() {
	if m == nil {
		return
	}
	m.workersRetired.Inc()
}

func (m *poolMetrics) observeTaskDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.taskDuration.Observe(d.Seconds())
}

func (m *poolMetrics) setGauges(current, idle, depth int) {
	if m == nil {
		return
	}
	m.currentWorkers.Set(float64(current))
	m.idleWorkers.Set(float64(idle))
	m.queueDepth.Set(float64(depth))
}
