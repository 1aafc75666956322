// Package prometheus provides a small, generic wrapper around a Prometheus
// registry: a process-wide registry/registerer pair plus lazily-created
// named counters, gauges and histograms. Concrete subsystems (the worker
// pool in pkg/pool, in this repository) declare their own metric names and
// labels against this registry instead of each constructing and wiring a
// client_golang registry by hand.
package prometheus

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// DefaultRegistry is the default Prometheus registry for this process.
	DefaultRegistry = prometheus.NewRegistry()

	// DefaultRegisterer wraps DefaultRegistry, tagging every metric
	// registered through it with a constant "service" label.
	DefaultRegisterer = prometheus.WrapRegistererWith(prometheus.Labels{"service": "gopool"}, DefaultRegistry)

	registryOnce sync.Once
	registry     *Registry
)

// Registry lazily creates and caches named counters, gauges and histograms
// against a single Prometheus registerer.
type Registry struct {
	registerer prometheus.Registerer

	mu         sync.RWMutex
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

// NewRegistry creates a Registry backed by the given registerer. A nil
// registerer falls back to DefaultRegisterer.
func NewRegistry(registerer prometheus.Registerer) *Registry {
	if registerer == nil {
		registerer = DefaultRegisterer
	}
	return &Registry{
		registerer: registerer,
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

// GetRegistry returns the process-wide default Registry.
func GetRegistry() *Registry {
	registryOnce.Do(func() {
		registry = NewRegistry(DefaultRegisterer)
	})
	return registry
}

// Counter creates or returns a named counter metric.
func (r *Registry) Counter(name, help string, labels ...string) *prometheus.CounterVec {
	r.mu.RLock()
	if c, ok := r.counters[name]; ok {
		r.mu.RUnlock()
		return c
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.counters[name]; ok {
		return c
	}
	c := promauto.With(r.registerer).NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
	r.counters[name] = c
	return c
}

// Gauge creates or returns a named gauge metric.
func (r *Registry) Gauge(name, help string, labels ...string) *prometheus.GaugeVec {
	r.mu.RLock()
	if g, ok := r.gauges[name]; ok {
		r.mu.RUnlock()
		return g
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.gauges[name]; ok {
		return g
	}
	g := promauto.With(r.registerer).NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labels)
	r.gauges[name] = g
	return g
}

// Histogram creates or returns a named histogram metric. A nil buckets
// slice falls back to prometheus.DefBuckets.
func (r *Registry) Histogram(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	r.mu.RLock()
	if h, ok := r.histograms[name]; ok {
		r.mu.RUnlock()
		return h
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.histograms[name]; ok {
		return h
	}
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	h := promauto.With(r.registerer).NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: help, Buckets: buckets}, labels)
	r.histograms[name] = h
	return h
}

// Handler returns an http.Handler that serves the default registry's
// metrics in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{})
}
