package graph

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides Prometheus-compatible metrics for graph evaluation.
//
// Metrics exposed (all namespaced "siggraph"):
//
//  1. evaluations_total (counter): entry-point calls. Labels: entry
//     (geometry, properties, logic).
//  2. eval_duration_seconds (histogram): entry-point latency. Labels:
//     entry. Buckets sized for per-frame work (10µs to 10ms).
//  3. node_evaluations_total (counter): node dispatches. Labels: kind.
//  4. cache_hits_total (counter): tick-cache memoization hits.
//  5. cycle_guard_trips_total (counter): cycles or depth overflows cut by
//     the resolver.
//  6. unknown_kind_total (counter): dispatches of unregistered kinds.
//     Labels: kind.
//  7. port_writes_total / port_reads_total (counters): protocol traffic.
//
// Usage:
//
//	registry := prometheus.NewRegistry()
//	metrics := graph.NewMetrics(registry)
//	engine := graph.New(store, emitter, graph.Options{Metrics: metrics})
//
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
//
// All record methods are nil-safe: an Engine without metrics skips
// recording at the cost of one nil check.
type Metrics struct {
	evaluations  *prometheus.CounterVec
	evalDuration *prometheus.HistogramVec
	nodeEvals    *prometheus.CounterVec
	cacheHits    prometheus.Counter
	cycleTrips   prometheus.Counter
	unknownKinds *prometheus.CounterVec
	portWrites   prometheus.Counter
	portReads    prometheus.Counter
}

// NewMetrics creates and registers all evaluation metrics with the given
// registry. Pass prometheus.DefaultRegisterer for the global registry, or a
// private registry for isolation.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "siggraph",
			Name:      "evaluations_total",
			Help:      "Entry-point evaluation calls",
		}, []string{"entry"}),

		evalDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "siggraph",
			Name:      "eval_duration_seconds",
			Help:      "Entry-point evaluation latency in seconds",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}, []string{"entry"}),

		nodeEvals: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "siggraph",
			Name:      "node_evaluations_total",
			Help:      "Node evaluator dispatches by kind",
		}, []string{"kind"}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "siggraph",
			Name:      "cache_hits_total",
			Help:      "Tick-cache memoization hits",
		}),

		cycleTrips: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "siggraph",
			Name:      "cycle_guard_trips_total",
			Help:      "Resolutions cut short by the cycle guard or depth bound",
		}),

		unknownKinds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "siggraph",
			Name:      "unknown_kind_total",
			Help:      "Dispatches of kinds missing from the registry",
		}, []string{"kind"}),

		portWrites: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "siggraph",
			Name:      "port_writes_total",
			Help:      "WritePort calls",
		}),

		portReads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "siggraph",
			Name:      "port_reads_total",
			Help:      "ReadPort calls",
		}),
	}
}

// timeEvaluation counts one entry-point call and returns a stop function
// observing its duration. Use as: defer m.timeEvaluation("logic")().
func (m *Metrics) timeEvaluation(entry string) func() {
	if m == nil {
		return func() {}
	}
	m.evaluations.WithLabelValues(entry).Inc()
	start := time.Now()
	return func() {
		m.evalDuration.WithLabelValues(entry).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) recordNodeEval(kind string) {
	if m == nil {
		return
	}
	m.nodeEvals.WithLabelValues(kind).Inc()
}

func (m *Metrics) recordCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) recordCycle() {
	if m == nil {
		return
	}
	m.cycleTrips.Inc()
}

func (m *Metrics) recordUnknownKind(kind string) {
	if m == nil {
		return
	}
	m.unknownKinds.WithLabelValues(kind).Inc()
}

func (m *Metrics) recordPortWrite() {
	if m == nil {
		return
	}
	m.portWrites.Inc()
}

func (m *Metrics) recordPortRead() {
	if m == nil {
		return
	}
	m.portReads.Inc()
}
