// Package metrics provides Prometheus instrumentation for the map session.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics names as constants for consistency.
const (
	MetricMarkersPlaced    = "toilet_finder_markers_placed_total"
	MetricReportsSubmitted = "toilet_finder_reports_submitted_total"
	MetricReportsRejected  = "toilet_finder_reports_rejected_total"
	MetricAsyncFailures    = "toilet_finder_async_failures_total"
	MetricStaleResponses   = "toilet_finder_stale_responses_total"
	MetricProviderLatency  = "toilet_finder_provider_request_duration_seconds"
	MetricMapLoadFailures  = "toilet_finder_map_load_failures_total"
	MetricFrameSubscribers = "toilet_finder_frame_subscribers"
)

// Operation labels for async work
const (
	OpSuggest = "suggest"
	OpResolve = "resolve"
	OpReverse = "reverse"
	OpLocate  = "locate"
	OpMapLoad = "map_load"
)

// Metrics contains Prometheus metrics for the map session.
// All methods are safe on a nil receiver so components can run uninstrumented.
type Metrics struct {
	markersPlaced    prometheus.Counter
	reportsSubmitted prometheus.Counter
	reportsRejected  prometheus.Counter
	asyncFailures    *prometheus.CounterVec
	staleResponses   *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	mapLoadFailures  prometheus.Counter
	frameSubscribers prometheus.Gauge
}

// NewMetrics creates and returns a new Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		markersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricMarkersPlaced,
			Help: "Total number of markers placed by map clicks",
		}),
		reportsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricReportsSubmitted,
			Help: "Total number of facility reports accepted by the report sink",
		}),
		reportsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricReportsRejected,
			Help: "Total number of report submissions rejected by validation",
		}),
		asyncFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricAsyncFailures,
			Help: "Total number of failed asynchronous provider operations",
		}, []string{"operation"}),
		staleResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricStaleResponses,
			Help: "Total number of provider responses dropped because a newer request superseded them",
		}, []string{"operation"}),
		providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricProviderLatency,
			Help:    "Histogram of external provider request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		mapLoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricMapLoadFailures,
			Help: "Total number of terminal map load failures",
		}),
		frameSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricFrameSubscribers,
			Help: "Number of connected render frame subscribers",
		}),
	}
}

// Register registers all metrics with the given registry.
// Returns an error if registration fails.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.markersPlaced,
		m.reportsSubmitted,
		m.reportsRejected,
		m.asyncFailures,
		m.staleResponses,
		m.providerLatency,
		m.mapLoadFailures,
		m.frameSubscribers,
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// IncMarkersPlaced increments the placed markers counter.
func (m *Metrics) IncMarkersPlaced() {
	if m == nil {
		return
	}
	m.markersPlaced.Inc()
}

// IncReportsSubmitted increments the accepted reports counter.
func (m *Metrics) IncReportsSubmitted() {
	if m == nil {
		return
	}
	m.reportsSubmitted.Inc()
}

// IncReportsRejected increments the rejected reports counter.
func (m *Metrics) IncReportsRejected() {
	if m == nil {
		return
	}
	m.reportsRejected.Inc()
}

// IncAsyncFailure counts a failed async operation.
func (m *Metrics) IncAsyncFailure(operation string) {
	if m == nil {
		return
	}
	m.asyncFailures.WithLabelValues(operation).Inc()
}

// IncStaleResponse counts a dropped stale response.
func (m *Metrics) IncStaleResponse(operation string) {
	if m == nil {
		return
	}
	m.staleResponses.WithLabelValues(operation).Inc()
}

// ObserveProvider records the latency of a provider call started at start.
func (m *Metrics) ObserveProvider(provider string, start time.Time) {
	if m == nil {
		return
	}
	m.providerLatency.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}

// IncMapLoadFailures counts a terminal map load failure.
func (m *Metrics) IncMapLoadFailures() {
	if m == nil {
		return
	}
	m.mapLoadFailures.Inc()
}

// SetFrameSubscribers records the current subscriber count.
func (m *Metrics) SetFrameSubscribers(n int) {
	if m == nil {
		return
	}
	m.frameSubscribers.Set(float64(n))
}
