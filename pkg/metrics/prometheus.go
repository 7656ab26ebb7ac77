// Package metrics provides Prometheus metrics for the futpack service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the futpack service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Pack economy metrics
	packsOpened   prometheus.Counter
	packsDeclined prometheus.Counter
	packRollbacks prometheus.Counter
	quickSells    prometheus.Counter

	// Ledger metrics
	bonusGranted prometheus.Counter
	bonusDenied  prometheus.Counter

	// Voting metrics
	votesCast   *prometheus.CounterVec
	ballotsCast prometheus.Counter

	// Election metrics
	electionRounds prometheus.Counter

	// Store metrics
	storeOpLatency *prometheus.HistogramVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "futpack",
		subsystem:        "core",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.packsOpened = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "packs_opened_total",
		Help:      "Total number of packs opened successfully",
	})

	m.packsDeclined = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "packs_declined_total",
		Help:      "Total number of pack draws declined for insufficient funds",
	})

	m.packRollbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pack_rollbacks_total",
		Help:      "Total number of pack debits rolled back (empty catalog)",
	})

	m.quickSells = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "quick_sells_total",
		Help:      "Total number of instances resold for a partial refund",
	})

	m.bonusGranted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "daily_bonus_granted_total",
		Help:      "Total number of daily login bonuses granted",
	})

	m.bonusDenied = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "daily_bonus_denied_total",
		Help:      "Total number of daily bonus claims inside the idempotency window",
	})

	m.votesCast = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stat_votes_total",
		Help:      "Total number of stat votes by effect (new, flip, withdraw)",
	}, []string{"kind"})

	m.ballotsCast = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "election_ballots_total",
		Help:      "Total number of player-of-the-match ballots accepted",
	})

	m.electionRounds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "election_rounds_total",
		Help:      "Total number of concluded election rounds",
	})

	m.storeOpLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_op_latency_milliseconds",
		Help:      "Histogram of document store operation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"op"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// RecordPackOpened increments the packs opened counter.
func RecordPackOpened() {
	globalManager.packsOpened.Inc()
}

// RecordPackDeclined increments the declined draws counter.
func RecordPackDeclined() {
	globalManager.packsDeclined.Inc()
}

// RecordPackRollback increments the rolled-back debits counter.
func RecordPackRollback() {
	globalManager.packRollbacks.Inc()
}

// RecordQuickSell increments the quick sells counter.
func RecordQuickSell() {
	globalManager.quickSells.Inc()
}

// RecordBonusGranted increments the granted bonus counter.
func RecordBonusGranted() {
	globalManager.bonusGranted.Inc()
}

// RecordBonusDenied increments the denied bonus counter.
func RecordBonusDenied() {
	globalManager.bonusDenied.Inc()
}

// RecordVoteCast increments the stat vote counter for the given effect.
func RecordVoteCast(kind string) {
	globalManager.votesCast.WithLabelValues(kind).Inc()
}

// RecordBallotCast increments the accepted ballots counter.
func RecordBallotCast() {
	globalManager.ballotsCast.Inc()
}

// RecordElectionRound increments the concluded rounds counter.
func RecordElectionRound() {
	globalManager.electionRounds.Inc()
}

// RecordStoreOpLatency records one document store round trip.
func RecordStoreOpLatency(op string, latencyMs float64) {
	globalManager.storeOpLatency.WithLabelValues(op).Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
