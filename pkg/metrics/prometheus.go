// Package metrics provides Prometheus metrics for the keel stability analyzer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the keel analyzer.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Analysis outcome metrics
	analysesCompleted *prometheus.CounterVec // labeled by stability tier
	analysesCancelled prometheus.Counter
	analysesFailed    prometheus.Counter

	// Pipeline timing metrics
	analysisDuration    prometheus.Histogram
	matrixBuildDuration prometheus.Histogram
	enumerationDuration prometheus.Histogram

	// Engine activity metrics
	strategyEvaluations prometheus.Counter
	scoreClamps         prometheus.Counter
	beneficialSwaps     prometheus.Counter

	// Last-analysis snapshot gauges
	lastDistance    prometheus.Gauge
	lastRosterSize  prometheus.Gauge
	lastAssignments prometheus.Gauge

	// Memo cache metrics
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
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
		namespace:        "keel",
		subsystem:        "analysis",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.analysesCompleted = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "analyses_completed_total",
			Help:      "Total number of completed stability analyses by resulting tier",
		},
		[]string{"tier"},
	)

	m.analysesCancelled = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analyses_cancelled_total",
		Help:      "Total number of analyses cancelled by the caller",
	})

	m.analysesFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analyses_failed_total",
		Help:      "Total number of analyses aborted by validation or strategy errors",
	})

	m.analysisDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duration_milliseconds",
		Help:      "End-to-end stability analysis duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.matrixBuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matrix_build_duration_milliseconds",
		Help:      "Utility matrix construction duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.enumerationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "enumeration_duration_milliseconds",
		Help:      "Beneficial swap enumeration duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.strategyEvaluations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "strategy_evaluations_total",
		Help:      "Total number of utility strategy evaluations performed",
	})

	m.scoreClamps = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_clamps_total",
		Help:      "Total number of out-of-range utility scores clamped to [0,1]",
	})

	m.beneficialSwaps = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "beneficial_swaps_total",
		Help:      "Total number of beneficial swaps found across all analyses",
	})

	m.lastDistance = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_nash_distance",
		Help:      "Nash distance of the most recently completed analysis",
	})

	m.lastRosterSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_roster_size",
		Help:      "Participant count of the most recently analyzed snapshot",
	})

	m.lastAssignments = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_assignment_count",
		Help:      "Assignment count of the most recently analyzed snapshot",
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_cache_hits_total",
		Help:      "Total number of report cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_cache_misses_total",
		Help:      "Total number of report cache misses",
	})
}

// Analysis outcome functions.

// RecordAnalysisCompleted increments the completed-analysis counter for a tier.
func RecordAnalysisCompleted(tier string) {
	globalManager.analysesCompleted.WithLabelValues(tier).Inc()
}

// RecordAnalysisCancelled increments the cancelled-analysis counter.
func RecordAnalysisCancelled() {
	globalManager.analysesCancelled.Inc()
}

// RecordAnalysisFailed increments the failed-analysis counter.
func RecordAnalysisFailed() {
	globalManager.analysesFailed.Inc()
}

// Pipeline timing functions.

// RecordAnalysisDuration records end-to-end analysis latency.
func RecordAnalysisDuration(latencyMs float64) {
	globalManager.analysisDuration.Observe(latencyMs)
}

// RecordMatrixBuildDuration records matrix construction latency.
func RecordMatrixBuildDuration(latencyMs float64) {
	globalManager.matrixBuildDuration.Observe(latencyMs)
}

// RecordEnumerationDuration records swap enumeration latency.
func RecordEnumerationDuration(latencyMs float64) {
	globalManager.enumerationDuration.Observe(latencyMs)
}

// Engine activity functions.

// RecordStrategyEvaluations adds to the strategy evaluation counter.
func RecordStrategyEvaluations(count int) {
	globalManager.strategyEvaluations.Add(float64(count))
}

// RecordScoreClamp increments the clamped-score counter.
func RecordScoreClamp() {
	globalManager.scoreClamps.Inc()
}

// RecordBeneficialSwaps adds to the beneficial swap counter.
func RecordBeneficialSwaps(count int) {
	globalManager.beneficialSwaps.Add(float64(count))
}

// Last-analysis gauge functions.

// UpdateLastDistance sets the distance gauge for the latest analysis.
func UpdateLastDistance(distance float64) {
	globalManager.lastDistance.Set(distance)
}

// UpdateLastRosterSize sets the roster size gauge for the latest analysis.
func UpdateLastRosterSize(count int) {
	globalManager.lastRosterSize.Set(float64(count))
}

// UpdateLastAssignmentCount sets the assignment count gauge for the latest analysis.
func UpdateLastAssignmentCount(count int) {
	globalManager.lastAssignments.Set(float64(count))
}

// Memo cache functions.

// RecordCacheHit increments the report cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the report cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
