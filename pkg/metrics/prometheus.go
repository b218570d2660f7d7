// Package metrics provides Prometheus metrics for the ZENOS grouping service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Swap modes reported by RecordSwaps.
const (
	SwapModeAuto     = "auto"
	SwapModeManual   = "manual"
	SwapModeApplyAll = "apply_all"
)

// Manager manages all Prometheus metrics for the ZENOS service.
type Manager struct {
	namespace        string
	subsystem        string
	latencyBuckets []float64
	enabled        bool
	constLabels    prometheus.Labels
	registry       prometheus.Registerer

	// Grouping
	generations          *prometheus.CounterVec
	generationLatency    prometheus.Histogram
	groupsFormed         prometheus.Counter
	remainderSize        prometheus.Gauge
	candidatesRejected   prometheus.Counter
	swapsApplied         *prometheus.CounterVec
	outstandingSuggested prometheus.Gauge

	// Roster
	imports          prometheus.Counter
	importsDuplicate prometheus.Counter
	rosterSize       prometheus.Gauge
	mergeLatency     prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "scanprof",
		subsystem:      "zenos",
		latencyBuckets: DefaultLatencyBuckets,
		enabled:        true,
		constLabels:    prometheus.Labels{},
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     m.latencyBuckets,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.generations = auto.NewCounterVec(
		m.counterOpts("generations_total", "Group generations by outcome"),
		[]string{"outcome"},
	)
	m.generationLatency = auto.NewHistogram(
		m.histogramOpts("generation_latency_milliseconds", "Time to partition, repair and suggest in milliseconds"),
	)
	m.groupsFormed = auto.NewCounter(
		m.counterOpts("groups_formed_total", "Total number of groups of four formed"),
	)
	m.remainderSize = auto.NewGauge(
		m.gaugeOpts("remainder_participants", "Participants left ungrouped by the last generation"),
	)
	m.candidatesRejected = auto.NewCounter(
		m.counterOpts("candidates_rejected_total", "Records rejected for missing or invalid fields"),
	)
	m.swapsApplied = auto.NewCounterVec(
		m.counterOpts("swaps_applied_total", "Swaps applied by mode"),
		[]string{"mode"},
	)
	m.outstandingSuggested = auto.NewGauge(
		m.gaugeOpts("suggestions_outstanding", "Swap suggestions for the current session"),
	)

	m.imports = auto.NewCounter(
		m.counterOpts("imports_total", "Roster payloads imported"),
	)
	m.importsDuplicate = auto.NewCounter(
		m.counterOpts("imports_duplicate_total", "Roster payloads ignored as already imported"),
	)
	m.rosterSize = auto.NewGauge(
		m.gaugeOpts("roster_participants", "Participants currently held in the roster"),
	)
	m.mergeLatency = auto.NewHistogram(
		m.histogramOpts("roster_merge_latency_milliseconds", "Roster merge latency in milliseconds"),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
}

// RecordGeneration records one generation attempt and its latency.
func (m *Manager) RecordGeneration(outcome string, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.generations.WithLabelValues(outcome).Inc()
	m.generationLatency.Observe(latencyMs)
}

// RecordGroups records the shape of a fresh session.
func (m *Manager) RecordGroups(groups, remainder, rejected int) {
	if !m.enabled {
		return
	}
	m.groupsFormed.Add(float64(groups))
	m.remainderSize.Set(float64(remainder))
	m.candidatesRejected.Add(float64(rejected))
}

// RecordSwaps adds n applied swaps for mode.
func (m *Manager) RecordSwaps(mode string, n int) {
	if !m.enabled || n <= 0 {
		return
	}
	m.swapsApplied.WithLabelValues(mode).Add(float64(n))
}

// UpdateOutstandingSuggestions sets the suggestion gauge.
func (m *Manager) UpdateOutstandingSuggestions(n int) {
	if !m.enabled {
		return
	}
	m.outstandingSuggested.Set(float64(n))
}

// RecordImport counts an import, or a duplicate one.
func (m *Manager) RecordImport(duplicate bool) {
	if !m.enabled {
		return
	}
	if duplicate {
		m.importsDuplicate.Inc()
		return
	}
	m.imports.Inc()
}

// UpdateRosterSize sets the roster gauge.
func (m *Manager) UpdateRosterSize(n int) {
	if !m.enabled {
		return
	}
	m.rosterSize.Set(float64(n))
}

// RecordMergeLatency observes a roster merge.
func (m *Manager) RecordMergeLatency(latencyMs float64) {
	if !m.enabled {
		return
	}
	m.mergeLatency.Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordError records an error with component and type labels.
func (m *Manager) RecordError(component, errorType string) {
	if !m.enabled {
		return
	}
	m.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordGeneration records a generation on the global manager.
func RecordGeneration(outcome string, latencyMs float64) {
	globalManager.RecordGeneration(outcome, latencyMs)
}

// RecordGroups records a session shape on the global manager.
func RecordGroups(groups, remainder, rejected int) {
	globalManager.RecordGroups(groups, remainder, rejected)
}

// RecordSwaps records applied swaps on the global manager.
func RecordSwaps(mode string, n int) {
	globalManager.RecordSwaps(mode, n)
}

// UpdateOutstandingSuggestions sets the suggestion gauge on the global manager.
func UpdateOutstandingSuggestions(n int) {
	globalManager.UpdateOutstandingSuggestions(n)
}

// RecordImport counts an import on the global manager.
func RecordImport(duplicate bool) {
	globalManager.RecordImport(duplicate)
}

// UpdateRosterSize sets the roster gauge on the global manager.
func UpdateRosterSize(n int) {
	globalManager.UpdateRosterSize(n)
}

// RecordMergeLatency observes a roster merge on the global manager.
func RecordMergeLatency(latencyMs float64) {
	globalManager.RecordMergeLatency(latencyMs)
}

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordErrorByComponent records an error on the global manager.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordError(component, errorType)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
