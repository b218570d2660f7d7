package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultLatencyBuckets spans 0.1 ms to about 0.8 s. Grouping a class and
// serving most requests land in the lower half.
var DefaultLatencyBuckets = prometheus.ExponentialBuckets(0.1, 2, 14) //nolint:gochecknoglobals // read-only bucket layout

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace overrides the "scanprof" metric prefix. Empty is ignored.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem overrides the "zenos" subsystem. Empty is ignored.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithLatencyBuckets replaces DefaultLatencyBuckets for every millisecond
// histogram.
func WithLatencyBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.latencyBuckets = buckets
		}
	}
}

// WithMetricsEnabled turns recording on or off. A disabled manager still
// registers its collectors but drops every observation.
func WithMetricsEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.enabled = enabled
	}
}

// WithConstLabels attaches labels such as the school or the deployment to
// every metric.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(m *Manager) {
		for k, v := range labels {
			m.constLabels[k] = v
		}
	}
}

// WithPrometheusRegistry registers the collectors on registry instead of the
// default registerer.
func WithPrometheusRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}
