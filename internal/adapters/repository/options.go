package repository

import "github.com/scanprof/zenos/pkg/metrics"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMetricsManager reports roster size and merge latency to m instead of
// the global manager.
func WithMetricsManager(m *metrics.Manager) Option {
	return func(s *MemoryStore) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithMaxRecords caps the roster size. Merges that would exceed it fail with
// ErrRosterFull. Values <= 0 mean unbounded.
func WithMaxRecords(n int) Option {
	return func(s *MemoryStore) {
		s.maxRecords = n
	}
}
