package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/scanprof/zenos/internal/domain/classcode"
	"github.com/scanprof/zenos/internal/domain/roster"
	"github.com/scanprof/zenos/pkg/metrics"
)

// emptyKey is the key of a record with no nom, prenom or classe.
const emptyKey = "||"

// MemoryStore is an in-memory Store. Records are kept normalised.
type MemoryStore struct {
	mu      sync.RWMutex
	byKey   map[string]roster.RawRecord
	order   []string
	metrics interface {
		UpdateRosterSize(n int)
		RecordMergeLatency(latencyMs float64)
	}
	maxRecords int
}

var _ Store = (*MemoryStore)(nil)

// globalMetrics forwards to the package-level metrics manager.
type globalMetrics struct{}

func (globalMetrics) UpdateRosterSize(n int)               { metrics.UpdateRosterSize(n) }
func (globalMetrics) RecordMergeLatency(latencyMs float64) { metrics.RecordMergeLatency(latencyMs) }

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byKey:   make(map[string]roster.RawRecord),
		metrics: globalMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Merge(ctx context.Context, records []roster.RawRecord) (MergeStats, error) {
	if err := ctx.Err(); err != nil {
		return MergeStats{}, err
	}
	start := time.Now()
	defer func() {
		s.metrics.RecordMergeLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	var stats MergeStats
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxRecords > 0 {
		if extra := s.newKeys(records); len(s.order)+extra > s.maxRecords {
			return MergeStats{}, fmt.Errorf("%w: %d stored, %d new, limit %d", ErrRosterFull, len(s.order), extra, s.maxRecords)
		}
	}

	for _, r := range records {
		n := roster.Normalize(r)
		key := roster.Key(n)
		if key == emptyKey {
			stats.Skipped++
			continue
		}
		existing, ok := s.byKey[key]
		if !ok {
			s.byKey[key] = n
			s.order = append(s.order, key)
			stats.Added++
			continue
		}
		for k, v := range n {
			if isBlank(v) {
				continue
			}
			existing[k] = v
		}
		stats.Updated++
	}
	stats.Total = len(s.order)
	s.metrics.UpdateRosterSize(stats.Total)
	return stats, nil
}

// newKeys counts distinct keys in records not stored yet. Caller holds s.mu.
func (s *MemoryStore) newKeys(records []roster.RawRecord) int {
	fresh := make(map[string]struct{})
	for _, r := range records {
		key := roster.Key(roster.Normalize(r))
		if key == emptyKey {
			continue
		}
		if _, ok := s.byKey[key]; !ok {
			fresh[key] = struct{}{}
		}
	}
	return len(fresh)
}

func (s *MemoryStore) All(_ context.Context) []roster.RawRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]roster.RawRecord, 0, len(s.order))
	for _, key := range s.order {
		src := s.byKey[key]
		cp := make(roster.RawRecord, len(src))
		for k, v := range src {
			cp[k] = v
		}
		out = append(out, cp)
	}
	return out
}

func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *MemoryStore) Classes(_ context.Context) []string {
	s.mu.RLock()
	labels := make([]string, 0, len(s.order))
	for _, key := range s.order {
		labels = append(labels, s.byKey[key].Text(roster.FieldClasse))
	}
	s.mu.RUnlock()
	return classcode.Unique(labels)
}

func (s *MemoryStore) Clear(_ context.Context) {
	s.mu.Lock()
	s.byKey = make(map[string]roster.RawRecord)
	s.order = nil
	s.mu.Unlock()
	s.metrics.UpdateRosterSize(0)
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	str, ok := v.(string)
	return ok && str == ""
}
