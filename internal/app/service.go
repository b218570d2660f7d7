// Package service owns the roster and the current grouping session and
// implements the operations exposed by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/scanprof/zenos/internal/adapters/repository"
	"github.com/scanprof/zenos/internal/domain/classcode"
	"github.com/scanprof/zenos/internal/domain/dedupe"
	"github.com/scanprof/zenos/internal/domain/export"
	"github.com/scanprof/zenos/internal/domain/model"
	"github.com/scanprof/zenos/internal/domain/roster"
	"github.com/scanprof/zenos/internal/domain/types"
	"github.com/scanprof/zenos/internal/domain/zenos"
	"github.com/scanprof/zenos/pkg/logger"
	"github.com/scanprof/zenos/pkg/metrics"
)

// Service serialises every operation behind one mutex: handlers may run
// concurrently but each operation sees and leaves a consistent session.
type Service struct {
	mu sync.Mutex

	store   repository.Store
	deduper dedupe.Deduper
	session *zenos.Session
	// selection is the filtering outcome behind session.
	selection roster.Selection

	dedupeSize    int
	applyAllLimit int
	exportOpts    export.Options
	now           func() time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDedupeSize bounds the remembered import fingerprints.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithApplyAllLimit caps the iterations of ApplyAll.
func WithApplyAllLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.applyAllLimit = limit
		}
	}
}

// WithExportOptions sets the texts used by the exports.
func WithExportOptions(opts export.Options) Option {
	return func(s *Service) {
		s.exportOpts = opts
	}
}

// WithStore replaces the in-memory roster store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithClock overrides the session timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service with an empty roster.
func New(opts ...Option) *Service {
	s := &Service{
		dedupeSize:    dedupe.DefaultMaxSize,
		applyAllLimit: zenos.DefaultApplyAllLimit,
		exportOpts:    export.DefaultOptions(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Discard()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	return s
}

// Import decodes a scanned or uploaded payload and merges its participants
// into the roster. A payload already imported byte for byte is reported as a
// duplicate and not merged again.
func (s *Service) Import(ctx context.Context, payload []byte) (types.ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fp := dedupe.Fingerprint(payload)
	if s.deduper.SeenAndRecord(ctx, fp) {
		metrics.RecordImport(true)
		s.logger.Info(ctx, "duplicate roster payload ignored", logger.String("fingerprint", fp))
		return types.ImportResult{
			Fingerprint: fp,
			Duplicate:   true,
			Total:       s.store.Count(ctx),
		}, nil
	}

	records, err := roster.Decode(payload)
	if err != nil {
		s.deduper.Unrecord(ctx, fp)
		metrics.RecordErrorByComponent("service", "invalid_payload")
		return types.ImportResult{}, err
	}
	stats, err := s.store.Merge(ctx, records)
	if err != nil {
		s.deduper.Unrecord(ctx, fp)
		metrics.RecordErrorByComponent("service", "merge")
		return types.ImportResult{}, fmt.Errorf("merge roster: %w", err)
	}
	metrics.RecordImport(false)

	s.logger.Info(ctx, "roster imported",
		logger.Int("records", len(records)),
		logger.Int("added", stats.Added),
		logger.Int("updated", stats.Updated),
		logger.Int("skipped", stats.Skipped),
		logger.Int("total", stats.Total),
	)
	return types.ImportResult{
		Fingerprint: fp,
		Records:     len(records),
		Added:       stats.Added,
		Updated:     stats.Updated,
		Skipped:     stats.Skipped,
		Total:       stats.Total,
	}, nil
}

// Participants returns the stored roster records.
func (s *Service) Participants(ctx context.Context) []roster.RawRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.All(ctx)
}

// Reset forgets the roster, the import fingerprints and the session.
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Clear(ctx)
	s.deduper.Reset(ctx)
	s.session = nil
	s.selection = roster.Selection{}
	metrics.UpdateOutstandingSuggestions(0)
	s.logger.Info(ctx, "roster cleared")
}

// Classes returns the distinct canonical classes of the roster.
func (s *Service) Classes(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Classes(ctx)
}

// Generate filters the roster by class, partitions the candidates into groups
// of four and runs the automatic repair. The new session replaces the current
// one. filter is roster.AllClasses, empty, or a class label in any spelling.
func (s *Service) Generate(ctx context.Context, filter string) (types.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	filter = normalizeFilter(filter)

	sel, err := roster.Candidates(s.store.All(ctx), filter)
	if err != nil {
		metrics.RecordGeneration("not_enough", msSince(start))
		s.logger.Warn(ctx, "generation refused",
			logger.String("classe", filter),
			logger.Int("candidates", len(sel.Candidates)),
			logger.Error(err),
		)
		return types.View{}, err
	}

	sess, err := zenos.Generate(sel.Candidates,
		zenos.WithClassFilter(filter),
		zenos.WithClock(s.now),
	)
	if err != nil {
		metrics.RecordGeneration("error", msSince(start))
		return types.View{}, fmt.Errorf("generate groups: %w", err)
	}
	s.session = sess
	s.selection = sel

	view := s.view()
	metrics.RecordGeneration("ok", msSince(start))
	metrics.RecordGroups(len(sess.Groups), len(sess.Remainder), sel.Rejected)
	metrics.RecordSwaps(metrics.SwapModeAuto, len(sess.AutoSwaps))
	metrics.UpdateOutstandingSuggestions(len(view.Suggestions))

	s.logger.Info(ctx, "groups generated",
		logger.String("session", sess.ID),
		logger.String("classe", filter),
		logger.Int("candidates", len(sel.Candidates)),
		logger.Int("rejected", sel.Rejected),
		logger.Int("groups", len(sess.Groups)),
		logger.Int("remainder", len(sess.Remainder)),
		logger.Int("autoSwaps", len(sess.AutoSwaps)),
		logger.Int("suggestions", len(view.Suggestions)),
	)
	return view, nil
}

// Current returns the view of the current session.
func (s *Service) Current(_ context.Context) (types.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return types.View{}, ErrNoSession
	}
	return s.view(), nil
}

// ApplySwap applies suggestion idx of the current session. sessionID must
// name the current session; an empty id skips the check.
func (s *Service) ApplySwap(ctx context.Context, sessionID string, idx int) (types.SwapResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSession(sessionID); err != nil {
		return types.SwapResult{}, err
	}
	applied, err := s.session.ApplySwap(idx)
	if err != nil {
		if errors.Is(err, zenos.ErrSuggestionNotFound) {
			metrics.RecordErrorByComponent("service", "suggestion_not_found")
		}
		return types.SwapResult{}, err
	}
	view := s.view()
	metrics.RecordSwaps(metrics.SwapModeManual, 1)
	metrics.UpdateOutstandingSuggestions(len(view.Suggestions))
	s.logger.Info(ctx, "swap applied",
		logger.String("session", s.session.ID),
		logger.String("swap", applied.Label),
		logger.Int("suggestions", len(view.Suggestions)),
	)
	return types.SwapResult{Applied: []model.Suggestion{applied}, View: view}, nil
}

// ApplyAll applies the first suggestion repeatedly, up to the configured
// limit. sessionID follows the ApplySwap rule.
func (s *Service) ApplyAll(ctx context.Context, sessionID string) (types.SwapResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSession(sessionID); err != nil {
		return types.SwapResult{}, err
	}
	applied := s.session.ApplyAll(s.applyAllLimit)
	view := s.view()
	metrics.RecordSwaps(metrics.SwapModeApplyAll, len(applied))
	metrics.UpdateOutstandingSuggestions(len(view.Suggestions))
	if len(view.Suggestions) > 0 {
		s.logger.Warn(ctx, "apply-all stopped with suggestions left",
			logger.Int("applied", len(applied)),
			logger.Int("left", len(view.Suggestions)),
			logger.Int("limit", s.applyAllLimit),
		)
	} else {
		s.logger.Info(ctx, "apply-all done", logger.Int("applied", len(applied)))
	}
	return types.SwapResult{Applied: applied, View: view}, nil
}

// GetStats returns a snapshot for the /stats endpoint.
func (s *Service) GetStats() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()
	stats := map[string]any{
		"participants":      s.store.Count(ctx),
		"classes":           s.store.Classes(ctx),
		"importsRemembered": s.deduper.Size(),
		"applyAllLimit":     s.applyAllLimit,
		"session":           nil,
	}
	if s.session != nil {
		stats["session"] = s.view().Stats
		stats["sessionId"] = s.session.ID
	}
	return stats
}

// checkSession verifies there is a session and that id names it. Caller
// holds s.mu.
func (s *Service) checkSession(id string) error {
	if s.session == nil {
		return ErrNoSession
	}
	if id != "" && id != s.session.ID {
		metrics.RecordErrorByComponent("service", "stale_session")
		return fmt.Errorf("%w: %s", ErrStaleSession, id)
	}
	return nil
}

func normalizeFilter(filter string) string {
	if filter == "" || filter == roster.AllClasses {
		return roster.AllClasses
	}
	if c := classcode.Canon(filter); c != "" {
		return c
	}
	return roster.AllClasses
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
