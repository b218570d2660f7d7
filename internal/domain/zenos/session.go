package zenos

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/scanprof/zenos/internal/domain/model"
)

// DefaultApplyAllLimit bounds ApplyAll when no limit is given.
const DefaultApplyAllLimit = 40

// Session is the state of one grouping run. Generate rebuilds it from
// candidates; swaps mutate it in place.
type Session struct {
	ID          string
	ClassFilter string
	CreatedAt   time.Time
	Groups      []model.Group
	Remainder   []model.Participant
	// AutoSwaps are the swaps Rebalance applied during Generate.
	AutoSwaps []model.Suggestion
	// Swaps counts swaps applied after generation.
	Swaps int
}

// Option applies a configuration option to Generate.
type Option func(*Session)

// WithClassFilter records the class filter the candidates were selected with.
func WithClassFilter(filter string) Option {
	return func(s *Session) {
		s.ClassFilter = filter
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.CreatedAt = now()
		}
	}
}

// Generate partitions candidates into groups and runs the automatic
// mixed-gender repair.
func Generate(candidates []model.Participant, opts ...Option) (*Session, error) {
	if len(candidates) < model.GroupSize {
		return nil, fmt.Errorf("%w: %d candidates", ErrTooFewCandidates, len(candidates))
	}
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Groups, s.Remainder = Partition(candidates)
	s.AutoSwaps = Rebalance(s.Groups)
	return s, nil
}

// Suggestions recomputes the swap suggestions for the current groups.
func (s *Session) Suggestions() []model.Suggestion {
	return Suggest(s.Groups)
}

// ApplySwap applies suggestion idx of a freshly computed suggestion list.
func (s *Session) ApplySwap(idx int) (model.Suggestion, error) {
	suggs := s.Suggestions()
	if idx < 0 || idx >= len(suggs) {
		return model.Suggestion{}, fmt.Errorf("%w: index %d of %d", ErrSuggestionNotFound, idx, len(suggs))
	}
	if err := Swap(s.Groups, suggs[idx]); err != nil {
		return model.Suggestion{}, err
	}
	s.Swaps++
	return suggs[idx], nil
}

// ApplyAll repeatedly applies the first suggestion until none is left or
// limit iterations ran. A non-positive limit means DefaultApplyAllLimit.
// It returns the swaps applied.
func (s *Session) ApplyAll(limit int) []model.Suggestion {
	if limit <= 0 {
		limit = DefaultApplyAllLimit
	}
	var applied []model.Suggestion
	for i := 0; i < limit; i++ {
		suggs := s.Suggestions()
		if len(suggs) == 0 {
			break
		}
		if err := Swap(s.Groups, suggs[0]); err != nil {
			break
		}
		s.Swaps++
		applied = append(applied, suggs[0])
	}
	return applied
}

// MixedCount returns how many groups hold at least one F and one G.
func (s *Session) MixedCount() int {
	n := 0
	for _, g := range s.Groups {
		if g.Mixed() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy safe to hand to readers.
func (s *Session) Clone() *Session {
	c := *s
	c.Groups = make([]model.Group, len(s.Groups))
	for i, g := range s.Groups {
		c.Groups[i] = g.Clone()
	}
	c.Remainder = append([]model.Participant(nil), s.Remainder...)
	c.AutoSwaps = append([]model.Suggestion(nil), s.AutoSwaps...)
	return &c
}
