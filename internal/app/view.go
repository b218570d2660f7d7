package service

import (
	"github.com/scanprof/zenos/internal/domain/export"
	"github.com/scanprof/zenos/internal/domain/model"
	"github.com/scanprof/zenos/internal/domain/roster"
	"github.com/scanprof/zenos/internal/domain/types"
)

// view snapshots the current session. Caller holds s.mu and has checked that
// a session exists.
func (s *Service) view() types.View {
	sess := s.session
	groups := make([]types.GroupView, len(sess.Groups))
	for i, g := range sess.Groups {
		groups[i] = types.NewGroupView(export.GroupLabel(i), g)
	}
	v := types.View{
		SessionID:   sess.ID,
		ClassFilter: sess.ClassFilter,
		Title:       export.Title(sess.ClassFilter, roster.AllClasses),
		CreatedAt:   sess.CreatedAt,
		Groups:      groups,
		Remainder:   append([]model.Participant(nil), sess.Remainder...),
		Suggestions: sess.Suggestions(),
		AutoSwaps:   append([]model.Suggestion(nil), sess.AutoSwaps...),
	}
	v.Stats = types.Stats{
		Candidates: len(s.selection.Candidates),
		Rejected:   s.selection.Rejected,
		Filtered:   s.selection.Filtered,
		Groups:     len(sess.Groups),
		Mixed:      v.MixedCount(),
		Remainder:  len(sess.Remainder),
		AutoSwaps:  len(sess.AutoSwaps),
		Swaps:      sess.Swaps,
	}
	return v
}

// sheet is the export input for the current session. Caller holds s.mu.
func (s *Service) sheet() export.Sheet {
	c := s.session.Clone()
	return export.Sheet{
		Title:     export.Title(c.ClassFilter, roster.AllClasses),
		Groups:    c.Groups,
		Remainder: c.Remainder,
	}
}
