// Package types contains the response shapes shared by the service, the
// HTTP API and the CLI.
package types

import (
	"time"

	"github.com/scanprof/zenos/internal/domain/model"
)

// GroupView is one group as displayed: its label, members in slot order and
// gender counts.
type GroupView struct {
	Label   string              `json:"label"`
	Members []model.Participant `json:"members"`
	Females int                 `json:"females"`
	Males   int                 `json:"males"`
	Mixed   bool                `json:"mixed"`
}

// Stats summarises a grouping run.
type Stats struct {
	Candidates int `json:"candidates"`
	Rejected   int `json:"rejected"`
	Filtered   int `json:"filtered"`
	Groups     int `json:"groups"`
	Mixed      int `json:"mixed"`
	Remainder  int `json:"remainder"`
	AutoSwaps  int `json:"auto_swaps"`
	Swaps      int `json:"swaps"`
}

// View is the state of the current session as returned to callers.
type View struct {
	SessionID   string              `json:"session_id"`
	ClassFilter string              `json:"class_filter"`
	Title       string              `json:"title"`
	CreatedAt   time.Time           `json:"created_at"`
	Groups      []GroupView         `json:"groups"`
	Remainder   []model.Participant `json:"remainder"`
	Suggestions []model.Suggestion  `json:"suggestions"`
	AutoSwaps   []model.Suggestion  `json:"auto_swaps"`
	Stats       Stats               `json:"stats"`
}

// ImportResult reports one roster import.
type ImportResult struct {
	Fingerprint string `json:"fingerprint"`
	Duplicate   bool   `json:"duplicate"`
	Records     int    `json:"records"`
	Added       int    `json:"added"`
	Updated     int    `json:"updated"`
	Skipped     int    `json:"skipped"`
	Total       int    `json:"total"`
}

// SwapResult is the outcome of applying one or more swaps.
type SwapResult struct {
	Applied []model.Suggestion `json:"applied"`
	View    View               `json:"view"`
}

// NewGroupView builds the display form of g.
func NewGroupView(label string, g model.Group) GroupView {
	f, m := g.CountSexes()
	return GroupView{
		Label:   label,
		Members: append([]model.Participant(nil), g...),
		Females: f,
		Males:   m,
		Mixed:   g.Mixed(),
	}
}

// MixedCount counts the mixed groups of a view.
func (v View) MixedCount() int {
	n := 0
	for _, g := range v.Groups {
		if g.Mixed {
			n++
		}
	}
	return n
}
