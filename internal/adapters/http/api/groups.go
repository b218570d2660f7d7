package api

import (
	"net/http"

	"github.com/scanprof/zenos/internal/domain/model"
	"github.com/scanprof/zenos/internal/domain/roster"
)

// GroupsHandler handles group generation and reads of the current session.
type GroupsHandler struct {
	deps GroupService
}

// NewGroupsHandler creates a new groups handler.
func NewGroupsHandler(deps GroupService) *GroupsHandler {
	return &GroupsHandler{deps: deps}
}

type suggestionsResponse struct {
	SessionID   string             `json:"session_id"`
	Suggestions []model.Suggestion `json:"suggestions"`
}

// HandleGenerate handles POST /groups?classe=<label>. A missing classe means
// every class.
func (h *GroupsHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("classe")
	if filter == "" {
		filter = roster.AllClasses
	}
	view, err := h.deps.Generate(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// HandleCurrent handles GET /groups.
func (h *GroupsHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	view, err := h.deps.Current(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleSuggestions handles GET /suggestions.
func (h *GroupsHandler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	view, err := h.deps.Current(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	suggs := view.Suggestions
	if suggs == nil {
		suggs = []model.Suggestion{}
	}
	writeJSON(w, http.StatusOK, suggestionsResponse{SessionID: view.SessionID, Suggestions: suggs})
}
