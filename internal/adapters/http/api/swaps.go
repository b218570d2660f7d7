package api

import (
	"fmt"
	"net/http"
	"strconv"
)

// SwapsHandler applies swap suggestions to the current session.
type SwapsHandler struct {
	deps GroupService
}

// NewSwapsHandler creates a new swaps handler.
func NewSwapsHandler(deps GroupService) *SwapsHandler {
	return &SwapsHandler{deps: deps}
}

// HandleApply handles POST /swaps/{index}?session=<id>. The index refers to
// the suggestion list of that session as last returned.
func (h *SwapsHandler) HandleApply(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || idx < 0 {
		writeServiceError(w, fmt.Errorf("%w: invalid suggestion index %q", ErrBadRequest, r.PathValue("index")))
		return
	}
	sessionID, ok := sessionParam(w, r)
	if !ok {
		return
	}
	res, err := h.deps.ApplySwap(r.Context(), sessionID, idx)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleApplyAll handles POST /swaps/all?session=<id>.
func (h *SwapsHandler) HandleApplyAll(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionParam(w, r)
	if !ok {
		return
	}
	res, err := h.deps.ApplyAll(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// sessionParam reads the mandatory session query parameter.
func sessionParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("session")
	if id == "" {
		writeServiceError(w, fmt.Errorf("%w: missing session", ErrBadRequest))
		return "", false
	}
	return id, true
}
