package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/scanprof/zenos/internal/domain/roster"
)

// ParticipantsHandler handles roster import and listing.
type ParticipantsHandler struct {
	deps            RosterService
	maxPayloadBytes int64
}

// NewParticipantsHandler creates a new participants handler.
func NewParticipantsHandler(deps RosterService, maxPayloadBytes int64) *ParticipantsHandler {
	if maxPayloadBytes <= 0 {
		maxPayloadBytes = DefaultMaxPayloadBytes
	}
	return &ParticipantsHandler{deps: deps, maxPayloadBytes: maxPayloadBytes}
}

type participantsResponse struct {
	Count        int                `json:"count"`
	Participants []roster.RawRecord `json:"participants"`
}

type classesResponse struct {
	Classes []string `json:"classes"`
}

// HandleImport handles POST /participants. The body is a scanned or uploaded
// roster payload in any of the accepted JSON shapes.
func (h *ParticipantsHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxPayloadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeServiceError(w, fmt.Errorf("%w: limit is %d bytes", ErrPayloadTooLarge, tooLarge.Limit))
			return
		}
		writeServiceError(w, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if len(body) == 0 {
		writeServiceError(w, fmt.Errorf("%w: empty body", ErrBadRequest))
		return
	}

	res, err := h.deps.Import(r.Context(), body)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	status := http.StatusCreated
	if res.Duplicate {
		status = http.StatusOK
	}
	writeJSON(w, status, res)
}

// HandleList handles GET /participants.
func (h *ParticipantsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	all := h.deps.Participants(r.Context())
	writeJSON(w, http.StatusOK, participantsResponse{Count: len(all), Participants: all})
}

// HandleClear handles DELETE /participants.
func (h *ParticipantsHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.deps.Reset(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// HandleClasses handles GET /classes.
func (h *ParticipantsHandler) HandleClasses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, classesResponse{Classes: h.deps.Classes(r.Context())})
}
