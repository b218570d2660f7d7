package api

import (
	"errors"
	"net/http"

	"github.com/scanprof/zenos/internal/adapters/repository"
	service "github.com/scanprof/zenos/internal/app"
	"github.com/scanprof/zenos/internal/domain/roster"
	"github.com/scanprof/zenos/internal/domain/zenos"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrPayloadTooLarge = errors.New("payload too large")
)

// errorMapping ties a sentinel to its HTTP status and error code.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{ErrBadRequest, http.StatusBadRequest, "bad_request"},
	{ErrPayloadTooLarge, http.StatusRequestEntityTooLarge, "payload_too_large"},
	{roster.ErrInvalidPayload, http.StatusBadRequest, "invalid_payload"},
	{roster.ErrNotEnoughParticipants, http.StatusUnprocessableEntity, "not_enough_participants"},
	{repository.ErrRosterFull, http.StatusConflict, "roster_full"},
	{service.ErrNoSession, http.StatusNotFound, "no_session"},
	{service.ErrStaleSession, http.StatusConflict, "stale_session"},
	{zenos.ErrSuggestionNotFound, http.StatusNotFound, "suggestion_not_found"},
}

// writeServiceError maps err onto a status and writes it. Unknown errors are
// 500s.
func writeServiceError(w http.ResponseWriter, err error) {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			writeError(w, m.status, m.code, err)
			return
		}
	}
	writeError(w, http.StatusInternalServerError, "internal", err)
}
