// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/scanprof/zenos/internal/domain/roster"
	"github.com/scanprof/zenos/internal/domain/types"
)

// DefaultMaxPayloadBytes caps POST /participants when no option is given.
const DefaultMaxPayloadBytes = 4 << 20

// RosterService is what the participant and class routes need.
type RosterService interface {
	Import(ctx context.Context, payload []byte) (types.ImportResult, error)
	Participants(ctx context.Context) []roster.RawRecord
	Reset(ctx context.Context)
	Classes(ctx context.Context) []string
}

// GroupService is what the grouping and swap routes need.
type GroupService interface {
	Generate(ctx context.Context, filter string) (types.View, error)
	Current(ctx context.Context) (types.View, error)
	ApplySwap(ctx context.Context, sessionID string, idx int) (types.SwapResult, error)
	ApplyAll(ctx context.Context, sessionID string) (types.SwapResult, error)
}

// ExportService is what the export routes need.
type ExportService interface {
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportHTML(ctx context.Context, w io.Writer) error
	ExportMailto(ctx context.Context) (string, error)
}

// Dependencies bundles every service the handlers call.
type Dependencies interface {
	RosterService
	GroupService
	ExportService
}

// Server wires HTTP routes for the business API.
type Server struct {
	statusHandler       *StatusHandler
	participantsHandler *ParticipantsHandler
	groupsHandler       *GroupsHandler
	swapsHandler        *SwapsHandler
	exportHandler       *ExportHandler
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	maxPayloadBytes int64
}

// WithMaxPayloadBytes caps the body of POST /participants.
func WithMaxPayloadBytes(n int64) ServerOption {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxPayloadBytes = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	cfg := serverConfig{maxPayloadBytes: DefaultMaxPayloadBytes}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		statusHandler:       NewStatusHandler(statsProvider),
		participantsHandler: NewParticipantsHandler(deps, cfg.maxPayloadBytes),
		groupsHandler:       NewGroupsHandler(deps),
		swapsHandler:        NewSwapsHandler(deps),
		exportHandler:       NewExportHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", instrument("healthz", s.statusHandler.HandleHealth))
	mux.HandleFunc("GET /stats", instrument("stats", s.statusHandler.HandleStats))

	mux.HandleFunc("POST /participants", instrument("participants", s.participantsHandler.HandleImport))
	mux.HandleFunc("GET /participants", instrument("participants", s.participantsHandler.HandleList))
	mux.HandleFunc("DELETE /participants", instrument("participants", s.participantsHandler.HandleClear))
	mux.HandleFunc("GET /classes", instrument("classes", s.participantsHandler.HandleClasses))

	mux.HandleFunc("POST /groups", instrument("groups", s.groupsHandler.HandleGenerate))
	mux.HandleFunc("GET /groups", instrument("groups", s.groupsHandler.HandleCurrent))
	mux.HandleFunc("GET /suggestions", instrument("suggestions", s.groupsHandler.HandleSuggestions))

	// The literal "all" segment takes precedence over the wildcard.
	mux.HandleFunc("POST /swaps/all", instrument("swaps_all", s.swapsHandler.HandleApplyAll))
	mux.HandleFunc("POST /swaps/{index}", instrument("swaps", s.swapsHandler.HandleApply))

	mux.HandleFunc("GET /export/csv", instrument("export_csv", s.exportHandler.HandleCSV))
	mux.HandleFunc("GET /export/html", instrument("export_html", s.exportHandler.HandleHTML))
	mux.HandleFunc("GET /export/mailto", instrument("export_mailto", s.exportHandler.HandleMailto))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
