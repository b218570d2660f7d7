package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// ExportHandler serves the current groups as CSV, print HTML or a mailto link.
type ExportHandler struct {
	deps ExportService
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps ExportService) *ExportHandler {
	return &ExportHandler{deps: deps}
}

type mailtoResponse struct {
	Href string `json:"href"`
}

// HandleCSV handles GET /export/csv.
func (h *ExportHandler) HandleCSV(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "text/csv; charset=utf-8", `attachment; filename="groupes_zenos.csv"`, h.deps.ExportCSV)
}

// HandleHTML handles GET /export/html.
func (h *ExportHandler) HandleHTML(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "text/html; charset=utf-8", "", h.deps.ExportHTML)
}

// HandleMailto handles GET /export/mailto.
func (h *ExportHandler) HandleMailto(w http.ResponseWriter, r *http.Request) {
	href, err := h.deps.ExportMailto(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mailtoResponse{Href: href})
}

// render buffers the export so a failure still yields a clean error body.
func (h *ExportHandler) render(w http.ResponseWriter, r *http.Request, contentType, disposition string,
	export func(ctx context.Context, w io.Writer) error) {
	var buf bytes.Buffer
	if err := export(r.Context(), &buf); err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	if disposition != "" {
		w.Header().Set("Content-Disposition", disposition)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
