// Package site serves the embedded single-page ZENOS interface.
package site

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var static embed.FS

// FS exposes the page and its assets with static/ stripped.
func FS() http.FileSystem {
	root, err := fs.Sub(static, "static")
	if err != nil {
		// static is embedded at build time.
		panic(err)
	}
	return http.FS(root)
}

// Register mounts the page at GET /. API routes registered with a method
// and a longer path take precedence.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("site: nil mux")
	}
	mux.Handle("GET /", http.FileServer(FS()))
}
