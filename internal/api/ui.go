package api

import (
	"embed"
	"log/slog"
	"net/http"
)

//go:embed web/index.html
var webFS embed.FS

// UIHandler serves the embedded single-page task UI.
func UIHandler(w http.ResponseWriter, r *http.Request) {
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		slog.Error("failed to read embedded UI page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(page); err != nil {
		slog.Error("failed to write UI page", "error", err)
	}
}
