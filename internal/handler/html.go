package handler

import (
	"log/slog"
	"net/http"

	"html2md/internal/httputil"
	"html2md/internal/service"
)

// Success headers: converted pages are immutable enough to let clients and
// shared caches hold them for a while.
const (
	markdownContentType  = "text/plain; charset=UTF-8"
	markdownCacheControl = "public, max-age=3600, s-maxage=86400"
)

// HTMLHandler handles the HTML-to-Markdown conversion endpoint.
type HTMLHandler struct {
	converter service.Converter
	logger    *slog.Logger
}

// NewHTMLHandler creates a new conversion handler.
func NewHTMLHandler(converter service.Converter, logger *slog.Logger) *HTMLHandler {
	return &HTMLHandler{
		converter: converter,
		logger:    logger,
	}
}

// Convert fetches the page named by the url query parameter and returns its
// Markdown rendition.
// GET /html?url=...
func (h *HTMLHandler) Convert(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")

	markdown, apiErr := h.converter.Convert(r.Context(), rawURL)
	if apiErr != nil {
		httputil.RespondAPIError(w, apiErr)
		return
	}

	w.Header().Set("Content-Type", markdownContentType)
	w.Header().Set("Cache-Control", markdownCacheControl)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(markdown))
}

// HealthCheck reports liveness.
// GET /health
func (h *HTMLHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
