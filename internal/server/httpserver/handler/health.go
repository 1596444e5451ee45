package handler

import (
	"net/http"

	"github.com/MONGU38/kkokko-project/internal/infra/buildinfo"
)

// handleHealth handles GET /health.
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleReady handles GET /ready.
func (h *Handler) handleReady(w http.ResponseWriter, _ *http.Request) {
	if h.ready != nil && !h.ready() {
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not ready",
		})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}
