package handler

import (
	"net/http"

	"github.com/MONGU38/kkokko-project/internal/core/service"
)

// handleRegister handles POST /api/register.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.participantSvc.Register(r.Context(), &service.RegisterRequest{
		Nickname: req.Nickname,
		Category: req.Category,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ParticipantRegistered()
	}
	h.writeJSON(w, http.StatusOK, RegisterResponse{
		Success:     true,
		Participant: resp.Participant,
	})
}

// handleStats handles GET /api/stats.
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.participantSvc.Stats(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	categories := make(map[string]int, len(resp.CountsByCategory))
	for category, n := range resp.CountsByCategory {
		categories[string(category)] = n
	}

	h.writeJSON(w, http.StatusOK, StatsResponse{
		Success: true,
		Stats: Stats{
			TotalParticipants: resp.TotalParticipants,
			TotalAnswerSets:   resp.TotalAnswerSets,
			TotalMatchRecords: resp.TotalMatchRecords,
			Categories:        categories,
		},
	})
}
