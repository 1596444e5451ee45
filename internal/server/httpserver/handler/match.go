package handler

import (
	"net/http"

	"github.com/MONGU38/kkokko-project/internal/core/domain"
	"github.com/MONGU38/kkokko-project/internal/core/service"
)

// handleFindMatches handles POST /api/find-matches.
func (h *Handler) handleFindMatches(w http.ResponseWriter, r *http.Request) {
	var req FindMatchesRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.matchSvc.FindMatches(r.Context(), &service.FindMatchesRequest{
		ParticipantID: req.ParticipantID,
		Category:      req.Category,
	})
	if err != nil {
		if h.metrics != nil {
			h.metrics.MatchRun("failed")
		}
		h.writeServiceError(w, r, err)
		return
	}

	if h.metrics != nil {
		if resp.Total == 0 {
			h.metrics.MatchRun("empty")
		} else {
			h.metrics.MatchRun("matched")
		}
	}

	matches := resp.Matches
	if matches == nil {
		matches = []domain.MatchResult{}
	}
	h.writeJSON(w, http.StatusOK, FindMatchesResponse{
		Success: true,
		Matches: matches,
		Total:   resp.Total,
	})
}

// handleMatchDetails handles POST /api/match-details.
func (h *Handler) handleMatchDetails(w http.ResponseWriter, r *http.Request) {
	var req MatchDetailsRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.matchSvc.Compare(r.Context(), &service.CompareRequest{
		ParticipantID1: req.ParticipantID1,
		ParticipantID2: req.ParticipantID2,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, MatchDetailsResponse{
		Success:    true,
		Comparison: resp.Comparison,
	})
}
