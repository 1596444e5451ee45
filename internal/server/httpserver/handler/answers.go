package handler

import (
	"net/http"

	"github.com/MONGU38/kkokko-project/internal/core/service"
)

// handleSubmitAnswers handles POST /api/answers.
func (h *Handler) handleSubmitAnswers(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswersRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.answerSvc.Submit(r.Context(), &service.SubmitAnswersRequest{
		ParticipantID: req.ParticipantID,
		Category:      req.Category,
		Answers:       req.Answers,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.AnswersSubmitted()
	}
	h.writeJSON(w, http.StatusOK, SubmitAnswersResponse{
		Success: true,
		ID:      resp.AnswerSetID,
	})
}
