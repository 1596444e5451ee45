// Package handler provides the HTTP request handlers for kkokko.
//
// All JSON responses carry an explicit success flag; failures of the
// not-found class are reported with a human-readable message instead of
// being surfaced as transport errors.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/MONGU38/kkokko-project/internal/core/domain"
	"github.com/MONGU38/kkokko-project/internal/core/service"
	"github.com/MONGU38/kkokko-project/internal/telemetry/logger"
	"github.com/MONGU38/kkokko-project/internal/telemetry/metric"
)

// Config holds the dependencies for the handler.
type Config struct {
	ParticipantService *service.ParticipantService
	AnswerService      *service.AnswerService
	MatchService       *service.MatchService

	Metrics *metric.Metrics
	Logger  logger.Logger

	// Ready reports whether the server may accept traffic.
	// Nil means always ready.
	Ready func() bool
}

// Handler routes API requests to the underlying services.
type Handler struct {
	participantSvc *service.ParticipantService
	answerSvc      *service.AnswerService
	matchSvc       *service.MatchService
	metrics        *metric.Metrics
	log            logger.Logger
	ready          func() bool
}

// New creates a new Handler with the given services.
func New(cfg Config) *Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	return &Handler{
		participantSvc: cfg.ParticipantService,
		answerSvc:      cfg.AnswerService,
		matchSvc:       cfg.MatchService,
		metrics:        cfg.Metrics,
		log:            log,
		ready:          cfg.Ready,
	}
}

// Register mounts all API routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /ready", h.handleReady)

	mux.HandleFunc("POST /api/register", h.handleRegister)
	mux.HandleFunc("POST /api/answers", h.handleSubmitAnswers)
	mux.HandleFunc("POST /api/find-matches", h.handleFindMatches)
	mux.HandleFunc("POST /api/match-details", h.handleMatchDetails)
	mux.HandleFunc("GET /api/stats", h.handleStats)
}

// decode parses the JSON request body into dst.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeFailure(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeJSON writes a JSON response.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

// writeFailure writes a failure envelope with a message.
func (h *Handler) writeFailure(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, FailureResponse{Success: false, Message: message})
}

// writeServiceError maps a service error to a response. Not-found errors
// are a reported outcome, not a transport failure, so they keep HTTP 200.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.GetErrorCode(err)
	switch {
	case code == "":
		h.log.Error("internal error",
			"request_id", logger.RequestIDFromContext(r.Context()),
			"error", err,
		)
		h.writeFailure(w, http.StatusInternalServerError, "internal server error")
	case strings.HasSuffix(code, "-4040"):
		h.writeFailure(w, http.StatusOK, messageOf(err))
	case strings.HasPrefix(code, "KK-ARG-"), code == "KK-SYS-4000":
		h.writeFailure(w, http.StatusBadRequest, messageOf(err))
	default:
		h.log.Error("service error",
			"request_id", logger.RequestIDFromContext(r.Context()),
			"code", code,
			"error", err,
		)
		h.writeFailure(w, http.StatusInternalServerError, messageOf(err))
	}
}

// messageOf extracts the human-readable part of a domain error,
// dropping the structured code prefix.
func messageOf(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) {
		if de.Details != "" {
			return de.Message + ": " + de.Details
		}
		return de.Message
	}
	return err.Error()
}
