package handler

import (
	"github.com/MONGU38/kkokko-project/internal/core/domain"
	"github.com/MONGU38/kkokko-project/internal/core/service"
)

// FailureResponse is the envelope for reported failures.
type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RegisterRequest is the request body for POST /api/register.
type RegisterRequest struct {
	Nickname string `json:"nickname"`
	Category string `json:"category"`
}

// RegisterResponse is the response body for POST /api/register.
type RegisterResponse struct {
	Success     bool                `json:"success"`
	Participant *domain.Participant `json:"participant"`
}

// SubmitAnswersRequest is the request body for POST /api/answers.
type SubmitAnswersRequest struct {
	ParticipantID string                        `json:"participant_id"`
	Category      string                        `json:"category"`
	Answers       map[string]domain.AnswerValue `json:"answers"`
}

// SubmitAnswersResponse is the response body for POST /api/answers.
type SubmitAnswersResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// FindMatchesRequest is the request body for POST /api/find-matches.
type FindMatchesRequest struct {
	ParticipantID string `json:"participant_id"`
	Category      string `json:"category"`
}

// FindMatchesResponse is the response body for POST /api/find-matches.
// Matches is truncated to the service cap; Total is the untruncated
// candidate count.
type FindMatchesResponse struct {
	Success bool                 `json:"success"`
	Matches []domain.MatchResult `json:"matches"`
	Total   int                  `json:"total"`
}

// MatchDetailsRequest is the request body for POST /api/match-details.
type MatchDetailsRequest struct {
	ParticipantID1 string `json:"participant_id_1"`
	ParticipantID2 string `json:"participant_id_2"`
}

// MatchDetailsResponse is the response body for POST /api/match-details.
type MatchDetailsResponse struct {
	Success    bool                               `json:"success"`
	Comparison map[string]service.ComparisonEntry `json:"comparison"`
}

// Stats is the aggregate count block of GET /api/stats.
type Stats struct {
	TotalParticipants int            `json:"total_participants"`
	TotalAnswerSets   int            `json:"total_answer_sets"`
	TotalMatchRecords int            `json:"total_match_records"`
	Categories        map[string]int `json:"categories"`
}

// StatsResponse is the response body for GET /api/stats.
type StatsResponse struct {
	Success bool  `json:"success"`
	Stats   Stats `json:"stats"`
}
