package service

import (
	"context"
	"errors"
	"sort"

	"github.com/MONGU38/kkokko-project/internal/core/domain"
)

// MaxMatchesReturned caps the candidate list returned to callers.
// The persisted MatchRecord always keeps the full list.
const MaxMatchesReturned = 10

// MatchRepository defines the storage interface for match runs.
type MatchRepository interface {
	// FirstAnswerSetByParticipant returns the earliest answer set
	// submitted by the participant, in insertion order.
	// Returns domain.ErrAnswersNotFound if the participant never
	// submitted one.
	FirstAnswerSetByParticipant(ctx context.Context, participantID string) (*domain.AnswerSet, error)

	// ListAnswerSetsByCategory returns all answer sets in the category,
	// in insertion order.
	ListAnswerSetsByCategory(ctx context.Context, category domain.Category) ([]*domain.AnswerSet, error)

	// GetParticipant retrieves a participant by ID.
	// Returns domain.ErrParticipantNotFound if absent.
	GetParticipant(ctx context.Context, id string) (*domain.Participant, error)

	// AppendMatchRecord appends a new match record.
	AppendMatchRecord(ctx context.Context, m *domain.MatchRecord) error
}

// MatchService runs matching and pairwise comparisons.
type MatchService struct {
	repo MatchRepository
}

// NewMatchService creates a new MatchService.
func NewMatchService(repo MatchRepository) *MatchService {
	return &MatchService{repo: repo}
}

// ============================================================================
// Find Matches Operation
// ============================================================================

// FindMatchesRequest contains parameters for a matching run.
type FindMatchesRequest struct {
	ParticipantID string // Required
	Category      string // Required, one of the known categories
}

// FindMatchesResponse contains the ranked result of a matching run.
type FindMatchesResponse struct {
	// Matches is the ranked candidate list, truncated to
	// MaxMatchesReturned entries.
	Matches []domain.MatchResult

	// Total is the untruncated candidate count.
	Total int

	// RecordID is the ID of the appended MatchRecord, empty when the
	// run produced no candidates.
	RecordID string
}

// FindMatches scores the requester's first answer set against every
// other answer set in the category and returns the ranked candidates.
//
// Candidates are sorted descending by score with ties keeping insertion
// order, so identical inputs always rank identically. A run with at
// least one candidate appends a MatchRecord holding the full ranked
// list; repeated calls append repeated records.
func (s *MatchService) FindMatches(ctx context.Context, req *FindMatchesRequest) (*FindMatchesResponse, error) {
	if req.ParticipantID == "" {
		return nil, domain.ErrMissingArgument.WithDetails("participant_id is required")
	}
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	own, err := s.repo.FirstAnswerSetByParticipant(ctx, req.ParticipantID)
	if err != nil {
		if errors.Is(err, domain.ErrAnswersNotFound) {
			return nil, err
		}
		return nil, domain.ErrStorageError.WithCause(err)
	}

	pool, err := s.repo.ListAnswerSetsByCategory(ctx, category)
	if err != nil {
		return nil, domain.ErrStorageError.WithCause(err)
	}

	var results []domain.MatchResult
	for _, candidate := range pool {
		if candidate.ParticipantID == req.ParticipantID {
			continue
		}
		results = append(results, domain.MatchResult{
			ParticipantID: candidate.ParticipantID,
			Nickname:      s.resolveNickname(ctx, candidate.ParticipantID),
			Score:         Score(own.Answers, candidate.Answers),
			Category:      category,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	resp := &FindMatchesResponse{
		Matches: results,
		Total:   len(results),
	}
	if len(results) == 0 {
		return resp, nil
	}

	record, err := domain.NewMatchRecord(req.ParticipantID, category, results)
	if err != nil {
		return nil, domain.ErrInternalServer.WithCause(err)
	}
	if err := s.repo.AppendMatchRecord(ctx, record); err != nil {
		return nil, domain.ErrStorageError.WithCause(err)
	}
	resp.RecordID = record.ID

	if len(resp.Matches) > MaxMatchesReturned {
		resp.Matches = resp.Matches[:MaxMatchesReturned]
	}
	return resp, nil
}

// resolveNickname maps a participant ID to its display name, falling
// back to the anonymous sentinel for unknown participants and empty
// nicknames.
func (s *MatchService) resolveNickname(ctx context.Context, participantID string) string {
	p, err := s.repo.GetParticipant(ctx, participantID)
	if err != nil || p.Nickname == "" {
		return domain.AnonymousNickname
	}
	return p.Nickname
}

// ============================================================================
// Compare Operation
// ============================================================================

// CompareRequest contains parameters for a pairwise comparison.
type CompareRequest struct {
	ParticipantID1 string // Required
	ParticipantID2 string // Required
}

// ComparisonEntry is the per-key outcome of a comparison.
type ComparisonEntry struct {
	Value1 domain.AnswerValue `json:"value1"`
	Value2 domain.AnswerValue `json:"value2"`
	Equal  bool               `json:"equal"`
}

// CompareResponse contains the result of a pairwise comparison.
type CompareResponse struct {
	// Comparison maps each key present in BOTH first answer sets to
	// its structural-equality outcome.
	Comparison map[string]ComparisonEntry
}

// Compare performs a per-key structural comparison of the two
// participants' first answer sets. Unlike scoring, equality here is
// exact and order-sensitive: a scalar never equals a sequence and
// sequences must match element for element.
func (s *MatchService) Compare(ctx context.Context, req *CompareRequest) (*CompareResponse, error) {
	if req.ParticipantID1 == "" || req.ParticipantID2 == "" {
		return nil, domain.ErrMissingArgument.WithDetails("both participant ids are required")
	}

	first, err := s.repo.FirstAnswerSetByParticipant(ctx, req.ParticipantID1)
	if err != nil {
		if errors.Is(err, domain.ErrAnswersNotFound) {
			return nil, err
		}
		return nil, domain.ErrStorageError.WithCause(err)
	}
	second, err := s.repo.FirstAnswerSetByParticipant(ctx, req.ParticipantID2)
	if err != nil {
		if errors.Is(err, domain.ErrAnswersNotFound) {
			return nil, err
		}
		return nil, domain.ErrStorageError.WithCause(err)
	}

	comparison := make(map[string]ComparisonEntry)
	for key, v1 := range first.Answers {
		v2, ok := second.Answers[key]
		if !ok {
			continue
		}
		comparison[key] = ComparisonEntry{
			Value1: v1,
			Value2: v2,
			Equal:  v1.Equal(v2),
		}
	}

	return &CompareResponse{Comparison: comparison}, nil
}
