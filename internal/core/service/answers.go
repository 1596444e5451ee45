package service

import (
	"context"

	"github.com/MONGU38/kkokko-project/internal/core/domain"
)

// AnswerRepository defines the storage interface for answer submissions.
type AnswerRepository interface {
	// AppendAnswerSet appends a new answer set record.
	AppendAnswerSet(ctx context.Context, a *domain.AnswerSet) error
}

// AnswerService handles questionnaire submissions.
type AnswerService struct {
	repo AnswerRepository
}

// NewAnswerService creates a new AnswerService.
func NewAnswerService(repo AnswerRepository) *AnswerService {
	return &AnswerService{repo: repo}
}

// SubmitAnswersRequest contains parameters for an answer submission.
type SubmitAnswersRequest struct {
	ParticipantID string // Required, existence is NOT verified
	Category      string // Required, one of the known categories
	Answers       map[string]domain.AnswerValue
}

// SubmitAnswersResponse contains the result of a submission.
type SubmitAnswersResponse struct {
	AnswerSetID string
}

// Submit stores a new answer set. The participant ID is recorded as
// given without an existence check; an unknown participant surfaces
// later as the anonymous nickname during matching.
func (s *AnswerService) Submit(ctx context.Context, req *SubmitAnswersRequest) (*SubmitAnswersResponse, error) {
	if req.ParticipantID == "" {
		return nil, domain.ErrMissingArgument.WithDetails("participant_id is required")
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	answerSet, err := domain.NewAnswerSet(req.ParticipantID, category, req.Answers)
	if err != nil {
		return nil, domain.ErrInternalServer.WithCause(err)
	}

	if err := answerSet.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.AppendAnswerSet(ctx, answerSet); err != nil {
		return nil, domain.ErrStorageError.WithCause(err)
	}

	return &SubmitAnswersResponse{AnswerSetID: answerSet.ID}, nil
}
