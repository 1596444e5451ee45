package service

import (
	"context"

	"github.com/MONGU38/kkokko-project/internal/core/domain"
)

// ParticipantRepository defines the storage interface for participant
// operations and aggregate counts.
type ParticipantRepository interface {
	// AppendParticipant appends a new participant record.
	AppendParticipant(ctx context.Context, p *domain.Participant) error

	// GetParticipant retrieves a participant by ID.
	// Returns domain.ErrParticipantNotFound if absent.
	GetParticipant(ctx context.Context, id string) (*domain.Participant, error)

	// ListParticipants returns all participants in insertion order.
	ListParticipants(ctx context.Context) ([]*domain.Participant, error)

	// CountAnswerSets returns the total number of answer sets.
	CountAnswerSets(ctx context.Context) (int, error)

	// CountMatchRecords returns the total number of match records.
	CountMatchRecords(ctx context.Context) (int, error)
}

// ParticipantService handles registration and statistics.
type ParticipantService struct {
	repo ParticipantRepository
}

// NewParticipantService creates a new ParticipantService.
func NewParticipantService(repo ParticipantRepository) *ParticipantService {
	return &ParticipantService{repo: repo}
}

// ============================================================================
// Register Operation
// ============================================================================

// RegisterRequest contains parameters for participant registration.
type RegisterRequest struct {
	Nickname string // Optional, display resolution falls back to "anonymous"
	Category string // Required, one of the known categories
}

// RegisterResponse contains the result of registration.
type RegisterResponse struct {
	Participant *domain.Participant
}

// Register registers a new participant. Registration has no
// preconditions beyond a valid category.
func (s *ParticipantService) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	participant, err := domain.NewParticipant(req.Nickname, category)
	if err != nil {
		return nil, domain.ErrInternalServer.WithCause(err)
	}

	if err := participant.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.AppendParticipant(ctx, participant); err != nil {
		return nil, domain.ErrStorageError.WithCause(err)
	}

	return &RegisterResponse{Participant: participant}, nil
}

// ============================================================================
// Stats Operation
// ============================================================================

// StatsResponse contains aggregate record counts.
type StatsResponse struct {
	TotalParticipants int
	TotalAnswerSets   int
	TotalMatchRecords int

	// CountsByCategory counts participants per category. Every known
	// category is present, zero-valued when empty.
	CountsByCategory map[domain.Category]int
}

// Stats returns aggregate counts across all three collections.
func (s *ParticipantService) Stats(ctx context.Context) (*StatsResponse, error) {
	participants, err := s.repo.ListParticipants(ctx)
	if err != nil {
		return nil, domain.ErrStorageError.WithCause(err)
	}

	answerSets, err := s.repo.CountAnswerSets(ctx)
	if err != nil {
		return nil, domain.ErrStorageError.WithCause(err)
	}

	matchRecords, err := s.repo.CountMatchRecords(ctx)
	if err != nil {
		return nil, domain.ErrStorageError.WithCause(err)
	}

	byCategory := make(map[domain.Category]int, len(domain.Categories()))
	for _, c := range domain.Categories() {
		byCategory[c] = 0
	}
	for _, p := range participants {
		byCategory[p.Category]++
	}

	return &StatsResponse{
		TotalParticipants: len(participants),
		TotalAnswerSets:   answerSets,
		TotalMatchRecords: matchRecords,
		CountsByCategory:  byCategory,
	}, nil
}
