package service

import (
	"context"

	"github.com/MONGU38/kkokko-project/internal/core/domain"
)

// fakeRepo is an in-memory fixture implementing all repository
// interfaces defined in this package.
type fakeRepo struct {
	participants []*domain.Participant
	answerSets   []*domain.AnswerSet
	matchRecords []*domain.MatchRecord
}

func (r *fakeRepo) AppendParticipant(_ context.Context, p *domain.Participant) error {
	r.participants = append(r.participants, p)
	return nil
}

func (r *fakeRepo) GetParticipant(_ context.Context, id string) (*domain.Participant, error) {
	for _, p := range r.participants {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrParticipantNotFound
}

func (r *fakeRepo) ListParticipants(_ context.Context) ([]*domain.Participant, error) {
	return r.participants, nil
}

func (r *fakeRepo) CountAnswerSets(_ context.Context) (int, error) {
	return len(r.answerSets), nil
}

func (r *fakeRepo) CountMatchRecords(_ context.Context) (int, error) {
	return len(r.matchRecords), nil
}

func (r *fakeRepo) AppendAnswerSet(_ context.Context, a *domain.AnswerSet) error {
	r.answerSets = append(r.answerSets, a)
	return nil
}

func (r *fakeRepo) FirstAnswerSetByParticipant(_ context.Context, participantID string) (*domain.AnswerSet, error) {
	for _, a := range r.answerSets {
		if a.ParticipantID == participantID {
			return a, nil
		}
	}
	return nil, domain.ErrAnswersNotFound
}

func (r *fakeRepo) ListAnswerSetsByCategory(_ context.Context, category domain.Category) ([]*domain.AnswerSet, error) {
	var out []*domain.AnswerSet
	for _, a := range r.answerSets {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeRepo) AppendMatchRecord(_ context.Context, m *domain.MatchRecord) error {
	r.matchRecords = append(r.matchRecords, m)
	return nil
}

// addParticipant registers a fixture participant and returns its ID.
func (r *fakeRepo) addParticipant(nickname string, category domain.Category) string {
	p, err := domain.NewParticipant(nickname, category)
	if err != nil {
		panic(err)
	}
	r.participants = append(r.participants, p)
	return p.ID
}

// addAnswers stores a fixture answer set for the participant.
func (r *fakeRepo) addAnswers(participantID string, category domain.Category, answers map[string]domain.AnswerValue) {
	a, err := domain.NewAnswerSet(participantID, category, answers)
	if err != nil {
		panic(err)
	}
	r.answerSets = append(r.answerSets, a)
}
