// Package memory provides the in-memory record collections for kkokko.
//
// The three collections are append-only ordered sequences guarded by a
// single RWMutex. Reads return clones so callers can never mutate
// stored state.
package memory

import (
	"sync"

	"github.com/MONGU38/kkokko-project/internal/core/domain"
)

// Collections holds the three record collections.
type Collections struct {
	mu sync.RWMutex

	participants  []*domain.Participant
	participantID map[string]*domain.Participant

	answerSets  []*domain.AnswerSet
	answerSetID map[string]struct{}

	matchRecords  []*domain.MatchRecord
	matchRecordID map[string]struct{}
}

// New creates empty Collections.
func New() *Collections {
	c := &Collections{}
	c.reset()
	return c
}

func (c *Collections) reset() {
	c.participants = nil
	c.participantID = make(map[string]*domain.Participant)
	c.answerSets = nil
	c.answerSetID = make(map[string]struct{})
	c.matchRecords = nil
	c.matchRecordID = make(map[string]struct{})
}

// Reset discards all records from all three collections.
func (c *Collections) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// ============================================================================
// Participants
// ============================================================================

// AppendParticipant appends a participant record.
// Returns domain.ErrParticipantConflict on a duplicate ID.
func (c *Collections) AppendParticipant(p *domain.Participant) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.participantID[p.ID]; ok {
		return domain.ErrParticipantConflict.WithDetails(p.ID)
	}
	clone := p.Clone()
	c.participants = append(c.participants, clone)
	c.participantID[clone.ID] = clone
	return nil
}

// GetParticipant retrieves a participant by ID.
func (c *Collections) GetParticipant(id string) (*domain.Participant, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.participantID[id]
	if !ok {
		return nil, domain.ErrParticipantNotFound.WithDetails(id)
	}
	return p.Clone(), nil
}

// ListParticipants returns all participants in insertion order.
func (c *Collections) ListParticipants() []*domain.Participant {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*domain.Participant, 0, len(c.participants))
	for _, p := range c.participants {
		out = append(out, p.Clone())
	}
	return out
}

// CountParticipants returns the participant count.
func (c *Collections) CountParticipants() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.participants)
}

// ============================================================================
// Answer sets
// ============================================================================

// AppendAnswerSet appends an answer set record. The participant
// reference is stored as given, without an existence check.
// Returns domain.ErrAnswerSetConflict on a duplicate ID.
func (c *Collections) AppendAnswerSet(a *domain.AnswerSet) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.answerSetID[a.ID]; ok {
		return domain.ErrAnswerSetConflict.WithDetails(a.ID)
	}
	clone := a.Clone()
	c.answerSets = append(c.answerSets, clone)
	c.answerSetID[clone.ID] = struct{}{}
	return nil
}

// FirstAnswerSetByParticipant returns the earliest answer set owned by
// the participant. The earliest-wins rule is a deliberate tie-break:
// later submissions never shadow the first.
func (c *Collections) FirstAnswerSetByParticipant(participantID string) (*domain.AnswerSet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, a := range c.answerSets {
		if a.ParticipantID == participantID {
			return a.Clone(), nil
		}
	}
	return nil, domain.ErrAnswersNotFound.WithDetails(participantID)
}

// ListAnswerSetsByCategory returns all answer sets in the category, in
// insertion order.
func (c *Collections) ListAnswerSetsByCategory(category domain.Category) []*domain.AnswerSet {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*domain.AnswerSet
	for _, a := range c.answerSets {
		if a.Category == category {
			out = append(out, a.Clone())
		}
	}
	return out
}

// CountAnswerSets returns the answer set count.
func (c *Collections) CountAnswerSets() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.answerSets)
}

// ============================================================================
// Match records
// ============================================================================

// AppendMatchRecord appends a match record.
// Returns domain.ErrMatchRecordConflict on a duplicate ID.
func (c *Collections) AppendMatchRecord(m *domain.MatchRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.matchRecordID[m.ID]; ok {
		return domain.ErrMatchRecordConflict.WithDetails(m.ID)
	}
	clone := m.Clone()
	c.matchRecords = append(c.matchRecords, clone)
	c.matchRecordID[clone.ID] = struct{}{}
	return nil
}

// ListMatchRecords returns all match records in insertion order.
func (c *Collections) ListMatchRecords() []*domain.MatchRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*domain.MatchRecord, 0, len(c.matchRecords))
	for _, m := range c.matchRecords {
		out = append(out, m.Clone())
	}
	return out
}

// CountMatchRecords returns the match record count.
func (c *Collections) CountMatchRecords() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matchRecords)
}

// ============================================================================
// Snapshot integration
// ============================================================================

// LoadFromSnapshot replaces the entire in-memory state with the given
// collections. Indexes are rebuilt; input records are cloned.
func (c *Collections) LoadFromSnapshot(participants []*domain.Participant, answerSets []*domain.AnswerSet, matchRecords []*domain.MatchRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reset()
	for _, p := range participants {
		clone := p.Clone()
		c.participants = append(c.participants, clone)
		c.participantID[clone.ID] = clone
	}
	for _, a := range answerSets {
		clone := a.Clone()
		c.answerSets = append(c.answerSets, clone)
		c.answerSetID[clone.ID] = struct{}{}
	}
	for _, m := range matchRecords {
		clone := m.Clone()
		c.matchRecords = append(c.matchRecords, clone)
		c.matchRecordID[clone.ID] = struct{}{}
	}
}

// Snapshot returns a cloned copy of all three collections, suitable
// for serialization without holding the lock during I/O.
func (c *Collections) Snapshot() (participants []*domain.Participant, answerSets []*domain.AnswerSet, matchRecords []*domain.MatchRecord) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	participants = make([]*domain.Participant, 0, len(c.participants))
	for _, p := range c.participants {
		participants = append(participants, p.Clone())
	}
	answerSets = make([]*domain.AnswerSet, 0, len(c.answerSets))
	for _, a := range c.answerSets {
		answerSets = append(answerSets, a.Clone())
	}
	matchRecords = make([]*domain.MatchRecord, 0, len(c.matchRecords))
	for _, m := range c.matchRecords {
		matchRecords = append(matchRecords, m.Clone())
	}
	return participants, answerSets, matchRecords
}
