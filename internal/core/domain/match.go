package domain

import (
	"strings"
	"time"
)

// AnonymousNickname is the display name used when a match candidate has
// no registered participant record or an empty nickname.
const AnonymousNickname = "anonymous"

// MatchResult is one ranked candidate within a matching run.
type MatchResult struct {
	// ParticipantID is the candidate's participant ID.
	ParticipantID string `json:"participant_id"`

	// Nickname is the resolved display name, AnonymousNickname when
	// the candidate has no participant record.
	Nickname string `json:"nickname"`

	// Score is the similarity score in [0, 100].
	Score int `json:"score"`

	// Category is the category the run was performed in.
	Category Category `json:"category"`
}

// MatchRecord is the persisted outcome of one matching run. Records are
// append-only and store the full ranked candidate list, even when the
// API response truncates it.
type MatchRecord struct {
	// ID is the unique identifier.
	// Format: kkmr-{ulid_lowercase}, 31 characters total.
	ID string `json:"id"`

	// ParticipantID is the requester.
	ParticipantID string `json:"participant_id"`

	// Category is the category the run was performed in.
	Category Category `json:"category"`

	// Matches is the ranked candidate list, best first. Never empty:
	// runs with no candidates are not recorded.
	Matches []MatchResult `json:"matches"`

	// CreatedAt is the run timestamp (Unix milliseconds).
	CreatedAt int64 `json:"created_at"`
}

// NewMatchRecord creates a MatchRecord with a generated ID and timestamp.
func NewMatchRecord(participantID string, category Category, matches []MatchResult) (*MatchRecord, error) {
	id, err := GenerateID(MatchRecordIDPrefix)
	if err != nil {
		return nil, err
	}
	return &MatchRecord{
		ID:            id,
		ParticipantID: participantID,
		Category:      category,
		Matches:       matches,
		CreatedAt:     time.Now().UnixMilli(),
	}, nil
}

// Validate validates the match record fields.
func (m *MatchRecord) Validate() error {
	var violations []string

	if m.ID == "" {
		violations = append(violations, "id is required")
	}
	if m.ParticipantID == "" {
		violations = append(violations, "participant_id is required")
	}
	if !m.Category.IsValid() {
		violations = append(violations, "category is invalid")
	}
	if len(m.Matches) == 0 {
		violations = append(violations, "matches must not be empty")
	}

	if len(violations) > 0 {
		return ErrInvalidArgument.WithDetails(strings.Join(violations, "; "))
	}
	return nil
}

// Clone creates a deep copy of the match record.
func (m *MatchRecord) Clone() *MatchRecord {
	clone := *m
	clone.Matches = make([]MatchResult, len(m.Matches))
	copy(clone.Matches, m.Matches)
	return &clone
}

// CreatedAtTime returns CreatedAt as time.Time.
func (m *MatchRecord) CreatedAtTime() time.Time {
	return time.UnixMilli(m.CreatedAt)
}

// RoomKey derives the chat room key for a participant pair. The pair is
// order-insensitive: both orderings yield the same key.
func RoomKey(id1, id2 string) string {
	if id1 > id2 {
		id1, id2 = id2, id1
	}
	return id1 + "-" + id2
}
