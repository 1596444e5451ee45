package domain

import (
	"strings"
	"time"
)

// AnswerSet represents one questionnaire submission.
//
// ParticipantID is carried as given; inserts do not verify that the
// participant exists. A participant may accumulate several sets over
// time, but lookups always resolve to the first one in insertion order.
type AnswerSet struct {
	// ID is the unique identifier.
	// Format: kkas-{ulid_lowercase}, 31 characters total.
	ID string `json:"id"`

	// ParticipantID references the submitting participant.
	ParticipantID string `json:"participant_id"`

	// Category is the group the answers were submitted for.
	Category Category `json:"category"`

	// Answers maps question keys to answer values.
	Answers map[string]AnswerValue `json:"answers"`

	// CreatedAt is the submission timestamp (Unix milliseconds).
	CreatedAt int64 `json:"created_at"`
}

// NewAnswerSet creates an AnswerSet with a generated ID and timestamp.
func NewAnswerSet(participantID string, category Category, answers map[string]AnswerValue) (*AnswerSet, error) {
	id, err := GenerateID(AnswerSetIDPrefix)
	if err != nil {
		return nil, err
	}
	if answers == nil {
		answers = make(map[string]AnswerValue)
	}
	return &AnswerSet{
		ID:            id,
		ParticipantID: participantID,
		Category:      category,
		Answers:       answers,
		CreatedAt:     time.Now().UnixMilli(),
	}, nil
}

// Validate validates the answer set fields.
func (a *AnswerSet) Validate() error {
	var violations []string

	if a.ID == "" {
		violations = append(violations, "id is required")
	}
	if a.ParticipantID == "" {
		violations = append(violations, "participant_id is required")
	}
	if !a.Category.IsValid() {
		violations = append(violations, "category is invalid")
	}

	if len(violations) > 0 {
		return ErrInvalidArgument.WithDetails(strings.Join(violations, "; "))
	}
	return nil
}

// Clone creates a deep copy of the answer set.
func (a *AnswerSet) Clone() *AnswerSet {
	clone := *a
	clone.Answers = CloneAnswers(a.Answers)
	return &clone
}

// CreatedAtTime returns CreatedAt as time.Time.
func (a *AnswerSet) CreatedAtTime() time.Time {
	return time.UnixMilli(a.CreatedAt)
}
