package domain

import (
	"strings"
	"time"
)

// Participant constraints.
const (
	MaxNicknameLength = 64
)

// Category identifies which participant group a record belongs to.
// The set is closed; matching only considers records within one category.
type Category string

const (
	CategoryMissing   Category = "missing"
	CategorySeparated Category = "separated"
	CategoryFriends   Category = "friends"
)

// Categories lists every valid category in a stable order.
func Categories() []Category {
	return []Category{CategoryMissing, CategorySeparated, CategoryFriends}
}

// IsValid reports whether the category is one of the known values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryMissing, CategorySeparated, CategoryFriends:
		return true
	}
	return false
}

// ParseCategory normalizes and validates a category string.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidArgument.WithDetails("unknown category: " + s)
	}
	return c, nil
}

// Participant represents a registered user.
// Participants are append-only: once registered, a record is never
// mutated or removed.
type Participant struct {
	// ID is the unique identifier.
	// Format: kkpt-{ulid_lowercase}, 31 characters total.
	ID string `json:"id"`

	// Nickname is the display name. May be empty; consumers fall back
	// to AnonymousNickname when resolving display names.
	Nickname string `json:"nickname"`

	// Category is the participant group.
	Category Category `json:"category"`

	// CreatedAt is the registration timestamp (Unix milliseconds).
	CreatedAt int64 `json:"created_at"`
}

// NewParticipant creates a Participant with a generated ID and timestamp.
func NewParticipant(nickname string, category Category) (*Participant, error) {
	id, err := GenerateID(ParticipantIDPrefix)
	if err != nil {
		return nil, err
	}
	return &Participant{
		ID:        id,
		Nickname:  nickname,
		Category:  category,
		CreatedAt: time.Now().UnixMilli(),
	}, nil
}

// Validate validates the participant fields against constraints.
func (p *Participant) Validate() error {
	var violations []string

	if p.ID == "" {
		violations = append(violations, "id is required")
	}
	if len(p.Nickname) > MaxNicknameLength {
		violations = append(violations, "nickname exceeds 64 characters")
	}
	if !p.Category.IsValid() {
		violations = append(violations, "category is invalid")
	}

	if len(violations) > 0 {
		return ErrInvalidArgument.WithDetails(strings.Join(violations, "; "))
	}
	return nil
}

// Clone creates a copy of the participant.
func (p *Participant) Clone() *Participant {
	clone := *p
	return &clone
}

// CreatedAtTime returns CreatedAt as time.Time.
func (p *Participant) CreatedAtTime() time.Time {
	return time.UnixMilli(p.CreatedAt)
}
