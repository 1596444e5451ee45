package domain

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID prefixes. Each record kind carries its own prefix so an identifier
// is self-describing. Format: {prefix}{ulid_lowercase}, 31 characters.
const (
	ParticipantIDPrefix = "kkpt-"
	AnswerSetIDPrefix   = "kkas-"
	MatchRecordIDPrefix = "kkmr-"

	// recordIDLength is prefix (5) + ULID (26).
	recordIDLength = 31
)

// GenerateID generates a new record ID with the given prefix using ULID.
// IDs are creation-ordered: a record generated later sorts after one
// generated earlier.
func GenerateID(prefix string) (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", ErrInternalServer.WithCause(err)
	}
	return prefix + strings.ToLower(id.String()), nil
}

// IsValidID checks if a string is a valid record ID with the given prefix.
// It normalizes the ID to lowercase before validation.
func IsValidID(id, prefix string) bool {
	id = strings.ToLower(id)

	if !strings.HasPrefix(id, prefix) {
		return false
	}

	if len(id) != recordIDLength {
		return false
	}

	ulidPart := strings.ToUpper(id[len(prefix):])
	_, err := ulid.ParseStrict(ulidPart)
	return err == nil
}
