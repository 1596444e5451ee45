// Package snapshot persists the record collections as JSON documents.
//
// Each collection lives in its own document under the data directory:
// participants.json, answers.json, matches.json. Documents are plain
// JSON arrays and are always written wholesale, replacing the previous
// content via a temp-file rename.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MONGU38/kkokko-project/internal/core/domain"
)

// Document file names under the data directory.
const (
	ParticipantsFile = "participants.json"
	AnswersFile      = "answers.json"
	MatchesFile      = "matches.json"
)

// ErrCorruptDocument indicates a document exists but failed to parse.
var ErrCorruptDocument = errors.New("snapshot: corrupt document")

// Config configures the snapshot manager.
type Config struct {
	// Dir is the data directory holding the three documents.
	Dir string
}

// DefaultConfig returns a Config for the given directory.
func DefaultConfig(dir string) Config {
	return Config{Dir: dir}
}

// Collections is the full persisted state: all three record
// collections in insertion order.
type Collections struct {
	Participants []*domain.Participant
	AnswerSets   []*domain.AnswerSet
	MatchRecords []*domain.MatchRecord
}

// Manager reads and writes the three collection documents.
type Manager struct {
	cfg Config
}

// NewManager creates a Manager and ensures the data directory exists.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("snapshot: dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0750); err != nil {
		return nil, fmt.Errorf("snapshot: create dir: %w", err)
	}
	return &Manager{cfg: cfg}, nil
}

// Load reads all three documents. A missing document yields an empty
// collection; a present but unparsable one returns ErrCorruptDocument
// (wrapped with the file name). The caller decides how far the damage
// spreads.
func (m *Manager) Load() (*Collections, error) {
	c := &Collections{}

	if err := m.loadDoc(ParticipantsFile, &c.Participants); err != nil {
		return nil, err
	}
	if err := m.loadDoc(AnswersFile, &c.AnswerSets); err != nil {
		return nil, err
	}
	if err := m.loadDoc(MatchesFile, &c.MatchRecords); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes all three documents, each replaced wholesale. A failure
// writing one document does not stop the others; all failures are
// joined into the returned error.
func (m *Manager) Save(c *Collections) error {
	errParticipants := m.saveDoc(ParticipantsFile, emptyAsArray(c.Participants))
	errAnswers := m.saveDoc(AnswersFile, emptyAsArray(c.AnswerSets))
	errMatches := m.saveDoc(MatchesFile, emptyAsArray(c.MatchRecords))
	return errors.Join(errParticipants, errAnswers, errMatches)
}

func (m *Manager) loadDoc(name string, out any) error {
	path := filepath.Join(m.cfg.Dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("snapshot: read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptDocument, name, err)
	}
	return nil
}

func (m *Manager) saveDoc(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("snapshot: marshal %s: %w", name, err)
	}

	path := filepath.Join(m.cfg.Dir, name)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0640); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", name, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("snapshot: rename %s: %w", name, err)
	}
	return nil
}

// emptyAsArray keeps nil slices serializing as [] rather than null.
func emptyAsArray[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
