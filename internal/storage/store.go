package storage

import (
	"context"
	"sync"
	"time"

	"github.com/MONGU38/kkokko-project/internal/core/domain"
	"github.com/MONGU38/kkokko-project/internal/storage/memory"
	"github.com/MONGU38/kkokko-project/internal/storage/snapshot"
	"github.com/MONGU38/kkokko-project/internal/telemetry/logger"
)

// DefaultSaveInterval is the periodic save cadence.
const DefaultSaveInterval = 5 * time.Minute

// Config configures the Store.
type Config struct {
	// DataDir is the directory holding the collection documents.
	DataDir string

	// SaveInterval is the periodic save cadence.
	// Defaults to DefaultSaveInterval.
	SaveInterval time.Duration

	// Logger defaults to the global logger.
	Logger logger.Logger

	// OnSave, if set, observes the outcome of every save attempt.
	OnSave func(err error)
}

// Store is the durable record store. It implements the repository
// interfaces declared in internal/core/service.
type Store struct {
	collections *memory.Collections
	snapshots   *snapshot.Manager
	log         logger.Logger
	interval    time.Duration
	onSave      func(err error)

	saveCh    chan struct{}
	done      chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once
	closeOnce sync.Once
}

// New creates a Store. Call Load before serving requests and Start to
// launch the background save writer.
func New(cfg Config) (*Store, error) {
	mgr, err := snapshot.NewManager(snapshot.DefaultConfig(cfg.DataDir))
	if err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	interval := cfg.SaveInterval
	if interval <= 0 {
		interval = DefaultSaveInterval
	}

	return &Store{
		collections: memory.New(),
		snapshots:   mgr,
		log:         log.With("component", "storage"),
		interval:    interval,
		onSave:      cfg.OnSave,
		saveCh:      make(chan struct{}, 1),
		done:        make(chan struct{}),
	}, nil
}

// Load reads the persisted collections into memory. A failed load
// (corrupt or unreadable document) resets all three collections to
// empty and is logged, never returned: the process starts fresh rather
// than refusing to start.
func (s *Store) Load() error {
	c, err := s.snapshots.Load()
	if err != nil {
		s.log.Error("loading collections failed, resetting all state", "error", err)
		s.collections.Reset()
		return nil
	}

	s.collections.LoadFromSnapshot(c.Participants, c.AnswerSets, c.MatchRecords)
	s.log.Info("collections loaded",
		"participants", len(c.Participants),
		"answer_sets", len(c.AnswerSets),
		"match_records", len(c.MatchRecords))
	return nil
}

// Start launches the background save writer.
func (s *Store) Start() {
	s.startOnce.Do(func() {
		s.wg.Add(1)
		go s.run()
	})
}

// Close stops the save writer and performs a final synchronous save.
func (s *Store) Close() error {
	var saveErr error
	s.closeOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
		saveErr = s.save()
		if saveErr != nil {
			s.log.Error("final save failed", "error", saveErr)
		} else {
			s.log.Info("final save complete")
		}
	})
	return saveErr
}

// Counts returns the sizes of the three collections.
func (s *Store) Counts() (participants, answerSets, matchRecords int) {
	return s.collections.CountParticipants(),
		s.collections.CountAnswerSets(),
		s.collections.CountMatchRecords()
}

func (s *Store) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-s.saveCh:
			s.saveLogged()
		case <-ticker.C:
			s.saveLogged()
		}
	}
}

// requestSave schedules an asynchronous save. Requests arriving while
// one is already pending coalesce into a single save of the then-
// current state; the caller never waits.
func (s *Store) requestSave() {
	select {
	case s.saveCh <- struct{}{}:
	default:
	}
}

func (s *Store) save() error {
	participants, answerSets, matchRecords := s.collections.Snapshot()
	err := s.snapshots.Save(&snapshot.Collections{
		Participants: participants,
		AnswerSets:   answerSets,
		MatchRecords: matchRecords,
	})
	if s.onSave != nil {
		s.onSave(err)
	}
	return err
}

func (s *Store) saveLogged() {
	if err := s.save(); err != nil {
		s.log.Error("save failed", "error", err)
	}
}

// ============================================================================
// Repository implementation
// ============================================================================

// AppendParticipant appends a participant and schedules a save.
func (s *Store) AppendParticipant(_ context.Context, p *domain.Participant) error {
	if err := s.collections.AppendParticipant(p); err != nil {
		return err
	}
	s.requestSave()
	return nil
}

// GetParticipant retrieves a participant by ID.
func (s *Store) GetParticipant(_ context.Context, id string) (*domain.Participant, error) {
	return s.collections.GetParticipant(id)
}

// ListParticipants returns all participants in insertion order.
func (s *Store) ListParticipants(_ context.Context) ([]*domain.Participant, error) {
	return s.collections.ListParticipants(), nil
}

// CountAnswerSets returns the total number of answer sets.
func (s *Store) CountAnswerSets(_ context.Context) (int, error) {
	return s.collections.CountAnswerSets(), nil
}

// CountMatchRecords returns the total number of match records.
func (s *Store) CountMatchRecords(_ context.Context) (int, error) {
	return s.collections.CountMatchRecords(), nil
}

// AppendAnswerSet appends an answer set and schedules a save.
func (s *Store) AppendAnswerSet(_ context.Context, a *domain.AnswerSet) error {
	if err := s.collections.AppendAnswerSet(a); err != nil {
		return err
	}
	s.requestSave()
	return nil
}

// FirstAnswerSetByParticipant returns the participant's earliest
// answer set.
func (s *Store) FirstAnswerSetByParticipant(_ context.Context, participantID string) (*domain.AnswerSet, error) {
	return s.collections.FirstAnswerSetByParticipant(participantID)
}

// ListAnswerSetsByCategory returns all answer sets in the category.
func (s *Store) ListAnswerSetsByCategory(_ context.Context, category domain.Category) ([]*domain.AnswerSet, error) {
	return s.collections.ListAnswerSetsByCategory(category), nil
}

// AppendMatchRecord appends a match record and schedules a save.
func (s *Store) AppendMatchRecord(_ context.Context, m *domain.MatchRecord) error {
	if err := s.collections.AppendMatchRecord(m); err != nil {
		return err
	}
	s.requestSave()
	return nil
}
