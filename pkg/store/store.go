// Package store persists the booking collection the way the original
// deployment did: one serialized JSON document per storage key, replaced
// wholesale on every write. There is no isolation between concurrent
// processes sharing the data directory; every mutation is a synchronous
// read-modify-write of the full collection, and callers are expected to
// re-validate availability immediately before writing.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "photobox/pkg/errors"
	"photobox/pkg/logger"
	"photobox/pkg/model"
)

const (
	BookingsKey = "photobox_bookings"
	SettingsKey = "photobox_settings"
)

// envelope wraps the persisted collection. Sequence only ever grows, so
// booking ordinals are never reused after a deletion. Revision changes on
// every successful write and is what the watcher compares.
type envelope struct {
	Revision string          `json:"revision"`
	Sequence int             `json:"sequence"`
	Bookings []model.Booking `json:"bookings"`
}

type Store struct {
	dir string
	log *logger.Logger

	// mu serializes writers within this process only. Other processes
	// sharing the data directory are not excluded; that race is a
	// documented property of the storage model, not something the store
	// can close.
	mu sync.Mutex
}

func New(dir string, log *logger.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &Store{
		dir: dir,
		log: log.WithComponent("store"),
	}, nil
}

// Dir returns the data directory the store persists into.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// loadLenient reads the collection for display paths. A missing file is an
// empty collection; a corrupt one is logged and treated as empty so the UI
// keeps working.
func (s *Store) loadLenient() envelope {
	env, err := s.loadStrict()
	if err != nil {
		s.log.Error("Backing storage unreadable, serving empty collection", "error", err)
		return envelope{}
	}
	return env
}

// loadStrict reads the collection for write paths, where pretending the
// store is empty would silently discard every existing booking.
func (s *Store) loadStrict() (envelope, error) {
	data, err := os.ReadFile(s.path(BookingsKey))
	if os.IsNotExist(err) {
		return envelope{}, nil
	}
	if err != nil {
		return envelope{}, fmt.Errorf("failed to read %s: %w", BookingsKey, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return envelope{}, fmt.Errorf("failed to decode %s: %w", BookingsKey, err)
	}
	return env, nil
}

// persist replaces the whole collection atomically (temp file + rename) and
// stamps a fresh revision.
func (s *Store) persist(env envelope) error {
	env.Revision = uuid.New().String()

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", BookingsKey, err)
	}

	tmp, err := os.CreateTemp(s.dir, BookingsKey+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", BookingsKey, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(BookingsKey)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", BookingsKey, err)
	}
	return nil
}

// ListAll returns every persisted booking. Never fails: storage corruption
// degrades to an empty result (fail-open for reads).
func (s *Store) ListAll() []model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	env := s.loadLenient()
	return env.Bookings
}

func (s *Store) Get(id string) (*model.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	env := s.loadLenient()
	for i := range env.Bookings {
		if env.Bookings[i].ID == id {
			b := env.Bookings[i]
			return &b, true
		}
	}
	return nil, false
}

// Insert assigns a fresh id, stamps timestamps and appends the booking.
// The id keeps the BK-prefixed ordinal format but comes from the persisted
// sequence, never from the collection length.
func (s *Store) Insert(b *model.Booking) (string, error) {
	if b.Date == "" || b.Time == "" {
		return "", apperrors.Validation("booking date and time are required", map[string]any{
			"date": b.Date,
			"time": b.Time,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.loadStrict()
	if err != nil {
		return "", apperrors.StorageFault("cannot save booking, backing storage unreadable", err)
	}

	env.Sequence++
	b.ID = fmt.Sprintf("BK%03d", env.Sequence)
	now := time.Now().UTC().Truncate(time.Second)
	b.CreatedAt = now
	b.UpdatedAt = now

	env.Bookings = append(env.Bookings, *b)
	if err := s.persist(env); err != nil {
		return "", apperrors.StorageFault("failed to save booking", err)
	}

	s.log.Info("Booking persisted", "id", b.ID, "date", b.Date, "time", b.Time)
	return b.ID, nil
}

// Update merges the patch into the stored record and refreshes UpdatedAt.
// Returns false when the id is unknown.
func (s *Store) Update(id string, patch model.BookingPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.loadStrict()
	if err != nil {
		return false, apperrors.StorageFault("cannot update booking, backing storage unreadable", err)
	}

	for i := range env.Bookings {
		if env.Bookings[i].ID != id {
			continue
		}
		patch.ApplyTo(&env.Bookings[i])
		env.Bookings[i].UpdatedAt = time.Now().UTC().Truncate(time.Second)
		if err := s.persist(env); err != nil {
			return false, apperrors.StorageFault("failed to update booking", err)
		}
		return true, nil
	}
	return false, nil
}

// SetStatus replaces the stored status without touching other fields.
func (s *Store) SetStatus(id, status string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.loadStrict()
	if err != nil {
		return false, apperrors.StorageFault("cannot update booking, backing storage unreadable", err)
	}

	for i := range env.Bookings {
		if env.Bookings[i].ID != id {
			continue
		}
		env.Bookings[i].Status = status
		env.Bookings[i].UpdatedAt = time.Now().UTC().Truncate(time.Second)
		if err := s.persist(env); err != nil {
			return false, apperrors.StorageFault("failed to update booking", err)
		}
		return true, nil
	}
	return false, nil
}

// Remove deletes the matching record if present; no-op otherwise.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.loadStrict()
	if err != nil {
		return apperrors.StorageFault("cannot delete booking, backing storage unreadable", err)
	}

	kept := env.Bookings[:0]
	removed := false
	for _, b := range env.Bookings {
		if b.ID == id {
			removed = true
			continue
		}
		kept = append(kept, b)
	}
	if !removed {
		return nil
	}

	env.Bookings = kept
	if err := s.persist(env); err != nil {
		return apperrors.StorageFault("failed to delete booking", err)
	}
	s.log.Info("Booking removed", "id", id)
	return nil
}

// Revision returns the current collection revision, or "" when the
// collection does not exist or is unreadable.
func (s *Store) Revision() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.loadStrict()
	if err != nil {
		return ""
	}
	return env.Revision
}
