package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// State classifies the cache slot at read time.
type State int

const (
	// Absent means no usable record exists: the slot is missing,
	// unreadable, or corrupt.
	Absent State = iota
	// Fresh means the record's age is within the policy's freshness window.
	Fresh
	// Stale means a record exists but its freshness window has lapsed.
	Stale
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "unknown"
	}
}

// Lookup is the result of reading the cache slot. Record is nil exactly
// when State is Absent.
type Lookup struct {
	State  State
	Record *Record
}

// ErrInvalidRecord reports an attempt to write a record without a fetch
// timestamp.
var ErrInvalidRecord = errors.New("cache record has no fetch timestamp")

const (
	// FileName is the name of the cache slot file inside the cache
	// directory.
	FileName = "verse.json"

	dirPerm  = 0o750
	filePerm = 0o600
)

// Store is the single-slot verse cache backed by one JSON file.
type Store struct {
	path   string
	policy Policy
	logger zerolog.Logger
}

// New creates a store over the slot file at path, classifying reads
// against policy.
func New(path string, policy Policy, logger zerolog.Logger) *Store {
	return &Store{
		path:   path,
		policy: policy,
		logger: logger,
	}
}

// DefaultDir returns the default cache directory for the current user.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user cache directory: %w", err)
	}
	return filepath.Join(base, "votd"), nil
}

// Path returns the slot file path.
func (s *Store) Path() string {
	return s.path
}

// Policy returns the staleness policy reads are classified against.
func (s *Store) Policy() Policy {
	return s.policy
}

// Read loads and classifies the cache slot. It never returns an error:
// anything short of a decodable, integral record is reported as Absent.
// Stale and corrupt slots are left on disk untouched.
func (s *Store) Read() Lookup {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Debug().Err(err).Str("path", s.path).Msg("cache slot unreadable")
		}
		return Lookup{State: Absent}
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Debug().Err(err).Str("path", s.path).Msg("cache slot corrupt")
		return Lookup{State: Absent}
	}

	if rec.VerseText == "" || rec.Reference == "" || rec.FetchedAt.IsZero() {
		s.logger.Debug().Str("path", s.path).Msg("cache slot missing required fields")
		return Lookup{State: Absent}
	}

	if rec.Checksum != "" && rec.Checksum != checksumFor(rec.VerseText, rec.Reference) {
		s.logger.Debug().Str("path", s.path).Msg("cache slot checksum mismatch")
		return Lookup{State: Absent}
	}

	age := time.Since(rec.FetchedAt)
	if !s.policy.IsFresh(age) {
		s.logger.Debug().Dur("age", age).Msg("cache slot stale")
		return Lookup{State: Stale, Record: &rec}
	}

	return Lookup{State: Fresh, Record: &rec}
}

// Write replaces the cache slot with rec. The record is written to a
// temporary file and renamed into place so a concurrent reader sees either
// the old record or the new one, never a torn write. The record's checksum
// is stamped before persisting.
func (s *Store) Write(rec Record) error {
	if rec.FetchedAt.IsZero() {
		return ErrInvalidRecord
	}
	rec.FetchedAt = rec.FetchedAt.UTC()
	rec.Checksum = checksumFor(rec.VerseText, rec.Reference)

	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache record: %w", err)
	}

	// Write to temp file then rename for atomic replacement.
	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, filePerm); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to finalize cache file: %w", err)
	}

	return nil
}

// Invalidate removes the cache slot. Removing an already absent slot is
// not an error.
func (s *Store) Invalidate() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache file: %w", err)
	}
	return nil
}
