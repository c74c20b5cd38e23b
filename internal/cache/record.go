package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Record is the persisted verse-of-the-day slot.
type Record struct {
	// VerseText is the full verse text exactly as fetched.
	VerseText string `json:"verse_text"`
	// Reference is the human-readable verse reference, e.g. "John 3:16".
	Reference string `json:"reference"`
	// FetchedAt is the UTC time the verse was fetched. Staleness is
	// derived from it on every read.
	FetchedAt time.Time `json:"fetched_at"`
	// Checksum is an xxhash digest of the verse fields, used to detect
	// records damaged on disk. Empty checksums are accepted.
	Checksum string `json:"checksum,omitempty"`
}

// NewRecord builds a Record with its checksum populated.
func NewRecord(verseText, reference string, fetchedAt time.Time) Record {
	return Record{
		VerseText: verseText,
		Reference: reference,
		FetchedAt: fetchedAt.UTC(),
		Checksum:  checksumFor(verseText, reference),
	}
}

// Age returns how long ago the record was fetched.
func (r Record) Age() time.Duration {
	return time.Since(r.FetchedAt)
}

// MarshalJSON writes FetchedAt as an RFC3339 string.
func (r Record) MarshalJSON() ([]byte, error) {
	type Alias Record
	return json.Marshal(&struct {
		FetchedAt string `json:"fetched_at"`
		*Alias
	}{
		FetchedAt: r.FetchedAt.UTC().Format(time.RFC3339),
		Alias:     (*Alias)(&r),
	})
}

// UnmarshalJSON parses FetchedAt from an RFC3339 string.
func (r *Record) UnmarshalJSON(data []byte) error {
	type Alias Record
	aux := &struct {
		FetchedAt string `json:"fetched_at"`
		*Alias
	}{
		Alias: (*Alias)(r),
	}

	if err := json.Unmarshal(data, aux); err != nil {
		return fmt.Errorf("failed to unmarshal cache record: %w", err)
	}

	fetchedAt, err := time.Parse(time.RFC3339, aux.FetchedAt)
	if err != nil {
		return fmt.Errorf("invalid fetched_at timestamp: %w", err)
	}
	r.FetchedAt = fetchedAt

	return nil
}

// checksumFor digests the verse fields that Record integrity covers.
func checksumFor(verseText, reference string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(verseText+"\x00"+reference))
}
