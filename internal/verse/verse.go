// Package verse resolves the verse of the day, preferring the local cache
// and falling back to a remote source.
package verse

import (
	"context"
	"time"
)

// VerseOfDay is a resolved daily verse.
type VerseOfDay struct {
	// Text is the full verse text.
	Text string
	// Reference is the human-readable verse reference, e.g. "John 3:16".
	Reference string
	// FetchedAt is when the verse was fetched from the remote service,
	// whether on this invocation or a previous cached one.
	FetchedAt time.Time
	// FromCache reports whether the verse was served from the local cache.
	FromCache bool
}

// Source fetches the verse of the day from a remote service.
type Source interface {
	VerseOfDay(ctx context.Context) (VerseOfDay, error)
}
