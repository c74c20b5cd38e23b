package verse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/MWPuppire/votd/internal/cache"
)

// ErrFetchFailed reports that the remote service could not supply a verse.
// A stale cached verse is never substituted for a failed fetch.
var ErrFetchFailed = errors.New("verse of the day fetch failed")

// Options controls how Get uses the cache.
type Options struct {
	// NoCache bypasses the cache entirely: nothing is read and the
	// fetched verse is not stored.
	NoCache bool
	// Refresh skips the cache read but still stores the fetched verse.
	Refresh bool
}

// Provider resolves the verse of the day from the cache or the source.
type Provider struct {
	store  *cache.Store
	source Source
	logger zerolog.Logger
}

// NewProvider creates a Provider over the given cache store and source.
func NewProvider(store *cache.Store, source Source, logger zerolog.Logger) *Provider {
	return &Provider{
		store:  store,
		source: source,
		logger: logger,
	}
}

// Get returns the verse of the day. A fresh cached verse is served without
// touching the network; otherwise the verse is fetched from the source and,
// unless caching is bypassed, stored for subsequent invocations. Cache
// write failures are logged and swallowed, never surfaced to the caller.
func (p *Provider) Get(ctx context.Context, opts Options) (VerseOfDay, error) {
	reason := "bypass"
	if !opts.NoCache && !opts.Refresh {
		lookup := p.store.Read()
		if lookup.State == cache.Fresh {
			rec := lookup.Record
			p.logger.Debug().
				Str("reference", rec.Reference).
				Dur("age", rec.Age()).
				Msg("serving fresh cached verse")
			return VerseOfDay{
				Text:      rec.VerseText,
				Reference: rec.Reference,
				FetchedAt: rec.FetchedAt,
				FromCache: true,
			}, nil
		}
		reason = lookup.State.String()
	}

	p.logger.Debug().Str("reason", reason).Msg("fetching verse of the day")

	v, err := p.source.VerseOfDay(ctx)
	if err != nil {
		return VerseOfDay{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	rec := cache.NewRecord(v.Text, v.Reference, time.Now())
	if !opts.NoCache {
		if err := p.store.Write(rec); err != nil {
			p.logger.Warn().Err(err).Msg("could not cache verse of the day")
		}
	}

	v.FetchedAt = rec.FetchedAt
	v.FromCache = false
	return v, nil
}
