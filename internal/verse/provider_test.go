package verse

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MWPuppire/votd/internal/cache"
)

type mockSource struct {
	verse VerseOfDay
	err   error
	calls int
}

func (m *mockSource) VerseOfDay(_ context.Context) (VerseOfDay, error) {
	m.calls++
	if m.err != nil {
		return VerseOfDay{}, m.err
	}
	return m.verse, nil
}

func newTestStore(t *testing.T) *cache.Store {
	t.Helper()
	return cache.New(filepath.Join(t.TempDir(), cache.FileName), cache.DefaultPolicy(), zerolog.Nop())
}

func seedRecord(t *testing.T, store *cache.Store, text, ref string, age time.Duration) {
	t.Helper()
	require.NoError(t, store.Write(cache.NewRecord(text, ref, time.Now().Add(-age))))
}

func TestGetServesFreshCacheWithoutFetching(t *testing.T) {
	store := newTestStore(t)
	seedRecord(t, store, "cached text", "John 3:16", time.Hour)

	source := &mockSource{verse: VerseOfDay{Text: "remote text", Reference: "John 3:17"}}
	provider := NewProvider(store, source, zerolog.Nop())

	got, err := provider.Get(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "cached text", got.Text)
	assert.Equal(t, "John 3:16", got.Reference)
	assert.True(t, got.FromCache)
	assert.Zero(t, source.calls)
	assert.WithinDuration(t, time.Now().Add(-time.Hour), got.FetchedAt, 5*time.Second)
}

func TestGetFetchesWhenStale(t *testing.T) {
	store := newTestStore(t)
	seedRecord(t, store, "stale text", "Gen 1:1", 7*time.Hour)

	source := &mockSource{verse: VerseOfDay{Text: "remote text", Reference: "Gen 1:2"}}
	provider := NewProvider(store, source, zerolog.Nop())

	got, err := provider.Get(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "remote text", got.Text)
	assert.False(t, got.FromCache)
	assert.Equal(t, 1, source.calls)

	// The slot now holds the fetched verse.
	lookup := store.Read()
	require.Equal(t, cache.Fresh, lookup.State)
	assert.Equal(t, "remote text", lookup.Record.VerseText)
}

func TestGetFetchesWhenAbsent(t *testing.T) {
	store := newTestStore(t)

	source := &mockSource{verse: VerseOfDay{Text: "remote text", Reference: "Ps 23:1"}}
	provider := NewProvider(store, source, zerolog.Nop())

	got, err := provider.Get(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "remote text", got.Text)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, cache.Fresh, store.Read().State)
}

func TestGetFetchFailureNeverFallsBackToStale(t *testing.T) {
	store := newTestStore(t)
	seedRecord(t, store, "stale text", "Gen 1:1", 7*time.Hour)

	source := &mockSource{err: errors.New("connection refused")}
	provider := NewProvider(store, source, zerolog.Nop())

	_, err := provider.Get(context.Background(), Options{})
	require.ErrorIs(t, err, ErrFetchFailed)

	// The stale record stays on disk untouched.
	lookup := store.Read()
	require.Equal(t, cache.Stale, lookup.State)
	assert.Equal(t, "stale text", lookup.Record.VerseText)
}

func TestGetFetchFailureWhenAbsent(t *testing.T) {
	store := newTestStore(t)

	source := &mockSource{err: errors.New("timeout")}
	provider := NewProvider(store, source, zerolog.Nop())

	_, err := provider.Get(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.Equal(t, cache.Absent, store.Read().State)
}

func TestGetWrapsSourceError(t *testing.T) {
	sourceErr := errors.New("boom")
	provider := NewProvider(newTestStore(t), &mockSource{err: sourceErr}, zerolog.Nop())

	_, err := provider.Get(context.Background(), Options{})
	require.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, sourceErr)
}

func TestGetNoCacheBypassesReadAndWrite(t *testing.T) {
	store := newTestStore(t)
	seedRecord(t, store, "cached text", "John 3:16", time.Hour)

	source := &mockSource{verse: VerseOfDay{Text: "remote text", Reference: "John 3:17"}}
	provider := NewProvider(store, source, zerolog.Nop())

	got, err := provider.Get(context.Background(), Options{NoCache: true})
	require.NoError(t, err)
	assert.Equal(t, "remote text", got.Text)
	assert.False(t, got.FromCache)
	assert.Equal(t, 1, source.calls)

	// The previously cached verse is untouched.
	lookup := store.Read()
	require.Equal(t, cache.Fresh, lookup.State)
	assert.Equal(t, "cached text", lookup.Record.VerseText)
}

func TestGetNoCacheFailureIgnoresFreshCache(t *testing.T) {
	store := newTestStore(t)
	seedRecord(t, store, "cached text", "John 3:16", time.Hour)

	source := &mockSource{err: errors.New("unreachable")}
	provider := NewProvider(store, source, zerolog.Nop())

	_, err := provider.Get(context.Background(), Options{NoCache: true})
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestGetRefreshBypassesReadButWrites(t *testing.T) {
	store := newTestStore(t)
	seedRecord(t, store, "cached text", "John 3:16", time.Hour)

	source := &mockSource{verse: VerseOfDay{Text: "remote text", Reference: "John 3:17"}}
	provider := NewProvider(store, source, zerolog.Nop())

	got, err := provider.Get(context.Background(), Options{Refresh: true})
	require.NoError(t, err)
	assert.Equal(t, "remote text", got.Text)
	assert.Equal(t, 1, source.calls)

	// The slot now holds the refreshed verse.
	lookup := store.Read()
	require.Equal(t, cache.Fresh, lookup.State)
	assert.Equal(t, "remote text", lookup.Record.VerseText)
}

func TestGetSurvivesCacheWriteFailure(t *testing.T) {
	// Block directory creation by placing a regular file where the cache
	// directory should be.
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	store := cache.New(filepath.Join(blocker, cache.FileName), cache.DefaultPolicy(), zerolog.Nop())
	source := &mockSource{verse: VerseOfDay{Text: "remote text", Reference: "Ps 23:1"}}
	provider := NewProvider(store, source, zerolog.Nop())

	got, err := provider.Get(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "remote text", got.Text)
}
