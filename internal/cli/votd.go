package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/MWPuppire/votd/internal/cache"
	"github.com/MWPuppire/votd/internal/config"
	"github.com/MWPuppire/votd/internal/logging"
	"github.com/MWPuppire/votd/internal/netbible"
	"github.com/MWPuppire/votd/internal/verse"
)

// runVotd resolves the verse of the day and prints it.
func runVotd(cmd *cobra.Command, opts votdOptions) error {
	ctx := cmd.Context()
	cfg := configFromContext(ctx)

	// CLI flags override environment variables and the config file.
	if cmd.Flags().Changed("timeout") {
		cfg.Fetch.TimeoutSeconds = opts.timeoutSeconds
	}

	provider, err := newVerseProvider(ctx, cfg)
	if err != nil {
		return err
	}

	v, err := provider.Get(ctx, verse.Options{
		NoCache: opts.noCache || !cfg.Cache.Enabled,
		Refresh: opts.refresh,
	})
	if err != nil {
		return err
	}

	return renderVerse(cmd.OutOrStdout(), v, renderOptions{
		OnlyVerse:       opts.onlyVerse,
		ShowTranslation: opts.showTranslation,
		Plain:           opts.plain,
	})
}

// newVerseProvider wires the cache store and verse service client
// described by cfg.
func newVerseProvider(ctx context.Context, cfg *config.Config) (*verse.Provider, error) {
	store, err := newCacheStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	base := logging.FromContext(ctx)
	client := netbible.NewClient(cfg.Fetch.URL, cfg.FetchTimeout(), logging.ComponentLogger(base, "netbible"))

	return verse.NewProvider(store, client, logging.ComponentLogger(base, "verse")), nil
}

// newCacheStore builds the cache store described by cfg.
func newCacheStore(ctx context.Context, cfg *config.Config) (*cache.Store, error) {
	cachePath, err := cfg.CachePath()
	if err != nil {
		return nil, err
	}

	store := cache.New(cachePath, cfg.CachePolicy(),
		logging.ComponentLogger(logging.FromContext(ctx), "cache"))
	return store, nil
}
