package cli

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/MWPuppire/votd/internal/cache"
)

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Verse cache management commands"}
	cmd.AddCommand(newCacheStatusCmd(), newCacheClearCmd())
	return cmd
}

// newCacheStatusCmd creates the "cache status" subcommand for inspecting
// the cache slot.
func newCacheStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the cached verse and its freshness",
		Example: `  # Inspect the cache slot
  votd cache status`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd.Context())
			store, err := newCacheStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			lookup := store.Read()

			cmd.Printf("Path:    %s\n", store.Path())
			cmd.Printf("Max age: %s\n", cache.FormatDuration(store.Policy().MaxAge))
			cmd.Printf("State:   %s\n", lookup.State)

			if lookup.Record != nil {
				rec := lookup.Record
				cmd.Printf("Verse:   %s\n", rec.Reference)
				cmd.Printf("Fetched: %s (%s)\n",
					rec.FetchedAt.Local().Format(time.RFC1123), humanize.Time(rec.FetchedAt))
			}

			return nil
		},
	}
}

// newCacheClearCmd creates the "cache clear" subcommand for dropping the
// cached verse.
func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop the cached verse",
		Example: `  # Force the next invocation to fetch
  votd cache clear`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd.Context())
			store, err := newCacheStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if err := store.Invalidate(); err != nil {
				return err
			}

			cmd.Printf("Cleared %s\n", store.Path())
			return nil
		},
	}
}
