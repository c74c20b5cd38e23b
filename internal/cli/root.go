package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MWPuppire/votd/internal/config"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// votdOptions holds the flag values for the root command.
type votdOptions struct {
	noCache         bool
	refresh         bool
	onlyVerse       bool
	showTranslation bool
	plain           bool
	timeoutSeconds  int
}

// NewRootCmd creates the root Cobra command for the votd CLI. Running it
// without a subcommand prints the verse of the day, served from the local
// cache when a recent enough verse is available.
func NewRootCmd(ver string) *cobra.Command {
	var opts votdOptions

	cmd := &cobra.Command{
		Use:   "votd",
		Short: "Print the verse of the day",
		Long: `votd prints the NET Bible verse of the day.

Fetched verses are cached locally, so repeated invocations within the
freshness window (6 hours by default) stay off the network. When the
remote service cannot be reached, votd reports the failure rather than
serving an outdated verse.`,
		Version:       ver,
		Example:       rootCmdExample,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			setupLogging(cmd, cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVotd(cmd, opts)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.Flags().BoolVarP(&opts.noCache, "no-cache", "n", false,
		"bypass the cache: always fetch and do not store the result")
	cmd.Flags().BoolVarP(&opts.refresh, "refresh", "r", false,
		"refetch the verse and update the cache even if it is still fresh")
	cmd.Flags().BoolVarP(&opts.onlyVerse, "only-verse", "o", false,
		"print only the verse text, without the reference header")
	cmd.Flags().BoolVar(&opts.showTranslation, "show-translation", false,
		"include the translation in the reference header")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "disable styled output")
	cmd.Flags().IntVarP(&opts.timeoutSeconds, "timeout", "t", config.DefaultTimeoutSeconds,
		"request timeout in seconds")

	cmd.AddCommand(newCacheCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Print today's verse
  votd

  # Refetch even if the cached verse is still fresh
  votd --refresh

  # Skip the cache entirely
  votd --no-cache

  # Print only the verse text, for scripting
  votd --only-verse

  # Inspect the cache slot
  votd cache status

  # Drop the cached verse
  votd cache clear`
