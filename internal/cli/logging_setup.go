package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/MWPuppire/votd/internal/config"
	"github.com/MWPuppire/votd/internal/logging"
)

// ctxKey is the type for values this package stores on the command context.
type ctxKey string

// configKey carries the loaded *config.Config on the command context.
const configKey ctxKey = "config"

// setupLogging configures logging from the loaded configuration and CLI
// flags, then attaches the logger, a trace ID, and cfg to the command
// context for downstream commands.
func setupLogging(cmd *cobra.Command, cfg *config.Config) {
	loggingCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
	}

	base := logging.New(loggingCfg)
	logger = logging.ComponentLogger(base, "cli")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = base.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().
		Str("command", cmd.Name()).
		Str("trace_id", traceID).
		Msg("command started")
}

// configFromContext returns the configuration stashed by the root
// command's PersistentPreRunE, or the defaults when absent.
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}
