/*
Package cli implements the recommender command tree.

Every command shares one app value: the root command's persistent pre-run
loads configuration, applies flag overrides, configures logging and tags the
command context with a run ID. Catalogs are loaded lazily by the commands
that need them.
*/
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/recommender/internal/catalog"
	"github.com/khanglvm/recommender/internal/config"
	"github.com/khanglvm/recommender/internal/logging"
	"github.com/khanglvm/recommender/internal/version"
)

// app holds state shared by all commands of one invocation.
type app struct {
	configPath string
	logLevel   string
	source     string

	cfg *config.Config
}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "recommender",
		Short: "Recommend similar items by tag similarity",
		Long: `recommender ranks catalog items by the cosine similarity of their tags
(e.g. movie genres) to a chosen item.

The catalog comes from a built-in MovieLens sample, MovieLens 100K files
or a SQLite database, selected in ~/.recommender.yaml or with --source.`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: $RECOMMENDER_CONFIG or ~/.recommender.yaml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error, disabled")
	cmd.PersistentFlags().StringVar(&a.source, "source", "", "Catalog source: sample, movielens or sqlite")

	cmd.AddCommand(newRecommendCmd(a))
	cmd.AddCommand(newExportCmd(a))
	cmd.AddCommand(newVocabularyCmd(a))
	cmd.AddCommand(newRatingCmd(a))
	cmd.AddCommand(newSearchCmd(a))
	cmd.AddCommand(newBenchmarkCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// setup loads configuration and prepares logging for the running command.
func (a *app) setup(cmd *cobra.Command) error {
	if err := a.loadConfig(); err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})

	ctx := logging.ContextWithRunID(cmd.Context(), logging.NewRunID())
	cmd.SetContext(ctx)

	logging.Ctx(ctx).Debug().
		Str("command", cmd.CommandPath()).
		Str("source", a.cfg.Catalog.Source).
		Msg("starting")
	return nil
}

// loadConfig reads the layered configuration and applies flag overrides.
func (a *app) loadConfig() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.source != "" {
		cfg.Catalog.Source = a.source
	}
	if a.logLevel != "" || a.source != "" {
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid flags: %w", err)
		}
	}

	a.cfg = cfg
	return nil
}

// loadCatalog loads the catalog from the configured source.
func (a *app) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	src, err := catalog.NewSource(a.cfg.Catalog)
	if err != nil {
		return nil, err
	}

	c, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	logging.Ctx(ctx).Info().
		Int("items", c.Len()).
		Int("ratings", len(c.Ratings)).
		Int("tags", c.Vocabulary.Len()).
		Msg("catalog loaded")
	return c, nil
}
