package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/recommender/internal/benchmark"
)

func newBenchmarkCmd(a *app) *cobra.Command {
	var iterations int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Measure ranking latency on the current catalog",
		Long: `Rank the catalog against every item, several times over, and report
per-query latency.`,
		Example: `  recommender benchmark
  recommender benchmark --iterations 20 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			result, err := benchmark.Run(cmd.Context(), c, a.cfg.Recommend.Limit, iterations)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			fmt.Fprint(cmd.OutOrStdout(), benchmark.FormatResult(result))
			return nil
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "i", benchmark.DefaultIterations, "Number of full passes")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}
