package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/recommender/internal/logging"
	"github.com/khanglvm/recommender/internal/recommend"
)

func newExportCmd(a *app) *cobra.Command {
	var format string
	var output string
	var limit int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recommendations for every catalog item",
		Long: `Compute the recommendations of every item in the catalog and write them
as JSONL (one recommendation per line, keyed by reference_id) or as a JSON
array of per-item reports.

Without --output the export goes to stdout. Files are written under an
exclusive lock so concurrent exports cannot interleave.`,
		Example: `  recommender export --output recs.jsonl
  recommender export --format json --limit 3

Grep usage examples:
  # Recommendations for item 1
  jq -c 'select(.reference_id == 1)' recs.jsonl

  # Pairs above 90% similarity
  jq -c 'select(.similarity > 0.9) | [.reference_id, .id]' recs.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.Recommend.Limit
			}
			return runExport(cmd.Context(), a, cmd, format, output, limit)
		},
	}

	cmd.Flags().StringVar(&format, "format", formatJSONL, "Output format: json or jsonl")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default: stdout)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Recommendations per item (default from config)")

	return cmd
}

func runExport(ctx context.Context, a *app, cmd *cobra.Command, format, output string, limit int) error {
	if format != formatJSON && format != formatJSONL {
		return fmt.Errorf("unknown format %q (want %s or %s)", format, formatJSON, formatJSONL)
	}

	c, err := a.loadCatalog(ctx)
	if err != nil {
		return err
	}

	ranker := &recommend.Ranker{Limit: limit, MinSimilarity: a.cfg.Recommend.MinSimilarity}

	reports := make([]report, 0, c.Len())
	for _, item := range c.Items {
		result, err := ranker.RankContext(ctx, item, c.Items, c.Vocabulary)
		if err != nil {
			return err
		}
		reports = append(reports, buildReport(c, item, result))
	}

	logging.Ctx(ctx).Info().Int("items", len(reports)).Str("format", format).Msg("export computed")

	if output == "" {
		return writeReports(cmd.OutOrStdout(), reports, format)
	}

	if err := writeReportFile(output, reports, format); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported recommendations for %d items to %s\n", len(reports), output)
	return nil
}
