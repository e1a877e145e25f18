package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/khanglvm/recommender/internal/catalog"
	"github.com/khanglvm/recommender/internal/logging"
	"github.com/khanglvm/recommender/internal/recommend"
	"github.com/khanglvm/recommender/internal/search"
)

// recommendation is one ranked item annotated with its ratings.
type recommendation struct {
	ReferenceID   int      `json:"reference_id"`
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Tags          []string `json:"tags"`
	Similarity    float64  `json:"similarity"`
	AverageRating float64  `json:"average_rating"`
	RatingCount   int      `json:"rating_count"`
}

// report is the recommendations for one reference item.
type report struct {
	Reference       recommend.Item   `json:"reference"`
	Recommendations []recommendation `json:"recommendations"`
}

type recommendOptions struct {
	id            int
	title         string
	limit         int
	minSimilarity float64
	jsonOutput    bool
	output        string
}

func newRecommendCmd(a *app) *cobra.Command {
	var opts recommendOptions

	cmd := &cobra.Command{
		Use:     "recommend",
		Aliases: []string{"rec"},
		Short:   "Recommend items similar to a reference item",
		Long: `Rank every other catalog item by the cosine similarity of its tags to the
reference item's tags and print the best matches with their average rating.

The reference item is chosen by --id, or by the best title match for --title.`,
		Example: `  recommender recommend --id 1
  recommender recommend --title "toy story" --limit 3
  recommender recommend --id 11 --min-similarity 0.5 --json
  recommender recommend --id 1 --output recs.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				opts.limit = a.cfg.Recommend.Limit
			}
			if !cmd.Flags().Changed("min-similarity") {
				opts.minSimilarity = a.cfg.Recommend.MinSimilarity
			}
			return runRecommend(cmd.Context(), a, cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.id, "id", 0, "ID of the reference item")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "Pick the reference item by title search")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Number of recommendations (default from config)")
	cmd.Flags().Float64Var(&opts.minSimilarity, "min-similarity", 0, "Hide results below this similarity (0-1)")
	cmd.Flags().BoolVarP(&opts.jsonOutput, "json", "j", false, "Output as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Also write the results as JSONL to this file")
	cmd.MarkFlagsMutuallyExclusive("id", "title")

	return cmd
}

func runRecommend(ctx context.Context, a *app, cmd *cobra.Command, opts recommendOptions) error {
	if !cmd.Flags().Changed("id") && strings.TrimSpace(opts.title) == "" {
		return errors.New("a reference item is required: use --id or --title")
	}
	if math.IsNaN(opts.minSimilarity) || opts.minSimilarity < 0 || opts.minSimilarity > 1 {
		return fmt.Errorf("invalid --min-similarity %v: must be between 0 and 1", opts.minSimilarity)
	}

	c, err := a.loadCatalog(ctx)
	if err != nil {
		return err
	}

	ref, err := resolveReference(c, cmd.Flags().Changed("id"), opts.id, opts.title)
	if err != nil {
		return err
	}

	ranker := &recommend.Ranker{Limit: opts.limit, MinSimilarity: opts.minSimilarity}
	result, err := c.RecommendContext(ctx, ref.ID, ranker)
	if err != nil {
		return err
	}

	logging.Ctx(ctx).Debug().
		Int("reference", ref.ID).
		Int("limit", opts.limit).
		Int("results", len(result)).
		Msg("ranked catalog")

	rep := buildReport(c, ref, result)

	if opts.output != "" {
		if err := writeReportFile(opts.output, []report{rep}, formatJSONL); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %d recommendations to %s\n", len(rep.Recommendations), opts.output)
	}

	if opts.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), rep)
	}
	return printReport(cmd.OutOrStdout(), rep)
}

// resolveReference picks the reference item by ID, or by best title match.
func resolveReference(c *catalog.Catalog, byID bool, id int, title string) (recommend.Item, error) {
	if byID {
		ref, ok := c.ByID(id)
		if !ok {
			return recommend.Item{}, &catalog.ItemNotFoundError{ID: id}
		}
		return ref, nil
	}

	idx, err := search.NewTitleIndex(c.Items)
	if err != nil {
		return recommend.Item{}, err
	}
	defer idx.Close()

	matches, err := idx.Lookup(title, 1)
	if err != nil {
		return recommend.Item{}, err
	}
	if len(matches) == 0 {
		return recommend.Item{}, fmt.Errorf("no item matches %q (try 'recommender search')", title)
	}

	ref, _ := c.ByID(matches[0].ID)
	return ref, nil
}

func buildReport(c *catalog.Catalog, ref recommend.Item, result recommend.Result) report {
	recs := make([]recommendation, 0, len(result))
	for _, scored := range result {
		avg, count := c.RatingSummary(scored.Item.ID)
		recs = append(recs, recommendation{
			ReferenceID:   ref.ID,
			ID:            scored.Item.ID,
			Title:         scored.Item.Title,
			Tags:          scored.Item.Tags,
			Similarity:    scored.Similarity,
			AverageRating: avg,
			RatingCount:   count,
		})
	}
	return report{Reference: ref, Recommendations: recs}
}

func printReport(out io.Writer, rep report) error {
	ref := rep.Reference
	fmt.Fprintf(out, "Items similar to %q [%s]:\n", ref.Title, strings.Join(ref.Tags, ", "))

	if len(rep.Recommendations) == 0 {
		fmt.Fprintf(out, "No recommendations found for %q.\n", ref.Title)
		return nil
	}

	fmt.Fprintf(out, "Found %d recommendations based on tag similarity:\n\n", len(rep.Recommendations))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTITLE\tTAGS\tRATING\tSIMILARITY")
	for i, rec := range rep.Recommendations {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s (%.1f)\t%.1f%%\n",
			i+1,
			rec.Title,
			strings.Join(rec.Tags, ", "),
			renderStars(rec.AverageRating),
			rec.AverageRating,
			rec.Similarity*100,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nRecommendations are based on cosine similarity of tag vectors.")
	return nil
}

// writeReportFile writes reports to path under an exclusive lock.
func writeReportFile(path string, reports []report, format string) error {
	lockFile, err := acquireFileLock(path)
	if err != nil {
		return fmt.Errorf("failed to acquire file lock: %w", err)
	}
	defer releaseFileLock(lockFile)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := writeReports(file, reports, format); err != nil {
		return err
	}
	return file.Close()
}
