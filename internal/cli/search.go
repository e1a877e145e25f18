package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/khanglvm/recommender/internal/search"
)

func newSearchCmd(a *app) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Find items by title or tag",
		Long: `Full-text search over item titles and tags. Use the IDs it prints with
'recommender recommend --id'.`,
		Example: `  recommender search toy story
  recommender search thriller --limit 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			idx, err := search.NewTitleIndex(c.Items)
			if err != nil {
				return err
			}
			defer idx.Close()

			query := strings.Join(args, " ")
			matches, err := idx.Lookup(query, limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), matches)
			}

			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintf(out, "No items match %q.\n", query)
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSCORE")
			for _, m := range matches {
				fmt.Fprintf(w, "%d\t%s\t%.3f\n", m.ID, m.Title, m.Score)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", search.DefaultLimit, "Maximum number of matches")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}
