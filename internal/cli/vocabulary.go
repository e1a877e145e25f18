package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newVocabularyCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "vocabulary",
		Aliases: []string{"genres", "tags"},
		Short:   "List the catalog's tags with item counts",
		Long:    `Display the sorted tag vocabulary the similarity vectors are built on.`,
		Example: `  recommender vocabulary
  recommender genres --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			counts := c.TagCounts()
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), counts)
			}

			out := cmd.OutOrStdout()
			if len(counts) == 0 {
				fmt.Fprintln(out, "The catalog has no tags.")
				return nil
			}

			fmt.Fprintf(out, "Vocabulary (%d tags, %d items):\n\n", len(counts), c.Len())
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, tc := range counts {
				fmt.Fprintf(w, "  %s\t%d\n", tc.Tag, tc.Count)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}
