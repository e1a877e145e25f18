package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/recommender/internal/catalog"
)

type ratingSummary struct {
	ID            int     `json:"id"`
	Title         string  `json:"title,omitempty"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
}

func newRatingCmd(a *app) *cobra.Command {
	var id int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "rating",
		Short: "Show the average rating of an item",
		Long: `Display the mean of all ratings of an item. Items without ratings
average 0.`,
		Example: `  recommender rating --id 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			avg, count := c.RatingSummary(id)
			item, known := c.ByID(id)
			if !known && count == 0 {
				return &catalog.ItemNotFoundError{ID: id}
			}

			summary := ratingSummary{ID: id, Title: item.Title, AverageRating: avg, RatingCount: count}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), summary)
			}

			name := item.Title
			if !known {
				name = fmt.Sprintf("Item %d", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %.1f (%d ratings)\n", name, renderStars(avg), avg, count)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Item ID")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	cmd.MarkFlagRequired("id")

	return cmd
}
