/*
Package catalog loads items and ratings from a data source and keeps them
together with the vocabulary built from their tags.

A Catalog is immutable once built. Refreshing means loading a new one and
replacing the old value, so the vocabulary can never drift from the items.
*/
package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/khanglvm/recommender/internal/recommend"
)

// Catalog is a loaded item set with its ratings and vocabulary.
type Catalog struct {
	Items      []recommend.Item
	Ratings    []recommend.Rating
	Vocabulary recommend.Vocabulary

	byID map[int]int
}

// New builds a catalog and its vocabulary. Items keep the given order,
// which is the tie-break order for recommendations.
func New(items []recommend.Item, ratings []recommend.Rating) *Catalog {
	byID := make(map[int]int, len(items))
	for i, item := range items {
		// first occurrence wins
		if _, ok := byID[item.ID]; !ok {
			byID[item.ID] = i
		}
	}

	return &Catalog{
		Items:      items,
		Ratings:    ratings,
		Vocabulary: recommend.BuildVocabulary(items),
		byID:       byID,
	}
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.Items)
}

// ByID looks up an item by ID.
func (c *Catalog) ByID(id int) (recommend.Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return recommend.Item{}, false
	}
	return c.Items[i], true
}

// AverageRating returns the mean rating of id, or 0 when it has none.
func (c *Catalog) AverageRating(id int) float64 {
	return recommend.AverageRating(id, c.Ratings)
}

// RatingSummary returns the mean rating of id and how many ratings it has.
func (c *Catalog) RatingSummary(id int) (float64, int) {
	return recommend.RatingSummary(id, c.Ratings)
}

// Recommend returns up to limit items most similar to the item with the
// given id.
func (c *Catalog) Recommend(id, limit int) (recommend.Result, error) {
	return c.RecommendContext(context.Background(), id, recommend.NewRanker(limit))
}

// RecommendContext ranks the catalog against item id using r.
func (c *Catalog) RecommendContext(ctx context.Context, id int, r *recommend.Ranker) (recommend.Result, error) {
	ref, ok := c.ByID(id)
	if !ok {
		return nil, &ItemNotFoundError{ID: id}
	}
	return r.RankContext(ctx, ref, c.Items, c.Vocabulary)
}

// TagCount is the number of items carrying a vocabulary tag.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagCounts returns one entry per vocabulary tag, in vocabulary order.
func (c *Catalog) TagCounts() []TagCount {
	counts := make([]TagCount, len(c.Vocabulary))
	for i, tag := range c.Vocabulary {
		counts[i].Tag = tag
	}

	for _, item := range c.Items {
		seen := make(map[int]bool, len(item.Tags))
		for _, tag := range item.Tags {
			i, ok := c.Vocabulary.Index(tag)
			if ok && !seen[i] {
				seen[i] = true
				counts[i].Count++
			}
		}
	}

	return counts
}

// SortedByTitle returns a copy of the items ordered by title, then ID.
func (c *Catalog) SortedByTitle() []recommend.Item {
	items := make([]recommend.Item, len(c.Items))
	copy(items, c.Items)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Title != items[j].Title {
			return items[i].Title < items[j].Title
		}
		return items[i].ID < items[j].ID
	})
	return items
}

// ItemNotFoundError reports an ID that is not in the catalog.
type ItemNotFoundError struct {
	ID int
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %d not found in catalog", e.ID)
}
