package recommend

import (
	"context"
	"sort"
)

// Ranker orders catalog items by similarity to a reference item.
type Ranker struct {
	// Limit is the maximum number of results. Must be positive.
	Limit int

	// MinSimilarity drops results scoring below it. Zero keeps everything.
	MinSimilarity float64
}

// NewRanker creates a ranker returning at most limit items.
func NewRanker(limit int) *Ranker {
	return &Ranker{Limit: limit}
}

// Recommend ranks every catalog item other than ref by cosine similarity of
// its tags to ref's tags and returns the top limit entries.
//
// Items with equal similarity keep their catalog order. The reference item
// (matched by ID) is never part of the result. vocab is expected to cover
// the catalog's tags; it is not checked.
func Recommend(ref Item, catalog []Item, vocab Vocabulary, limit int) (Result, error) {
	return NewRanker(limit).Rank(ref, catalog, vocab)
}

// RecommendFor is Recommend with cancellation checked between items.
func RecommendFor(ctx context.Context, ref Item, catalog []Item, vocab Vocabulary, limit int) (Result, error) {
	return NewRanker(limit).RankContext(ctx, ref, catalog, vocab)
}

// Rank applies the ranker's limit and threshold to the catalog.
func (r *Ranker) Rank(ref Item, catalog []Item, vocab Vocabulary) (Result, error) {
	return r.RankContext(context.Background(), ref, catalog, vocab)
}

// RankContext is Rank with cancellation checked between items.
func (r *Ranker) RankContext(ctx context.Context, ref Item, catalog []Item, vocab Vocabulary) (Result, error) {
	if r.Limit <= 0 {
		return nil, &InvalidLimitError{Limit: r.Limit}
	}

	refVector := Vectorize(ref.Tags, vocab)

	scored := make(Result, 0, len(catalog))
	for _, item := range catalog {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if item.ID == ref.ID {
			continue
		}

		sim, err := CosineSimilarity(refVector, Vectorize(item.Tags, vocab))
		if err != nil {
			return nil, err
		}

		scored = append(scored, ScoredItem{Item: item, Similarity: sim})
	}

	// Stable: equal scores stay in catalog order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if r.MinSimilarity > 0 {
		cut := sort.Search(len(scored), func(i int) bool {
			return scored[i].Similarity < r.MinSimilarity
		})
		scored = scored[:cut]
	}

	if len(scored) > r.Limit {
		scored = scored[:r.Limit]
	}

	return scored, nil
}
