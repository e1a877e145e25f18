package recommend

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend_EndToEnd(t *testing.T) {
	a := Item{ID: 1, Title: "A", Tags: []string{"Action", "Comedy"}}
	b := Item{ID: 2, Title: "B", Tags: []string{"Action"}}
	c := Item{ID: 3, Title: "C", Tags: []string{"Drama"}}
	catalog := []Item{a, b, c}

	vocab := BuildVocabulary(catalog)
	require.Equal(t, Vocabulary{"Action", "Comedy", "Drama"}, vocab)

	result, err := Recommend(a, catalog, vocab, 2)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, []int{2, 3}, result.IDs())
	assert.InDelta(t, 1/math.Sqrt(2), result[0].Similarity, 1e-9)
	assert.Equal(t, 0.0, result[1].Similarity)
}

func TestRecommend_EmptyTagItem(t *testing.T) {
	empty := Item{ID: 1, Title: "Untagged"}
	catalog := []Item{
		empty,
		{ID: 2, Tags: []string{"Action"}},
		{ID: 3, Tags: []string{"Drama", "Action"}},
		{ID: 4},
	}
	vocab := BuildVocabulary(catalog)

	vec := Vectorize(empty.Tags, vocab)
	assert.Equal(t, FeatureVector{0, 0}, vec)

	self, err := CosineSimilarity(vec, vec)
	require.NoError(t, err)
	assert.Equal(t, 0.0, self)

	result, err := Recommend(empty, catalog, vocab, 10)
	require.NoError(t, err)
	require.Len(t, result, 3)
	for _, scored := range result {
		assert.Equal(t, 0.0, scored.Similarity)
	}
	// All ties, so catalog order survives.
	assert.Equal(t, []int{2, 3, 4}, result.IDs())
}

func TestRecommend_InvalidLimit(t *testing.T) {
	catalog := []Item{{ID: 1, Tags: []string{"Action"}}, {ID: 2, Tags: []string{"Action"}}}
	vocab := BuildVocabulary(catalog)

	for _, limit := range []int{0, -1, -100} {
		result, err := Recommend(catalog[0], catalog, vocab, limit)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, ErrInvalidLimit))

		var limitErr *InvalidLimitError
		require.True(t, errors.As(err, &limitErr))
		assert.Equal(t, limit, limitErr.Limit)
	}
}

func TestRecommend_EmptyResults(t *testing.T) {
	ref := Item{ID: 7, Tags: []string{"Action"}}

	tests := []struct {
		name    string
		catalog []Item
	}{
		{name: "empty catalog", catalog: nil},
		{name: "only the reference item", catalog: []Item{ref}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Recommend(ref, tt.catalog, BuildVocabulary(tt.catalog), DefaultLimit)
			require.NoError(t, err)
			assert.NotNil(t, result)
			assert.Empty(t, result)
		})
	}
}

func TestRecommend_LengthAndOrder(t *testing.T) {
	catalog := []Item{
		{ID: 1, Tags: []string{"Action", "Adventure", "Sci-Fi"}},
		{ID: 2, Tags: []string{"Action"}},
		{ID: 3, Tags: []string{"Action", "Adventure"}},
		{ID: 4, Tags: []string{"Romance"}},
		{ID: 5, Tags: []string{"Sci-Fi", "Adventure", "Action"}},
		{ID: 6, Tags: []string{"Adventure", "Romance"}},
		{ID: 7, Tags: []string{"Action", "Sci-Fi"}},
	}
	vocab := BuildVocabulary(catalog)
	ref := catalog[0]
	eligible := len(catalog) - 1

	for limit := 1; limit <= eligible+3; limit++ {
		result, err := Recommend(ref, catalog, vocab, limit)
		require.NoError(t, err)

		want := limit
		if eligible < want {
			want = eligible
		}
		assert.Len(t, result, want)

		for i, scored := range result {
			assert.NotEqual(t, ref.ID, scored.Item.ID)
			if i > 0 {
				assert.LessOrEqual(t, scored.Similarity, result[i-1].Similarity)
			}
		}
	}

	result, err := Recommend(ref, catalog, vocab, eligible)
	require.NoError(t, err)
	assert.Equal(t, 5, result[0].Item.ID)
	// 3 and 7 tie at 2/sqrt(6); catalog order decides.
	assert.Equal(t, []int{5, 3, 7, 2, 6, 4}, result.IDs())
}

func TestRecommend_ReferenceExcludedByID(t *testing.T) {
	// A duplicate of the reference under another id stays; the reference id never appears.
	ref := Item{ID: 1, Tags: []string{"Drama"}}
	catalog := []Item{
		{ID: 2, Tags: []string{"Comedy"}},
		{ID: 1, Tags: []string{"Drama"}},
		{ID: 3, Tags: []string{"Drama"}},
	}

	result, err := Recommend(ref, catalog, BuildVocabulary(catalog), 5)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, result.IDs())
	assert.InDelta(t, 1.0, result[0].Similarity, 1e-9)
}

func TestRecommend_ReferenceOutsideCatalog(t *testing.T) {
	catalog := []Item{
		{ID: 1, Tags: []string{"Action"}},
		{ID: 2, Tags: []string{"Comedy"}},
	}
	ref := Item{ID: 99, Tags: []string{"Comedy", "Horror"}}

	result, err := Recommend(ref, catalog, BuildVocabulary(catalog), 5)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, result.IDs())
	assert.InDelta(t, 1.0, result[0].Similarity, 1e-9)
}

func TestRecommend_Deterministic(t *testing.T) {
	catalog := []Item{
		{ID: 1, Tags: []string{"Drama"}},
		{ID: 2, Tags: []string{"Drama"}},
		{ID: 3, Tags: []string{"Drama", "War"}},
		{ID: 4, Tags: []string{"Drama"}},
		{ID: 5, Tags: []string{"War"}},
	}
	vocab := BuildVocabulary(catalog)

	first, err := Recommend(catalog[0], catalog, vocab, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 3}, first.IDs())

	for i := 0; i < 10; i++ {
		again, err := Recommend(catalog[0], catalog, vocab, 3)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRanker_MinSimilarity(t *testing.T) {
	catalog := []Item{
		{ID: 1, Tags: []string{"Action", "Comedy"}},
		{ID: 2, Tags: []string{"Action"}},
		{ID: 3, Tags: []string{"Drama"}},
		{ID: 4, Tags: []string{"Action", "Comedy"}},
	}
	vocab := BuildVocabulary(catalog)

	ranker := &Ranker{Limit: 10, MinSimilarity: 0.5}
	result, err := ranker.Rank(catalog[0], catalog, vocab)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2}, result.IDs())

	ranker.MinSimilarity = 1.5
	result, err = ranker.Rank(catalog[0], catalog, vocab)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestRecommendFor_Cancelled(t *testing.T) {
	catalog := []Item{{ID: 1, Tags: []string{"Action"}}, {ID: 2, Tags: []string{"Action"}}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RecommendFor(ctx, catalog[0], catalog, BuildVocabulary(catalog), 5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecommend_ForeignVocabulary(t *testing.T) {
	// Tags outside the vocabulary are ignored rather than rejected.
	catalog := []Item{
		{ID: 1, Tags: []string{"Action", "Noir"}},
		{ID: 2, Tags: []string{"Noir"}},
	}
	vocab := Vocabulary{"Action"}

	result, err := Recommend(catalog[0], catalog, vocab, 5)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 0.0, result[0].Similarity)
}
