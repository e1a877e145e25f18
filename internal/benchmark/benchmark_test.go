package benchmark

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanglvm/recommender/internal/catalog"
	"github.com/khanglvm/recommender/internal/recommend"
)

func sampleCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.SampleSource{}.Load(context.Background())
	require.NoError(t, err)
	return c
}

func TestRun(t *testing.T) {
	c := sampleCatalog(t)

	result, err := Run(context.Background(), c, recommend.DefaultLimit, 3)
	require.NoError(t, err)

	assert.Equal(t, 15, result.Items)
	assert.Equal(t, 11, result.Tags)
	assert.Equal(t, 3, result.Iterations)
	assert.Equal(t, 45, result.Queries)
	assert.LessOrEqual(t, result.Fastest, result.Slowest)
	assert.GreaterOrEqual(t, result.Total, result.Slowest)
}

func TestRunEmptyCatalog(t *testing.T) {
	result, err := Run(context.Background(), catalog.New(nil, nil), 6, 2)
	require.NoError(t, err)
	assert.Zero(t, result.Queries)
	assert.Zero(t, result.PerQuery)
}

func TestRunErrors(t *testing.T) {
	c := sampleCatalog(t)

	_, err := Run(context.Background(), c, 6, 0)
	assert.Error(t, err)

	_, err = Run(context.Background(), c, 0, 1)
	assert.ErrorIs(t, err, recommend.ErrInvalidLimit)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, c, 6, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatResult(t *testing.T) {
	out := FormatResult(&Result{Items: 15, Tags: 11, Iterations: 2, Queries: 30})

	assert.Contains(t, out, "RANKING LATENCY BENCHMARK")
	assert.Contains(t, out, "15 items, 11 tags")
	assert.Contains(t, out, "Queries:      30")
}
