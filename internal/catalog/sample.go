package catalog

import (
	"bytes"
	"context"
	_ "embed"

	"github.com/khanglvm/recommender/internal/logging"
)

var (
	//go:embed sample/u.item
	sampleItems []byte

	//go:embed sample/u.data
	sampleRatings []byte
)

// SampleSource serves a built-in 15-movie, 20-rating MovieLens excerpt.
type SampleSource struct{}

// Load implements Source.
func (SampleSource) Load(ctx context.Context) (*Catalog, error) {
	items, err := ParseItems(bytes.NewReader(sampleItems), DefaultGenres)
	if err != nil {
		return nil, err
	}
	ratings, err := ParseRatings(bytes.NewReader(sampleRatings))
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Int("items", len(items)).
		Int("ratings", len(ratings)).
		Msg("sample catalog loaded")

	return New(items, ratings), nil
}
