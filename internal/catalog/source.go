package catalog

import (
	"context"
	"fmt"

	"github.com/khanglvm/recommender/internal/config"
)

// Source loads a catalog from somewhere.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// NewSource picks the source named in cfg.
func NewSource(cfg config.CatalogConfig) (Source, error) {
	switch cfg.Source {
	case config.SourceSample, "":
		return SampleSource{}, nil
	case config.SourceMovieLens:
		return &MovieLensSource{
			ItemsPath:   cfg.ItemsPath,
			RatingsPath: cfg.RatingsPath,
			GenresPath:  cfg.GenresPath,
			Encoding:    cfg.Encoding,
		}, nil
	case config.SourceSQLite:
		return &SQLiteSource{Path: cfg.DBPath}, nil
	default:
		return nil, &UnknownSourceError{Name: cfg.Source}
	}
}

// UnknownSourceError reports an unsupported catalog source name.
type UnknownSourceError struct {
	Name string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unknown catalog source %q (want %s, %s or %s)",
		e.Name, config.SourceSample, config.SourceMovieLens, config.SourceSQLite)
}
