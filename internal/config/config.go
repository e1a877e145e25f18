/*
Package config handles loading, saving, and validating recommender configuration.

Configuration is layered: built-in defaults, then an optional YAML file
(~/.recommender.yaml unless overridden), then RECOMMENDER_* environment
variables.

Schema:

	catalog:
	  source: movielens        # sample | movielens | sqlite
	  items_path: ml-100k/u.item
	  ratings_path: ml-100k/u.data
	  genres_path: ml-100k/u.genre
	  encoding: latin1         # latin1 | utf-8
	  db_path: catalog.db
	recommend:
	  limit: 6
	  min_similarity: 0
	logging:
	  level: info
	  format: console          # console | json
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/khanglvm/recommender/internal/recommend"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "RECOMMENDER_"

	// ConfigPathEnvVar overrides the config file location.
	ConfigPathEnvVar = "RECOMMENDER_CONFIG"

	// DefaultFileName is the config file name in the home directory.
	DefaultFileName = ".recommender.yaml"
)

// Catalog source names.
const (
	SourceSample    = "sample"
	SourceMovieLens = "movielens"
	SourceSQLite    = "sqlite"
)

// Config represents the root configuration structure.
type Config struct {
	// Catalog selects where items and ratings are read from.
	Catalog CatalogConfig `koanf:"catalog"`

	// Recommend holds ranking options.
	Recommend RecommendConfig `koanf:"recommend"`

	// Logging configures the global logger.
	Logging LoggingConfig `koanf:"logging"`
}

// CatalogConfig describes the catalog source.
type CatalogConfig struct {
	// Source is one of sample, movielens or sqlite.
	Source string `koanf:"source" validate:"oneof=sample movielens sqlite"`

	// ItemsPath is the MovieLens u.item file.
	ItemsPath string `koanf:"items_path" validate:"required_if=Source movielens"`

	// RatingsPath is the MovieLens u.data file. Optional.
	RatingsPath string `koanf:"ratings_path"`

	// GenresPath is the MovieLens u.genre file. Optional.
	GenresPath string `koanf:"genres_path"`

	// Encoding is the character set of the MovieLens files.
	Encoding string `koanf:"encoding" validate:"oneof=latin1 utf-8"`

	// DBPath is the SQLite catalog database.
	DBPath string `koanf:"db_path" validate:"required_if=Source sqlite"`
}

// RecommendConfig holds ranking options.
type RecommendConfig struct {
	// Limit is the number of recommendations returned.
	Limit int `koanf:"limit" validate:"gt=0"`

	// MinSimilarity hides results scoring below it.
	MinSimilarity float64 `koanf:"min_similarity" validate:"gte=0,lte=1"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=console json"`
}

// NewConfig creates a configuration holding the built-in defaults.
func NewConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Source:   SourceSample,
			Encoding: "latin1",
		},
		Recommend: RecommendConfig{
			Limit:         recommend.DefaultLimit,
			MinSimilarity: 0,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// GetDefaultConfigPath returns the path to ~/.recommender.yaml
func GetDefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DefaultFileName), nil
}
