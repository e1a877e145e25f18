package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/khanglvm/recommender/internal/logging"
	"github.com/khanglvm/recommender/internal/recommend"
)

// SQLiteSchema is the layout SQLiteSource reads. The ratings table is optional.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS items (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS item_tags (
	item_id INTEGER NOT NULL REFERENCES items(id),
	tag TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_item_tags_item ON item_tags(item_id);

CREATE TABLE IF NOT EXISTS ratings (
	user_id INTEGER NOT NULL,
	item_id INTEGER NOT NULL,
	rating REAL NOT NULL,
	timestamp INTEGER NOT NULL DEFAULT 0
);
`

// SQLiteSource reads a catalog from a SQLite database. The database is
// opened read-only and never created.
type SQLiteSource struct {
	Path string
}

// Load implements Source.
func (s *SQLiteSource) Load(ctx context.Context) (*Catalog, error) {
	if s.Path == "" {
		return nil, fmt.Errorf("sqlite source: database path is required")
	}

	// sql.Open would happily create an empty file.
	if _, err := os.Stat(s.Path); err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	defer db.Close()

	// query_only is per connection
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	items, err := s.loadItems(ctx, db)
	if err != nil {
		return nil, err
	}

	ratings, err := s.loadRatings(ctx, db)
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Str("path", s.Path).
		Int("items", len(items)).
		Int("ratings", len(ratings)).
		Msg("sqlite catalog loaded")

	return New(items, ratings), nil
}

func (s *SQLiteSource) loadItems(ctx context.Context, db *sql.DB) ([]recommend.Item, error) {
	rows, err := db.QueryContext(ctx, "SELECT id, title FROM items ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []recommend.Item
	index := make(map[int]int)
	for rows.Next() {
		var item recommend.Item
		if err := rows.Scan(&item.ID, &item.Title); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.Tags = []string{}
		index[item.ID] = len(items)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}

	tagRows, err := db.QueryContext(ctx, "SELECT item_id, tag FROM item_tags ORDER BY item_id, rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to query item tags: %w", err)
	}
	defer tagRows.Close()

	orphans := 0
	for tagRows.Next() {
		var itemID int
		var tag string
		if err := tagRows.Scan(&itemID, &tag); err != nil {
			return nil, fmt.Errorf("failed to scan item tag: %w", err)
		}
		i, ok := index[itemID]
		if !ok {
			orphans++
			continue
		}
		items[i].Tags = append(items[i].Tags, tag)
	}
	if err := tagRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read item tags: %w", err)
	}
	if orphans > 0 {
		logging.Ctx(ctx).Warn().
			Str("path", s.Path).
			Int("skipped", orphans).
			Msg("skipped tags of unknown items")
	}

	return items, nil
}

func (s *SQLiteSource) loadRatings(ctx context.Context, db *sql.DB) ([]recommend.Rating, error) {
	var name string
	err := db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'ratings'",
	).Scan(&name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to inspect schema: %w", err)
	}

	rows, err := db.QueryContext(ctx, "SELECT user_id, item_id, rating, timestamp FROM ratings ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []recommend.Rating
	for rows.Next() {
		var r recommend.Rating
		if err := rows.Scan(&r.UserID, &r.ItemID, &r.Value, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ratings: %w", err)
	}

	return ratings, nil
}
