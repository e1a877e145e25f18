package catalog

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCatalogDB(t *testing.T, withRatings bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(SQLiteSchema)
	require.NoError(t, err)

	stmts := []string{
		`INSERT INTO items (id, title) VALUES (3, 'Gamma'), (1, 'Alpha'), (2, 'Beta'), (4, 'Delta')`,
		`INSERT INTO item_tags (item_id, tag) VALUES
			(1, 'Drama'), (1, 'Crime'),
			(2, 'Drama'),
			(3, 'Comedy'),
			(99, 'Orphan')`,
	}
	if withRatings {
		stmts = append(stmts, `INSERT INTO ratings (user_id, item_id, rating, timestamp) VALUES
			(1, 1, 4, 100), (2, 1, 2, 200), (3, 2, 5, 300)`)
	} else {
		stmts = append(stmts, `DROP TABLE ratings`)
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	return path
}

func TestSQLiteSourceLoad(t *testing.T) {
	path := createCatalogDB(t, true)

	c, err := (&SQLiteSource{Path: path}).Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, 4, c.Len())
	// ordered by id
	assert.Equal(t, 1, c.Items[0].ID)
	assert.Equal(t, 4, c.Items[3].ID)

	alpha, ok := c.ByID(1)
	require.True(t, ok)
	assert.Equal(t, "Alpha", alpha.Title)
	assert.Equal(t, []string{"Drama", "Crime"}, alpha.Tags)

	delta, _ := c.ByID(4)
	assert.Empty(t, delta.Tags)

	assert.NotContains(t, c.Vocabulary, "Orphan")
	assert.Len(t, c.Ratings, 3)
	assert.InDelta(t, 3.0, c.AverageRating(1), 1e-9)

	got, err := c.Recommend(1, 6)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, got.IDs())
}

func TestSQLiteSourceWarnsOnOrphanTags(t *testing.T) {
	path := createCatalogDB(t, true)
	buf := captureWarnings(t)

	_, err := (&SQLiteSource{Path: path}).Load(context.Background())
	require.NoError(t, err)

	entries := decodeLogLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "skipped tags of unknown items", entries[0]["message"])
	assert.EqualValues(t, 1, entries[0]["skipped"])
}

func TestSQLiteSourceWithoutRatingsTable(t *testing.T) {
	path := createCatalogDB(t, false)

	c, err := (&SQLiteSource{Path: path}).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, c.Ratings)
	assert.Zero(t, c.AverageRating(1))
}

func TestSQLiteSourceMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")

	_, err := (&SQLiteSource{Path: path}).Load(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)

	// the source must not create the file
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSQLiteSourceEmptyPath(t *testing.T) {
	_, err := (&SQLiteSource{}).Load(context.Background())
	assert.Error(t, err)
}

func TestSQLiteSourceMissingTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE unrelated (x INTEGER)")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = (&SQLiteSource{Path: path}).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "items")
}
