/*
Package search resolves free-text queries to catalog items.

TitleIndex is an in-memory bleve index over item titles and tags. It only
finds the reference item for a recommendation; ranking itself never goes
through the index.
*/
package search

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/khanglvm/recommender/internal/recommend"
)

// DefaultLimit is used when Lookup is called with a non-positive limit.
const DefaultLimit = 10

// titleBoost ranks title hits above tag-only hits.
const titleBoost = 2.0

// Match is one search hit.
type Match struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// TitleIndex manages the search index for catalog items.
type TitleIndex struct {
	bleveIndex bleve.Index
	mu         sync.RWMutex
}

// NewTitleIndex builds an in-memory index over items.
func NewTitleIndex(items []recommend.Item) (*TitleIndex, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	ti := &TitleIndex{bleveIndex: index}
	if err := ti.index(items); err != nil {
		index.Close()
		return nil, err
	}
	return ti, nil
}

// buildIndexMapping creates the Bleve index mapping.
func buildIndexMapping() mapping.IndexMapping {
	itemMapping := bleve.NewDocumentMapping()

	itemMapping.AddFieldMappingsAt("title", bleve.NewTextFieldMapping())

	tagsMapping := bleve.NewTextFieldMapping()
	tagsMapping.Store = false
	itemMapping.AddFieldMappingsAt("tags", tagsMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", itemMapping)

	return indexMapping
}

func (ti *TitleIndex) index(items []recommend.Item) error {
	ti.mu.Lock()
	defer ti.mu.Unlock()

	batch := ti.bleveIndex.NewBatch()
	for _, item := range items {
		doc := map[string]interface{}{
			"title": item.Title,
			"tags":  item.Tags,
		}
		if err := batch.Index(strconv.Itoa(item.ID), doc); err != nil {
			return fmt.Errorf("failed to index item %d: %w", item.ID, err)
		}
	}

	if err := ti.bleveIndex.Batch(batch); err != nil {
		return fmt.Errorf("failed to batch index items: %w", err)
	}
	return nil
}

// Lookup returns up to limit items matching q, best first.
// A blank query matches nothing.
func (ti *TitleIndex) Lookup(q string, limit int) ([]Match, error) {
	ti.mu.RLock()
	defer ti.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultLimit
	}

	q = strings.TrimSpace(q)
	if q == "" {
		return []Match{}, nil
	}

	req := bleve.NewSearchRequestOptions(buildQuery(q), limit, 0, false)
	req.Fields = []string{"title"}
	// equal scores come back in a stable order
	req.SortBy([]string{"-_score", "_id"})

	results, err := ti.bleveIndex.Search(req)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	return convertHits(results), nil
}

func buildQuery(q string) query.Query {
	title := bleve.NewMatchQuery(q)
	title.SetField("title")
	title.SetBoost(titleBoost)

	tags := bleve.NewMatchQuery(q)
	tags.SetField("tags")

	return bleve.NewDisjunctionQuery(title, tags)
}

func convertHits(results *bleve.SearchResult) []Match {
	matches := make([]Match, 0, len(results.Hits))
	for _, hit := range results.Hits {
		id, err := strconv.Atoi(hit.ID)
		if err != nil {
			continue
		}
		title, _ := hit.Fields["title"].(string)
		matches = append(matches, Match{ID: id, Title: title, Score: hit.Score})
	}
	return matches
}

// Count returns the number of indexed items.
func (ti *TitleIndex) Count() (uint64, error) {
	ti.mu.RLock()
	defer ti.mu.RUnlock()

	n, err := ti.bleveIndex.DocCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get doc count: %w", err)
	}
	return n, nil
}

// Close releases the index.
func (ti *TitleIndex) Close() error {
	ti.mu.Lock()
	defer ti.mu.Unlock()

	if ti.bleveIndex != nil {
		return ti.bleveIndex.Close()
	}
	return nil
}
