/*
Package recommend implements content-based item recommendation over
categorical tags.

Each item's tag set is encoded as a binary feature vector indexed by a
catalog-wide vocabulary, and catalog items are ranked by cosine similarity
to a reference item. Functions here do no I/O and are safe to call
concurrently on shared read-only inputs.
*/
package recommend

// DefaultLimit is the number of recommendations returned when the caller
// has no preference.
const DefaultLimit = 6

// Item is a catalog entry described by a set of category tags.
type Item struct {
	// ID is the stable, unique identifier of the item.
	ID int `json:"id"`

	// Title is the display name.
	Title string `json:"title"`

	// Tags are the category labels (e.g. genres). Order is irrelevant and
	// repeated values count once.
	Tags []string `json:"tags"`
}

// Rating is a single user rating of an item.
type Rating struct {
	UserID    int     `json:"user_id"`
	ItemID    int     `json:"item_id"`
	Value     float64 `json:"value"`
	Timestamp int64   `json:"timestamp"`
}

// Vocabulary is the duplicate-free universe of tags of a catalog.
// BuildVocabulary returns it sorted; vectors are defined by position either way.
type Vocabulary []string

// Len returns the number of distinct tags.
func (v Vocabulary) Len() int {
	return len(v)
}

// Index returns the position of tag in the vocabulary. It does not rely on
// the vocabulary being sorted.
func (v Vocabulary) Index(tag string) (int, bool) {
	for i, t := range v {
		if t == tag {
			return i, true
		}
	}
	return 0, false
}

// Contains reports whether tag is part of the vocabulary.
func (v Vocabulary) Contains(tag string) bool {
	_, ok := v.Index(tag)
	return ok
}

// FeatureVector is a binary encoding of a tag set against a Vocabulary.
type FeatureVector []float64

// ScoredItem pairs an item with its similarity to the reference item.
type ScoredItem struct {
	Item       Item    `json:"item"`
	Similarity float64 `json:"similarity"`
}

// Result is a ranked list of recommendations, most similar first.
type Result []ScoredItem

// IDs returns the item ids in rank order.
func (r Result) IDs() []int {
	ids := make([]int, len(r))
	for i, scored := range r {
		ids[i] = scored.Item.ID
	}
	return ids
}
