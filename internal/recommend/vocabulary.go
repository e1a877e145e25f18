package recommend

import "sort"

// BuildVocabulary collects the distinct tags of all items in lexicographic
// order. Tags are compared byte-wise; "drama" and "Drama" are different tags.
func BuildVocabulary(items []Item) Vocabulary {
	seen := make(map[string]struct{})
	for _, item := range items {
		for _, tag := range item.Tags {
			seen[tag] = struct{}{}
		}
	}

	vocab := make(Vocabulary, 0, len(seen))
	for tag := range seen {
		vocab = append(vocab, tag)
	}
	sort.Strings(vocab)

	return vocab
}
