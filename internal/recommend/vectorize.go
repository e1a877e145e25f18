package recommend

import "math"

// Vectorize encodes tags as a binary vector over vocab: entry i is 1 when
// vocab[i] is one of the tags and 0 otherwise. Tags missing from the
// vocabulary are ignored. vocab may be in any order.
func Vectorize(tags []string, vocab Vocabulary) FeatureVector {
	present := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		present[tag] = struct{}{}
	}

	vec := make(FeatureVector, len(vocab))
	for i, tag := range vocab {
		if _, ok := present[tag]; ok {
			vec[i] = 1
		}
	}
	return vec
}

// Norm returns the Euclidean length of the vector.
func (v FeatureVector) Norm() float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
