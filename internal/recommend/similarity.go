package recommend

import "math"

// CosineSimilarity computes dot(a,b) / (|a| * |b|).
//
// Vectors of unequal length yield a *DimensionMismatchError. When either
// vector is all zeros the similarity is 0, so an item without recognized
// tags is similar to nothing, itself included.
func CosineSimilarity(a, b FeatureVector) (float64, error) {
	if len(a) != len(b) {
		return 0, &DimensionMismatchError{Left: len(a), Right: len(b)}
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))

	// Guard against rounding drift outside [0, 1].
	return math.Max(0, math.Min(sim, 1)), nil
}
