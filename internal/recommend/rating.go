package recommend

// AverageRating returns the mean rating value of itemID, or 0 when the item
// has no ratings. Use RatingSummary to tell the two cases apart.
func AverageRating(itemID int, ratings []Rating) float64 {
	avg, _ := RatingSummary(itemID, ratings)
	return avg
}

// RatingSummary returns the mean rating value of itemID and the number of
// ratings it was computed from.
func RatingSummary(itemID int, ratings []Rating) (float64, int) {
	var sum float64
	count := 0

	for _, rating := range ratings {
		if rating.ItemID == itemID {
			sum += rating.Value
			count++
		}
	}

	if count == 0 {
		return 0, 0
	}

	return sum / float64(count), count
}

// RatingsFor returns the ratings of itemID in their original order.
func RatingsFor(itemID int, ratings []Rating) []Rating {
	var matched []Rating
	for _, rating := range ratings {
		if rating.ItemID == itemID {
			matched = append(matched, rating)
		}
	}
	return matched
}
