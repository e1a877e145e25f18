package cli

import (
	"math"
	"strings"
)

const (
	maxStars  = 5
	fullStar  = "★"
	halfStar  = "½"
	emptyStar = "☆"
)

// renderStars draws avg on a five-star scale: whole stars for the integer
// part, a half star when the fraction is at least .5, empty stars for the rest.
func renderStars(avg float64) string {
	avg = math.Max(0, math.Min(avg, maxStars))

	full := int(math.Floor(avg))
	half := avg-math.Floor(avg) >= 0.5
	empty := maxStars - full
	if half {
		empty--
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(fullStar, full))
	if half {
		b.WriteString(halfStar)
	}
	b.WriteString(strings.Repeat(emptyStar, empty))
	return b.String()
}
