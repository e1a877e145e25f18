/*
Package benchmark measures recommendation latency over a loaded catalog.

One iteration ranks the whole catalog once per item, using each item in turn
as the reference, which is the work `recommender export` does.
*/
package benchmark

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/khanglvm/recommender/internal/catalog"
	"github.com/khanglvm/recommender/internal/recommend"
)

// DefaultIterations is the number of full passes when none is given.
const DefaultIterations = 5

// Result contains latency measurements for a catalog.
type Result struct {
	Items      int           `json:"items"`
	Tags       int           `json:"tags"`
	Iterations int           `json:"iterations"`
	Queries    int           `json:"queries"`
	Total      time.Duration `json:"totalNs"`
	PerQuery   time.Duration `json:"perQueryNs"`
	Fastest    time.Duration `json:"fastestPassNs"`
	Slowest    time.Duration `json:"slowestPassNs"`
}

// Run ranks the catalog against every item, iterations times.
func Run(ctx context.Context, c *catalog.Catalog, limit, iterations int) (*Result, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", iterations)
	}

	ranker := recommend.NewRanker(limit)
	result := &Result{
		Items:      c.Len(),
		Tags:       c.Vocabulary.Len(),
		Iterations: iterations,
	}

	for i := 0; i < iterations; i++ {
		start := time.Now()
		for _, ref := range c.Items {
			if _, err := ranker.RankContext(ctx, ref, c.Items, c.Vocabulary); err != nil {
				return nil, err
			}
			result.Queries++
		}
		elapsed := time.Since(start)

		result.Total += elapsed
		if i == 0 || elapsed < result.Fastest {
			result.Fastest = elapsed
		}
		if elapsed > result.Slowest {
			result.Slowest = elapsed
		}
	}

	if result.Queries > 0 {
		result.PerQuery = result.Total / time.Duration(result.Queries)
	}
	return result, nil
}

// FormatResult formats the benchmark result for display.
func FormatResult(result *Result) string {
	var sb strings.Builder

	sb.WriteString("RANKING LATENCY BENCHMARK\n")
	sb.WriteString(strings.Repeat("─", 40) + "\n")
	fmt.Fprintf(&sb, "  Catalog:      %d items, %d tags\n", result.Items, result.Tags)
	fmt.Fprintf(&sb, "  Passes:       %d\n", result.Iterations)
	fmt.Fprintf(&sb, "  Queries:      %d\n", result.Queries)
	fmt.Fprintf(&sb, "  Total:        %v\n", result.Total.Round(time.Microsecond))
	fmt.Fprintf(&sb, "  Per query:    %v\n", result.PerQuery)
	fmt.Fprintf(&sb, "  Fastest pass: %v\n", result.Fastest.Round(time.Microsecond))
	fmt.Fprintf(&sb, "  Slowest pass: %v\n", result.Slowest.Round(time.Microsecond))

	return sb.String()
}
