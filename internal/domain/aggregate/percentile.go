package aggregate

import (
	"math"
	"sort"
)

// Ranks are the percentiles reported on the dashboard, lowest first.
var Ranks = []int{10, 25, 50, 75, 90}

// Percentile is one point of a compensation distribution.
type Percentile struct {
	Rank  int     `json:"percentile"`
	Value float64 `json:"value"`
}

// NearestRank returns the value at index floor(n*p/100) of an ascending
// slice, clamped to the last element. It never interpolates. An empty slice
// yields 0.
func NearestRank(sorted []float64, p int) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	idx := int(math.Floor(float64(n) * float64(p) / 100))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

// Distribution computes the nearest-rank value for every entry of Ranks.
// values is not modified.
func Distribution(values []float64) []Percentile {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	out := make([]Percentile, len(Ranks))
	for i, p := range Ranks {
		out[i] = Percentile{Rank: p, Value: NearestRank(sorted, p)}
	}
	return out
}
