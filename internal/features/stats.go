package features

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// median returns the middle value of the data using the average-of-two
// convention for even lengths. 0 for empty input.
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// medianDiff returns the median step between consecutive time stamps,
// the implied cadence of the sampling grid. 0 when fewer than 2 samples.
func medianDiff(time []float64) float64 {
	if len(time) < 2 {
		return 0
	}
	diffs := make([]float64, len(time)-1)
	for i := 1; i < len(time); i++ {
		diffs[i-1] = time[i] - time[i-1]
	}
	return median(diffs)
}

// skewness returns the bias-corrected sample skewness (adjusted
// Fisher-Pearson). 0 when fewer than 3 samples or the data has no spread.
func skewness(values []float64) float64 {
	if len(values) < 3 {
		return 0
	}
	return sanitize(stat.Skew(values, nil))
}

// exKurtosis returns the bias-corrected excess kurtosis, 0 when fewer
// than 4 samples or the data has no spread.
func exKurtosis(values []float64) float64 {
	if len(values) < 4 {
		return 0
	}
	return sanitize(stat.ExKurtosis(values, nil))
}

// sanitize maps NaN and Inf to 0 so degenerate inputs yield neutral
// feature values instead of poisoning the vector.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
