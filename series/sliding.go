package series

import "math"

// SlidingStats returns the mean and population standard deviation of every
// window of length w in x, indexed by start offset in [0, len(x)-w].
//
// It runs in one pass: each step adds the entering sample to a running sum
// and sum of squares and removes the leaving one.
// It returns nil slices when w <= 0 or w > len(x).
func SlidingStats(x []float64, w int) (means, stds []float64) {
	if w <= 0 || w > len(x) {
		return nil, nil
	}

	count := len(x) - w + 1
	means = make([]float64, count)
	stds = make([]float64, count)

	var sum, sumSq float64
	for _, v := range x[:w] {
		sum += v
		sumSq += v * v
	}

	n := float64(w)
	for off := 0; off < count; off++ {
		if off > 0 {
			leaving, entering := x[off-1], x[off+w-1]
			sum += entering - leaving
			sumSq += entering*entering - leaving*leaving
		}
		mean := sum / n
		means[off] = mean
		stds[off] = math.Sqrt(max(sumSq/n-mean*mean, 0))
	}

	return means, stds
}
