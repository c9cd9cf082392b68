package series

import "math"

// MinStd is the smallest standard deviation treated as non-constant.
// Windows below it normalize to (approximately) all zeros.
const MinStd = 1e-8

// MeanStd returns the mean and population standard deviation of x.
func MeanStd(x []float64) (mean, std float64) {
	if len(x) == 0 {
		return 0, 0
	}
	var sum, sumSq float64
	for _, v := range x {
		sum += v
		sumSq += v * v
	}
	n := float64(len(x))
	mean = sum / n
	return mean, math.Sqrt(max(sumSq/n-mean*mean, 0))
}

// InvStd returns the factor that scales a mean-free sample to unit variance.
func InvStd(std float64) float64 {
	if std < MinStd {
		return 1
	}
	return 1 / std
}

// ZNormalize writes the zero-mean, unit-variance version of x into dst and returns it.
// dst is grown as needed; it may alias x.
func ZNormalize(dst, x []float64) []float64 {
	mean, std := MeanStd(x)
	return NormalizeWith(dst, x, mean, std)
}

// NormalizeWith normalizes x using a previously computed mean and std.
func NormalizeWith(dst, x []float64, mean, std float64) []float64 {
	dst = grow(dst, len(x))
	inv := InvStd(std)
	for i, v := range x {
		dst[i] = (v - mean) * inv
	}
	return dst
}

// IsNormalized reports whether x has mean 0 and std 1 within tol.
// Constant series (std 0) with mean 0 are accepted as well.
func IsNormalized(x []float64, tol float64) bool {
	mean, std := MeanStd(x)
	if math.Abs(mean) > tol {
		return false
	}
	return math.Abs(std-1) <= tol || std < MinStd
}

func grow(dst []float64, n int) []float64 {
	if cap(dst) < n {
		return make([]float64, n)
	}
	return dst[:n]
}
