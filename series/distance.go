package series

// SquaredL2 calculates the squared Euclidean distance between two series.
// Assumes the series are the same length (caller's responsibility).
func SquaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// SquaredL2EarlyAbandon accumulates the squared distance between a and b and
// gives up as soon as the partial sum exceeds bound.
// It returns the full distance and true, or the partial sum and false.
func SquaredL2EarlyAbandon(a, b []float64, bound float64) (float64, bool) {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
		if sum > bound {
			return sum, false
		}
	}
	return sum, true
}

// SquaredL2WindowEarlyAbandon is SquaredL2EarlyAbandon against a raw window
// that is normalized on the fly with its own mean and std.
func SquaredL2WindowEarlyAbandon(q, window []float64, mean, std, bound float64) (float64, bool) {
	inv := InvStd(std)
	var sum float64
	for i := range q {
		d := q[i] - (window[i]-mean)*inv
		sum += d * d
		if sum > bound {
			return sum, false
		}
	}
	return sum, true
}
