package trie

import (
	"github.com/hupe1980/sfatrie/symbolic"
)

// lowerBound returns the squared distance between the query coefficients and
// the reconstruction cell spanned by lo and hi: per position, the gap between
// the coefficient and the interval from the lower edge of lo's bin to the
// upper edge of hi's bin, zero when the coefficient lies inside.
//
// The result never exceeds the squared Euclidean distance between the query
// and any series whose word lies in the cell. Summation stops once it exceeds
// threshold; the partial sum is still a valid bound.
func lowerBound(t symbolic.Transform, coeffs []float64, lo, hi symbolic.Word, threshold float64) float64 {
	var sum float64
	for pos, c := range coeffs {
		low, _ := t.Bounds(pos, lo[pos])
		_, high := t.Bounds(pos, hi[pos])

		var d float64
		if c < low {
			d = low - c
		} else if c > high {
			d = c - high
		}
		sum += d * d

		if sum > threshold {
			return sum
		}
	}
	return sum
}

func (ix *Index) nodeBound(coeffs []float64, n node, threshold float64) float64 {
	env := n.envelope()
	return lowerBound(ix.transform, coeffs, env.lo, env.hi, threshold)
}

func (ix *Index) entryBound(coeffs []float64, e *entry, threshold float64) float64 {
	return lowerBound(ix.transform, coeffs, e.word, e.word, threshold)
}
