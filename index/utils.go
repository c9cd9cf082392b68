package index

import (
	"math"

	"github.com/hupe1980/sfatrie/internal/queue"
)

// ValidateKNN checks the preconditions of a k-NN query.
func ValidateKNN(seriesLength int, query []float64, k int) error {
	if k <= 0 {
		return ErrInvalidK
	}
	return validateQuery(seriesLength, query)
}

// ValidateRange checks the preconditions of a range query.
func ValidateRange(seriesLength int, query []float64, epsilon float64) error {
	if epsilon < 0 || math.IsNaN(epsilon) {
		return ErrInvalidEpsilon
	}
	return validateQuery(seriesLength, query)
}

func validateQuery(seriesLength int, query []float64) error {
	// An empty index accepts any query and answers with nothing.
	if seriesLength > 0 && len(query) != seriesLength {
		return &ErrDimensionMismatch{Expected: seriesLength, Actual: len(query)}
	}
	return nil
}

// MatchesFromTopK converts a collector keyed by squared distance into matches.
func MatchesFromTopK(t *queue.TopK) []Match {
	matches := make([]Match, 0, t.Len())
	for key, id := range t.All() {
		matches = append(matches, Match{ID: id, Distance: math.Sqrt(key)})
	}
	return matches
}
