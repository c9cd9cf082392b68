// Package index provides the types shared by the series indexes.
//
// Two index implementations answer the same queries:
//
//   - trie: symbolic-word trie with lower-bound pruning (exact)
//   - flat: parallel linear scan (exact, used as ground truth)
//
// # Matching Modes
//
//   - ModeWholeMatching: every series is one indexable unit; its identifier
//     is the series position.
//   - ModeSubsequenceMatching: every sliding window of one long series is a
//     unit; its identifier is the window's start offset.
//
// # Distances
//
// Queries must be z-normalized and as long as an indexed unit. Results carry
// the true Euclidean distance to the z-normalized unit.
//
// # Search Interface
//
//	type Searcher interface {
//	    Mode() Mode
//	    Len() int
//	    SeriesLength() int
//	    SearchKNN(query []float64, k int) ([]Match, IOCosts, error)
//	    SearchRange(query []float64, epsilon float64) (*roaring.Bitmap, IOCosts, error)
//	}
package index
