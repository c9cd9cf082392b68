// Package index provides interfaces and types for series similarity indexes.
package index

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// Mode tells how a collection is cut into indexable units.
type Mode int

// Constants representing the matching modes.
const (
	ModeWholeMatching Mode = iota
	ModeSubsequenceMatching
)

// String returns a string representation of the Mode.
func (m Mode) String() string {
	switch m {
	case ModeWholeMatching:
		return "WholeMatching"
	case ModeSubsequenceMatching:
		return "SubsequenceMatching"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// Match represents a search result.
type Match struct {
	// ID is the series position (whole matching) or window offset (subsequence matching).
	ID uint32

	// Distance is the Euclidean distance between the query and the unit.
	Distance float64
}

// IOCosts counts the work a search performed.
type IOCosts struct {
	NodesVisited     int64 // trie nodes popped from the frontier
	LeavesVisited    int64 // leaves whose entries were inspected
	EntriesExamined  int64 // exact distance computations started
	EntriesAbandoned int64 // exact distance computations abandoned early
}

// Add accumulates other into c.
func (c *IOCosts) Add(other IOCosts) {
	c.NodesVisited += other.NodesVisited
	c.LeavesVisited += other.LeavesVisited
	c.EntriesExamined += other.EntriesExamined
	c.EntriesAbandoned += other.EntriesAbandoned
}

// Searcher answers exact k-NN and range queries.
type Searcher interface {
	// Mode returns the matching mode.
	Mode() Mode

	// Len returns the number of indexed units.
	Len() int

	// SeriesLength returns the length of every unit and therefore of every query.
	SeriesLength() int

	// SearchKNN returns up to k units closest to query, ascending by distance then ID.
	SearchKNN(query []float64, k int) ([]Match, IOCosts, error)

	// SearchRange returns the IDs of all units within epsilon of query.
	SearchRange(query []float64, epsilon float64) (*roaring.Bitmap, IOCosts, error)
}
