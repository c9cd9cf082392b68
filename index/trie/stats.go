package trie

import (
	"fmt"

	"github.com/hupe1980/sfatrie/index"
)

// Stats summarizes the shape of the trie.
type Stats struct {
	Mode           index.Mode
	Entries        int
	SeriesLength   int
	WordLength     int
	LeafThreshold  int
	InnerNodes     int
	Leaves         int
	TerminalLeaves int // leaves at full word length
	MaxDepth       int
	MaxLeafSize    int
	AvgLeafSize    float64
}

// String returns a one-line summary.
func (s Stats) String() string {
	return fmt.Sprintf("mode=%s entries=%d inner=%d leaves=%d terminal=%d depth=%d avgLeaf=%.1f maxLeaf=%d",
		s.Mode, s.Entries, s.InnerNodes, s.Leaves, s.TerminalLeaves, s.MaxDepth, s.AvgLeafSize, s.MaxLeafSize)
}

// Stats returns statistics about the trie.
func (ix *Index) Stats() Stats {
	s := Stats{
		Mode:          ix.Mode(),
		Entries:       ix.size,
		SeriesLength:  ix.SeriesLength(),
		WordLength:    ix.wordLength,
		LeafThreshold: ix.opts.LeafThreshold,
	}

	var walk func(n node, depth int)
	walk = func(n node, depth int) {
		s.MaxDepth = max(s.MaxDepth, depth)
		switch n := n.(type) {
		case *innerNode:
			s.InnerNodes++
			for _, child := range n.children {
				if child != nil {
					walk(child, depth+1)
				}
			}
		case *leafNode:
			s.Leaves++
			if depth == ix.wordLength && ix.wordLength > 0 {
				s.TerminalLeaves++
			}
			s.MaxLeafSize = max(s.MaxLeafSize, len(n.entries))
		default:
			panic(fmt.Sprintf("trie: unexpected node type %T", n))
		}
	}
	walk(ix.root, 0)

	if s.Leaves > 0 {
		s.AvgLeafSize = float64(s.Entries) / float64(s.Leaves)
	}
	return s
}
