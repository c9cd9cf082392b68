package trie

import (
	"github.com/hupe1980/sfatrie/symbolic"
)

// node is either an *innerNode or a *leafNode. The set is closed; every type
// switch over it panics on anything else.
type node interface {
	envelope() *envelope
	isNode()
}

// entry is one indexed unit.
type entry struct {
	id   uint32
	word symbolic.Word

	// window stats, subsequence matching only
	mean, std float64
}

// envelope holds the smallest and largest symbol per word position over all
// words below a node.
type envelope struct {
	lo, hi symbolic.Word
}

func newEnvelope(wordLength int) envelope {
	e := envelope{
		lo: make(symbolic.Word, wordLength),
		hi: make(symbolic.Word, wordLength),
	}
	for i := range e.lo {
		e.lo[i] = 0xFF
	}
	return e
}

func (e *envelope) widen(word symbolic.Word) {
	for i, s := range word {
		e.lo[i] = min(e.lo[i], s)
		e.hi[i] = max(e.hi[i], s)
	}
}

func (e *envelope) contains(word symbolic.Word) bool {
	for i, s := range word {
		if s < e.lo[i] || s > e.hi[i] {
			return false
		}
	}
	return true
}

func (e *envelope) covers(other *envelope) bool {
	for i := range e.lo {
		if other.lo[i] < e.lo[i] || other.hi[i] > e.hi[i] {
			return false
		}
	}
	return true
}

// innerNode branches on the symbol at word position level.
type innerNode struct {
	env      envelope
	level    int
	children []node // indexed by symbol; nil when absent
	count    int    // entries below
}

func (n *innerNode) envelope() *envelope { return &n.env }
func (*innerNode) isNode()               {}

// leafNode holds entries sharing the symbols of its path.
type leafNode struct {
	env     envelope
	depth   int
	entries []entry
}

func (n *leafNode) envelope() *envelope { return &n.env }
func (*leafNode) isNode()               {}
