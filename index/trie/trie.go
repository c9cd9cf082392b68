package trie

import (
	"fmt"
	"sync/atomic"

	"github.com/hupe1980/sfatrie/index"
	"github.com/hupe1980/sfatrie/symbolic"
)

// Compile time check to ensure Index satisfies the Searcher interface.
var _ index.Searcher = (*Index)(nil)

// Index is a symbolic trie over the units of a Source.
type Index struct {
	opts       Options
	transform  symbolic.Transform
	source     *index.Source
	wordLength int
	root       node
	size       int

	costs struct {
		nodes, leaves, examined, abandoned atomic.Int64
	}
}

// BuildWholeMatching indexes every series of data as one unit.
// The series must be z-normalized and of equal length. Empty data yields an
// empty index.
func BuildWholeMatching(data [][]float64, t symbolic.Transform, optFns ...func(o *Options)) (*Index, error) {
	src, err := index.NewWholeSource(data)
	if err != nil {
		return nil, err
	}
	return Build(src, t, optFns...)
}

// BuildSubsequenceMatching indexes every window of length w of raw.
// Windows are normalized with their own mean and std. A window not shorter
// than raw yields an empty index.
func BuildSubsequenceMatching(raw []float64, w int, t symbolic.Transform, optFns ...func(o *Options)) (*Index, error) {
	src, err := index.NewSubsequenceSource(raw, w)
	if err != nil {
		return nil, err
	}
	return Build(src, t, optFns...)
}

// Build indexes every unit of src. t may be nil only when src is empty.
func Build(src *index.Source, t symbolic.Transform, optFns ...func(o *Options)) (*Index, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.LeafThreshold <= 0 {
		return nil, &index.ErrInvalidOption{Name: "leaf threshold", Value: opts.LeafThreshold}
	}

	ix := &Index{
		opts:      opts,
		transform: t,
		source:    src,
	}

	if src.Len() == 0 {
		ix.root = &leafNode{}
		return ix, nil
	}

	if t == nil {
		return nil, &index.ErrInvalidOption{Name: "transform", Value: 0}
	}
	if t.SeriesLength() != src.SeriesLength() {
		return nil, &index.ErrDimensionMismatch{Expected: t.SeriesLength(), Actual: src.SeriesLength()}
	}

	ix.wordLength = t.WordLength()
	ix.root = ix.newLeaf(0)

	total := src.Len()
	words := make(symbolic.Word, total*ix.wordLength)
	unit := make([]float64, src.SeriesLength())
	coeffs := make([]float64, ix.wordLength)

	for i := range total {
		id := uint32(i)
		unit = src.Unit(unit, id)
		coeffs = t.Approximate(coeffs, unit)

		e := entry{
			id:   id,
			word: t.Quantize(words[i*ix.wordLength:(i+1)*ix.wordLength:(i+1)*ix.wordLength], coeffs),
		}
		e.mean, e.std = src.Stats(id)

		ix.root = ix.insert(ix.root, e)
		ix.size++

		if opts.Progress != nil && (ix.size%progressInterval == 0 || ix.size == total) {
			opts.Progress(ix.size, total)
		}
	}

	return ix, nil
}

// insert walks from n along the word of e, appends e to the leaf it reaches
// and splits that leaf if it overflows. It returns the node replacing n.
func (ix *Index) insert(n node, e entry) node {
	switch n := n.(type) {
	case *innerNode:
		n.env.widen(e.word)
		n.count++

		symbol := e.word[n.level]
		child := n.children[symbol]
		if child == nil {
			child = ix.newLeaf(n.level + 1)
		}
		n.children[symbol] = ix.insert(child, e)
		return n
	case *leafNode:
		n.entries = append(n.entries, e)
		n.env.widen(e.word)
		if len(n.entries) > ix.opts.LeafThreshold && n.depth < ix.wordLength {
			return ix.split(n)
		}
		return n
	default:
		panic(fmt.Sprintf("trie: unexpected node type %T", n))
	}
}

// split replaces leaf by an inner node keyed by the next word position and
// redistributes the entries into fresh leaves below it.
func (ix *Index) split(leaf *leafNode) node {
	inner := &innerNode{
		env:      newEnvelope(ix.wordLength),
		level:    leaf.depth,
		children: make([]node, ix.transform.AlphabetSize()),
	}
	for _, e := range leaf.entries {
		ix.insert(inner, e)
	}
	return inner
}

func (ix *Index) newLeaf(depth int) *leafNode {
	return &leafNode{
		env:   newEnvelope(ix.wordLength),
		depth: depth,
	}
}

// Mode returns the matching mode.
func (ix *Index) Mode() index.Mode { return ix.source.Mode() }

// Len returns the number of indexed units.
func (ix *Index) Len() int { return ix.size }

// SeriesLength returns the length of every unit.
func (ix *Index) SeriesLength() int { return ix.source.SeriesLength() }

// WordLength returns the word length, which is also the maximum trie depth.
func (ix *Index) WordLength() int { return ix.wordLength }

// LeafThreshold returns the split threshold of the leaves.
func (ix *Index) LeafThreshold() int { return ix.opts.LeafThreshold }

// Transform returns the symbolic transform keying the trie.
func (ix *Index) Transform() symbolic.Transform { return ix.transform }

// IOCosts returns the costs accumulated by all searches since the last reset.
func (ix *Index) IOCosts() index.IOCosts {
	return index.IOCosts{
		NodesVisited:     ix.costs.nodes.Load(),
		LeavesVisited:    ix.costs.leaves.Load(),
		EntriesExamined:  ix.costs.examined.Load(),
		EntriesAbandoned: ix.costs.abandoned.Load(),
	}
}

// ResetIOCosts zeroes the accumulated costs. It never affects search results.
func (ix *Index) ResetIOCosts() {
	ix.costs.nodes.Store(0)
	ix.costs.leaves.Store(0)
	ix.costs.examined.Store(0)
	ix.costs.abandoned.Store(0)
}

func (ix *Index) record(c index.IOCosts) {
	ix.costs.nodes.Add(c.NodesVisited)
	ix.costs.leaves.Add(c.LeavesVisited)
	ix.costs.examined.Add(c.EntriesExamined)
	ix.costs.abandoned.Add(c.EntriesAbandoned)
}
