package trie

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/sfatrie/index"
)

// Check traverses the whole trie and validates its structural invariants:
// leaf capacity, depth, envelope coverage, and that every entry is reachable
// exactly once along its own word's symbol path.
//
// It is a diagnostic; searches and builds never call it. All violations are
// returned joined; each is an *index.InvariantViolation.
func (ix *Index) Check() error {
	c := &checker{
		ix:   ix,
		seen: bitset.New(uint(ix.source.Len())),
	}

	count := c.walk(ix.root, nil)

	if count != ix.size {
		c.fail(nil, fmt.Sprintf("trie holds %d entries, index reports %d", count, ix.size))
	}
	if seen := int(c.seen.Count()); seen != ix.source.Len() {
		c.fail(nil, fmt.Sprintf("%d of %d units are reachable", seen, ix.source.Len()))
	}

	return errors.Join(c.errs...)
}

type checker struct {
	ix   *Index
	seen *bitset.BitSet
	errs []error
}

func (c *checker) fail(path []byte, reason string) {
	c.errs = append(c.errs, &index.InvariantViolation{Path: path, Reason: reason})
}

// walk checks n and its subtree and returns the number of entries below it.
func (c *checker) walk(n node, path []byte) int {
	depth := len(path)
	if depth > c.ix.wordLength {
		c.fail(path, fmt.Sprintf("depth %d exceeds word length %d", depth, c.ix.wordLength))
	}

	switch n := n.(type) {
	case *innerNode:
		if n.level != depth {
			c.fail(path, fmt.Sprintf("inner node keyed by position %d at depth %d", n.level, depth))
		}

		count, children := 0, 0
		for symbol, child := range n.children {
			if child == nil {
				continue
			}
			children++
			if !n.env.covers(child.envelope()) {
				c.fail(path, fmt.Sprintf("envelope does not cover child %d", symbol))
			}
			// Full slice expression: siblings must not share a backing array.
			count += c.walk(child, append(path[:depth:depth], byte(symbol)))
		}

		if children == 0 {
			c.fail(path, "inner node without children")
		}
		if count != n.count {
			c.fail(path, fmt.Sprintf("inner node counts %d entries, subtree holds %d", n.count, count))
		}
		return count
	case *leafNode:
		if n.depth != depth {
			c.fail(path, fmt.Sprintf("leaf records depth %d at depth %d", n.depth, depth))
		}
		if depth < c.ix.wordLength && len(n.entries) > c.ix.opts.LeafThreshold {
			c.fail(path, fmt.Sprintf("leaf holds %d entries, threshold is %d", len(n.entries), c.ix.opts.LeafThreshold))
		}

		for i := range n.entries {
			c.checkEntry(n, &n.entries[i], path)
		}
		return len(n.entries)
	default:
		panic(fmt.Sprintf("trie: unexpected node type %T", n))
	}
}

func (c *checker) checkEntry(leaf *leafNode, e *entry, path []byte) {
	if int(e.id) >= c.ix.source.Len() {
		c.fail(path, fmt.Sprintf("entry %d out of range [0, %d)", e.id, c.ix.source.Len()))
		return
	}
	if c.seen.Test(uint(e.id)) {
		c.fail(path, fmt.Sprintf("entry %d indexed twice", e.id))
	}
	c.seen.Set(uint(e.id))

	if len(e.word) != c.ix.wordLength {
		c.fail(path, fmt.Sprintf("entry %d has word length %d", e.id, len(e.word)))
		return
	}
	if len(path) > len(e.word) || !bytes.Equal(e.word[:len(path)], path) {
		c.fail(path, fmt.Sprintf("entry %d with word %v is not on its symbol path", e.id, e.word))
	}
	if !leaf.env.contains(e.word) {
		c.fail(path, fmt.Sprintf("leaf envelope does not contain entry %d", e.id))
	}
}
