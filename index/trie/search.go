package trie

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/sfatrie/index"
	"github.com/hupe1980/sfatrie/internal/pool"
	"github.com/hupe1980/sfatrie/internal/queue"
)

var searchPool = pool.New[node]()

// SearchKNN returns up to k entries closest to the z-normalized query,
// ascending by distance and then by ID. Fewer than k entries are returned
// only when the index holds fewer.
func (ix *Index) SearchKNN(query []float64, k int) ([]index.Match, index.IOCosts, error) {
	var costs index.IOCosts
	if err := index.ValidateKNN(ix.SeriesLength(), query, k); err != nil {
		return nil, costs, err
	}
	if ix.size == 0 {
		return []index.Match{}, costs, nil
	}

	topk := queue.NewTopK(min(k, ix.size))
	ix.traverse(query, &costs, topk.MaxKey, func(id uint32, dist float64) {
		topk.Insert(dist, id)
	})
	ix.record(costs)

	return index.MatchesFromTopK(topk), costs, nil
}

// SearchRange returns the IDs of all entries whose distance to the
// z-normalized query is at most epsilon.
func (ix *Index) SearchRange(query []float64, epsilon float64) (*roaring.Bitmap, index.IOCosts, error) {
	var costs index.IOCosts
	if err := index.ValidateRange(ix.SeriesLength(), query, epsilon); err != nil {
		return nil, costs, err
	}

	result := roaring.New()
	if ix.size == 0 {
		return result, costs, nil
	}

	radius := epsilon * epsilon
	ix.traverse(query, &costs, func() float64 { return radius }, func(id uint32, _ float64) {
		result.Add(id)
	})
	ix.record(costs)

	return result, costs, nil
}

// traverse visits nodes best-first by lower bound. A node or entry is skipped
// once its bound exceeds threshold(); entries whose exact squared distance
// stays within the threshold are passed to accept.
func (ix *Index) traverse(query []float64, costs *index.IOCosts, threshold func() float64, accept func(id uint32, dist float64)) {
	sc := searchPool.Get()
	defer searchPool.Put(sc)

	sc.Coeffs = ix.transform.Approximate(sc.Coeffs, query)
	coeffs := sc.Coeffs

	frontier := sc.Frontier
	frontier.Push(ix.root, ix.nodeBound(coeffs, ix.root, math.Inf(1)))

	for {
		item, ok := frontier.Pop()
		if !ok {
			return
		}
		// The frontier is ordered by bound; nothing left can qualify.
		if item.Priority > threshold() {
			return
		}
		costs.NodesVisited++

		switch n := item.Value.(type) {
		case *innerNode:
			bound := threshold()
			for _, child := range n.children {
				if child == nil {
					continue
				}
				if lb := ix.nodeBound(coeffs, child, bound); lb <= bound {
					frontier.Push(child, lb)
				}
			}
		case *leafNode:
			costs.LeavesVisited++
			for i := range n.entries {
				e := &n.entries[i]
				bound := threshold()
				if ix.entryBound(coeffs, e, bound) > bound {
					continue
				}

				costs.EntriesExamined++
				dist, ok := ix.distance(query, e, bound)
				if !ok {
					costs.EntriesAbandoned++
					continue
				}
				accept(e.id, dist)
			}
		default:
			panic(fmt.Sprintf("trie: unexpected node type %T", n))
		}
	}
}

// distance computes the exact squared distance to e, abandoning once it exceeds bound.
func (ix *Index) distance(query []float64, e *entry, bound float64) (float64, bool) {
	if ix.source.Mode() == index.ModeSubsequenceMatching {
		return ix.source.WindowDistance(query, e.id, e.mean, e.std, bound)
	}
	return ix.source.Distance(query, e.id, bound)
}
