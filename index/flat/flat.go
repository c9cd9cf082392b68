// Package flat provides an exhaustive scan over an index.Source.
//
// It answers the same queries as the trie with the same distance arithmetic,
// so it serves as ground truth for the trie and as a baseline for benchmarks.
package flat

import (
	"runtime"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/sfatrie/index"
	"github.com/hupe1980/sfatrie/internal/queue"
	"golang.org/x/sync/errgroup"
)

// Compile time check to ensure Flat satisfies the Searcher interface.
var _ index.Searcher = (*Flat)(nil)

// Options contains configuration options for the flat index.
type Options struct {
	// Shards is the number of goroutines a query is split across.
	// Shard s scans the IDs with id % Shards == s.
	Shards int
}

// DefaultOptions contains the default configuration options for the flat index.
var DefaultOptions = Options{
	Shards: runtime.GOMAXPROCS(0),
}

// Flat scans every unit of its source for each query.
type Flat struct {
	opts   Options
	source *index.Source

	examined, abandoned atomic.Int64
}

// New creates a flat index over src.
func New(src *index.Source, optFns ...func(o *Options)) (*Flat, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Shards <= 0 {
		return nil, &index.ErrInvalidOption{Name: "shards", Value: opts.Shards}
	}

	return &Flat{opts: opts, source: src}, nil
}

// Mode returns the matching mode of the source.
func (f *Flat) Mode() index.Mode { return f.source.Mode() }

// Len returns the number of units.
func (f *Flat) Len() int { return f.source.Len() }

// SeriesLength returns the length of every unit.
func (f *Flat) SeriesLength() int { return f.source.SeriesLength() }

// SearchKNN returns the k units closest to query, ascending by distance and then ID.
func (f *Flat) SearchKNN(query []float64, k int) ([]index.Match, index.IOCosts, error) {
	var costs index.IOCosts
	if err := index.ValidateKNN(f.SeriesLength(), query, k); err != nil {
		return nil, costs, err
	}
	n := f.Len()
	if n == 0 {
		return []index.Match{}, costs, nil
	}

	k = min(k, n)
	shards := f.shards(n)
	partial := make([]*queue.TopK, shards)
	shardCosts := make([]index.IOCosts, shards)

	var g errgroup.Group
	for s := range shards {
		g.Go(func() error {
			topk := queue.NewTopK(k)
			c := &shardCosts[s]
			for id := s; id < n; id += shards {
				c.EntriesExamined++
				dist, ok := f.source.Distance(query, uint32(id), topk.MaxKey())
				if !ok {
					c.EntriesAbandoned++
					continue
				}
				topk.Insert(dist, uint32(id))
			}
			partial[s] = topk
			return nil
		})
	}
	_ = g.Wait()

	result := partial[0]
	for _, p := range partial[1:] {
		result.Merge(p)
	}
	for _, c := range shardCosts {
		costs.Add(c)
	}
	f.record(costs)

	return index.MatchesFromTopK(result), costs, nil
}

// SearchRange returns the IDs of all units within epsilon of query.
func (f *Flat) SearchRange(query []float64, epsilon float64) (*roaring.Bitmap, index.IOCosts, error) {
	var costs index.IOCosts
	if err := index.ValidateRange(f.SeriesLength(), query, epsilon); err != nil {
		return nil, costs, err
	}
	n := f.Len()
	if n == 0 {
		return roaring.New(), costs, nil
	}

	radius := epsilon * epsilon
	shards := f.shards(n)
	partial := make([]*roaring.Bitmap, shards)
	shardCosts := make([]index.IOCosts, shards)

	var g errgroup.Group
	for s := range shards {
		g.Go(func() error {
			bm := roaring.New()
			c := &shardCosts[s]
			for id := s; id < n; id += shards {
				c.EntriesExamined++
				if _, ok := f.source.Distance(query, uint32(id), radius); !ok {
					c.EntriesAbandoned++
					continue
				}
				bm.Add(uint32(id))
			}
			partial[s] = bm
			return nil
		})
	}
	_ = g.Wait()

	for _, c := range shardCosts {
		costs.Add(c)
	}
	f.record(costs)

	return roaring.FastOr(partial...), costs, nil
}

// IOCosts returns the costs accumulated since the last reset.
func (f *Flat) IOCosts() index.IOCosts {
	return index.IOCosts{
		EntriesExamined:  f.examined.Load(),
		EntriesAbandoned: f.abandoned.Load(),
	}
}

// ResetIOCosts zeroes the accumulated costs.
func (f *Flat) ResetIOCosts() {
	f.examined.Store(0)
	f.abandoned.Store(0)
}

func (f *Flat) record(c index.IOCosts) {
	f.examined.Add(c.EntriesExamined)
	f.abandoned.Add(c.EntriesAbandoned)
}

// shards caps the shard count so every shard owns at least one unit.
func (f *Flat) shards(n int) int {
	return max(1, min(f.opts.Shards, n))
}
