package sfatrie

import (
	"context"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/sfatrie/index"
	"github.com/hupe1980/sfatrie/index/trie"
	"github.com/hupe1980/sfatrie/series"
	"github.com/hupe1980/sfatrie/symbolic"
	"golang.org/x/time/rate"
)

type (
	// Match is one k-NN result.
	Match = index.Match

	// IOCosts counts the work done by searches.
	IOCosts = index.IOCosts

	// Mode distinguishes whole from subsequence matching.
	Mode = index.Mode

	// Stats summarizes the shape of the trie.
	Stats = trie.Stats
)

const (
	ModeWholeMatching       = index.ModeWholeMatching
	ModeSubsequenceMatching = index.ModeSubsequenceMatching
)

// Index is an exact similarity search index over z-normalized series.
//
// An Index is immutable once built. All methods are safe for concurrent use.
type Index struct {
	trie    *trie.Index
	opts    options
	logger  *Logger
	metrics MetricsCollector
}

// BuildWholeMatching indexes every series of data as one unit.
// All series must have the same length. Unless WithNormalization is given
// they must already be z-normalized.
//
// Empty data yields an empty index that answers every query with nothing.
func BuildWholeMatching(ctx context.Context, data [][]float64, optFns ...Option) (*Index, error) {
	o := applyOptions(optFns)

	if o.normalize {
		normalized := make([][]float64, len(data))
		for i, x := range data {
			normalized[i] = series.ZNormalize(nil, x)
		}
		data = normalized
	}

	return build(ctx, o, ModeWholeMatching, func() (*index.Source, error) {
		return index.NewWholeSource(data)
	})
}

// BuildSubsequenceMatching indexes every window of length w of raw. Windows
// are z-normalized on the fly; raw itself is never modified.
//
// A window not shorter than raw yields an empty index.
func BuildSubsequenceMatching(ctx context.Context, raw []float64, w int, optFns ...Option) (*Index, error) {
	o := applyOptions(optFns)

	return build(ctx, o, ModeSubsequenceMatching, func() (*index.Source, error) {
		return index.NewSubsequenceSource(raw, w)
	})
}

func build(ctx context.Context, o options, mode Mode, newSource func() (*index.Source, error)) (ix *Index, err error) {
	start := time.Now()
	logger := o.logger.WithMode(mode)
	defer func() {
		entries := 0
		if ix != nil {
			entries = ix.Len()
		}
		o.metricsCollector.RecordBuild(entries, time.Since(start), err)
		logger.LogBuild(ctx, mode, entries, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateOptions(o); err != nil {
		return nil, err
	}

	src, err := newSource()
	if err != nil {
		return nil, translateError(err)
	}

	var t symbolic.Transform
	if src.Len() > 0 {
		t, err = newTransform(o, src)
		if err != nil {
			return nil, translateError(err)
		}
	}

	progress := rate.Sometimes{First: 1, Interval: time.Second}
	tr, err := trie.Build(src, t, func(to *trie.Options) {
		to.LeafThreshold = o.leafThreshold
		to.Progress = func(done, total int) {
			progress.Do(func() {
				logger.DebugContext(ctx, "build progress", "done", done, "total", total)
			})
		}
	})
	if err != nil {
		return nil, translateError(err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Index{
		trie:    tr,
		opts:    o,
		logger:  o.logger,
		metrics: o.metricsCollector,
	}, nil
}

func validateOptions(o options) error {
	if o.transform != nil {
		return nil
	}
	if o.wordLength <= 0 {
		return &ErrInvalidOption{Name: "word length", Value: o.wordLength}
	}
	if o.alphabetSize < 2 || o.alphabetSize > symbolic.MaxAlphabetSize {
		return &ErrInvalidOption{Name: "alphabet size", Value: o.alphabetSize}
	}
	if !o.sax && o.trainingSampleSize <= 0 {
		return &ErrInvalidOption{Name: "training sample size", Value: o.trainingSampleSize}
	}
	return nil
}

func newTransform(o options, src *index.Source) (symbolic.Transform, error) {
	switch {
	case o.transform != nil:
		return o.transform, nil
	case o.sax:
		return symbolic.NewSAX(src.SeriesLength(), o.wordLength, o.alphabetSize)
	default:
		return symbolic.TrainSFA(trainingSample(src, o.trainingSampleSize), o.wordLength, o.alphabetSize)
	}
}

// trainingSample returns up to size normalized units spread evenly over src.
func trainingSample(src *index.Source, size int) [][]float64 {
	n := src.Len()
	step := max(1, (n+size-1)/size)

	sample := make([][]float64, 0, min(n, size))
	for id := 0; id < n; id += step {
		sample = append(sample, src.Unit(nil, uint32(id)))
	}
	return sample
}

// KNN returns the k units closest to query, ascending by distance with ties
// broken by the lower ID, together with the costs of this search.
func (ix *Index) KNN(ctx context.Context, query []float64, k int) (matches []Match, costs IOCosts, err error) {
	start := time.Now()
	defer func() {
		ix.metrics.RecordSearch(k, costs.EntriesExamined, time.Since(start), err)
		ix.logger.LogSearch(ctx, k, len(matches), costs, err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, IOCosts{}, err
	}

	matches, costs, err = ix.trie.SearchKNN(ix.prepare(query), k)
	return matches, costs, translateError(err)
}

// Range returns the IDs of all units within distance epsilon of query,
// together with the costs of this search.
func (ix *Index) Range(ctx context.Context, query []float64, epsilon float64) (ids *roaring.Bitmap, costs IOCosts, err error) {
	start := time.Now()
	defer func() {
		var found uint64
		if ids != nil {
			found = ids.GetCardinality()
		}
		ix.metrics.RecordRangeSearch(found, costs.EntriesExamined, time.Since(start), err)
		ix.logger.LogRangeSearch(ctx, epsilon, found, costs, err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, IOCosts{}, err
	}

	ids, costs, err = ix.trie.SearchRange(ix.prepare(query), epsilon)
	return ids, costs, translateError(err)
}

func (ix *Index) prepare(query []float64) []float64 {
	if !ix.opts.normalize {
		return query
	}
	return series.ZNormalize(nil, query)
}

// Check validates the structural invariants of the trie. All violations are
// returned joined; each unwraps to an *index.InvariantViolation.
func (ix *Index) Check(ctx context.Context) error {
	err := ix.trie.Check()
	ix.logger.LogCheck(ctx, err)
	return err
}

// Len returns the number of indexed units.
func (ix *Index) Len() int { return ix.trie.Len() }

// Mode returns the matching mode.
func (ix *Index) Mode() Mode { return ix.trie.Mode() }

// SeriesLength returns the length of every unit and of every query.
func (ix *Index) SeriesLength() int { return ix.trie.SeriesLength() }

// Transform returns the symbolic transform keying the trie, or nil for an
// empty index.
func (ix *Index) Transform() symbolic.Transform { return ix.trie.Transform() }

// Stats returns statistics about the trie.
func (ix *Index) Stats() Stats { return ix.trie.Stats() }

// IOCosts returns the costs accumulated by all searches since the last reset.
func (ix *Index) IOCosts() IOCosts { return ix.trie.IOCosts() }

// ResetIOCosts zeroes the accumulated costs.
func (ix *Index) ResetIOCosts() { ix.trie.ResetIOCosts() }
