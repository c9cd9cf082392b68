package index

import (
	"github.com/hupe1980/sfatrie/internal/conv"
	"github.com/hupe1980/sfatrie/series"
)

// Source gives read access to the indexed units at full resolution.
//
// It keeps a handle to the caller's data and never mutates it; the data must
// outlive every index built on the Source.
type Source struct {
	mode   Mode
	length int

	// whole matching
	series [][]float64

	// subsequence matching
	raw         []float64
	means, stds []float64
}

// NewWholeSource wraps z-normalized series of equal length.
func NewWholeSource(data [][]float64) (*Source, error) {
	if _, err := conv.IntToUint32(len(data)); err != nil {
		return nil, err
	}
	s := &Source{mode: ModeWholeMatching, series: data}
	if len(data) == 0 {
		return s, nil
	}
	s.length = len(data[0])
	for _, x := range data {
		if len(x) != s.length {
			return nil, &ErrDimensionMismatch{Expected: s.length, Actual: len(x)}
		}
	}
	return s, nil
}

// NewSubsequenceSource wraps one raw series cut into windows of length w.
// Window statistics are computed in one linear pass.
// A window not shorter than the series yields an empty Source.
func NewSubsequenceSource(raw []float64, w int) (*Source, error) {
	if w <= 0 {
		return nil, ErrInvalidWindow
	}
	if _, err := conv.IntToUint32(len(raw)); err != nil {
		return nil, err
	}
	s := &Source{mode: ModeSubsequenceMatching, raw: raw, length: w}
	if w >= len(raw) {
		return s, nil
	}
	s.means, s.stds = series.SlidingStats(raw, w)
	return s, nil
}

// Mode returns the matching mode.
func (s *Source) Mode() Mode { return s.mode }

// SeriesLength returns the length of a unit.
func (s *Source) SeriesLength() int { return s.length }

// Len returns the number of units.
func (s *Source) Len() int {
	if s.mode == ModeSubsequenceMatching {
		return len(s.means)
	}
	return len(s.series)
}

// Stats returns the mean and std of a subsequence window.
// Whole-matching units are already normalized and report (0, 1).
func (s *Source) Stats(id uint32) (mean, std float64) {
	if s.mode == ModeSubsequenceMatching {
		return s.means[id], s.stds[id]
	}
	return 0, 1
}

// Unit writes the z-normalized unit id into dst and returns it.
func (s *Source) Unit(dst []float64, id uint32) []float64 {
	if s.mode == ModeSubsequenceMatching {
		return series.NormalizeWith(dst, s.window(id), s.means[id], s.stds[id])
	}
	return append(dst[:0], s.series[id]...)
}

// Distance returns the squared distance between query and unit id, giving up
// once the partial sum exceeds bound. ok is false if it gave up.
func (s *Source) Distance(query []float64, id uint32, bound float64) (d float64, ok bool) {
	if s.mode == ModeSubsequenceMatching {
		return series.SquaredL2WindowEarlyAbandon(query, s.window(id), s.means[id], s.stds[id], bound)
	}
	return series.SquaredL2EarlyAbandon(query, s.series[id], bound)
}

// WindowDistance is Distance for a window whose stats the caller holds.
func (s *Source) WindowDistance(query []float64, offset uint32, mean, std, bound float64) (float64, bool) {
	return series.SquaredL2WindowEarlyAbandon(query, s.window(offset), mean, std, bound)
}

func (s *Source) window(offset uint32) []float64 {
	return s.raw[offset : int(offset)+s.length]
}
