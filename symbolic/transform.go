package symbolic

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// MaxAlphabetSize is the largest supported alphabet; symbols are stored as bytes.
const MaxAlphabetSize = 256

var (
	// ErrNoTrainingData is returned when a transform is trained on an empty sample.
	ErrNoTrainingData = errors.New("no training data provided")
)

// ErrInvalidParameter indicates a transform parameter out of range.
type ErrInvalidParameter struct {
	Name  string
	Value int
}

func (e *ErrInvalidParameter) Error() string {
	return fmt.Sprintf("invalid %s: %d", e.Name, e.Value)
}

// Word is a symbolic word; one symbol per position.
type Word []byte

// Transform is the symbolic word oracle used to key and prune the index.
type Transform interface {
	// SeriesLength returns the input length the transform accepts.
	SeriesLength() int

	// WordLength returns the number of symbols per word.
	WordLength() int

	// AlphabetSize returns the number of distinct symbols per position.
	AlphabetSize() int

	// Approximate writes the WordLength coefficients of the normalized x to dst.
	Approximate(dst, x []float64) []float64

	// Quantize maps coefficients to symbols.
	Quantize(dst Word, coeffs []float64) Word

	// Bounds returns the reconstruction interval [lo, hi) of symbol at pos.
	// Open ends are reported as -Inf and +Inf.
	Bounds(pos int, symbol byte) (lo, hi float64)
}

// Encode computes the word of the normalized series x.
func Encode(t Transform, x []float64) Word {
	return t.Quantize(nil, t.Approximate(nil, x))
}

// MinDistance returns the squared distance between coeffs and the cell
// spanned by word. It lower-bounds the squared Euclidean distance between the
// series behind coeffs and the series behind word.
func MinDistance(t Transform, coeffs []float64, word Word) float64 {
	var sum float64
	for pos, c := range coeffs {
		lo, hi := t.Bounds(pos, word[pos])
		var d float64
		if c < lo {
			d = lo - c
		} else if c > hi {
			d = c - hi
		}
		sum += d * d
	}
	return sum
}

// bins holds per-position breakpoints; symbol s at position pos covers
// [breakpoints[pos][s-1], breakpoints[pos][s]).
type bins struct {
	alphabetSize int
	breakpoints  [][]float64
}

func (b *bins) quantize(dst Word, coeffs []float64) Word {
	if cap(dst) < len(coeffs) {
		dst = make(Word, len(coeffs))
	}
	dst = dst[:len(coeffs)]
	for pos, c := range coeffs {
		bp := b.breakpoints[pos]
		dst[pos] = byte(sort.Search(len(bp), func(i int) bool { return bp[i] > c }))
	}
	return dst
}

func (b *bins) bounds(pos int, symbol byte) (lo, hi float64) {
	bp := b.breakpoints[pos]
	lo, hi = math.Inf(-1), math.Inf(1)
	if symbol > 0 {
		lo = bp[symbol-1]
	}
	if int(symbol) < len(bp) {
		hi = bp[symbol]
	}
	return lo, hi
}

func validate(seriesLength, wordLength, alphabetSize int) error {
	if seriesLength <= 0 {
		return &ErrInvalidParameter{Name: "series length", Value: seriesLength}
	}
	if wordLength <= 0 {
		return &ErrInvalidParameter{Name: "word length", Value: wordLength}
	}
	if alphabetSize < 2 || alphabetSize > MaxAlphabetSize {
		return &ErrInvalidParameter{Name: "alphabet size", Value: alphabetSize}
	}
	return nil
}

func grow(dst []float64, n int) []float64 {
	if cap(dst) < n {
		return make([]float64, n)
	}
	return dst[:n]
}
