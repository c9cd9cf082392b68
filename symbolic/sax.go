package symbolic

import "math"

// Compile time check to ensure SAX satisfies the Transform interface.
var _ Transform = (*SAX)(nil)

// SAX is a Symbolic Aggregate approXimation over piecewise aggregate means.
//
// Each coefficient is a segment mean scaled by the square root of the
// segment length, so segments of unequal length still lower-bound the
// Euclidean distance.
type SAX struct {
	seriesLength int
	segments     []int // segment start offsets plus the series length
	bins
}

// NewSAX creates a SAX transform with standard-normal breakpoints.
func NewSAX(seriesLength, wordLength, alphabetSize int) (*SAX, error) {
	if err := validate(seriesLength, wordLength, alphabetSize); err != nil {
		return nil, err
	}
	if wordLength > seriesLength {
		return nil, &ErrInvalidParameter{Name: "word length", Value: wordLength}
	}

	s := &SAX{
		seriesLength: seriesLength,
		segments:     make([]int, wordLength+1),
		bins: bins{
			alphabetSize: alphabetSize,
			breakpoints:  make([][]float64, wordLength),
		},
	}

	gaussian := make([]float64, alphabetSize-1)
	for i := range gaussian {
		p := float64(i+1) / float64(alphabetSize)
		gaussian[i] = math.Sqrt2 * math.Erfinv(2*p-1)
	}

	for pos := 0; pos <= wordLength; pos++ {
		s.segments[pos] = pos * seriesLength / wordLength
	}
	for pos := range wordLength {
		scale := math.Sqrt(float64(s.segments[pos+1] - s.segments[pos]))
		bp := make([]float64, len(gaussian))
		for i, g := range gaussian {
			bp[i] = g * scale
		}
		s.breakpoints[pos] = bp
	}

	return s, nil
}

// SeriesLength implements Transform.
func (s *SAX) SeriesLength() int { return s.seriesLength }

// WordLength implements Transform.
func (s *SAX) WordLength() int { return len(s.segments) - 1 }

// AlphabetSize implements Transform.
func (s *SAX) AlphabetSize() int { return s.alphabetSize }

// Approximate implements Transform.
func (s *SAX) Approximate(dst, x []float64) []float64 {
	dst = grow(dst, s.WordLength())
	for pos := range dst {
		start, end := s.segments[pos], s.segments[pos+1]
		var sum float64
		for _, v := range x[start:end] {
			sum += v
		}
		// mean * sqrt(len) == sum / sqrt(len)
		dst[pos] = sum / math.Sqrt(float64(end-start))
	}
	return dst
}

// Quantize implements Transform.
func (s *SAX) Quantize(dst Word, coeffs []float64) Word { return s.quantize(dst, coeffs) }

// Bounds implements Transform.
func (s *SAX) Bounds(pos int, symbol byte) (lo, hi float64) { return s.bounds(pos, symbol) }
