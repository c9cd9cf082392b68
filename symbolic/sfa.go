package symbolic

import (
	"math"
	"slices"
)

// Compile time check to ensure SFA satisfies the Transform interface.
var _ Transform = (*SFA)(nil)

// SFA is a Symbolic Fourier Approximation with learned breakpoints.
//
// Position 2i holds the real and position 2i+1 the imaginary part of Fourier
// coefficient i+1. Coefficients are scaled so that, by Parseval's theorem,
// their squared distance lower-bounds the squared Euclidean distance.
type SFA struct {
	seriesLength int
	wordLength   int
	cos, sin     [][]float64 // scaled twiddle factors per coefficient
	bins
}

// TrainSFA learns equi-depth breakpoints from normalized samples.
// All samples must have the same length.
func TrainSFA(samples [][]float64, wordLength, alphabetSize int) (*SFA, error) {
	if len(samples) == 0 {
		return nil, ErrNoTrainingData
	}

	s, err := newSFA(len(samples[0]), wordLength, alphabetSize)
	if err != nil {
		return nil, err
	}

	columns := make([][]float64, wordLength)
	for pos := range columns {
		columns[pos] = make([]float64, 0, len(samples))
	}

	coeffs := make([]float64, wordLength)
	for _, x := range samples {
		if len(x) != s.seriesLength {
			return nil, &ErrInvalidParameter{Name: "sample length", Value: len(x)}
		}
		coeffs = s.Approximate(coeffs, x)
		for pos, c := range coeffs {
			columns[pos] = append(columns[pos], c)
		}
	}

	s.breakpoints = make([][]float64, wordLength)
	for pos, col := range columns {
		slices.Sort(col)
		bp := make([]float64, alphabetSize-1)
		for i := range bp {
			bp[i] = col[(i+1)*len(col)/alphabetSize]
		}
		s.breakpoints[pos] = bp
	}

	return s, nil
}

func newSFA(seriesLength, wordLength, alphabetSize int) (*SFA, error) {
	if err := validate(seriesLength, wordLength, alphabetSize); err != nil {
		return nil, err
	}

	numCoeffs := (wordLength + 1) / 2
	if numCoeffs > seriesLength/2 {
		return nil, &ErrInvalidParameter{Name: "word length", Value: wordLength}
	}

	s := &SFA{
		seriesLength: seriesLength,
		wordLength:   wordLength,
		cos:          make([][]float64, numCoeffs),
		sin:          make([][]float64, numCoeffs),
		bins:         bins{alphabetSize: alphabetSize},
	}

	n := float64(seriesLength)
	for i := range numCoeffs {
		k := i + 1
		scale := math.Sqrt(2 / n)
		if 2*k == seriesLength {
			scale = math.Sqrt(1 / n)
		}
		s.cos[i] = make([]float64, seriesLength)
		s.sin[i] = make([]float64, seriesLength)
		for t := range seriesLength {
			angle := 2 * math.Pi * float64(k) * float64(t) / n
			s.cos[i][t] = scale * math.Cos(angle)
			s.sin[i][t] = -scale * math.Sin(angle)
		}
	}

	return s, nil
}

// SeriesLength implements Transform.
func (s *SFA) SeriesLength() int { return s.seriesLength }

// WordLength implements Transform.
func (s *SFA) WordLength() int { return s.wordLength }

// AlphabetSize implements Transform.
func (s *SFA) AlphabetSize() int { return s.alphabetSize }

// Approximate implements Transform.
func (s *SFA) Approximate(dst, x []float64) []float64 {
	dst = grow(dst, s.wordLength)
	for pos := 0; pos < s.wordLength; pos += 2 {
		i := pos / 2
		var re, im float64
		cos, sin := s.cos[i], s.sin[i]
		for t, v := range x {
			re += v * cos[t]
			im += v * sin[t]
		}
		dst[pos] = re
		if pos+1 < s.wordLength {
			dst[pos+1] = im
		}
	}
	return dst
}

// Quantize implements Transform.
func (s *SFA) Quantize(dst Word, coeffs []float64) Word { return s.quantize(dst, coeffs) }

// Bounds implements Transform.
func (s *SFA) Bounds(pos int, symbol byte) (lo, hi float64) { return s.bounds(pos, symbol) }

// Breakpoints returns the learned breakpoints of position pos.
func (s *SFA) Breakpoints(pos int) []float64 {
	return slices.Clone(s.breakpoints[pos])
}
