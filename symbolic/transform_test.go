package symbolic

import (
	"math"
	"math/rand"
	"testing"

	"github.com/hupe1980/sfatrie/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomWalks(rng *rand.Rand, num, length int) [][]float64 {
	out := make([][]float64, num)
	for i := range out {
		x := make([]float64, length)
		var acc float64
		for j := range x {
			acc += rng.NormFloat64()
			x[j] = acc
		}
		out[i] = series.ZNormalize(x, x)
	}
	return out
}

func transforms(t *testing.T, samples [][]float64, wordLength, alphabetSize int) map[string]Transform {
	t.Helper()

	sfa, err := TrainSFA(samples, wordLength, alphabetSize)
	require.NoError(t, err)

	sax, err := NewSAX(len(samples[0]), wordLength, alphabetSize)
	require.NoError(t, err)

	return map[string]Transform{"SFA": sfa, "SAX": sax}
}

func TestTransformLowerBound(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	data := randomWalks(rng, 200, 128)

	for _, wordLength := range []int{4, 7, 8, 16} {
		for name, tr := range transforms(t, data, wordLength, 8) {
			t.Run(name, func(t *testing.T) {
				require.Equal(t, wordLength, tr.WordLength())
				require.Equal(t, 128, tr.SeriesLength())

				for i := 0; i < 100; i++ {
					x := data[rng.Intn(len(data))]
					y := data[rng.Intn(len(data))]

					cx := tr.Approximate(nil, x)
					cy := tr.Approximate(nil, y)
					truth := series.SquaredL2(x, y)

					assert.LessOrEqual(t, series.SquaredL2(cx, cy), truth+1e-9)
					assert.LessOrEqual(t, MinDistance(tr, cx, tr.Quantize(nil, cy)), truth+1e-9)
				}
			})
		}
	}
}

func TestTransformCoefficientInsideBin(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	data := randomWalks(rng, 300, 64)

	for name, tr := range transforms(t, data, 8, 4) {
		t.Run(name, func(t *testing.T) {
			for _, x := range data {
				coeffs := tr.Approximate(nil, x)
				word := tr.Quantize(nil, coeffs)
				require.Len(t, word, 8)

				for pos, c := range coeffs {
					require.Less(t, int(word[pos]), tr.AlphabetSize())
					lo, hi := tr.Bounds(pos, word[pos])
					assert.LessOrEqual(t, lo, c)
					assert.Less(t, c, hi)
				}
				assert.Zero(t, MinDistance(tr, coeffs, word))
			}
		})
	}
}

func TestBoundsOpenEnds(t *testing.T) {
	sax, err := NewSAX(16, 4, 4)
	require.NoError(t, err)

	lo, _ := sax.Bounds(0, 0)
	assert.True(t, math.IsInf(lo, -1))

	_, hi := sax.Bounds(0, 3)
	assert.True(t, math.IsInf(hi, 1))

	// Middle breakpoint of an even alphabet is the median.
	_, hi = sax.Bounds(0, 1)
	assert.InDelta(t, 0, hi, 1e-12)
}

func TestSFABreakpointsEquiDepth(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	data := randomWalks(rng, 1000, 64)

	sfa, err := TrainSFA(data, 4, 4)
	require.NoError(t, err)

	counts := make([]int, 4)
	for _, x := range data {
		word := Encode(sfa, x)
		counts[word[0]]++
	}
	for _, c := range counts {
		assert.InDelta(t, 250, c, 1)
	}
	assert.Len(t, sfa.Breakpoints(0), 3)
}

func TestInvalidParameters(t *testing.T) {
	_, err := TrainSFA(nil, 8, 4)
	assert.ErrorIs(t, err, ErrNoTrainingData)

	samples := [][]float64{make([]float64, 8)}

	tests := []struct {
		name     string
		fn       func() error
		paramErr string
	}{
		{"SFAWordTooLong", func() error { _, err := TrainSFA(samples, 10, 4); return err }, "word length"},
		{"SFAAlphabetTooSmall", func() error { _, err := TrainSFA(samples, 4, 1); return err }, "alphabet size"},
		{"SFAAlphabetTooLarge", func() error { _, err := TrainSFA(samples, 4, 257); return err }, "alphabet size"},
		{"SFARaggedSamples", func() error {
			_, err := TrainSFA([][]float64{make([]float64, 8), make([]float64, 7)}, 4, 4)
			return err
		}, "sample length"},
		{"SAXWordTooLong", func() error { _, err := NewSAX(8, 9, 4); return err }, "word length"},
		{"SAXSeriesLength", func() error { _, err := NewSAX(0, 4, 4); return err }, "series length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			var pe *ErrInvalidParameter
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.paramErr, pe.Name)
		})
	}
}
