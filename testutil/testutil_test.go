package testutil

import (
	"testing"

	"github.com/hupe1980/sfatrie/index"
	"github.com/hupe1980/sfatrie/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomWalks(t *testing.T) {
	rng := NewRNG(4711)

	walks := rng.RandomWalks(8, 32)

	require.Len(t, walks, 8)
	for _, w := range walks {
		assert.Len(t, w, 32)
		assert.True(t, series.IsNormalized(w, 1e-9))
	}
}

func TestRandomWalkIsReproducible(t *testing.T) {
	a := NewRNG(1).RandomWalk(100)
	b := NewRNG(1).RandomWalk(100)
	assert.Equal(t, a, b)

	rng := NewRNG(2)
	first := rng.RandomWalk(10)
	rng.Reset()
	assert.Equal(t, first, rng.RandomWalk(10))
	assert.Equal(t, int64(2), rng.Seed())
}

func TestGaussianSeries(t *testing.T) {
	rng := NewRNG(3)

	data := rng.GaussianSeries(4, 64)
	require.Len(t, data, 4)
	for _, x := range data {
		assert.True(t, series.IsNormalized(x, 1e-9))
	}

	p := rng.Perturb(data[0], 0.1)
	assert.True(t, series.IsNormalized(p, 1e-9))
	assert.NotEqual(t, data[0], p)
}

func TestExactKNN(t *testing.T) {
	data := [][]float64{
		{1, -1, 1, -1},
		{-1, 1, -1, 1},
		{1, 1, -1, -1},
	}
	src, err := index.NewWholeSource(data)
	require.NoError(t, err)

	matches := ExactKNN(src, data[2], 2)
	require.Len(t, matches, 2)
	assert.Equal(t, uint32(2), matches[0].ID)
	assert.Zero(t, matches[0].Distance)
	// Series 0 and 1 are equally far; the lower ID wins.
	assert.Equal(t, uint32(0), matches[1].ID)

	assert.Len(t, ExactKNN(src, data[0], 10), 3)

	ids := ExactRange(src, data[2], 3.0)
	assert.Equal(t, []uint32{0, 1, 2}, ids.ToArray())

	ids = ExactRange(src, data[2], 1.0)
	assert.Equal(t, []uint32{2}, ids.ToArray())
}
