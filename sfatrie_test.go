package sfatrie

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/hupe1980/sfatrie/index"
	"github.com/hupe1980/sfatrie/index/flat"
	"github.com/hupe1980/sfatrie/symbolic"
	"github.com/hupe1980/sfatrie/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCollector struct {
	mock.Mock
}

func (m *mockCollector) RecordBuild(entries int, duration time.Duration, err error) {
	m.Called(entries, duration, err)
}

func (m *mockCollector) RecordSearch(k int, examined int64, duration time.Duration, err error) {
	m.Called(k, examined, duration, err)
}

func (m *mockCollector) RecordRangeSearch(results uint64, examined int64, duration time.Duration, err error) {
	m.Called(results, examined, duration, err)
}

func TestBuildWholeMatching(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(1)
	data := rng.RandomWalks(800, 64)

	ix, err := BuildWholeMatching(ctx, data, WithLeafThreshold(20))
	require.NoError(t, err)
	require.NoError(t, ix.Check(ctx))

	assert.Equal(t, 800, ix.Len())
	assert.Equal(t, ModeWholeMatching, ix.Mode())
	assert.Equal(t, 64, ix.SeriesLength())
	assert.IsType(t, &symbolic.SFA{}, ix.Transform())
	assert.Equal(t, 8, ix.Transform().WordLength())
	assert.Equal(t, 4, ix.Transform().AlphabetSize())
	assert.Equal(t, 20, ix.Stats().LeafThreshold)

	src, err := index.NewWholeSource(data)
	require.NoError(t, err)
	bf, err := flat.New(src)
	require.NoError(t, err)

	for range 5 {
		query := rng.RandomWalks(1, 64)[0]

		got, costs, err := ix.KNN(ctx, query, 5)
		require.NoError(t, err)
		want, _, err := bf.SearchKNN(query, 5)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Positive(t, costs.EntriesExamined)

		ids, _, err := ix.Range(ctx, query, got[4].Distance)
		require.NoError(t, err)
		wantIDs, _, err := bf.SearchRange(query, got[4].Distance)
		require.NoError(t, err)
		assert.True(t, wantIDs.Equals(ids))
	}
}

func TestBuildSubsequenceMatching(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(2)
	raw := rng.RandomWalk(3000)

	ix, err := BuildSubsequenceMatching(ctx, raw, 100, WithSAX(), WithWordLength(10), WithAlphabetSize(8))
	require.NoError(t, err)
	require.NoError(t, ix.Check(ctx))

	assert.Equal(t, len(raw)-100+1, ix.Len())
	assert.Equal(t, ModeSubsequenceMatching, ix.Mode())
	assert.IsType(t, &symbolic.SAX{}, ix.Transform())

	src, err := index.NewSubsequenceSource(raw, 100)
	require.NoError(t, err)

	query := rng.Perturb(src.Unit(nil, 1234), 0.01)
	matches, _, err := ix.KNN(ctx, query, 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, uint32(1234), matches[0].ID)

	t.Run("WindowTooLong", func(t *testing.T) {
		ix, err := BuildSubsequenceMatching(ctx, raw[:50], 100)
		require.NoError(t, err)
		assert.Equal(t, 0, ix.Len())
		assert.Nil(t, ix.Transform())

		matches, _, err := ix.KNN(ctx, make([]float64, 100), 3)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("InvalidWindow", func(t *testing.T) {
		_, err := BuildSubsequenceMatching(ctx, raw, -1)
		assert.ErrorIs(t, err, ErrInvalidWindow)
		assert.ErrorIs(t, err, index.ErrInvalidWindow)
	})
}

func TestWithNormalization(t *testing.T) {
	ctx := context.Background()
	data := [][]float64{
		{1, 2, 3, 4},
		{4, 3, 2, 1},
		{1, 3, 2, 4},
	}
	ix, err := BuildWholeMatching(ctx, data, WithNormalization(), WithWordLength(2))
	require.NoError(t, err)

	// Scaled and shifted copy of the first series.
	matches, _, err := ix.KNN(ctx, []float64{12, 14, 16, 18}, 3)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, uint32(0), matches[0].ID)
	assert.InDelta(t, 0, matches[0].Distance, 1e-9)
	assert.Equal(t, uint32(2), matches[1].ID)
	assert.InDelta(t, 1.2649, matches[1].Distance, 1e-4)
	assert.Equal(t, uint32(1), matches[2].ID)
	assert.InDelta(t, 4, matches[2].Distance, 1e-9)

	// The caller's data is untouched.
	assert.Equal(t, []float64{1, 2, 3, 4}, data[0])
}

func TestWithTransform(t *testing.T) {
	ctx := context.Background()
	data := testutil.NewRNG(3).RandomWalks(100, 32)

	sax, err := symbolic.NewSAX(32, 4, 16)
	require.NoError(t, err)

	ix, err := BuildWholeMatching(ctx, data, WithTransform(sax), WithWordLength(-1))
	require.NoError(t, err)
	assert.Same(t, sax, ix.Transform())

	mismatched, err := symbolic.NewSAX(16, 4, 4)
	require.NoError(t, err)
	_, err = BuildWholeMatching(ctx, data, WithTransform(mismatched))
	var dm *ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 16, dm.Expected)
	assert.Equal(t, 32, dm.Actual)
}

func TestInvalidOptions(t *testing.T) {
	ctx := context.Background()
	data := testutil.NewRNG(4).RandomWalks(10, 32)

	tests := []struct {
		name   string
		opts   []Option
		option string
	}{
		{"WordLength", []Option{WithWordLength(0)}, "word length"},
		{"AlphabetSizeSmall", []Option{WithAlphabetSize(1)}, "alphabet size"},
		{"AlphabetSizeLarge", []Option{WithAlphabetSize(257)}, "alphabet size"},
		{"LeafThreshold", []Option{WithLeafThreshold(0)}, "leaf threshold"},
		{"TrainingSampleSize", []Option{WithTrainingSampleSize(0)}, "training sample size"},
		{"SFAWordTooLong", []Option{WithWordLength(40)}, "word length"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildWholeMatching(ctx, data, tt.opts...)
			var opt *ErrInvalidOption
			require.ErrorAs(t, err, &opt)
			assert.Equal(t, tt.option, opt.Name)
		})
	}
}

func TestSearchErrors(t *testing.T) {
	ctx := context.Background()
	data := testutil.NewRNG(5).RandomWalks(50, 16)
	ix, err := BuildWholeMatching(ctx, data, WithSAX(), WithWordLength(4))
	require.NoError(t, err)

	_, _, err = ix.KNN(ctx, data[0], 0)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, _, err = ix.KNN(ctx, data[0][:3], 1)
	var dm *ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 16, dm.Expected)
	assert.Equal(t, 3, dm.Actual)
	var inner *index.ErrDimensionMismatch
	assert.ErrorAs(t, errors.Unwrap(err), &inner)

	_, _, err = ix.Range(ctx, data[0], -1)
	assert.ErrorIs(t, err, ErrInvalidEpsilon)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, _, err = ix.KNN(cancelled, data[0], 1)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = BuildWholeMatching(cancelled, data)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIOCosts(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(6)
	data := rng.RandomWalks(300, 32)
	ix, err := BuildWholeMatching(ctx, data, WithWordLength(6), WithLeafThreshold(10))
	require.NoError(t, err)

	query := rng.RandomWalks(1, 32)[0]
	m1, c1, err := ix.KNN(ctx, query, 3)
	require.NoError(t, err)
	assert.Equal(t, c1, ix.IOCosts())

	ix.ResetIOCosts()
	assert.Equal(t, IOCosts{}, ix.IOCosts())

	m2, c2, err := ix.KNN(ctx, query, 3)
	require.NoError(t, err)
	assert.Equal(t, m1, m2)
	assert.Equal(t, c1, c2)
}

func TestMetricsCollector(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(7)
	data := rng.RandomWalks(200, 32)

	mc := new(mockCollector)
	mc.On("RecordBuild", 200, mock.AnythingOfType("time.Duration"), nil).Once()
	mc.On("RecordSearch", 5, mock.AnythingOfType("int64"), mock.AnythingOfType("time.Duration"), nil).Once()
	mc.On("RecordRangeSearch", mock.AnythingOfType("uint64"), mock.AnythingOfType("int64"), mock.AnythingOfType("time.Duration"), nil).Once()
	mc.On("RecordSearch", 0, int64(0), mock.AnythingOfType("time.Duration"), mock.MatchedBy(func(err error) bool {
		return errors.Is(err, ErrInvalidK)
	})).Once()

	ix, err := BuildWholeMatching(ctx, data, WithWordLength(4), WithMetricsCollector(mc))
	require.NoError(t, err)

	query := rng.RandomWalks(1, 32)[0]
	_, _, err = ix.KNN(ctx, query, 5)
	require.NoError(t, err)
	_, _, err = ix.Range(ctx, query, 3)
	require.NoError(t, err)
	_, _, err = ix.KNN(ctx, query, 0)
	require.Error(t, err)

	mc.AssertExpectations(t)
}

func TestBasicMetricsCollector(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(8)
	data := rng.RandomWalks(100, 32)

	metrics := &BasicMetricsCollector{}
	ix, err := BuildWholeMatching(ctx, data, WithWordLength(4), WithMetricsCollector(metrics))
	require.NoError(t, err)

	query := rng.RandomWalks(1, 32)[0]
	_, costs, err := ix.KNN(ctx, query, 3)
	require.NoError(t, err)
	_, _, err = ix.KNN(ctx, query, -1)
	require.Error(t, err)
	ids, _, err := ix.Range(ctx, query, 100)
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Equal(t, int64(100), stats.BuildEntries)
	assert.Equal(t, int64(2), stats.SearchCount)
	assert.Equal(t, int64(1), stats.SearchErrors)
	assert.Equal(t, costs.EntriesExamined, stats.SearchExamined)
	assert.Equal(t, int64(1), stats.RangeCount)
	assert.Equal(t, int64(ids.GetCardinality()), stats.RangeResults)
	// Every unit lies within a radius of 100.
	assert.Equal(t, int64(100), stats.RangeResults)
}

func TestLogger(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	data := testutil.NewRNG(9).RandomWalks(50, 16)
	ix, err := BuildWholeMatching(ctx, data, WithWordLength(4), WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"build completed"`)
	assert.Contains(t, buf.String(), `"mode":"WholeMatching"`)
	assert.Contains(t, buf.String(), `"entries":50`)
	assert.Contains(t, buf.String(), `"msg":"build progress"`)

	buf.Reset()
	_, _, err = ix.KNN(ctx, data[0], 2)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"search completed"`)
	assert.Contains(t, buf.String(), `"results":2`)

	buf.Reset()
	_, _, err = ix.KNN(ctx, data[0], 0)
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"level":"ERROR"`)

	buf.Reset()
	require.NoError(t, ix.Check(ctx))
	assert.Contains(t, buf.String(), "integrity check passed")
}
