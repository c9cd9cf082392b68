package queue

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityQueue(t *testing.T) {
	t.Run("Min", func(t *testing.T) {
		pq := NewMin[string](4)
		pq.Push("c", 3)
		pq.Push("a", 1)
		pq.Push("d", 4)
		pq.Push("b", 2)

		require.Equal(t, 4, pq.Len())

		top, ok := pq.Top()
		require.True(t, ok)
		assert.Equal(t, "a", top.Value)

		var got []string
		for pq.Len() > 0 {
			item, ok := pq.Pop()
			require.True(t, ok)
			got = append(got, item.Value)
		}
		assert.Equal(t, []string{"a", "b", "c", "d"}, got)

		_, ok = pq.Pop()
		assert.False(t, ok)
	})

	t.Run("Max", func(t *testing.T) {
		pq := NewMax[int](0)
		for i, p := range []float64{0.5, 2.5, 1.5} {
			pq.Push(i, p)
		}

		item, ok := pq.Pop()
		require.True(t, ok)
		assert.Equal(t, 1, item.Value)
		assert.Equal(t, 2.5, item.Priority)
	})

	t.Run("Reset", func(t *testing.T) {
		pq := NewMin[int](2)
		pq.Push(1, 1)
		pq.Reset()
		assert.Equal(t, 0, pq.Len())
		_, ok := pq.Top()
		assert.False(t, ok)
	})

	t.Run("RandomOrder", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		pq := NewMin[int](0)
		want := make([]float64, 500)
		for i := range want {
			want[i] = rng.Float64()
			pq.Push(i, want[i])
		}
		sort.Float64s(want)

		for _, w := range want {
			item, ok := pq.Pop()
			require.True(t, ok)
			assert.Equal(t, w, item.Priority)
		}
	})
}
