package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchContext(t *testing.T) {
	p := New[string]()

	sc := p.Get()
	require.NotNil(t, sc.Frontier)
	assert.Equal(t, 0, sc.Frontier.Len())
	assert.Empty(t, sc.Coeffs)

	sc.Frontier.Push("b", 2)
	sc.Frontier.Push("a", 1)
	sc.Coeffs = append(sc.Coeffs, 1, 2, 3)

	item, ok := sc.Frontier.Top()
	require.True(t, ok)
	assert.Equal(t, "a", item.Value)

	p.Put(sc)

	sc = p.Get()
	defer p.Put(sc)
	assert.Equal(t, 0, sc.Frontier.Len())
	assert.Empty(t, sc.Coeffs)
}

func TestPoolConcurrent(t *testing.T) {
	p := New[int]()

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				sc := p.Get()
				sc.Frontier.Push(g, float64(i))
				sc.Coeffs = append(sc.Coeffs, float64(i))
				assert.Equal(t, 1, sc.Frontier.Len())
				assert.Len(t, sc.Coeffs, 1)
				p.Put(sc)
			}
		}()
	}
	wg.Wait()
}
