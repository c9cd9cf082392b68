// Package pool provides object pools for allocation-free searches.
package pool

import (
	"sync"

	"github.com/hupe1980/sfatrie/internal/queue"
)

const (
	// DefaultQueueCapacity is the default capacity of the frontier queue.
	DefaultQueueCapacity = 64

	// DefaultMaxCoeffs is the default capacity of the coefficient buffer.
	DefaultMaxCoeffs = 64

	// maxRetainedQueue caps the frontier capacity kept across searches.
	maxRetainedQueue = 1 << 16
)

// SearchContext holds the buffers of one best-first traversal.
// All fields are reusable across searches.
type SearchContext[T any] struct {
	Frontier *queue.PriorityQueue[T]
	Coeffs   []float64
}

// Reset clears the SearchContext for reuse.
func (sc *SearchContext[T]) Reset() {
	sc.Frontier.Reset()
	sc.Coeffs = sc.Coeffs[:0]
}

// Pool is a typed pool of SearchContexts.
type Pool[T any] struct {
	p sync.Pool
}

// New creates a pool whose contexts hold frontier items of type T.
func New[T any]() *Pool[T] {
	return &Pool[T]{
		p: sync.Pool{
			New: func() any {
				return &SearchContext[T]{
					Frontier: queue.NewMin[T](DefaultQueueCapacity),
					Coeffs:   make([]float64, 0, DefaultMaxCoeffs),
				}
			},
		},
	}
}

// Get retrieves a reset SearchContext from the pool.
func (p *Pool[T]) Get() *SearchContext[T] {
	sc := p.p.Get().(*SearchContext[T])
	sc.Reset()
	return sc
}

// Put returns a SearchContext to the pool. Contexts whose frontier grew
// unusually large are dropped.
func (p *Pool[T]) Put(sc *SearchContext[T]) {
	if sc.Frontier.Cap() > maxRetainedQueue {
		return
	}
	sc.Reset()
	p.p.Put(sc)
}
