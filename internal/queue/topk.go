package queue

import (
	"iter"
	"math"
	"slices"
)

// TopK holds up to k (key, value) pairs in ascending key order.
//
// Equal keys are permitted. Among equal keys the smaller value sorts first,
// which makes the kept set independent of insertion order.
type TopK struct {
	capacity int
	keys     []float64
	values   []uint32
}

// NewTopK creates a collector with capacity k. k must be positive.
func NewTopK(k int) *TopK {
	if k <= 0 {
		panic("queue: top-k capacity must be positive")
	}
	return &TopK{
		capacity: k,
		keys:     make([]float64, 0, k),
		values:   make([]uint32, 0, k),
	}
}

// Len returns the number of pairs held.
func (t *TopK) Len() int { return len(t.keys) }

// Cap returns the capacity k.
func (t *TopK) Cap() int { return t.capacity }

// Full reports whether the collector holds k pairs.
func (t *TopK) Full() bool { return len(t.keys) == t.capacity }

// MaxKey returns the worst kept key, or +Inf while the collector is not full.
// This is the live pruning threshold of a k-NN search.
func (t *TopK) MaxKey() float64 {
	if !t.Full() {
		return math.Inf(1)
	}
	return t.keys[len(t.keys)-1]
}

// Insert offers a pair. It reports whether the pair was kept.
func (t *TopK) Insert(key float64, value uint32) bool {
	if t.Full() {
		last := len(t.keys) - 1
		if !pairLess(key, value, t.keys[last], t.values[last]) {
			return false
		}
		t.keys = t.keys[:last]
		t.values = t.values[:last]
	}

	pos, _ := slices.BinarySearchFunc(t.keys, key, func(k, target float64) int {
		switch {
		case k < target:
			return -1
		case k > target:
			return 1
		default:
			return 0
		}
	})
	// Skip equal keys with a smaller value.
	for pos < len(t.keys) && t.keys[pos] == key && t.values[pos] < value {
		pos++
	}

	t.keys = slices.Insert(t.keys, pos, key)
	t.values = slices.Insert(t.values, pos, value)
	return true
}

// Keys returns an ascending view of the kept keys.
func (t *TopK) Keys() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for _, k := range t.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns the kept values in the order of Keys.
func (t *TopK) Values() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for _, v := range t.values {
			if !yield(v) {
				return
			}
		}
	}
}

// All returns the kept pairs in ascending order.
func (t *TopK) All() iter.Seq2[float64, uint32] {
	return func(yield func(float64, uint32) bool) {
		for i, k := range t.keys {
			if !yield(k, t.values[i]) {
				return
			}
		}
	}
}

// Merge offers every pair of other to t.
func (t *TopK) Merge(other *TopK) {
	for i, k := range other.keys {
		t.Insert(k, other.values[i])
	}
}

// Reset empties the collector, keeping its capacity.
func (t *TopK) Reset() {
	t.keys = t.keys[:0]
	t.values = t.values[:0]
}

func pairLess(k1 float64, v1 uint32, k2 float64, v2 uint32) bool {
	if k1 != k2 {
		return k1 < k2
	}
	return v1 < v2
}
