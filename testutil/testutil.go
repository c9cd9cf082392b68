package testutil

import (
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/sfatrie/index"
	"github.com/hupe1980/sfatrie/series"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// RandomWalk returns a raw random walk of the given length with standard
// normal steps.
func (r *RNG) RandomWalk(length int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.walkLocked(make([]float64, length))
}

// RandomWalks generates z-normalized random walks.
// Uses a single backing array for efficiency.
func (r *RNG) RandomWalks(num, length int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*length)
	walks := make([][]float64, num)
	for i := range num {
		x := r.walkLocked(data[i*length : (i+1)*length])
		walks[i] = series.ZNormalize(x, x)
	}
	return walks
}

// GaussianSeries generates z-normalized series of independent standard normal samples.
func (r *RNG) GaussianSeries(num, length int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*length)
	out := make([][]float64, num)
	for i := range num {
		x := data[i*length : (i+1)*length]
		for j := range x {
			x[j] = r.rand.NormFloat64()
		}
		out[i] = series.ZNormalize(x, x)
	}
	return out
}

// Perturb returns a z-normalized copy of x with Gaussian noise of the given
// standard deviation added to each sample.
func (r *RNG) Perturb(x []float64, noise float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v + noise*r.rand.NormFloat64()
	}
	return series.ZNormalize(out, out)
}

func (r *RNG) walkLocked(dst []float64) []float64 {
	var acc float64
	for i := range dst {
		acc += r.rand.NormFloat64()
		dst[i] = acc
	}
	return dst
}

// ExactKNN computes the k nearest units of src by full scan, ascending by
// distance and then ID.
func ExactKNN(src *index.Source, query []float64, k int) []index.Match {
	all := make([]index.Match, src.Len())
	for i := range all {
		d, _ := src.Distance(query, uint32(i), math.Inf(1))
		all[i] = index.Match{ID: uint32(i), Distance: math.Sqrt(d)}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Distance != all[j].Distance {
			return all[i].Distance < all[j].Distance
		}
		return all[i].ID < all[j].ID
	})
	return all[:min(k, len(all))]
}

// ExactRange returns the IDs of all units of src within epsilon of query.
func ExactRange(src *index.Source, query []float64, epsilon float64) *roaring.Bitmap {
	result := roaring.New()
	radius := epsilon * epsilon
	for i := range src.Len() {
		if _, ok := src.Distance(query, uint32(i), radius); ok {
			result.Add(uint32(i))
		}
	}
	return result
}
