package testutil

import (
	"math/bits"
	"math/rand"
	"slices"
	"sync"

	"lukechampine.com/uint128"
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

// Feature returns a uniformly random 128-bit feature.
func (r *RNG) Feature() uint128.Uint128 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint128.New(r.rand.Uint64(), r.rand.Uint64())
}

// Features returns num uniformly random features.
// Locks only once per call (preferred over calling Feature in a loop).
func (r *RNG) Features(num int) []uint128.Uint128 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uint128.Uint128, num)
	for i := range out {
		out[i] = uint128.New(r.rand.Uint64(), r.rand.Uint64())
	}
	return out
}

// Perturb returns f with flips randomly chosen bits toggled. The same bit
// may be chosen twice, so the result is at most flips bits away from f.
func (r *RNG) Perturb(f uint128.Uint128, flips int) uint128.Uint128 {
	r.mu.Lock()
	defer r.mu.Unlock()
	for range flips {
		f = f.Xor(uint128.From64(1).Lsh(uint(r.rand.Intn(128))))
	}
	return f
}

// ClusteredFeatures generates num features around clusters random centers,
// each at most spread bits away from its center.
// Useful for exercising deep splits, which uniform data rarely reaches.
func (r *RNG) ClusteredFeatures(num, clusters, spread int) []uint128.Uint128 {
	centers := r.Features(clusters)
	out := make([]uint128.Uint128, num)
	for i := range out {
		out[i] = r.Perturb(centers[i%clusters], r.Intn(spread+1))
	}
	return out
}

// Hamming returns the Hamming distance between a and b.
func Hamming(a, b uint128.Uint128) uint32 {
	return uint32(bits.OnesCount64(a.Lo^b.Lo) + bits.OnesCount64(a.Hi^b.Hi))
}

// MinDistance returns the smallest distance from query to any feature in
// space, or 129 if space is empty.
func MinDistance(query uint128.Uint128, space []uint128.Uint128) uint32 {
	best := uint32(129)
	for _, f := range space {
		best = min(best, Hamming(query, f))
	}
	return best
}

// ExactDistances returns the distances of the k nearest features of space
// to query in ascending order.
func ExactDistances(query uint128.Uint128, space []uint128.Uint128, k int) []uint32 {
	d := make([]uint32, len(space))
	for i, f := range space {
		d[i] = Hamming(query, f)
	}
	slices.Sort(d)
	return d[:min(k, len(d))]
}

// ExactRadius returns every feature of space within radius of query, as a
// sorted multiset.
func ExactRadius(query uint128.Uint128, space []uint128.Uint128, radius uint32) []uint128.Uint128 {
	var out []uint128.Uint128
	for _, f := range space {
		if Hamming(query, f) <= radius {
			out = append(out, f)
		}
	}
	SortFeatures(out)
	return out
}

// SortFeatures sorts features in ascending numeric order.
func SortFeatures(fs []uint128.Uint128) {
	slices.SortFunc(fs, func(a, b uint128.Uint128) int {
		return a.Cmp(b)
	})
}
