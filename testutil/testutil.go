package testutil

import (
	"math"
	"math/rand"
	"sync"
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

// Ints generates n integers spread over the whole int64 range.
func (r *RNG) Ints(n int) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int64, n)
	for i := range out {
		out[i] = int64(r.rand.Uint64())
	}
	return out
}

// IntsRange generates n integers in [lo, hi).
func (r *RNG) IntsRange(n int, lo, hi int64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int64, n)
	span := hi - lo
	for i := range out {
		out[i] = lo + r.rand.Int63n(span)
	}
	return out
}

// Floats generates n standard normal floats. Each element is replaced by NaN
// with probability nanRate.
func (r *RNG) Floats(n int, nanRate float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, n)
	for i := range out {
		if nanRate > 0 && r.rand.Float64() < nanRate {
			out[i] = math.NaN()
			continue
		}
		out[i] = r.rand.NormFloat64()
	}
	return out
}

// FewUnique generates n integers drawn from only k distinct values. Sorts
// that do not split out the pivot run degrade on this input.
func (r *RNG) FewUnique(n, k int) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int64, n)
	for i := range out {
		out[i] = int64(r.rand.Intn(k))
	}
	return out
}

// Logicals generates n booleans, each true with probability p.
func (r *RNG) Logicals(n int, p float64) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]bool, n)
	for i := range out {
		out[i] = r.rand.Float64() < p
	}
	return out
}

const letters = "abcdefghijklmnopqrstuvwxyz"

// Strings generates n lowercase strings of length 1 to maxLen.
func (r *RNG) Strings(n, maxLen int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, n)
	buf := make([]byte, maxLen)
	for i := range out {
		l := 1 + r.rand.Intn(maxLen)
		for j := range l {
			buf[j] = letters[r.rand.Intn(len(letters))]
		}
		out[i] = string(buf[:l])
	}
	return out
}

// Permutation returns a random permutation of [0, n).
func (r *RNG) Permutation(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// Zipf returns a Zipfian-distributed value in [0, n).
// s=1.0 gives standard Zipf, s=1.5 gives a heavy tail.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}

	return n - 1
}

// SkewedInts generates n integers in [0, buckets) with a Zipfian
// distribution, so a few keys dominate.
func (r *RNG) SkewedInts(n, buckets int, s float64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int64, n)
	for i := range out {
		out[i] = int64(r.zipfLocked(buckets, s))
	}
	return out
}

// IsSortedFloat64 reports whether data is ordered in the requested direction
// with every NaN after every non-NaN.
func IsSortedFloat64(data []float64, ascending bool) bool {
	seenNaN := false
	for i, v := range data {
		if math.IsNaN(v) {
			seenNaN = true
			continue
		}
		if seenNaN {
			return false
		}
		if i == 0 {
			continue
		}
		prev := data[i-1]
		if ascending && v < prev || !ascending && v > prev {
			return false
		}
	}
	return true
}

// CountNaN returns the number of NaNs in data.
func CountNaN(data []float64) int {
	n := 0
	for _, v := range data {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}

// SameMultiset reports whether a and b hold the same elements with the same
// multiplicities, treating all NaNs as equal.
func SameMultiset(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[float64]int, len(a))
	nan := 0
	for _, v := range a {
		if math.IsNaN(v) {
			nan++
			continue
		}
		counts[v]++
	}
	for _, v := range b {
		if math.IsNaN(v) {
			nan--
			continue
		}
		counts[v]--
	}
	if nan != 0 {
		return false
	}
	for _, c := range counts {
		if c != 0 {
			return false
		}
	}
	return true
}
