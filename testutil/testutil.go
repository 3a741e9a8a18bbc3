package testutil

import (
	"math/rand"
	"strconv"
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

// UniformPoints returns num points with dim coordinates in [minVal, maxVal).
func (r *RNG) UniformPoints(num, dim int, minVal, maxVal float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([][]float64, num)
	for i := range points {
		p := make([]float64, dim)
		for j := range p {
			p[j] = minVal + r.rand.Float64()*(maxVal-minVal)
		}
		points[i] = p
	}
	return points
}

// Blobs generates perCenter points around each center with Gaussian noise of
// the given standard deviation. Points are grouped by center, in center order.
func (r *RNG) Blobs(centers [][]float64, perCenter int, spread float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([][]float64, 0, len(centers)*perCenter)
	for _, c := range centers {
		for range perCenter {
			p := make([]float64, len(c))
			for j := range c {
				p[j] = c[j] + r.rand.NormFloat64()*spread
			}
			points = append(points, p)
		}
	}
	return points
}

// Values turns coordinate slices into name-keyed value maps. Coordinates
// beyond len(dims) are ignored; missing ones leave the key unset.
func Values(dims []string, points [][]float64) []map[string]float64 {
	out := make([]map[string]float64, len(points))
	for i, p := range points {
		m := make(map[string]float64, len(dims))
		for j, name := range dims {
			if j < len(p) {
				m[name] = p[j]
			}
		}
		out[i] = m
	}
	return out
}

// DimensionNames returns "d0", "d1", ... for n dimensions.
func DimensionNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = "d" + strconv.Itoa(i)
	}
	return names
}
