package mandala

import "math/rand/v2"

// Rand is the single seeded random source threaded through generation.
// The same seed replays the same sequence on every platform.
type Rand struct {
	src *rand.PCG
	r   *rand.Rand
}

// NewRand returns a source seeded with seed.
func NewRand(seed uint64) *Rand {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Rand{src: src, r: rand.New(src)}
}

// Float64 returns a uniform value in [0, 1).
func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// Range returns a uniform value in [lo, hi).
func (r *Rand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.r.Float64()
}

// IntN returns a uniform value in [0, n). It panics if n <= 0.
func (r *Rand) IntN(n int) int {
	return r.r.IntN(n)
}

// Bool returns true with probability p.
func (r *Rand) Bool(p float64) bool {
	return r.r.Float64() < p
}

// Clone returns an independent source in the same state as r.
func (r *Rand) Clone() *Rand {
	src := *r.src
	return &Rand{src: &src, r: rand.New(&src)}
}

// Choose returns a uniformly picked element of pool.
func Choose[T any](r *Rand, pool []T) (T, error) {
	if len(pool) == 0 {
		var zero T
		return zero, ErrEmptyPool
	}
	return pool[r.IntN(len(pool))], nil
}
