package mandala

import "fmt"

// Option configures a Mandala during creation.
//
// Example:
//
//	m, err := mandala.NewSeeded(size, 42,
//	    mandala.WithSymmetry(0.8),
//	    mandala.WithVertexDetail(7),
//	)
type Option func(*options)

// options holds the generation settings of a Mandala.
type options struct {
	symmetry     float64
	vertexDetail int
	primes       []int
	normalized   float64
}

// defaultOptions returns every default generation setting.
func defaultOptions() options {
	return options{
		symmetry:     0.5,
		vertexDetail: 5,
		primes:       []int{2, 3, 5, 7, 11},
		normalized:   DefaultNormalized,
	}
}

func (o options) validate() error {
	if !(o.symmetry >= 0 && o.symmetry <= 1) {
		return fmt.Errorf("symmetry probability %v outside [0, 1]: %w", o.symmetry, ErrDegenerateGeometry)
	}
	if o.vertexDetail < 2 {
		return fmt.Errorf("vertex detail %d below 2: %w", o.vertexDetail, ErrDegenerateGeometry)
	}
	if len(o.primes) == 0 {
		return fmt.Errorf("prime pool: %w", ErrEmptyPool)
	}
	for _, p := range o.primes {
		if p < 1 {
			return fmt.Errorf("prime pool value %d: %w", p, ErrDegenerateGeometry)
		}
	}
	if !(o.normalized > 0) {
		return fmt.Errorf("normalized %v: %w", o.normalized, ErrDegenerateGeometry)
	}
	return nil
}

// WithSymmetry sets the probability that a generated random walk is
// mirrored across the middle of its segment. Default 0.5.
func WithSymmetry(p float64) Option {
	return func(o *options) {
		o.symmetry = p
	}
}

// WithVertexDetail sets the number of vertices in a generated random
// walk. Default 5.
func WithVertexDetail(n int) Option {
	return func(o *options) {
		o.vertexDetail = n
	}
}

// WithPrimes sets the pool that segment counts and breadth divisors are
// drawn from. Default 2, 3, 5, 7, 11.
func WithPrimes(pool ...int) Option {
	return func(o *options) {
		o.primes = append([]int(nil), pool...)
	}
}

// WithNormalized sets the local coordinate extent of generated segments.
// Default [DefaultNormalized].
func WithNormalized(n float64) Option {
	return func(o *options) {
		o.normalized = n
	}
}
