package mines

import (
	"hash/maphash"
	"math/rand/v2"
	"time"
)

// Point addresses a cell. Row comes first everywhere in this package.
type Point struct {
	Row, Col int
}

// Sampler draws k distinct points from population, uniformly and without
// replacement. Implementations may reorder population.
type Sampler interface {
	Sample(population []Point, k int) []Point
}

type RandSampler struct {
	r *rand.Rand
}

func NewRandSampler(r *rand.Rand) *RandSampler {
	return &RandSampler{r: r}
}

// DefaultSampler returns a sampler seeded from the runtime's hash seed.
func DefaultSampler() *RandSampler {
	return NewRandSampler(rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	)))
}

// Sample runs a partial Fisher-Yates shuffle over population: every pick
// is swapped out of the live range so it cannot be drawn again.
func (s *RandSampler) Sample(population []Point, k int) []Point {
	picked := make([]Point, 0, k)
	n := len(population)
	for range k {
		i := s.r.IntN(n)
		picked = append(picked, population[i])
		n--
		population[i], population[n] = population[n], population[i]
	}
	return picked
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
