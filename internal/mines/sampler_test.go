package mines

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func points(n int) []Point {
	ps := make([]Point, n)
	for i := range ps {
		ps[i] = Point{0, i}
	}
	return ps
}

func TestRandSamplerDistinct(t *testing.T) {
	s := NewRandSampler(rand.New(rand.NewPCG(1, 2)))

	for k := range 21 {
		population := points(20)
		picked := s.Sample(population, k)
		require.Len(t, picked, k)

		seen := make(map[Point]bool)
		for _, p := range picked {
			assert.False(t, seen[p], "duplicate %v", p)
			seen[p] = true
			assert.True(t, 0 <= p.Col && p.Col < 20)
		}
	}
}

func TestRandSamplerUniform(t *testing.T) {
	const draws = 6000

	s := NewRandSampler(rand.New(rand.NewPCG(1, 2)))
	counts := make(map[[2]int]int)

	for range draws {
		picked := s.Sample(points(4), 2)
		pair := []int{picked[0].Col, picked[1].Col}
		slices.Sort(pair)
		counts[[2]int(pair)]++
	}

	// 4 choose 2 combinations, each expected draws/6 = 1000 times
	require.Len(t, counts, 6)
	for pair, n := range counts {
		assert.InDelta(t, 1000, n, 150, "pair %v", pair)
	}
}

func TestDefaultSampler(t *testing.T) {
	picked := DefaultSampler().Sample(points(10), 10)
	slices.SortFunc(picked, func(a, b Point) int { return a.Col - b.Col })
	assert.Equal(t, points(10), picked)
}
