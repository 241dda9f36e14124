// Copyright 2025 James Ross
package demand

import (
	"math"
	"math/rand"
)

// RNG centralizes random draws behind one seeded source so that every
// consumer (order generation, arrival sampling) shares reproducibility
// guarantees from a single seed.
type RNG struct {
	r *rand.Rand
}

// NewRNG returns an RNG seeded deterministically from seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform draw in [0, 1).
func (g *RNG) Float64() float64 { return g.r.Float64() }

// IntRange returns a uniform integer draw in [lo, hi].
func (g *RNG) IntRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + g.r.Intn(hi-lo+1)
}

// Poisson draws from a Poisson distribution with the given mean, using
// Knuth's multiplicative algorithm. Adequate for the small means used in
// arrival sampling; not intended for very large lambda.
func (g *RNG) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		k++
		p *= g.r.Float64()
		if p <= l {
			return k - 1
		}
	}
}

// WeightedChoice draws n items from items with replacement, according to
// weights (which need not be pre-normalized).
func (g *RNG) WeightedChoice(items []string, weights []float64, n int) []string {
	total := sum(weights)
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = pickWeighted(g.r.Float64()*total, items, weights)
	}
	return out
}

// WeightedChoiceNoRepeat draws up to n distinct items without replacement
// via sequential roulette-wheel selection, removing each pick from the
// remaining pool.
func (g *RNG) WeightedChoiceNoRepeat(items []string, weights []float64, n int) []string {
	pool := make([]string, len(items))
	copy(pool, items)
	w := make([]float64, len(weights))
	copy(w, weights)

	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		total := sum(w)
		r := g.r.Float64() * total
		idx := pickWeightedIndex(r, w)
		out = append(out, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
		w = append(w[:idx], w[idx+1:]...)
	}
	return out
}

func sum(xs []float64) float64 {
	t := 0.0
	for _, x := range xs {
		t += x
	}
	return t
}

func pickWeighted(r float64, items []string, weights []float64) string {
	idx := pickWeightedIndex(r, weights)
	return items[idx]
}

func pickWeightedIndex(r float64, weights []float64) int {
	cum := 0.0
	for i, w := range weights {
		cum += w
		if r <= cum {
			return i
		}
	}
	return len(weights) - 1
}
