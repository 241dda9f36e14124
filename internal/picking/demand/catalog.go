// Copyright 2025 James Ross
package demand

import (
	"fmt"
	"math"
)

// Catalog is a simple enumerated SKU catalog: S0001, S0002, ...
type Catalog struct {
	NumSKUs int
}

// IDs returns the dense list of SKU ids in the catalog.
func (c Catalog) IDs() []string {
	ids := make([]string, c.NumSKUs)
	for i := 0; i < c.NumSKUs; i++ {
		ids[i] = fmt.Sprintf("S%04d", i+1)
	}
	return ids
}

// PopularityMode selects how probability mass is distributed over the
// catalog's ranked SKUs.
type PopularityMode string

const (
	// Uniform assigns every SKU equal weight.
	Uniform PopularityMode = "uniform"
	// Concentrated assigns Zipf(alpha) weight by rank, producing an
	// 80/20-style concentration for alpha in roughly [1.1, 1.3].
	Concentrated PopularityMode = "concentrated"
)

// Popularity holds normalized selection weights, one per catalog SKU in
// rank order.
type Popularity struct {
	Weights []float64
}

// NewPopularity builds a Popularity for the given catalog and mode. alpha
// is only used in Concentrated mode.
func NewPopularity(catalog Catalog, mode PopularityMode, alpha float64) (Popularity, error) {
	n := catalog.NumSKUs
	if n <= 0 {
		return Popularity{}, fmt.Errorf("demand: catalog must have at least one SKU")
	}
	weights := make([]float64, n)
	switch mode {
	case Uniform:
		w := 1.0 / float64(n)
		for i := range weights {
			weights[i] = w
		}
	case Concentrated:
		if alpha <= 1.0 {
			return Popularity{}, fmt.Errorf("demand: concentrated mode requires alpha > 1, got %g", alpha)
		}
		sum := 0.0
		for rank := 1; rank <= n; rank++ {
			w := 1.0 / math.Pow(float64(rank), alpha)
			weights[rank-1] = w
			sum += w
		}
		for i := range weights {
			weights[i] /= sum
		}
	default:
		return Popularity{}, fmt.Errorf("demand: unknown popularity mode %q", mode)
	}
	return Popularity{Weights: weights}, nil
}
