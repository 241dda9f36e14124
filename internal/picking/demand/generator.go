// Copyright 2025 James Ross
package demand

import "fmt"

// OrderSpec configures how synthesized orders are sized and populated.
type OrderSpec struct {
	MinItems        int
	MaxItems        int
	AllowDuplicates bool
}

// Validate checks the OrderSpec's invariants.
func (s OrderSpec) Validate() error {
	if s.MinItems < 1 || s.MinItems > s.MaxItems {
		return fmt.Errorf("demand: invalid item range [%d, %d]", s.MinItems, s.MaxItems)
	}
	return nil
}

// Generator synthesizes Orders by drawing a size uniformly in
// [MinItems, MaxItems] and sampling SKUs by popularity weight.
type Generator struct {
	Catalog    Catalog
	Popularity Popularity
	Spec       OrderSpec
	RNG        *RNG
}

// Make synthesizes one Order arriving at arrivalMin.
func (g *Generator) Make(arrivalMin float64) (Order, error) {
	if err := g.Spec.Validate(); err != nil {
		return Order{}, err
	}
	k := g.RNG.IntRange(g.Spec.MinItems, g.Spec.MaxItems)
	ids := g.Catalog.IDs()
	var items []string
	if g.Spec.AllowDuplicates {
		items = g.RNG.WeightedChoice(ids, g.Popularity.Weights, k)
	} else {
		items = g.RNG.WeightedChoiceNoRepeat(ids, g.Popularity.Weights, k)
	}
	return Order{ArrivalMin: arrivalMin, Items: items}, nil
}
