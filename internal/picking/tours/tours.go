// Copyright 2025 James Ross
// Package tours computes per-order and per-batch tour lengths and the
// cell-exact visual paths used to animate them.
package tours

import (
	"github.com/hayser8/picksim/internal/picking/demand"
	"github.com/hayser8/picksim/internal/warehouse/grid"
	"github.com/hayser8/picksim/internal/warehouse/placement"
	"github.com/hayser8/picksim/internal/warehouse/router"
)

// Result is the outcome of building a tour: its step count and physical
// length. Steps == router.Unreachable signals a routing failure.
type Result struct {
	Steps  int
	Meters float64
}

// unreachable reports whether a Result represents a routing failure.
func (r Result) unreachable() bool { return r.Steps == router.Unreachable }

// Unreachable reports whether the tour could not be completed.
func (r Result) Unreachable() bool { return r.unreachable() }

func uniqueCells(p *placement.Placement, skus []string) ([]grid.Cell, error) {
	seen := make(map[grid.Cell]struct{}, len(skus))
	out := make([]grid.Cell, 0, len(skus))
	for _, sku := range skus {
		c, err := p.CellOf(sku)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

// OrderTour computes the nearest-neighbor tour over an order's unique SKU
// locations, starting (and optionally ending) at the station.
func OrderTour(g *grid.Grid, p *placement.Placement, order demand.Order, returnToStation bool) (Result, error) {
	return tourOver(g, p, order.UniqueSKUs(), returnToStation)
}

// BatchTour computes the nearest-neighbor tour over the union of unique
// SKU locations across every order in a batch.
func BatchTour(g *grid.Grid, p *placement.Placement, orders []demand.Order, returnToStation bool) (Result, error) {
	if len(orders) == 0 {
		return Result{Steps: 0, Meters: 0}, nil
	}
	seen := make(map[string]struct{})
	var skus []string
	for _, o := range orders {
		for _, sku := range o.UniqueSKUs() {
			if _, ok := seen[sku]; ok {
				continue
			}
			seen[sku] = struct{}{}
			skus = append(skus, sku)
		}
	}
	return tourOver(g, p, skus, returnToStation)
}

func tourOver(g *grid.Grid, p *placement.Placement, skus []string, returnToStation bool) (Result, error) {
	if len(skus) == 0 {
		return Result{Steps: 0, Meters: 0}, nil
	}
	cells, err := uniqueCells(p, skus)
	if err != nil {
		return Result{}, err
	}
	tour := router.MultiStopTour(g, g.Station, cells)
	if tour.Steps == router.Unreachable {
		return Result{Steps: router.Unreachable, Meters: -1}, nil
	}
	steps := tour.Steps
	if returnToStation {
		last := tour.Visit[len(tour.Visit)-1]
		back := router.ShortestPathSteps(g, last, g.Station)
		if back == router.Unreachable {
			return Result{Steps: router.Unreachable, Meters: -1}, nil
		}
		steps += back
	}
	return Result{Steps: steps, Meters: g.Meters(steps)}, nil
}

// OrderPath builds the visual (Manhattan) path for a single order's tour.
func OrderPath(g *grid.Grid, p *placement.Placement, order demand.Order, returnToStation bool) ([]grid.Cell, error) {
	return pathOver(g, p, order.UniqueSKUs(), returnToStation)
}

// BatchPath builds the visual (Manhattan) path for a batch's tour.
func BatchPath(g *grid.Grid, p *placement.Placement, orders []demand.Order, returnToStation bool) ([]grid.Cell, error) {
	seen := make(map[string]struct{})
	var skus []string
	for _, o := range orders {
		for _, sku := range o.UniqueSKUs() {
			if _, ok := seen[sku]; ok {
				continue
			}
			seen[sku] = struct{}{}
			skus = append(skus, sku)
		}
	}
	return pathOver(g, p, skus, returnToStation)
}

func pathOver(g *grid.Grid, p *placement.Placement, skus []string, returnToStation bool) ([]grid.Cell, error) {
	if len(skus) == 0 {
		return []grid.Cell{g.Station}, nil
	}
	cells, err := uniqueCells(p, skus)
	if err != nil {
		return nil, err
	}
	tour := router.MultiStopTour(g, g.Station, cells)
	if tour.Steps == router.Unreachable {
		return nil, nil
	}
	return router.VisitPath(g.Station, tour.Visit, returnToStation), nil
}
