// Copyright 2025 James Ross
// Package placement assigns SKUs to grid cells, with a hotspot strategy
// that keeps popular SKUs nearest the packing station.
package placement

import (
	"fmt"
	"sort"

	"github.com/hayser8/picksim/internal/warehouse/grid"
)

// Placement is an immutable bijection from SKU id to a traversable grid
// cell, distinct from the station, with no two SKUs sharing a cell.
type Placement struct {
	skuToCell map[string]grid.Cell
}

// CellOf returns the cell assigned to sku.
func (p *Placement) CellOf(sku string) (grid.Cell, error) {
	c, ok := p.skuToCell[sku]
	if !ok {
		return grid.Cell{}, fmt.Errorf("placement: unknown SKU %q", sku)
	}
	return c, nil
}

// Len reports how many SKUs are placed.
func (p *Placement) Len() int {
	return len(p.skuToCell)
}

// Hotspot builds a Placement where popular SKUs occupy the cells nearest
// the station (by ascending Manhattan distance, ties broken by (y, x)
// lexicographic order), followed by the remaining SKUs. It fails if the
// combined SKU count exceeds the number of eligible cells (every
// traversable cell except the station).
func Hotspot(g *grid.Grid, popular, others []string) (*Placement, error) {
	eligible := make([]grid.Cell, 0, g.Width*g.Height)
	for _, c := range g.Nodes() {
		if c == g.Station {
			continue
		}
		eligible = append(eligible, c)
	}
	sort.Slice(eligible, func(i, j int) bool {
		di := grid.ManhattanDistance(eligible[i], g.Station)
		dj := grid.ManhattanDistance(eligible[j], g.Station)
		if di != dj {
			return di < dj
		}
		if eligible[i].Y != eligible[j].Y {
			return eligible[i].Y < eligible[j].Y
		}
		return eligible[i].X < eligible[j].X
	})

	total := len(popular) + len(others)
	if total > len(eligible) {
		return nil, fmt.Errorf("placement: %d SKUs requested but only %d eligible cells available", total, len(eligible))
	}

	mapping := make(map[string]grid.Cell, total)
	idx := 0
	for _, sku := range popular {
		mapping[sku] = eligible[idx]
		idx++
	}
	for _, sku := range others {
		mapping[sku] = eligible[idx]
		idx++
	}
	return &Placement{skuToCell: mapping}, nil
}
