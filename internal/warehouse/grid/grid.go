// Copyright 2025 James Ross
// Package grid models the rectangular warehouse lattice: its bounds, the
// packing station, and the set of obstacle cells that block travel.
package grid

import "fmt"

// Cell is an integer coordinate (x, y) on the warehouse floor.
type Cell struct {
	X, Y int
}

// Grid is a W×H lattice of cells with an optional obstacle set. The
// packing station is always traversable.
type Grid struct {
	Width, Height int
	CellSizeM     float64
	Station       Cell
	obstacles     map[Cell]struct{}
}

// Option configures a Grid at construction time.
type Option func(*Grid)

// WithObstacles adds the given cells to the obstacle set.
func WithObstacles(cells ...Cell) Option {
	return func(g *Grid) {
		for _, c := range cells {
			g.obstacles[c] = struct{}{}
		}
	}
}

// New builds a Grid. cellSizeM must be > 0; width and height must be > 0.
// The station is forced traversable even if it collides with a supplied
// obstacle — the grid invariant guarantees the station is never blocked.
func New(width, height int, cellSizeM float64, station Cell, opts ...Option) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid: width and height must be > 0, got %dx%d", width, height)
	}
	if cellSizeM <= 0 {
		return nil, fmt.Errorf("grid: cell size must be > 0, got %g", cellSizeM)
	}
	if station.X < 0 || station.X >= width || station.Y < 0 || station.Y >= height {
		return nil, fmt.Errorf("grid: station %v out of bounds for %dx%d", station, width, height)
	}
	g := &Grid{
		Width:     width,
		Height:    height,
		CellSizeM: cellSizeM,
		Station:   station,
		obstacles: make(map[Cell]struct{}),
	}
	for _, o := range opts {
		o(g)
	}
	delete(g.obstacles, station)
	return g, nil
}

// InBounds reports whether c lies within the grid's rectangle.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Passable reports whether c is not an obstacle. It does not check bounds.
func (g *Grid) Passable(c Cell) bool {
	_, blocked := g.obstacles[c]
	return !blocked
}

// Traversable reports whether c is in bounds and not an obstacle.
func (g *Grid) Traversable(c Cell) bool {
	return g.InBounds(c) && g.Passable(c)
}

// neighborOffsets is fixed to up, down, left, right so that BFS expansion
// order — and therefore all deterministic tie-breaks downstream — is
// reproducible across runs.
var neighborOffsets = [4]Cell{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

// Neighbors returns the 4-connected traversable neighbors of c, in the
// fixed up/down/left/right order.
func (g *Grid) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, 4)
	for _, off := range neighborOffsets {
		n := Cell{X: c.X + off.X, Y: c.Y + off.Y}
		if g.Traversable(n) {
			out = append(out, n)
		}
	}
	return out
}

// Nodes returns every traversable cell in row-major (y, then x) order.
func (g *Grid) Nodes() []Cell {
	out := make([]Cell, 0, g.Width*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := Cell{X: x, Y: y}
			if g.Passable(c) {
				out = append(out, c)
			}
		}
	}
	return out
}

// Edges returns every undirected edge between 4-adjacent traversable
// cells, each reported exactly once.
func (g *Grid) Edges() [][2]Cell {
	seen := make(map[[2]Cell]struct{})
	var out [][2]Cell
	for _, u := range g.Nodes() {
		for _, v := range g.Neighbors(u) {
			lo, hi := u, v
			if minCell(u, v) != u {
				lo, hi = v, u
			}
			e := [2]Cell{lo, hi}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}

func minCell(a, b Cell) Cell {
	if a.Y < b.Y || (a.Y == b.Y && a.X < b.X) {
		return a
	}
	return b
}

// Meters converts a step count into a physical distance.
func (g *Grid) Meters(steps int) float64 {
	return float64(steps) * g.CellSizeM
}

// ManhattanDistance returns |dx| + |dy| between two cells, used for
// hotspot ranking.
func ManhattanDistance(a, b Cell) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
