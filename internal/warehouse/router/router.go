// Copyright 2025 James Ross
// Package router computes shortest paths and approximate multi-stop tours
// over a warehouse.Grid, plus the cell-exact Manhattan paths used to
// animate a picker's route for visualization.
package router

import (
	"github.com/hayser8/picksim/internal/warehouse/grid"
)

// Unreachable is returned by ShortestPathSteps and tour builders when no
// path exists between two cells.
const Unreachable = -1

// ShortestPathSteps returns the number of 4-connected steps between start
// and goal via BFS. It returns 0 when start == goal, and Unreachable when
// either endpoint is out of bounds, blocked, or no path exists.
func ShortestPathSteps(g *grid.Grid, start, goal grid.Cell) int {
	if start == goal {
		return 0
	}
	if !g.Traversable(start) || !g.Traversable(goal) {
		return Unreachable
	}

	dist := map[grid.Cell]int{start: 0}
	queue := []grid.Cell{start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range g.Neighbors(u) {
			if _, seen := dist[v]; seen {
				continue
			}
			dist[v] = dist[u] + 1
			if v == goal {
				return dist[v]
			}
			queue = append(queue, v)
		}
	}
	return Unreachable
}

// Tour is the result of a multi-stop nearest-neighbor routing pass: the
// total step count and the ordered sequence of stops as actually visited.
type Tour struct {
	Steps int
	Visit []grid.Cell
}

// MultiStopTour greedily visits stops in nearest-neighbor order starting
// from start, breaking ties by the stops' original enumeration order.
// It returns a Tour with Steps == Unreachable if any hop is unreachable;
// adding a stop to the input never decreases the resulting step count.
func MultiStopTour(g *grid.Grid, start grid.Cell, stops []grid.Cell) Tour {
	remaining := make([]grid.Cell, len(stops))
	copy(remaining, stops)

	current := start
	total := 0
	visit := make([]grid.Cell, 0, len(stops))

	for len(remaining) > 0 {
		bestIdx := -1
		bestSteps := -1
		for i, s := range remaining {
			steps := ShortestPathSteps(g, current, s)
			if steps < 0 {
				return Tour{Steps: Unreachable}
			}
			if bestIdx == -1 || steps < bestSteps {
				bestSteps, bestIdx = steps, i
			}
		}
		total += bestSteps
		current = remaining[bestIdx]
		visit = append(visit, current)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return Tour{Steps: total, Visit: visit}
}

// MultiStopTourSteps is a convenience wrapper returning only the step
// count, matching the primitive named in the specification.
func MultiStopTourSteps(g *grid.Grid, start grid.Cell, stops []grid.Cell) int {
	return MultiStopTour(g, start, stops).Steps
}

// ManhattanPath emits the cell-exact path from a to b moving first along
// x, then along y (strict lexicographic). It is a visualization artifact
// only: it does not consult obstacles, since the router's BFS path is not
// surfaced by the step-count primitives above.
func ManhattanPath(a, b grid.Cell) []grid.Cell {
	path := []grid.Cell{a}
	x, y := a.X, a.Y
	if b.X != x {
		dx := 1
		if b.X < x {
			dx = -1
		}
		for x != b.X {
			x += dx
			path = append(path, grid.Cell{X: x, Y: y})
		}
	}
	if b.Y != y {
		dy := 1
		if b.Y < y {
			dy = -1
		}
		for y != b.Y {
			y += dy
			path = append(path, grid.Cell{X: x, Y: y})
		}
	}
	if path[len(path)-1] != b {
		path = append(path, b)
	}
	return path
}

// VisitPath concatenates the Manhattan paths from station through each
// cell in visit, in order, optionally closing back to the station. It is
// the per-job visual path used by the trace synthesizer.
func VisitPath(station grid.Cell, visit []grid.Cell, returnToStation bool) []grid.Cell {
	if len(visit) == 0 {
		return []grid.Cell{station}
	}
	var path []grid.Cell
	cur := station
	for _, c := range visit {
		seg := ManhattanPath(cur, c)
		if len(path) > 0 {
			seg = seg[1:]
		}
		path = append(path, seg...)
		cur = c
	}
	if returnToStation {
		seg := ManhattanPath(cur, station)
		path = append(path, seg[1:]...)
	}
	if len(path) == 0 {
		return []grid.Cell{station}
	}
	return path
}
