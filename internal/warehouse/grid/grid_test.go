// Copyright 2025 James Ross
package grid

import "testing"

func TestNewValidatesDimensions(t *testing.T) {
	if _, err := New(0, 10, 1.0, Cell{}); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := New(10, 10, 0, Cell{}); err == nil {
		t.Fatal("expected error for non-positive cell size")
	}
	if _, err := New(10, 10, 1.0, Cell{X: 50, Y: 0}); err == nil {
		t.Fatal("expected error for out-of-bounds station")
	}
}

func TestStationAlwaysTraversable(t *testing.T) {
	g, err := New(5, 5, 1.0, Cell{X: 2, Y: 2}, WithObstacles(Cell{X: 2, Y: 2}, Cell{X: 0, Y: 0}))
	if err != nil {
		t.Fatal(err)
	}
	if !g.Passable(g.Station) {
		t.Fatal("station must remain passable even if listed as an obstacle")
	}
	if g.Passable(Cell{X: 0, Y: 0}) {
		t.Fatal("explicit obstacle must remain blocked")
	}
}

func TestNeighborsFixedOrder(t *testing.T) {
	g, err := New(5, 5, 1.0, Cell{})
	if err != nil {
		t.Fatal(err)
	}
	got := g.Neighbors(Cell{X: 2, Y: 2})
	want := []Cell{{X: 2, Y: 1}, {X: 2, Y: 3}, {X: 1, Y: 2}, {X: 3, Y: 2}}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("neighbor order mismatch at %d: got %v want %v", i, got, want)
		}
	}
}

func TestNeighborsExcludeObstaclesAndBounds(t *testing.T) {
	g, err := New(3, 3, 1.0, Cell{}, WithObstacles(Cell{X: 1, Y: 0}))
	if err != nil {
		t.Fatal(err)
	}
	got := g.Neighbors(Cell{X: 0, Y: 0})
	// up and left are out of bounds; right is blocked; only down remains
	if len(got) != 1 || got[0] != (Cell{X: 0, Y: 1}) {
		t.Fatalf("expected only down neighbor, got %v", got)
	}
}

func TestEdgesAreUndirectedAndUnique(t *testing.T) {
	g, err := New(2, 2, 1.0, Cell{})
	if err != nil {
		t.Fatal(err)
	}
	edges := g.Edges()
	if len(edges) != 4 {
		t.Fatalf("expected 4 edges in a 2x2 grid, got %d: %v", len(edges), edges)
	}
}

func TestMeters(t *testing.T) {
	g, err := New(5, 5, 0.5, Cell{})
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Meters(10); got != 5.0 {
		t.Fatalf("expected 5.0 meters, got %v", got)
	}
}

func TestManhattanDistance(t *testing.T) {
	if d := ManhattanDistance(Cell{X: 0, Y: 0}, Cell{X: 3, Y: 5}); d != 8 {
		t.Fatalf("expected 8, got %d", d)
	}
}
