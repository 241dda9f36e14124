// Copyright 2025 James Ross
package tours

import (
	"testing"

	"github.com/hayser8/picksim/internal/picking/demand"
	"github.com/hayser8/picksim/internal/warehouse/grid"
	"github.com/hayser8/picksim/internal/warehouse/placement"
)

func TestOrderTourRoundTrip(t *testing.T) {
	g, err := grid.New(10, 20, 1.0, grid.Cell{})
	if err != nil {
		t.Fatal(err)
	}
	p, err := placement.Hotspot(g, nil, []string{"A"})
	if err != nil {
		t.Fatal(err)
	}
	cellA, _ := p.CellOf("A")
	order := demand.Order{ArrivalMin: 0, Items: []string{"A"}}

	res, err := OrderTour(g, p, order, true)
	if err != nil {
		t.Fatal(err)
	}
	expectedSteps := 2 * grid.ManhattanDistance(cellA, g.Station)
	if res.Steps != expectedSteps {
		t.Fatalf("expected %d round-trip steps, got %d", expectedSteps, res.Steps)
	}
}

func TestOrderTourReturnAddsLength(t *testing.T) {
	g, err := grid.New(10, 10, 1.0, grid.Cell{})
	if err != nil {
		t.Fatal(err)
	}
	p, err := placement.Hotspot(g, nil, []string{"A"})
	if err != nil {
		t.Fatal(err)
	}
	order := demand.Order{ArrivalMin: 0, Items: []string{"A"}}

	withReturn, err := OrderTour(g, p, order, true)
	if err != nil {
		t.Fatal(err)
	}
	withoutReturn, err := OrderTour(g, p, order, false)
	if err != nil {
		t.Fatal(err)
	}
	if withReturn.Steps <= withoutReturn.Steps {
		t.Fatalf("return-to-station tour should be strictly longer: %d vs %d", withReturn.Steps, withoutReturn.Steps)
	}
}

func TestBatchTourMonotonicityVsSeparateRoundTrips(t *testing.T) {
	g, err := grid.New(15, 15, 1.0, grid.Cell{})
	if err != nil {
		t.Fatal(err)
	}
	p, err := placement.Hotspot(g, nil, []string{"A", "B", "C"})
	if err != nil {
		t.Fatal(err)
	}
	orders := []demand.Order{
		{ArrivalMin: 0, Items: []string{"A"}},
		{ArrivalMin: 1, Items: []string{"B"}},
		{ArrivalMin: 2, Items: []string{"C"}},
	}

	batch, err := BatchTour(g, p, orders, true)
	if err != nil {
		t.Fatal(err)
	}

	separateTotal := 0
	for _, o := range orders {
		r, err := OrderTour(g, p, o, true)
		if err != nil {
			t.Fatal(err)
		}
		separateTotal += r.Steps
	}

	if batch.Steps > separateTotal {
		t.Fatalf("batched tour (%d) should not exceed sum of separate round-trips (%d)", batch.Steps, separateTotal)
	}
}

func TestBatchTourEmptyOrders(t *testing.T) {
	g, _ := grid.New(5, 5, 1.0, grid.Cell{})
	p, _ := placement.Hotspot(g, nil, nil)
	res, err := BatchTour(g, p, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if res.Steps != 0 || res.Meters != 0 {
		t.Fatalf("expected zero tour for no orders, got %+v", res)
	}
}

func TestOrderTourUnreachableSKU(t *testing.T) {
	g, err := grid.New(3, 3, 1.0, grid.Cell{}, grid.WithObstacles(
		grid.Cell{X: 0, Y: 1}, grid.Cell{X: 1, Y: 1}, grid.Cell{X: 2, Y: 1},
	))
	if err != nil {
		t.Fatal(err)
	}
	// Fill the two nearer, reachable cells with placeholders so "A" lands
	// beyond the obstacle wall in row y=2.
	p, err := placement.Hotspot(g, []string{"FILL1", "FILL2"}, []string{"A"})
	if err != nil {
		t.Fatal(err)
	}
	cellA, _ := p.CellOf("A")
	if cellA.Y != 2 {
		t.Fatalf("test setup assumption violated: expected A beyond the wall, got %v", cellA)
	}
	order := demand.Order{ArrivalMin: 0, Items: []string{"A"}}
	res, err := OrderTour(g, p, order, true)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Unreachable() {
		t.Fatalf("expected unreachable tour across the obstacle wall, got %+v", res)
	}
}
