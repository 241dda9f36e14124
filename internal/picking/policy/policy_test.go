// Copyright 2025 James Ross
package policy

import (
	"testing"

	"github.com/hayser8/picksim/internal/picking/demand"
	"github.com/hayser8/picksim/internal/warehouse/grid"
	"github.com/hayser8/picksim/internal/warehouse/placement"
)

func setup(t *testing.T) (*grid.Grid, *placement.Placement) {
	t.Helper()
	g, err := grid.New(10, 20, 1.0, grid.Cell{})
	if err != nil {
		t.Fatal(err)
	}
	p, err := placement.Hotspot(g, nil, []string{"A", "B", "C", "D"})
	if err != nil {
		t.Fatal(err)
	}
	return g, p
}

func TestFCFSOnePerOrder(t *testing.T) {
	g, p := setup(t)
	orders := []demand.Order{
		{ArrivalMin: 0, Items: []string{"A"}},
		{ArrivalMin: 1, Items: []string{"B"}},
	}
	jobs, err := Compile(FCFS, g, p, orders, 60, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected one job per order, got %d", len(jobs))
	}
	for i, j := range jobs {
		if j.NOrders != 1 {
			t.Fatalf("job %d: expected NOrders=1, got %d", i, j.NOrders)
		}
		if j.ReleaseMin != orders[i].ArrivalMin {
			t.Fatalf("job %d: release time should equal arrival, got %g want %g", i, j.ReleaseMin, orders[i].ArrivalMin)
		}
	}
}

func TestSizeBatchFlushesAtThreshold(t *testing.T) {
	g, p := setup(t)
	orders := []demand.Order{
		{ArrivalMin: 0, Items: []string{"A"}},
		{ArrivalMin: 1, Items: []string{"B"}},
		{ArrivalMin: 2, Items: []string{"C"}},
		{ArrivalMin: 3, Items: []string{"D"}},
	}
	jobs, err := Compile(SizeBatch, g, p, orders, 60, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 batches of size 2, got %d", len(jobs))
	}
	if jobs[0].ReleaseMin != 1 || jobs[1].ReleaseMin != 3 {
		t.Fatalf("expected release times at batch-closing arrivals, got %v, %v", jobs[0].ReleaseMin, jobs[1].ReleaseMin)
	}
}

func TestSizeBatchFlushesPartialTail(t *testing.T) {
	g, p := setup(t)
	orders := []demand.Order{
		{ArrivalMin: 0, Items: []string{"A"}},
		{ArrivalMin: 1, Items: []string{"B"}},
		{ArrivalMin: 2, Items: []string{"C"}},
	}
	jobs, err := Compile(SizeBatch, g, p, orders, 60, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected one full batch plus one partial tail, got %d", len(jobs))
	}
	if jobs[1].NOrders != 1 {
		t.Fatalf("expected tail batch of size 1, got %d", jobs[1].NOrders)
	}
}

func TestTimeBatchReleasesMatchScenarioS4(t *testing.T) {
	g, p := setup(t)
	orders := []demand.Order{
		{ArrivalMin: 0.0, Items: []string{"A"}},
		{ArrivalMin: 0.5, Items: []string{"B"}},
		{ArrivalMin: 1.0, Items: []string{"C"}},
		{ArrivalMin: 3.5, Items: []string{"D"}},
	}
	jobs, err := Compile(TimeBatch, g, p, orders, 60, 0, 2.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected exactly two jobs, got %d", len(jobs))
	}
	if jobs[0].NOrders != 3 || jobs[0].ReleaseMin != 2.0 {
		t.Fatalf("expected first batch {0,0.5,1.0} released at t=2.0, got n=%d release=%g", jobs[0].NOrders, jobs[0].ReleaseMin)
	}
	if jobs[1].NOrders != 1 || jobs[1].ReleaseMin != 3.5 {
		t.Fatalf("expected second batch {3.5} released at t=3.5, got n=%d release=%g", jobs[1].NOrders, jobs[1].ReleaseMin)
	}
}

func TestJobsSortedByReleaseTime(t *testing.T) {
	g, p := setup(t)
	orders := []demand.Order{
		{ArrivalMin: 0, Items: []string{"A"}},
		{ArrivalMin: 0.2, Items: []string{"B"}},
		{ArrivalMin: 2.5, Items: []string{"C"}},
		{ArrivalMin: 2.6, Items: []string{"D"}},
	}
	for _, name := range []Name{FCFS, SizeBatch, TimeBatch} {
		jobs, err := Compile(name, g, p, orders, 60, 2, 1.0)
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i < len(jobs); i++ {
			if jobs[i].ReleaseMin < jobs[i-1].ReleaseMin {
				t.Fatalf("%s: jobs not sorted by release time: %+v", name, jobs)
			}
		}
	}
}

func TestCompileRejectsUnknownPolicy(t *testing.T) {
	g, p := setup(t)
	if _, err := Compile(Name("bogus"), g, p, nil, 60, 1, 1); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestCompileRejectsBadBatchSize(t *testing.T) {
	g, p := setup(t)
	if _, err := Compile(SizeBatch, g, p, nil, 60, 0, 1); err == nil {
		t.Fatal("expected error for batch_size < 1")
	}
}

func TestCompileRejectsBadTimeThreshold(t *testing.T) {
	g, p := setup(t)
	if _, err := Compile(TimeBatch, g, p, nil, 60, 1, 0); err == nil {
		t.Fatal("expected error for time_threshold_min <= 0")
	}
}
