// Copyright 2025 James Ross
// Package policy converts an arrival-sorted order stream into jobs under
// one of three release disciplines: FCFS, size-threshold batching, and
// time-threshold batching. Policies are closed and finite — modeled as a
// named tag dispatching to one of three compile functions, not an
// interface hierarchy meant for extension.
package policy

import (
	"fmt"

	"github.com/hayser8/picksim/internal/picking/demand"
	"github.com/hayser8/picksim/internal/picking/tours"
	"github.com/hayser8/picksim/internal/warehouse/grid"
	"github.com/hayser8/picksim/internal/warehouse/placement"
)

// Name identifies which release discipline compiles an order stream.
type Name string

const (
	FCFS      Name = "FCFS"
	SizeBatch Name = "SIZE_BATCH"
	TimeBatch Name = "TIME_BATCH"
)

// Job is a unit of work assigned to exactly one picker: a single order
// (FCFS) or a batch of orders released together.
type Job struct {
	ID         int
	ReleaseMin float64
	ServiceMin float64
	NOrders    int
	Orders     []demand.Order
}

// minSpeed is the floor applied to speed_m_per_min to avoid division by
// zero when converting meters to service minutes.
const minSpeed = 1e-9

// Compile builds the job list for the given policy, orders (need not be
// pre-sorted — Compile sorts by arrival time), and parameters. The
// returned job list is sorted by non-decreasing ReleaseMin.
func Compile(name Name, g *grid.Grid, p *placement.Placement, orders []demand.Order, speedMPerMin float64, batchSize int, timeThresholdMin float64) ([]Job, error) {
	sorted := demand.SortByArrival(orders)
	switch name {
	case FCFS:
		return compileFCFS(g, p, sorted, speedMPerMin)
	case SizeBatch:
		return compileSizeBatch(g, p, sorted, speedMPerMin, batchSize)
	case TimeBatch:
		return compileTimeBatch(g, p, sorted, speedMPerMin, timeThresholdMin)
	default:
		return nil, fmt.Errorf("policy: unsupported policy %q", name)
	}
}

func serviceMinutes(m tours.Result, speedMPerMin float64) float64 {
	speed := speedMPerMin
	if speed < minSpeed {
		speed = minSpeed
	}
	return m.Meters / speed
}

func compileFCFS(g *grid.Grid, p *placement.Placement, orders []demand.Order, speedMPerMin float64) ([]Job, error) {
	jobs := make([]Job, 0, len(orders))
	for i, o := range orders {
		tr, err := tours.OrderTour(g, p, o, true)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, Job{
			ID:         i,
			ReleaseMin: o.ArrivalMin,
			ServiceMin: serviceMinutes(tr, speedMPerMin),
			NOrders:    1,
			Orders:     []demand.Order{o},
		})
	}
	return jobs, nil
}

// batch is an accumulated group of orders awaiting release.
type batch struct {
	orders []demand.Order
}

func compileSizeBatch(g *grid.Grid, p *placement.Placement, orders []demand.Order, speedMPerMin float64, batchSize int) ([]Job, error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("policy: batch_size must be >= 1, got %d", batchSize)
	}
	var batches []batch
	var buf []demand.Order
	for _, o := range orders {
		buf = append(buf, o)
		if len(buf) == batchSize {
			batches = append(batches, batch{orders: buf})
			buf = nil
		}
	}
	if len(buf) > 0 {
		batches = append(batches, batch{orders: buf})
	}

	jobs := make([]Job, 0, len(batches))
	for i, b := range batches {
		tr, err := tours.BatchTour(g, p, b.orders, true)
		if err != nil {
			return nil, err
		}
		release := maxArrival(b.orders)
		jobs = append(jobs, Job{
			ID:         i,
			ReleaseMin: release,
			ServiceMin: serviceMinutes(tr, speedMPerMin),
			NOrders:    len(b.orders),
			Orders:     b.orders,
		})
	}
	return jobs, nil
}

func compileTimeBatch(g *grid.Grid, p *placement.Placement, orders []demand.Order, speedMPerMin float64, thresholdMin float64) ([]Job, error) {
	if thresholdMin <= 0 {
		return nil, fmt.Errorf("policy: time_threshold_min must be > 0, got %g", thresholdMin)
	}
	var batches []batch
	var buf []demand.Order
	var firstTime float64
	haveFirst := false

	flush := func() {
		if len(buf) > 0 {
			batches = append(batches, batch{orders: buf})
		}
		buf = nil
		haveFirst = false
	}

	for _, o := range orders {
		if !haveFirst {
			buf = append(buf, o)
			firstTime = o.ArrivalMin
			haveFirst = true
			continue
		}
		if o.ArrivalMin-firstTime >= thresholdMin {
			flush()
			buf = append(buf, o)
			firstTime = o.ArrivalMin
			haveFirst = true
		} else {
			buf = append(buf, o)
		}
	}
	flush()

	jobs := make([]Job, 0, len(batches))
	for i, b := range batches {
		tr, err := tours.BatchTour(g, p, b.orders, true)
		if err != nil {
			return nil, err
		}
		// A batch closed by a later order crossing the threshold is
		// released at max(first+T, last arrival); the tail batch flushed
		// at stream end is released at its last arrival.
		release := maxArrival(b.orders)
		if i < len(batches)-1 {
			if window := minArrival(b.orders) + thresholdMin; window > release {
				release = window
			}
		}
		jobs = append(jobs, Job{
			ID:         i,
			ReleaseMin: release,
			ServiceMin: serviceMinutes(tr, speedMPerMin),
			NOrders:    len(b.orders),
			Orders:     b.orders,
		})
	}
	return jobs, nil
}

func maxArrival(orders []demand.Order) float64 {
	m := orders[0].ArrivalMin
	for _, o := range orders[1:] {
		if o.ArrivalMin > m {
			m = o.ArrivalMin
		}
	}
	return m
}

func minArrival(orders []demand.Order) float64 {
	m := orders[0].ArrivalMin
	for _, o := range orders[1:] {
		if o.ArrivalMin < m {
			m = o.ArrivalMin
		}
	}
	return m
}
