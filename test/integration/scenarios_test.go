// Copyright 2025 James Ross

// Package integration exercises picksim end to end: building a grid and
// placement, generating or hand-writing demand, running the simulator,
// and checking the cross-component properties spec.md §8 calls out.
// Per-component behavior is covered closer to the source in each
// package's own _test.go files; these tests check properties that only
// emerge once multiple packages are wired together.
package integration

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hayser8/picksim/internal/picking/demand"
	"github.com/hayser8/picksim/internal/picking/policy"
	"github.com/hayser8/picksim/internal/sim/engine"
	"github.com/hayser8/picksim/internal/warehouse/grid"
	"github.com/hayser8/picksim/internal/warehouse/placement"
)

func baseConfig() engine.SimConfig {
	return engine.SimConfig{
		Policy:       policy.FCFS,
		NPickers:     1,
		SpeedMPerMin: 60,
		Congestion:   engine.CongestionOff,
		RoundDt:      0.1,
	}
}

// TestSizeBatchBeatsFCFSOnClusteredDemandScenarioS3 mirrors scenario S3:
// 8 SKUs clustered in the cells nearest the station, all demand on them,
// single picker. Size-batch (B=6) must not be dominated by FCFS.
func TestSizeBatchBeatsFCFSOnClusteredDemandScenarioS3(t *testing.T) {
	g, err := grid.New(20, 20, 1.0, grid.Cell{X: 0, Y: 0})
	require.NoError(t, err)

	// All 8 SKUs are "popular" so Hotspot clusters them into the cells
	// nearest the station, standing in for a dedicated clustered region.
	catalog := demand.Catalog{NumSKUs: 8}
	p, err := placement.Hotspot(g, catalog.IDs(), nil)
	require.NoError(t, err)

	pop, err := demand.NewPopularity(catalog, demand.Uniform, 0)
	require.NoError(t, err)
	gen := &demand.Generator{
		Catalog:    catalog,
		Popularity: pop,
		Spec:       demand.OrderSpec{MinItems: 1, MaxItems: 3, AllowDuplicates: true},
		RNG:        demand.NewRNG(5),
	}
	arrivals := demand.PoissonArrivals{LambdaPerMin: 1.5, HorizonMin: 120, RNG: demand.NewRNG(5)}
	times, err := arrivals.SampleTimes()
	require.NoError(t, err)

	orders := make([]demand.Order, 0, len(times))
	for _, tm := range times {
		o, err := gen.Make(tm)
		require.NoError(t, err)
		orders = append(orders, o)
	}

	run := func(cfg engine.SimConfig) engine.SimResult {
		cfg.HorizonMin = 120
		sim, err := engine.NewSimulator(g, p, orders, cfg)
		require.NoError(t, err)
		res, err := sim.Run()
		require.NoError(t, err)
		return res
	}

	fcfsCfg := baseConfig()
	batchCfg := baseConfig()
	batchCfg.Policy = policy.SizeBatch
	batchCfg.BatchSize = 6

	resFCFS := run(fcfsCfg)
	resBatch := run(batchCfg)

	require.GreaterOrEqual(t, resBatch.ThroughputPerHour, 0.95*resFCFS.ThroughputPerHour,
		"size-batch throughput (%g) should not be dominated by FCFS (%g)", resBatch.ThroughputPerHour, resFCFS.ThroughputPerHour)
}

// TestEndToEndRunProducesConsistentResultAndTrace checks cross-package
// invariants that only hold once grid, placement, demand, policy, and
// the engine are wired together: completed+failed orders never exceed
// the orders submitted, and the fused trace's last frame lands at or
// before the makespan.
func TestEndToEndRunProducesConsistentResultAndTrace(t *testing.T) {
	g, err := grid.New(15, 15, 1.0, grid.Cell{X: 0, Y: 0})
	require.NoError(t, err)

	catalog := demand.Catalog{NumSKUs: 15}
	pop, err := demand.NewPopularity(catalog, demand.Concentrated, 1.2)
	require.NoError(t, err)
	p, err := placement.Hotspot(g, catalog.IDs()[:5], catalog.IDs()[5:])
	require.NoError(t, err)

	gen := &demand.Generator{
		Catalog:    catalog,
		Popularity: pop,
		Spec:       demand.OrderSpec{MinItems: 1, MaxItems: 3, AllowDuplicates: false},
		RNG:        demand.NewRNG(9),
	}
	arrivals := demand.PoissonArrivals{LambdaPerMin: 1.2, HorizonMin: 90, RNG: demand.NewRNG(9)}
	times, err := arrivals.SampleTimes()
	require.NoError(t, err)

	orders := make([]demand.Order, 0, len(times))
	for _, tm := range times {
		o, err := gen.Make(tm)
		require.NoError(t, err)
		orders = append(orders, o)
	}

	cfg := baseConfig()
	cfg.NPickers = 2
	cfg.HorizonMin = 90
	sim, err := engine.NewSimulator(g, p, orders, cfg)
	require.NoError(t, err)
	res, err := sim.Run()
	require.NoError(t, err)

	require.LessOrEqual(t, res.OrdersCompleted+res.OrdersFailed, len(orders))
	if len(res.Timeline) > 0 {
		last := res.Timeline[len(res.Timeline)-1]
		require.LessOrEqual(t, last.Time, res.Makespan+1e-9)
	}
}
