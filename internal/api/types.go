// Copyright 2025 James Ross
// Package api exposes the simulator over HTTP: submit a scenario,
// fetch a previously computed result, and let Prometheus scrape
// /metrics. Every request gets its own Simulator; the package carries
// no shared mutable simulation state beyond the result store.
package api

import (
	"time"

	"github.com/hayser8/picksim/internal/sim/engine"
)

// CellRequest is a wire-friendly (x, y) pair.
type CellRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// GridRequest describes the warehouse floor.
type GridRequest struct {
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	CellSizeM float64       `json:"cell_size_m"`
	Station   CellRequest   `json:"station"`
	Obstacles []CellRequest `json:"obstacles,omitempty"`
}

// PlacementRequest lists SKUs in hotspot priority order.
type PlacementRequest struct {
	Popular []string `json:"popular"`
	Others  []string `json:"others"`
}

// OrderRequest is one customer order on the wire.
type OrderRequest struct {
	ArrivalMin float64  `json:"arrival_min"`
	Items      []string `json:"items"`
}

// SimRequest mirrors engine.SimConfig in JSON-friendly form.
type SimRequest struct {
	Policy           string  `json:"policy"`
	NPickers         int     `json:"n_pickers"`
	SpeedMPerMin     float64 `json:"speed_m_per_min"`
	Congestion       string  `json:"congestion"`
	BatchSize        int     `json:"batch_size,omitempty"`
	TimeThresholdMin float64 `json:"time_threshold_min,omitempty"`
	HorizonMin       float64 `json:"horizon_min,omitempty"`
	RoundDt          float64 `json:"round_dt"`
	SkipUnreachable  bool    `json:"skip_unreachable,omitempty"`
}

// SimulationRequest is the full POST body for /api/picksim/simulations.
type SimulationRequest struct {
	Grid      GridRequest      `json:"grid"`
	Placement PlacementRequest `json:"placement"`
	Orders    []OrderRequest   `json:"orders"`
	Sim       SimRequest       `json:"sim"`
}

// SimulationRecord is what the store keeps and the GET endpoint returns.
// Result.Timeline already carries the fused picker trace.
type SimulationRecord struct {
	ID       string           `json:"id"`
	SubmitAt time.Time        `json:"submitted_at"`
	Result   engine.SimResult `json:"result"`
}
