// Copyright 2025 James Ross
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/hayser8/picksim/internal/obs"
	"github.com/hayser8/picksim/internal/picking/demand"
	"github.com/hayser8/picksim/internal/picking/policy"
	"github.com/hayser8/picksim/internal/sim/engine"
	"github.com/hayser8/picksim/internal/warehouse/grid"
	"github.com/hayser8/picksim/internal/warehouse/placement"
)

// Handlers provides the HTTP surface over the simulator.
type Handlers struct {
	store  *Store
	logger *zap.Logger
}

func NewHandlers(store *Store, logger *zap.Logger) *Handlers {
	return &Handlers{store: store, logger: logger}
}

// RegisterRoutes wires every picksim route onto router.
func (h *Handlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/picksim/simulations", h.CreateSimulation).Methods("POST")
	router.HandleFunc("/api/picksim/simulations/{id}", h.GetSimulation).Methods("GET")
}

// CreateSimulation handles POST /api/picksim/simulations: builds the
// grid/placement/order inputs from the request body, runs one
// Simulator synchronously to completion, and stores the result under a
// fresh run id.
func (h *Handlers) CreateSimulation(w http.ResponseWriter, r *http.Request) {
	var req SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	g, err := buildGrid(req.Grid)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid grid", err)
		return
	}
	p, err := placement.Hotspot(g, req.Placement.Popular, req.Placement.Others)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid placement", err)
		return
	}
	orders := buildOrders(req.Orders)
	simCfg := buildSimConfig(req.Sim)

	runID := uuid.New().String()
	ctx, span := obs.StartSimulationSpan(r.Context(), runID, string(simCfg.Policy), simCfg.NPickers)
	defer span.End()

	start := time.Now()
	sim, err := engine.NewSimulator(g, p, orders, simCfg)
	if err != nil {
		obs.SimulationsFailed.Inc()
		obs.RecordError(ctx, err)
		h.writeError(w, statusForEngineError(err), "failed to construct simulator", err)
		return
	}

	result, err := sim.Run()
	obs.SimulationRunSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		obs.SimulationsFailed.Inc()
		obs.RecordError(ctx, err)
		h.writeError(w, statusForEngineError(err), "simulation run failed", err)
		return
	}

	obs.SimulationsRun.Inc()
	obs.OrdersCompleted.Add(float64(result.OrdersCompleted))
	obs.OrdersFailed.Add(float64(result.OrdersFailed))
	for _, seg := range result.Telemetry.Gantt {
		obs.JobDispatchDuration.Observe(seg.End - seg.Start)
	}
	obs.SetSpanSuccess(ctx)

	rec := &SimulationRecord{ID: runID, SubmitAt: time.Now().UTC(), Result: result}
	h.store.Put(rec)

	h.logger.Info("simulation run completed",
		obs.String("run_id", runID),
		obs.Int("orders_completed", result.OrdersCompleted),
		obs.Bool("truncated", result.Truncated),
	)

	h.writeJSON(w, http.StatusCreated, rec)
}

// GetSimulation handles GET /api/picksim/simulations/{id}.
func (h *Handlers) GetSimulation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rec, err := h.store.Get(id)
	if err != nil {
		h.writeError(w, http.StatusNotFound, "simulation not found", err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func buildGrid(req GridRequest) (*grid.Grid, error) {
	obstacles := make([]grid.Cell, len(req.Obstacles))
	for i, c := range req.Obstacles {
		obstacles[i] = grid.Cell{X: c.X, Y: c.Y}
	}
	station := grid.Cell{X: req.Station.X, Y: req.Station.Y}
	return grid.New(req.Width, req.Height, req.CellSizeM, station, grid.WithObstacles(obstacles...))
}

func buildOrders(reqs []OrderRequest) []demand.Order {
	orders := make([]demand.Order, len(reqs))
	for i, o := range reqs {
		orders[i] = demand.Order{ArrivalMin: o.ArrivalMin, Items: o.Items}
	}
	return demand.SortByArrival(orders)
}

func buildSimConfig(req SimRequest) engine.SimConfig {
	return engine.SimConfig{
		Policy:           policy.Name(req.Policy),
		NPickers:         req.NPickers,
		SpeedMPerMin:     req.SpeedMPerMin,
		Congestion:       engine.CongestionMode(req.Congestion),
		BatchSize:        req.BatchSize,
		TimeThresholdMin: req.TimeThresholdMin,
		HorizonMin:       req.HorizonMin,
		RoundDt:          req.RoundDt,
		SkipUnreachable:  req.SkipUnreachable,
	}
}

// statusForEngineError maps the engine's sentinel error taxonomy onto
// HTTP status codes: configuration and placement problems are caller
// mistakes (400); an unreachable tour is a well-formed request the
// scenario itself cannot satisfy (422); anything else is unexpected.
func statusForEngineError(err error) int {
	var cfgErr *engine.ConfigError
	var placeErr *engine.PlacementError
	var routeErr *engine.RoutingError
	switch {
	case errors.As(err, &cfgErr), errors.As(err, &placeErr):
		return http.StatusBadRequest
	case errors.As(err, &routeErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", obs.Err(err))
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]interface{}{
		"error":     message,
		"status":    status,
		"timestamp": time.Now().UTC(),
	}
	if err != nil {
		resp["details"] = err.Error()
	}
	_ = json.NewEncoder(w).Encode(resp)
}
