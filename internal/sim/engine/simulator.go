// Copyright 2025 James Ross
// Package engine implements the discrete-event scheduler: the single
// actor that owns picker state, the event queue, and every telemetry
// accumulator. Run is single-threaded and synchronous by design —
// determinism requires a total order over same-time events, which a
// goroutine-based implementation cannot guarantee without reintroducing
// the very races this package exists to avoid.
package engine

import (
	"math"

	"github.com/hayser8/picksim/internal/picking/demand"
	"github.com/hayser8/picksim/internal/picking/policy"
	"github.com/hayser8/picksim/internal/picking/tours"
	"github.com/hayser8/picksim/internal/warehouse/grid"
	"github.com/hayser8/picksim/internal/warehouse/placement"
	"github.com/hayser8/picksim/internal/sim/events"
	"github.com/hayser8/picksim/internal/sim/trace"
)

const congestionAlpha = 0.15

// Simulator runs one discrete-event simulation to completion. It is
// not safe for concurrent use — callers needing concurrent scenarios
// construct one Simulator per goroutine.
type Simulator struct {
	grid      *grid.Grid
	placement *placement.Placement
	cfg       SimConfig

	jobsByID map[int]policy.Job

	now     float64
	queue   *events.Queue
	waiting []policy.Job
	pickers []PickerState
	tracks  []*trace.Track

	telemetry      Telemetry
	totalCompleted int
	ordersFailed   int
	truncated      bool
}

// NewSimulator validates cfg, compiles orders into jobs via the
// policy package, and seeds the event queue with one ARRIVAL per job.
// Unreachable jobs are fatal unless cfg.SkipUnreachable is set, in
// which case they are excluded and counted toward OrdersFailed.
func NewSimulator(g *grid.Grid, p *placement.Placement, orders []demand.Order, cfg SimConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	compiled, err := policy.Compile(cfg.Policy, g, p, orders, cfg.SpeedMPerMin, cfg.BatchSize, cfg.TimeThresholdMin)
	if err != nil {
		return nil, &PlacementError{Err: err}
	}

	jobsByID := make(map[int]policy.Job, len(compiled))
	var reachable []policy.Job
	ordersFailed := 0
	for _, j := range compiled {
		path, perr := tours.BatchPath(g, p, j.Orders, true)
		if perr != nil {
			return nil, &PlacementError{Err: perr}
		}
		if path == nil {
			if !cfg.SkipUnreachable {
				return nil, &RoutingError{JobID: j.ID}
			}
			ordersFailed += j.NOrders
			continue
		}
		jobsByID[j.ID] = j
		reachable = append(reachable, j)
	}

	// compiled is already sorted by non-decreasing ReleaseMin (policy
	// invariant), so pushing in this order gives a deterministic
	// insertion-sequence tie-break among same-time initial arrivals.
	q := events.NewQueue()
	for _, j := range reachable {
		q.Push(j.ReleaseMin, events.Arrival, events.ArrivalPayload{JobID: j.ID})
	}

	pickers := make([]PickerState, cfg.NPickers)
	tracks := make([]*trace.Track, cfg.NPickers)
	for i := 0; i < cfg.NPickers; i++ {
		pickers[i] = PickerState{ID: i}
		tr := &trace.Track{PickerID: i}
		tr.Append(trace.Keyframe{Time: 0, X: g.Station.X, Y: g.Station.Y, State: trace.Idle, JobID: nil})
		tracks[i] = tr
	}

	return &Simulator{
		grid:         g,
		placement:    p,
		cfg:          cfg,
		jobsByID:     jobsByID,
		queue:        q,
		pickers:      pickers,
		tracks:       tracks,
		ordersFailed: ordersFailed,
	}, nil
}

// Run drains the event queue, dispatching jobs to free pickers as they
// arrive or free up, and returns the final KPI report. If horizon_min
// is set, the loop halts at the first event past the horizon and the
// remainder of the queue is discarded — not an error.
func (s *Simulator) Run() (SimResult, error) {
	for !s.queue.Empty() {
		t, _ := s.queue.PeekTime()
		if s.cfg.HorizonMin > 0 && t > s.cfg.HorizonMin {
			s.now = s.cfg.HorizonMin
			s.truncated = true
			break
		}
		e := s.queue.Pop()
		s.now = e.Time

		switch e.Kind {
		case events.Arrival:
			payload := e.Payload.(events.ArrivalPayload)
			job := s.jobsByID[payload.JobID]
			s.waiting = append(s.waiting, job)
			s.telemetry.QueueSeries = append(s.telemetry.QueueSeries, Point{Time: s.now, Value: float64(len(s.waiting))})
			if err := s.dispatch(); err != nil {
				return SimResult{}, err
			}
		case events.PickerFree:
			payload := e.Payload.(events.PickerFreePayload)
			job := s.jobsByID[payload.JobID]
			s.pickers[payload.PickerID].CompletedOrders += job.NOrders
			s.totalCompleted += job.NOrders
			s.telemetry.CompletionSeries = append(s.telemetry.CompletionSeries, Point{Time: s.now, Value: float64(s.totalCompleted)})
			s.telemetry.QueueSeries = append(s.telemetry.QueueSeries, Point{Time: s.now, Value: float64(len(s.waiting))})
			if err := s.dispatch(); err != nil {
				return SimResult{}, err
			}
		}
	}

	return s.finalize(), nil
}

// dispatch assigns waiting jobs to free pickers at the current time,
// repeating until either waiting is empty or no picker is free.
func (s *Simulator) dispatch() error {
	for len(s.waiting) > 0 {
		idx := s.freestPicker()
		if idx == -1 {
			break
		}

		job := s.waiting[0]
		s.waiting = s.waiting[1:]

		path, err := tours.BatchPath(s.grid, s.placement, job.Orders, true)
		if err != nil {
			return &PlacementError{Err: err}
		}
		if path == nil {
			if !s.cfg.SkipUnreachable {
				return &RoutingError{JobID: job.ID}
			}
			s.ordersFailed += job.NOrders
			continue
		}

		s.telemetry.DistanceTotalM += s.grid.Meters(len(path) - 1)

		activeCount := 0
		for _, p := range s.pickers {
			if p.BusyUntil > s.now {
				activeCount++
			}
		}
		mult := congestionMultiplier(s.cfg.Congestion, activeCount+1)
		duration := job.ServiceMin * mult

		s.telemetry.Gantt = append(s.telemetry.Gantt, GanttSegment{
			PickerID: s.pickers[idx].ID,
			Start:    s.now,
			End:      s.now + duration,
			JobID:    job.ID,
		})

		for _, o := range job.Orders {
			wait := s.now - o.ArrivalMin
			if wait < 0 {
				wait = 0
			}
			s.telemetry.Waits = append(s.telemetry.Waits, wait)
		}

		if s.cfg.Policy != policy.FCFS {
			firstArrival := job.Orders[0].ArrivalMin
			for _, o := range job.Orders[1:] {
				if o.ArrivalMin < firstArrival {
					firstArrival = o.ArrivalMin
				}
			}
			fill := job.ReleaseMin - firstArrival
			if fill < 0 {
				fill = 0
			}
			s.telemetry.BatchStats = append(s.telemetry.BatchStats, BatchStat{
				Size:           job.NOrders,
				ReleaseMin:     job.ReleaseMin,
				FillLatencyMin: fill,
			})
		}

		s.tracks[idx].AnimateJob(toTraceCells(path), s.now, duration, job.ID, s.cfg.RoundDt)

		s.pickers[idx].BusyUntil = s.now + duration
		s.pickers[idx].BusyTime += duration
		s.pickers[idx].TourCount++

		s.queue.Push(s.pickers[idx].BusyUntil, events.PickerFree, events.PickerFreePayload{PickerID: idx, JobID: job.ID})
	}
	return nil
}

// freestPicker returns the index of the free picker (busy_until <=
// now) minimizing busy_until, tie-broken by lowest id. Returns -1 if
// no picker is free.
func (s *Simulator) freestPicker() int {
	idx := -1
	for i, p := range s.pickers {
		if p.BusyUntil > s.now {
			continue
		}
		if idx == -1 || p.BusyUntil < s.pickers[idx].BusyUntil {
			idx = i
		}
	}
	return idx
}

func congestionMultiplier(mode CongestionMode, k int) float64 {
	if mode == CongestionOff {
		return 1
	}
	if k <= 1 {
		return 1
	}
	return 1 + congestionAlpha*float64(k-1)
}

func toTraceCells(cells []grid.Cell) []trace.Cell {
	out := make([]trace.Cell, len(cells))
	for i, c := range cells {
		out[i] = trace.Cell{X: c.X, Y: c.Y}
	}
	return out
}

func (s *Simulator) finalize() SimResult {
	maxBusyUntil := 0.0
	for _, p := range s.pickers {
		if p.BusyUntil > maxBusyUntil {
			maxBusyUntil = p.BusyUntil
		}
	}
	makespan := math.Max(s.now, maxBusyUntil)
	if s.cfg.HorizonMin > 0 && makespan > s.cfg.HorizonMin {
		makespan = s.cfg.HorizonMin
	}

	throughput := 0.0
	if makespan > 0 {
		throughput = float64(s.totalCompleted) * 60 / makespan
	}

	util := make([]float64, len(s.pickers))
	idle := make([]float64, len(s.pickers))
	clippedBusy := make([]float64, len(s.pickers))
	for _, seg := range s.telemetry.Gantt {
		end := math.Min(seg.End, makespan)
		dur := end - seg.Start
		if dur < 0 {
			dur = 0
		}
		clippedBusy[seg.PickerID] += dur
	}
	for i := range s.pickers {
		if makespan > 0 {
			util[i] = clippedBusy[i] / makespan
		}
		idle[i] = math.Max(0, makespan-clippedBusy[i])
	}

	distancePerOrder := 0.0
	if s.totalCompleted > 0 {
		distancePerOrder = s.telemetry.DistanceTotalM / float64(s.totalCompleted)
	}

	batchCount := len(s.telemetry.BatchStats)
	batchMeanSize, batchPctMulti, batchMeanRelease, batchMeanFill := 0.0, 0.0, 0.0, 0.0
	if batchCount > 0 {
		sizes := make([]float64, batchCount)
		releases := make([]float64, batchCount)
		fills := make([]float64, batchCount)
		multi := 0
		for i, b := range s.telemetry.BatchStats {
			sizes[i] = float64(b.Size)
			releases[i] = b.ReleaseMin
			fills[i] = b.FillLatencyMin
			if b.Size >= 2 {
				multi++
			}
		}
		batchMeanSize = mean(sizes)
		batchPctMulti = float64(multi) / float64(batchCount)
		batchMeanRelease = mean(releases)
		batchMeanFill = mean(fills)
	}

	return SimResult{
		Makespan:                makespan,
		OrdersCompleted:         s.totalCompleted,
		OrdersFailed:            s.ordersFailed,
		ThroughputPerHour:       throughput,
		AvgWaitMin:              mean(s.telemetry.Waits),
		P90WaitMin:              percentile(s.telemetry.Waits, 0.90),
		P95WaitMin:              percentile(s.telemetry.Waits, 0.95),
		PickerUtilization:       util,
		PickerIdleMin:           idle,
		DistanceTotalM:          s.telemetry.DistanceTotalM,
		DistancePerOrderAvgM:    distancePerOrder,
		BatchCount:              batchCount,
		BatchMeanSize:           batchMeanSize,
		BatchPctMultiOrder:      batchPctMulti,
		BatchMeanReleaseMin:     batchMeanRelease,
		BatchMeanFillLatencyMin: batchMeanFill,
		Truncated:               s.truncated,
		Telemetry:               s.telemetry,
		Timeline:                trace.Fuse(s.tracks, makespan),
	}
}
