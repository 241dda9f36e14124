// Copyright 2025 James Ross
package engine

import (
	"sort"

	"github.com/hayser8/picksim/internal/sim/trace"
)

// SimResult is the simulator's complete post-loop report: final KPIs
// plus the raw telemetry and fused trace timeline they were derived
// from.
type SimResult struct {
	Makespan                float64 `json:"makespan_min"`
	OrdersCompleted         int     `json:"orders_completed"`
	OrdersFailed            int     `json:"orders_failed"`
	ThroughputPerHour       float64 `json:"throughput_per_hour"`
	AvgWaitMin              float64 `json:"avg_wait_min"`
	P90WaitMin              float64 `json:"p90_wait_min"`
	P95WaitMin              float64 `json:"p95_wait_min"`
	PickerUtilization       []float64 `json:"picker_utilization"`
	PickerIdleMin           []float64 `json:"picker_idle_min"`
	DistanceTotalM          float64 `json:"distance_total_m"`
	DistancePerOrderAvgM    float64 `json:"distance_per_order_avg_m"`
	BatchCount              int     `json:"batch_count"`
	BatchMeanSize           float64 `json:"batch_mean_size"`
	BatchPctMultiOrder      float64 `json:"batch_pct_multi_order"`
	BatchMeanReleaseMin     float64 `json:"batch_mean_release_min"`
	BatchMeanFillLatencyMin float64 `json:"batch_mean_fill_latency_min"`
	Truncated               bool    `json:"truncated"`

	Telemetry Telemetry      `json:"telemetry"`
	Timeline  trace.Timeline `json:"timeline"`
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// percentile returns the linear-interpolated p-th percentile (p in
// [0,1]) of xs. xs is not mutated.
func percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p * float64(len(sorted)-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
