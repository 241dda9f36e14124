// Copyright 2025 James Ross
// Package report renders a terminal-friendly summary of a simulation
// result: headline KPIs plus ASCII sparklines of the queue-length and
// completion series. This is the thin, real stand-in for plot
// generation — deliberately not a GUI.
package report

import (
	"fmt"
	"strings"

	asciigraph "github.com/guptarohit/asciigraph"

	"github.com/hayser8/picksim/internal/sim/engine"
)

const (
	plotHeight = 8
	plotWidth  = 60
)

// Summary renders result as a multi-line terminal report.
func Summary(runID string, result engine.SimResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "picksim run %s\n", runID)
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 40))
	fmt.Fprintf(&b, "makespan:            %.2f min\n", result.Makespan)
	fmt.Fprintf(&b, "orders completed:    %d\n", result.OrdersCompleted)
	fmt.Fprintf(&b, "orders failed:       %d\n", result.OrdersFailed)
	fmt.Fprintf(&b, "throughput:          %.2f orders/hr\n", result.ThroughputPerHour)
	fmt.Fprintf(&b, "avg wait:            %.2f min\n", result.AvgWaitMin)
	fmt.Fprintf(&b, "p90 wait:            %.2f min\n", result.P90WaitMin)
	fmt.Fprintf(&b, "p95 wait:            %.2f min\n", result.P95WaitMin)
	fmt.Fprintf(&b, "distance total:      %.1f m\n", result.DistanceTotalM)
	fmt.Fprintf(&b, "distance per order:  %.1f m\n", result.DistancePerOrderAvgM)
	if result.BatchCount > 0 {
		fmt.Fprintf(&b, "batches:             %d (mean size %.2f, %.0f%% multi-order)\n",
			result.BatchCount, result.BatchMeanSize, result.BatchPctMultiOrder*100)
	}
	if result.Truncated {
		fmt.Fprintln(&b, "NOTE: run truncated at horizon_min")
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "picker utilization:")
	for i, u := range result.PickerUtilization {
		fmt.Fprintf(&b, "  picker %-3d %5.1f%%  (idle %.1f min)\n", i, u*100, result.PickerIdleMin[i])
	}

	if series := valuesOf(result.Telemetry.QueueSeries); len(series) > 1 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, asciigraph.Plot(series,
			asciigraph.Height(plotHeight), asciigraph.Width(plotWidth),
			asciigraph.Caption("queue length over time")))
	}
	if series := valuesOf(result.Telemetry.CompletionSeries); len(series) > 1 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, asciigraph.Plot(series,
			asciigraph.Height(plotHeight), asciigraph.Width(plotWidth),
			asciigraph.Caption("orders completed over time")))
	}

	return b.String()
}

func valuesOf(points []engine.Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}
