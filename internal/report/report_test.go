// Copyright 2025 James Ross
package report

import (
	"strings"
	"testing"

	"github.com/hayser8/picksim/internal/sim/engine"
)

func TestSummaryIncludesHeadlineKPIs(t *testing.T) {
	result := engine.SimResult{
		Makespan:          42.5,
		OrdersCompleted:   10,
		OrdersFailed:      1,
		ThroughputPerHour: 14.1,
		AvgWaitMin:        2.3,
		P90WaitMin:        5.1,
		P95WaitMin:        6.0,
		PickerUtilization: []float64{0.8, 0.6},
		PickerIdleMin:     []float64{8.5, 17.0},
	}

	out := Summary("run-abc", result)
	for _, want := range []string{"run-abc", "makespan", "orders completed:    10", "orders failed:       1", "picker 0", "picker 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected summary to contain %q, got:\n%s", want, out)
		}
	}
}

func TestSummarySkipsSparklinesWithoutSeries(t *testing.T) {
	result := engine.SimResult{OrdersCompleted: 0}
	out := Summary("run-empty", result)
	if strings.Contains(out, "queue length over time") {
		t.Fatalf("expected no queue sparkline for an empty series")
	}
}

func TestSummaryIncludesBatchStatsWhenPresent(t *testing.T) {
	result := engine.SimResult{
		BatchCount:         3,
		BatchMeanSize:      2.5,
		BatchPctMultiOrder: 0.66,
	}
	out := Summary("run-batch", result)
	if !strings.Contains(out, "batches:             3") {
		t.Fatalf("expected batch stats line, got:\n%s", out)
	}
}

func TestSummaryFlagsTruncatedRuns(t *testing.T) {
	result := engine.SimResult{Truncated: true}
	out := Summary("run-trunc", result)
	if !strings.Contains(out, "truncated at horizon_min") {
		t.Fatalf("expected truncation note, got:\n%s", out)
	}
}
