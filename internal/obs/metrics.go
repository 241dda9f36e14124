// Copyright 2025 James Ross
package obs

import (
	"fmt"
	"net/http"

	"github.com/hayser8/picksim/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SimulationsRun = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "picksim_simulations_run_total",
		Help: "Total number of simulations run to completion",
	})
	SimulationsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "picksim_simulations_failed_total",
		Help: "Total number of simulations that aborted with an error",
	})
	OrdersCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "picksim_orders_completed_total",
		Help: "Total number of orders completed across all runs",
	})
	OrdersFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "picksim_orders_failed_total",
		Help: "Total number of orders skipped as unreachable",
	})
	PickersBusy = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "picksim_pickers_busy",
		Help: "Number of pickers currently dispatched with a job, for the in-progress run",
	})
	QueueLength = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "picksim_waiting_jobs",
		Help: "Number of jobs waiting for a free picker, for the in-progress run",
	})
	JobDispatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "picksim_job_dispatch_duration_minutes",
		Help:    "Histogram of dispatched job service durations, in simulated minutes",
		Buckets: prometheus.DefBuckets,
	})
	SimulationRunSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "picksim_simulation_run_seconds",
		Help:    "Wall-clock time spent running one simulation to completion",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(
		SimulationsRun,
		SimulationsFailed,
		OrdersCompleted,
		OrdersFailed,
		PickersBusy,
		QueueLength,
		JobDispatchDuration,
		SimulationRunSeconds,
	)
}

// StartMetricsServer exposes /metrics and returns a server for
// controlled shutdown. Retained for compatibility; StartHTTPServer
// also registers health endpoints.
func StartMetricsServer(cfg *config.Config) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Observability.MetricsPort), Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
