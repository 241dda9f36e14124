// Copyright 2025 James Ross
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/hayser8/picksim/internal/api"
	"github.com/hayser8/picksim/internal/config"
	"github.com/hayser8/picksim/internal/obs"
	"github.com/hayser8/picksim/internal/picking/demand"
	"github.com/hayser8/picksim/internal/report"
	"github.com/hayser8/picksim/internal/sim/engine"
	"github.com/hayser8/picksim/internal/warehouse/grid"
	"github.com/hayser8/picksim/internal/warehouse/placement"
	"go.uber.org/zap"

	"flag"
)

var version = "dev"

func main() {
	var configPath string
	var demo bool
	var showVersion bool
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fs.StringVar(&configPath, "config", "config/config.yaml", "Path to YAML/JSON config")
	fs.BoolVar(&demo, "demo", false, "Generate a scenario with internal/picking/demand and print a report instead of serving HTTP")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	_ = fs.Parse(os.Args[1:])

	if showVersion {
		fmt.Println(version)
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := obs.NewLogger(cfg.Observability.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if demo {
		runDemo(logger, cfg)
		return
	}

	tp, err := obs.MaybeInitTracing(cfg)
	if err != nil {
		logger.Warn("tracing init failed", obs.Err(err))
	}
	if tp != nil {
		defer func() { _ = tp.Shutdown(context.Background()) }()
	}

	store := api.NewStore()
	handlers := api.NewHandlers(store, logger)
	router := api.NewRouter(handlers)

	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Observability.MetricsPort), Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server error", obs.Err(err))
		}
	}()
	logger.Info("picksim listening", obs.Int("port", cfg.Observability.MetricsPort))

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("signal received, shutting down", obs.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

// runDemo generates a small scenario with internal/picking/demand,
// runs it to completion, and prints an internal/report summary.
// This is thin wiring so the ambient stack has a real entry point, not
// a feature build-out of the demand generator.
func runDemo(logger *zap.Logger, cfg *config.Config) {
	rng := demand.NewRNG(42)
	catalog := demand.Catalog{NumSKUs: 30}
	popularity, err := demand.NewPopularity(catalog, demand.Concentrated, 1.2)
	if err != nil {
		logger.Fatal("popularity init failed", obs.Err(err))
	}

	gen := demand.Generator{
		Catalog:    catalog,
		Popularity: popularity,
		Spec:       demand.OrderSpec{MinItems: 1, MaxItems: 4, AllowDuplicates: false},
		RNG:        rng,
	}

	arrivals := demand.PoissonArrivals{LambdaPerMin: 0.8, HorizonMin: 60, RNG: rng}
	times, err := arrivals.SampleTimes()
	if err != nil {
		logger.Fatal("arrival sampling failed", obs.Err(err))
	}

	orders := make([]demand.Order, 0, len(times))
	for _, t := range times {
		o, err := gen.Make(t)
		if err != nil {
			logger.Fatal("order generation failed", obs.Err(err))
		}
		orders = append(orders, o)
	}

	g, err := grid.New(20, 20, 1.0, grid.Cell{X: 0, Y: 0})
	if err != nil {
		logger.Fatal("grid init failed", obs.Err(err))
	}

	ids := catalog.IDs()
	p, err := placement.Hotspot(g, ids[:10], ids[10:])
	if err != nil {
		logger.Fatal("placement init failed", obs.Err(err))
	}

	simCfg := cfg.Sim.ToSimConfig()
	sim, err := engine.NewSimulator(g, p, orders, simCfg)
	if err != nil {
		logger.Fatal("simulator init failed", obs.Err(err))
	}

	result, err := sim.Run()
	if err != nil {
		logger.Fatal("simulation run failed", obs.Err(err))
	}

	fmt.Println(report.Summary(uuid.New().String(), result))
}
