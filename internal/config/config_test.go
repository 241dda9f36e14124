// Copyright 2025 James Ross
package config

import (
	"testing"

	"github.com/hayser8/picksim/internal/picking/policy"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sim.Policy != string(policy.FCFS) {
		t.Fatalf("expected default policy fcfs, got %q", cfg.Sim.Policy)
	}
	if cfg.Sim.NPickers != 1 {
		t.Fatalf("expected default n_pickers 1, got %d", cfg.Sim.NPickers)
	}
	if cfg.Observability.MetricsPort != 9090 {
		t.Fatalf("expected default metrics port 9090, got %d", cfg.Observability.MetricsPort)
	}
}

func TestValidateFailsOnBadSimConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Sim.NPickers = 0
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for n_pickers < 1")
	}

	cfg = defaultConfig()
	cfg.Sim.SpeedMPerMin = 0
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for speed_m_per_min <= 0")
	}

	cfg = defaultConfig()
	cfg.Sim.Policy = "not-a-policy"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestValidateFailsOnBadMetricsPort(t *testing.T) {
	cfg := defaultConfig()
	cfg.Observability.MetricsPort = 0
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for metrics_port out of range")
	}
}

func TestToSimConfigRoundTrip(t *testing.T) {
	cfg := defaultConfig()
	sc := cfg.Sim.ToSimConfig()
	if sc.Policy != policy.FCFS {
		t.Fatalf("expected FCFS policy, got %v", sc.Policy)
	}
	if sc.NPickers != cfg.Sim.NPickers {
		t.Fatalf("n_pickers mismatch: %d != %d", sc.NPickers, cfg.Sim.NPickers)
	}
}
