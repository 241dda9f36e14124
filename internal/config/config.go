// Copyright 2025 James Ross
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hayser8/picksim/internal/picking/policy"
	"github.com/hayser8/picksim/internal/sim/engine"
	"github.com/spf13/viper"
)

// TracingConfig controls optional OTLP export, scoped around
// HTTP-triggered simulation runs rather than the event loop itself.
type TracingConfig struct {
	Enabled          bool    `mapstructure:"enabled"`
	Endpoint         string  `mapstructure:"endpoint"`
	Environment      string  `mapstructure:"environment"`
	SamplingStrategy string  `mapstructure:"sampling_strategy"`
	SamplingRate     float64 `mapstructure:"sampling_rate"`
}

// Tracing is a backwards-compatible alias.
type Tracing = TracingConfig

type ObservabilityConfig struct {
	MetricsPort int           `mapstructure:"metrics_port"`
	LogLevel    string        `mapstructure:"log_level"`
	Tracing     TracingConfig `mapstructure:"tracing"`
}

// Observability is a backwards-compatible alias.
type Observability = ObservabilityConfig

// SimSection mirrors engine.SimConfig in a viper-friendly shape: plain
// strings for the enum fields, converted via ToSimConfig.
type SimSection struct {
	Policy           string  `mapstructure:"policy"`
	NPickers         int     `mapstructure:"n_pickers"`
	SpeedMPerMin     float64 `mapstructure:"speed_m_per_min"`
	Congestion       string  `mapstructure:"congestion"`
	BatchSize        int     `mapstructure:"batch_size"`
	TimeThresholdMin float64 `mapstructure:"time_threshold_min"`
	HorizonMin       float64 `mapstructure:"horizon_min"`
	RoundDt          float64 `mapstructure:"round_dt"`
	SkipUnreachable  bool    `mapstructure:"skip_unreachable"`
}

// ToSimConfig converts the loaded section into the engine's typed config.
func (s SimSection) ToSimConfig() engine.SimConfig {
	return engine.SimConfig{
		Policy:           policy.Name(s.Policy),
		NPickers:         s.NPickers,
		SpeedMPerMin:     s.SpeedMPerMin,
		Congestion:       engine.CongestionMode(s.Congestion),
		BatchSize:        s.BatchSize,
		TimeThresholdMin: s.TimeThresholdMin,
		HorizonMin:       s.HorizonMin,
		RoundDt:          s.RoundDt,
		SkipUnreachable:  s.SkipUnreachable,
	}
}

type Config struct {
	Sim           SimSection    `mapstructure:"sim"`
	Observability Observability `mapstructure:"observability"`
}

func defaultConfig() *Config {
	return &Config{
		Sim: SimSection{
			Policy:           string(policy.FCFS),
			NPickers:         1,
			SpeedMPerMin:     60,
			Congestion:       string(engine.CongestionOff),
			BatchSize:        1,
			TimeThresholdMin: 1,
			HorizonMin:       0,
			RoundDt:          1,
			SkipUnreachable:  false,
		},
		Observability: Observability{
			MetricsPort: 9090,
			LogLevel:    "info",
			Tracing:     Tracing{Enabled: false, SamplingStrategy: "probabilistic", SamplingRate: 0.1},
		},
	}
}

// Load reads configuration from a YAML or JSON file plus env overrides,
// falling back to defaults for anything unset. The file need not exist;
// a missing path simply yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := defaultConfig()
	v.SetDefault("sim.policy", def.Sim.Policy)
	v.SetDefault("sim.n_pickers", def.Sim.NPickers)
	v.SetDefault("sim.speed_m_per_min", def.Sim.SpeedMPerMin)
	v.SetDefault("sim.congestion", def.Sim.Congestion)
	v.SetDefault("sim.batch_size", def.Sim.BatchSize)
	v.SetDefault("sim.time_threshold_min", def.Sim.TimeThresholdMin)
	v.SetDefault("sim.horizon_min", def.Sim.HorizonMin)
	v.SetDefault("sim.round_dt", def.Sim.RoundDt)
	v.SetDefault("sim.skip_unreachable", def.Sim.SkipUnreachable)

	v.SetDefault("observability.metrics_port", def.Observability.MetricsPort)
	v.SetDefault("observability.log_level", def.Observability.LogLevel)
	v.SetDefault("observability.tracing.enabled", def.Observability.Tracing.Enabled)
	v.SetDefault("observability.tracing.endpoint", def.Observability.Tracing.Endpoint)
	v.SetDefault("observability.tracing.environment", def.Observability.Tracing.Environment)
	v.SetDefault("observability.tracing.sampling_strategy", def.Observability.Tracing.SamplingStrategy)
	v.SetDefault("observability.tracing.sampling_rate", def.Observability.Tracing.SamplingRate)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks config constraints, delegating the simulation fields
// to engine.SimConfig.Validate so the rules live in exactly one place.
func Validate(cfg *Config) error {
	if err := cfg.Sim.ToSimConfig().Validate(); err != nil {
		return err
	}
	if cfg.Observability.MetricsPort <= 0 || cfg.Observability.MetricsPort > 65535 {
		return fmt.Errorf("observability.metrics_port must be 1..65535")
	}
	return nil
}
