// Copyright 2025 James Ross
package engine

import "github.com/hayser8/picksim/internal/picking/policy"

// CongestionMode selects the slowdown model applied at dispatch time.
type CongestionMode string

const (
	CongestionOff   CongestionMode = "off"
	CongestionLight CongestionMode = "light"
)

// SimConfig is the simulator's construction-time configuration,
// validated as a unit so every rejection is a single ConfigError at
// construction rather than a scattered runtime failure.
type SimConfig struct {
	Policy           policy.Name
	NPickers         int
	SpeedMPerMin     float64
	Congestion       CongestionMode
	BatchSize        int
	TimeThresholdMin float64
	HorizonMin       float64
	RoundDt          float64
	SkipUnreachable  bool
}

// Validate checks every recognized SimConfig rule from the error
// taxonomy. Fields only meaningful to one policy (BatchSize,
// TimeThresholdMin) are validated only when that policy is selected.
func (c SimConfig) Validate() error {
	switch c.Policy {
	case policy.FCFS, policy.SizeBatch, policy.TimeBatch:
	default:
		return &ConfigError{Field: "policy", Reason: "unrecognized policy " + string(c.Policy)}
	}
	if c.NPickers < 1 {
		return &ConfigError{Field: "n_pickers", Reason: "must be >= 1"}
	}
	if c.SpeedMPerMin <= 0 {
		return &ConfigError{Field: "speed_m_per_min", Reason: "must be > 0"}
	}
	switch c.Congestion {
	case CongestionOff, CongestionLight:
	default:
		return &ConfigError{Field: "congestion", Reason: "must be \"off\" or \"light\""}
	}
	if c.Policy == policy.SizeBatch && c.BatchSize < 1 {
		return &ConfigError{Field: "batch_size", Reason: "must be >= 1"}
	}
	if c.Policy == policy.TimeBatch && c.TimeThresholdMin <= 0 {
		return &ConfigError{Field: "time_threshold_min", Reason: "must be > 0"}
	}
	if c.RoundDt <= 0 {
		return &ConfigError{Field: "round_dt", Reason: "must be > 0"}
	}
	if c.HorizonMin < 0 {
		return &ConfigError{Field: "horizon_min", Reason: "must be >= 0 (0 means unset)"}
	}
	return nil
}
