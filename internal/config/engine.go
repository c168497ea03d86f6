package config

import (
	"os"
	"strconv"
)

const (
	deliverySlippageWeightEnv = "DELIVERY_SLIPPAGE_WEIGHT"
	costOverrunWeightEnv      = "COST_OVERRUN_WEIGHT"
	overworkWeightEnv         = "OVERWORK_WEIGHT"
	onTimeBonusWeightEnv      = "ON_TIME_BONUS_WEIGHT"
	maxChangesPerCycleEnv     = "MAX_CHANGES_PER_CYCLE"
	burnoutThresholdEnv       = "BURNOUT_THRESHOLD"
	overworkHoursWeeklyEnv    = "OVERWORK_HOURS_WEEKLY"
	idleThresholdPercentEnv   = "IDLE_THRESHOLD_PERCENT"

	defaultObjectiveWeight      = 0.25
	defaultMaxChangesPerCycle   = 5
	defaultBurnoutThreshold     = 70.0
	defaultOverworkHoursWeekly  = 45.0
	defaultIdleThresholdPercent = 30.0
)

// EngineConfig carries the objective weights and thresholds for one
// recommendation cycle. Weights are not required to sum to 1; the engine
// does not reject unnormalized weights, that is the caller's concern.
type EngineConfig struct {
	DeliverySlippageWeight float64 `json:"delivery_slippage_weight"`
	CostOverrunWeight      float64 `json:"cost_overrun_weight"`
	OverworkWeight         float64 `json:"overwork_weight"`
	OnTimeBonusWeight      float64 `json:"on_time_bonus_weight"`
	MaxChangesPerCycle     int     `json:"max_changes_per_cycle"`
	BurnoutThreshold       float64 `json:"burnout_threshold"`
	OverworkHoursWeekly    float64 `json:"overwork_hours_weekly"`
	IdleThresholdPercent   float64 `json:"idle_threshold_percent"`
}

func LoadEngineConfig() *EngineConfig {
	cfg := &EngineConfig{
		DeliverySlippageWeight: floatEnv(deliverySlippageWeightEnv, defaultObjectiveWeight),
		CostOverrunWeight:      floatEnv(costOverrunWeightEnv, defaultObjectiveWeight),
		OverworkWeight:         floatEnv(overworkWeightEnv, defaultObjectiveWeight),
		OnTimeBonusWeight:      floatEnv(onTimeBonusWeightEnv, defaultObjectiveWeight),
		MaxChangesPerCycle:     defaultMaxChangesPerCycle,
		BurnoutThreshold:       floatEnv(burnoutThresholdEnv, defaultBurnoutThreshold),
		OverworkHoursWeekly:    floatEnv(overworkHoursWeeklyEnv, defaultOverworkHoursWeekly),
		IdleThresholdPercent:   floatEnv(idleThresholdPercentEnv, defaultIdleThresholdPercent),
	}

	if v := os.Getenv(maxChangesPerCycleEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.MaxChangesPerCycle = parsed
		}
	}

	return cfg
}

// Merge overlays non-zero fields of an override onto a copy of the base
// config. Used for per-request weight overrides.
func (c *EngineConfig) Merge(override *EngineConfig) *EngineConfig {
	merged := *c
	if override == nil {
		return &merged
	}
	if override.DeliverySlippageWeight > 0 {
		merged.DeliverySlippageWeight = override.DeliverySlippageWeight
	}
	if override.CostOverrunWeight > 0 {
		merged.CostOverrunWeight = override.CostOverrunWeight
	}
	if override.OverworkWeight > 0 {
		merged.OverworkWeight = override.OverworkWeight
	}
	if override.OnTimeBonusWeight > 0 {
		merged.OnTimeBonusWeight = override.OnTimeBonusWeight
	}
	if override.MaxChangesPerCycle > 0 {
		merged.MaxChangesPerCycle = override.MaxChangesPerCycle
	}
	if override.BurnoutThreshold > 0 {
		merged.BurnoutThreshold = override.BurnoutThreshold
	}
	if override.OverworkHoursWeekly > 0 {
		merged.OverworkHoursWeekly = override.OverworkHoursWeekly
	}
	if override.IdleThresholdPercent > 0 {
		merged.IdleThresholdPercent = override.IdleThresholdPercent
	}
	return &merged
}

func floatEnv(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return fallback
}
