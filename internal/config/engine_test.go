package config

import "testing"

func TestLoadEngineConfigDefaults(t *testing.T) {
	cfg := LoadEngineConfig()

	if cfg.DeliverySlippageWeight != 0.25 || cfg.CostOverrunWeight != 0.25 ||
		cfg.OverworkWeight != 0.25 || cfg.OnTimeBonusWeight != 0.25 {
		t.Errorf("expected equal default weights, got %+v", cfg)
	}
	if cfg.MaxChangesPerCycle != 5 {
		t.Errorf("expected default max changes 5, got %d", cfg.MaxChangesPerCycle)
	}
	if cfg.BurnoutThreshold != 70 {
		t.Errorf("expected default burnout threshold 70, got %v", cfg.BurnoutThreshold)
	}
	if cfg.IdleThresholdPercent != 30 {
		t.Errorf("expected default idle threshold 30, got %v", cfg.IdleThresholdPercent)
	}
}

func TestLoadEngineConfigFromEnv(t *testing.T) {
	t.Setenv("DELIVERY_SLIPPAGE_WEIGHT", "0.5")
	t.Setenv("MAX_CHANGES_PER_CYCLE", "3")
	t.Setenv("BURNOUT_THRESHOLD", "80")

	cfg := LoadEngineConfig()
	if cfg.DeliverySlippageWeight != 0.5 {
		t.Errorf("expected delivery weight 0.5, got %v", cfg.DeliverySlippageWeight)
	}
	if cfg.MaxChangesPerCycle != 3 {
		t.Errorf("expected max changes 3, got %d", cfg.MaxChangesPerCycle)
	}
	if cfg.BurnoutThreshold != 80 {
		t.Errorf("expected burnout threshold 80, got %v", cfg.BurnoutThreshold)
	}
}

func TestLoadEngineConfigIgnoresInvalidEnv(t *testing.T) {
	t.Setenv("DELIVERY_SLIPPAGE_WEIGHT", "heavy")
	t.Setenv("MAX_CHANGES_PER_CYCLE", "-2")

	cfg := LoadEngineConfig()
	if cfg.DeliverySlippageWeight != 0.25 {
		t.Errorf("expected fallback weight 0.25, got %v", cfg.DeliverySlippageWeight)
	}
	if cfg.MaxChangesPerCycle != 5 {
		t.Errorf("expected fallback max changes 5, got %d", cfg.MaxChangesPerCycle)
	}
}

func TestEngineConfigMerge(t *testing.T) {
	base := &EngineConfig{
		DeliverySlippageWeight: 0.25,
		CostOverrunWeight:      0.25,
		OverworkWeight:         0.25,
		OnTimeBonusWeight:      0.25,
		MaxChangesPerCycle:     5,
		BurnoutThreshold:       70,
		OverworkHoursWeekly:    45,
		IdleThresholdPercent:   30,
	}

	tests := []struct {
		name     string
		override *EngineConfig
		check    func(t *testing.T, merged *EngineConfig)
	}{
		{
			name:     "nil override keeps base",
			override: nil,
			check: func(t *testing.T, merged *EngineConfig) {
				if *merged != *base {
					t.Errorf("expected base config unchanged, got %+v", merged)
				}
			},
		},
		{
			name:     "zero fields fall through",
			override: &EngineConfig{DeliverySlippageWeight: 0.6},
			check: func(t *testing.T, merged *EngineConfig) {
				if merged.DeliverySlippageWeight != 0.6 {
					t.Errorf("expected overridden weight 0.6, got %v", merged.DeliverySlippageWeight)
				}
				if merged.CostOverrunWeight != 0.25 || merged.MaxChangesPerCycle != 5 {
					t.Errorf("expected untouched fields from base, got %+v", merged)
				}
			},
		},
		{
			name:     "max changes override",
			override: &EngineConfig{MaxChangesPerCycle: 2, BurnoutThreshold: 85},
			check: func(t *testing.T, merged *EngineConfig) {
				if merged.MaxChangesPerCycle != 2 || merged.BurnoutThreshold != 85 {
					t.Errorf("expected overridden caps, got %+v", merged)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := base.Merge(tt.override)
			if merged == base {
				t.Fatal("expected a copy, got the base pointer")
			}
			tt.check(t, merged)
		})
	}
}
