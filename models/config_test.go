package models

import (
	"testing"
)

func TestDefaultAnalyzerConfig(t *testing.T) {
	cfg := DefaultAnalyzerConfig()

	if cfg.MinDataPoints != 96 {
		t.Errorf("MinDataPoints = %d, want 96", cfg.MinDataPoints)
	}
	if cfg.RSIPeriod != 14 || cfg.VWMAPeriod != 20 || cfg.ATRPeriod != 14 {
		t.Errorf("lookbacks = (%d, %d, %d), want (14, 20, 14)", cfg.RSIPeriod, cfg.VWMAPeriod, cfg.ATRPeriod)
	}
	if cfg.RiskRewardRatio != 3.0 || cfg.ATRMultiplier != 2.5 {
		t.Errorf("risk knobs = (%v, %v), want (3.0, 2.5)", cfg.RiskRewardRatio, cfg.ATRMultiplier)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestAnalyzerConfigFromJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		check   func(t *testing.T, cfg AnalyzerConfig)
	}{
		{
			name: "empty payload keeps defaults",
			raw:  "",
			check: func(t *testing.T, cfg AnalyzerConfig) {
				if cfg.MinDataPoints != 96 {
					t.Errorf("MinDataPoints = %d, want 96", cfg.MinDataPoints)
				}
			},
		},
		{
			name: "override merges over defaults",
			raw:  `{"rsiPeriod": 21, "trendThreshold": 0.02}`,
			check: func(t *testing.T, cfg AnalyzerConfig) {
				if cfg.RSIPeriod != 21 {
					t.Errorf("RSIPeriod = %d, want 21", cfg.RSIPeriod)
				}
				if cfg.TrendThreshold != 0.02 {
					t.Errorf("TrendThreshold = %v, want 0.02", cfg.TrendThreshold)
				}
				if cfg.VWMAPeriod != 20 {
					t.Errorf("untouched VWMAPeriod = %d, want default 20", cfg.VWMAPeriod)
				}
			},
		},
		{
			name:    "unknown key rejected",
			raw:     `{"rsiPeriods": 21}`,
			wantErr: true,
		},
		{
			name:    "out-of-range value rejected",
			raw:     `{"volumeProfileThreshold": 1.5}`,
			wantErr: true,
		},
		{
			name:    "inverted stop distances rejected",
			raw:     `{"minStopDistancePct": 0.2}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := AnalyzerConfigFromJSON([]byte(tt.raw))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("AnalyzerConfigFromJSON: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestMaxSlippage(t *testing.T) {
	cfg := DefaultAnalyzerConfig()

	if got := cfg.MaxSlippage(0.01); got != 0.015 {
		t.Errorf("low-vol max slippage = %v, want 0.015", got)
	}
	if got := cfg.MaxSlippage(0.05); got != 0.03 {
		t.Errorf("high-vol max slippage = %v, want 0.03", got)
	}
}

func TestHoldDecision(t *testing.T) {
	d := HoldDecision("no edge")
	if !d.IsHold() || !d.Amount.IsZero() {
		t.Errorf("hold = %+v", d)
	}
	if d.Reasoning != "no edge" {
		t.Errorf("reasoning = %q, want passthrough", d.Reasoning)
	}
	if (TradingDecision{Decision: ActionBuy}).IsHold() {
		t.Error("buy must not read as hold")
	}
}
