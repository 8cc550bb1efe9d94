package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// AnalyzerConfig is the fully-enumerated set of numeric knobs the analysis
// pipeline reads. Every field has a documented default; instances are
// immutable per analysis call and never mutated mid-computation. Unknown
// keys in an override payload are rejected at construction time.
type AnalyzerConfig struct {
	// MinDataPoints is the candle count below which Analyze degrades to the
	// neutral fallback result.
	MinDataPoints int `json:"minDataPoints" default:"96" validate:"gt=0"`

	// Indicator lookbacks.
	RSIPeriod       int `json:"rsiPeriod" default:"14" validate:"gt=1"`
	VolumeRSIPeriod int `json:"volumeRsiPeriod" default:"14" validate:"gt=1"`
	VWMAPeriod      int `json:"vwmaPeriod" default:"20" validate:"gt=1"`
	ATRPeriod       int `json:"atrPeriod" default:"14" validate:"gt=0"`
	OBVLookback     int `json:"obvLookback" default:"20" validate:"gt=1"`
	ProfileLookback int `json:"profileLookback" default:"50" validate:"gt=0"`

	// VolumeProfileThreshold keeps a price bucket significant when its
	// accumulated volume exceeds maxVolume*threshold.
	VolumeProfileThreshold float64 `json:"volumeProfileThreshold" default:"0.7" validate:"gt=0,lte=1"`
	// VolumeConfirmationThreshold is the multiple of the previous candle's
	// volume required to call a candle volume-confirmed.
	VolumeConfirmationThreshold float64 `json:"volumeConfirmationThreshold" default:"1.5" validate:"gt=0"`
	// VolumeDivergenceThreshold is the minimum relative price-trend magnitude
	// for an OBV divergence to count as a signal.
	VolumeDivergenceThreshold float64 `json:"volumeDivergenceThreshold" default:"0.003" validate:"gt=0"`
	// TrendThreshold is the relative VWMA gap that separates a trending
	// regime from consolidation.
	TrendThreshold float64 `json:"trendThreshold" default:"0.015" validate:"gt=0"`

	// Risk-level knobs.
	ATRMultiplier      float64 `json:"atrMultiplier" default:"2.5" validate:"gt=0"`
	RiskRewardRatio    float64 `json:"riskRewardRatio" default:"3.0" validate:"gt=0"`
	MinStopDistancePct float64 `json:"minStopDistancePct" default:"0.01" validate:"gt=0"`
	MaxStopDistancePct float64 `json:"maxStopDistancePct" default:"0.10" validate:"gt=0"`

	// AR(1) blend weight: min(cap, c1*arimaConf + c2*trendStrength + c3*volFactor),
	// applied only above the floor. The coefficients are carried over from the
	// deployed configuration and are not assumed optimal.
	BlendArimaCoef      float64 `json:"blendArimaCoef" default:"0.6" validate:"gte=0"`
	BlendTrendCoef      float64 `json:"blendTrendCoef" default:"0.3" validate:"gte=0"`
	BlendVolatilityCoef float64 `json:"blendVolatilityCoef" default:"0.1" validate:"gte=0"`
	BlendWeightCap      float64 `json:"blendWeightCap" default:"0.4" validate:"gt=0,lte=1"`
	BlendWeightFloor    float64 `json:"blendWeightFloor" default:"0.3" validate:"gte=0,lte=1"`

	// Decision-validation knobs.
	RiskLevelTolerancePct float64 `json:"riskLevelTolerancePct" default:"0.01" validate:"gt=0"`
	MinSlippage           float64 `json:"minSlippage" default:"0.005" validate:"gt=0"`
	MaxSlippageLowVol     float64 `json:"maxSlippageLowVol" default:"0.015" validate:"gt=0"`
	MaxSlippageHighVol    float64 `json:"maxSlippageHighVol" default:"0.03" validate:"gt=0"`
	HighVolThreshold      float64 `json:"highVolThreshold" default:"0.03" validate:"gt=0"`
	PositionTolerancePct  float64 `json:"positionTolerancePct" default:"0.10" validate:"gt=0"`

	// Position-size tiers in base-asset units, selected by forecast
	// deviation (sigma, capped at 3).
	BasePositionSize  float64 `json:"basePositionSize" default:"0.02" validate:"gt=0"`
	Tier1PositionSize float64 `json:"tier1PositionSize" default:"0.03" validate:"gt=0"`
	Tier2PositionSize float64 `json:"tier2PositionSize" default:"0.04" validate:"gt=0"`
}

// DefaultAnalyzerConfig returns a config with every knob at its documented
// default.
func DefaultAnalyzerConfig() AnalyzerConfig {
	var cfg AnalyzerConfig
	// defaults.Set only fails on a non-pointer target.
	if err := defaults.Set(&cfg); err != nil {
		panic(err)
	}
	return cfg
}

// AnalyzerConfigFromJSON constructs a config from defaults plus a JSON
// override payload. Unknown keys are rejected rather than silently ignored,
// and the merged config is validated before use.
func AnalyzerConfigFromJSON(raw []byte) (AnalyzerConfig, error) {
	cfg := DefaultAnalyzerConfig()
	if len(raw) > 0 {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return AnalyzerConfig{}, fmt.Errorf("decoding analyzer config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return AnalyzerConfig{}, err
	}
	return cfg, nil
}

// Validate checks field-level constraints plus cross-field ordering.
func (c AnalyzerConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating analyzer config: %w", err)
	}
	if c.MinStopDistancePct >= c.MaxStopDistancePct {
		return fmt.Errorf("validating analyzer config: minStopDistancePct %.4f must be below maxStopDistancePct %.4f",
			c.MinStopDistancePct, c.MaxStopDistancePct)
	}
	if c.MinSlippage >= c.MaxSlippageHighVol {
		return fmt.Errorf("validating analyzer config: minSlippage %.4f must be below maxSlippageHighVol %.4f",
			c.MinSlippage, c.MaxSlippageHighVol)
	}
	return nil
}

// MaxSlippage returns the upper slippage bound for the given volatility.
func (c AnalyzerConfig) MaxSlippage(volatility float64) float64 {
	if volatility > c.HighVolThreshold {
		return c.MaxSlippageHighVol
	}
	return c.MaxSlippageLowVol
}
