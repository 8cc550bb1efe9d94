package decision

import (
	"math"

	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// ForecastDeviation measures how far the forecast sits from the current
// price in standard deviations of the closing-price window, capped at 3.
// A zero stddev (flat history) reads as zero deviation.
func ForecastDeviation(result *models.BayesianRegressionResult, stdDev float64) float64 {
	if stdDev <= 0 {
		return 0
	}
	dev := math.Abs(result.CurrentPrice-result.PredictedPrice) / stdDev
	if dev > 3 {
		dev = 3
	}
	return dev
}

// ExpectedBaseSize maps the forecast deviation onto the tiered position
// schedule in base-asset (volatile token) units: bigger statistical edges
// warrant the larger tiers.
func ExpectedBaseSize(deviation float64, cfg models.AnalyzerConfig) float64 {
	switch {
	case deviation > 2:
		return cfg.Tier2PositionSize
	case deviation > 1:
		return cfg.Tier1PositionSize
	default:
		return cfg.BasePositionSize
	}
}

// ExpectedInputAmount converts the base-asset tier into the input token's
// units for the given direction: a buy spends the stable token, so the tier
// is priced at the current price; a sell spends the volatile token directly.
func ExpectedInputAmount(action models.Action, deviation, currentPrice float64, cfg models.AnalyzerConfig) float64 {
	base := ExpectedBaseSize(deviation, cfg)
	if action == models.ActionBuy {
		return base * currentPrice
	}
	return base
}
