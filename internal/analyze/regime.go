package analyze

import (
	"math"

	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// DetectRegime classifies the market into one of four regimes from the VWMA
// slope and the RSI extremes. No state is persisted; the classification is
// recomputed on every call.
//
// The relative gap between the latest VWMA value and the value at the
// midpoint of the series decides trend: above the threshold it is an
// uptrend or downtrend by sign. Otherwise an RSI beyond 70/30 reads as
// exhaustion, and everything else is consolidation.
func DetectRegime(vwma []float64, rsi float64, trendThreshold float64) models.MarketRegime {
	if len(vwma) < 2 {
		return models.RegimeConsolidating
	}

	last := vwma[len(vwma)-1]
	mid := vwma[len(vwma)/2]
	if mid != 0 {
		gap := (last - mid) / mid
		if math.Abs(gap) > trendThreshold {
			if gap > 0 {
				return models.RegimeUptrend
			}
			return models.RegimeDowntrend
		}
	}

	if rsi > 70 || rsi < 30 {
		return models.RegimeExhaustion
	}

	return models.RegimeConsolidating
}

// TrendDirectionForRegime maps a trending regime onto a trade direction.
// Non-trending regimes are neutral.
func TrendDirectionForRegime(regime models.MarketRegime) models.TrendDirection {
	switch regime {
	case models.RegimeUptrend:
		return models.TrendBullish
	case models.RegimeDowntrend:
		return models.TrendBearish
	default:
		return models.TrendNeutral
	}
}
