package indicators

import (
	"math"

	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// VWAPResult carries the running VWAP series plus the volatility and
// confirmation reads derived alongside it.
type VWAPResult struct {
	Series     []float64
	Last       float64
	Volatility float64
	// Confirmed requires price deviation from VWAP above 0.5% together with
	// current volume above the historical average.
	Confirmed bool
}

// VWAP computes the cumulative typical-price*volume over cumulative volume
// as a running series. averageVolume is the historical mean volume used for
// the confirmation check.
func VWAP(candles []models.Candle, averageVolume float64) VWAPResult {
	if len(candles) == 0 {
		return VWAPResult{}
	}

	series := make([]float64, len(candles))
	var cumPV, cumVol float64
	for i, c := range candles {
		cumPV += c.TypicalPrice() * c.Volume
		cumVol += c.Volume
		if cumVol == 0 {
			series[i] = c.TypicalPrice()
			continue
		}
		series[i] = Finite(cumPV/cumVol, c.TypicalPrice())
	}

	last := series[len(series)-1]
	lastCandle := candles[len(candles)-1]

	deviation := 0.0
	if last != 0 {
		deviation = math.Abs(lastCandle.Close-last) / last
	}

	return VWAPResult{
		Series:     series,
		Last:       last,
		Volatility: MeanTrueRange(candles),
		Confirmed:  deviation > 0.005 && lastCandle.Volume > averageVolume,
	}
}
