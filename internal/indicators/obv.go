package indicators

import (
	"math"

	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// OBVResult carries the cumulative on-balance volume plus the
// divergence-vs-price read over a lookback window.
type OBVResult struct {
	// Value is the final cumulative OBV.
	Value float64
	// Trend is the net OBV change over the lookback divided by the window
	// length (volume units per bar).
	Trend float64
	// PriceTrend is the relative close change over the same window divided
	// by the window length (fraction per bar).
	PriceTrend float64
	// Divergence fires when OBV trend and price trend disagree in sign.
	Divergence bool
	// Magnitude is the absolute price trend backing a divergence.
	Magnitude float64
}

// OBVSeries computes the running on-balance volume: volume added on
// up-closes, subtracted on down-closes, held on unchanged closes.
func OBVSeries(candles []models.Candle) []float64 {
	if len(candles) == 0 {
		return nil
	}

	series := make([]float64, len(candles))
	series[0] = candles[0].Volume
	for i := 1; i < len(candles); i++ {
		switch {
		case candles[i].Close > candles[i-1].Close:
			series[i] = series[i-1] + candles[i].Volume
		case candles[i].Close < candles[i-1].Close:
			series[i] = series[i-1] - candles[i].Volume
		default:
			series[i] = series[i-1]
		}
	}

	return series
}

// OBV computes the cumulative value and the divergence read over the most
// recent lookback bars. Fewer than 2 candles yields the zero result.
func OBV(candles []models.Candle, lookback int) OBVResult {
	series := OBVSeries(candles)
	if len(series) < 2 {
		return OBVResult{}
	}

	if lookback < 2 {
		lookback = 2
	}
	if lookback > len(series) {
		lookback = len(series)
	}

	window := float64(lookback)
	first := len(series) - lookback

	obvTrend := (series[len(series)-1] - series[first]) / window

	priceTrend := 0.0
	if base := candles[first].Close; base != 0 {
		priceTrend = (candles[len(candles)-1].Close - base) / base / window
	}

	divergence := obvTrend != 0 && priceTrend != 0 && signOf(obvTrend) != signOf(priceTrend)

	magnitude := 0.0
	if divergence {
		magnitude = math.Abs(priceTrend)
	}

	return OBVResult{
		Value:      series[len(series)-1],
		Trend:      Finite(obvTrend, 0),
		PriceTrend: Finite(priceTrend, 0),
		Divergence: divergence,
		Magnitude:  magnitude,
	}
}

func signOf(x float64) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
