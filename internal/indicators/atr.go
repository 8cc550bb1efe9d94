package indicators

import (
	"math"

	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// TrueRange returns the candle's true range against the previous close.
func TrueRange(c models.Candle, prevClose float64) float64 {
	return math.Max(c.High-c.Low, math.Max(math.Abs(c.High-prevClose), math.Abs(c.Low-prevClose)))
}

// ATR computes the simple (not exponential) average true range over the most
// recent period candles. Returns 0 if fewer than period+1 candles.
func ATR(candles []models.Candle, period int) float64 {
	if period <= 0 || len(candles) < period+1 {
		return 0
	}

	sum := 0.0
	for i := len(candles) - period; i < len(candles); i++ {
		sum += TrueRange(candles[i], candles[i-1].Close)
	}

	return Finite(sum/float64(period), 0)
}

// MeanTrueRange averages the true range over the whole history. Used as the
// VWAP volatility measure.
func MeanTrueRange(candles []models.Candle) float64 {
	if len(candles) < 2 {
		return 0
	}

	sum := 0.0
	for i := 1; i < len(candles); i++ {
		sum += TrueRange(candles[i], candles[i-1].Close)
	}

	return Finite(sum/float64(len(candles)-1), 0)
}
