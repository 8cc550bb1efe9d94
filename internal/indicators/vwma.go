package indicators

import (
	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// VWMA computes the volume-weighted moving average of typical price over a
// sliding window. One output per valid window; nil if fewer than period
// candles. Windows with zero total volume fall back to the window's last
// typical price.
func VWMA(candles []models.Candle, period int) []float64 {
	if period <= 1 || len(candles) < period {
		return nil
	}

	out := make([]float64, 0, len(candles)-period+1)
	for end := period; end <= len(candles); end++ {
		var weighted, volume float64
		for _, c := range candles[end-period : end] {
			weighted += c.TypicalPrice() * c.Volume
			volume += c.Volume
		}
		if volume == 0 {
			out = append(out, candles[end-1].TypicalPrice())
			continue
		}
		out = append(out, Finite(weighted/volume, candles[end-1].TypicalPrice()))
	}

	return out
}
