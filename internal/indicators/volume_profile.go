package indicators

import (
	"math"
	"sort"

	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// VolumeProfile derives support and resistance from where volume actually
// traded: each of a candle's open/high/low/close prices (rounded to 2
// decimals) accumulates the candle's volume, and buckets above
// maxVolume*threshold count as significant levels. Support is the nearest
// significant level below the current price (the minimum level when nothing
// sits below); resistance the mirror above. With fewer than 5 candles in
// the lookback the profile is meaningless and the levels fall back to
// currentPrice*[0.98, 1.02].
func VolumeProfile(candles []models.Candle, lookback int, threshold, currentPrice float64) (support, resistance float64) {
	window := candles
	if lookback > 0 && len(candles) > lookback {
		window = candles[len(candles)-lookback:]
	}

	if len(window) < 5 {
		return currentPrice * 0.98, currentPrice * 1.02
	}

	buckets := make(map[float64]float64)
	maxVolume := 0.0
	for _, c := range window {
		for _, price := range [4]float64{c.Open, c.High, c.Low, c.Close} {
			level := roundLevel(price)
			buckets[level] += c.Volume
			if buckets[level] > maxVolume {
				maxVolume = buckets[level]
			}
		}
	}

	var levels []float64
	for level, volume := range buckets {
		if volume > maxVolume*threshold {
			levels = append(levels, level)
		}
	}
	if len(levels) == 0 {
		return currentPrice * 0.98, currentPrice * 1.02
	}
	sort.Float64s(levels)

	support = levels[0]
	foundBelow := false
	for _, level := range levels {
		if level < currentPrice {
			support = level
			foundBelow = true
		}
	}
	if !foundBelow {
		support = levels[0]
	}

	resistance = levels[len(levels)-1]
	for i := len(levels) - 1; i >= 0; i-- {
		if levels[i] > currentPrice {
			resistance = levels[i]
		}
	}

	return support, resistance
}

// roundLevel snaps a price to the 2-decimal bucket grid.
func roundLevel(price float64) float64 {
	return math.Round(price*100) / 100
}
