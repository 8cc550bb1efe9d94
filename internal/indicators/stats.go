package indicators

import (
	"math"

	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// CloseStdDev is the sample standard deviation of closing prices over the
// window. The decision validator sizes positions off this deviation.
func CloseStdDev(candles []models.Candle) float64 {
	if len(candles) < 2 {
		return 0
	}

	mean := 0.0
	for _, c := range candles {
		mean += c.Close
	}
	mean /= float64(len(candles))

	sum := 0.0
	for _, c := range candles {
		d := c.Close - mean
		sum += d * d
	}

	return Finite(math.Sqrt(sum/float64(len(candles)-1)), 0)
}

// AverageVolume is the mean per-candle volume over the window.
func AverageVolume(candles []models.Candle) float64 {
	if len(candles) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range candles {
		sum += c.Volume
	}
	return Finite(sum/float64(len(candles)), 0)
}
