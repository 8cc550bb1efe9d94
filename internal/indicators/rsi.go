package indicators

import (
	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// RSI computes the Wilder-smoothed relative strength index over closing
// prices. One value per candle after the warmup window; nil if fewer than
// period+1 candles.
func RSI(candles []models.Candle, period int) []float64 {
	if period <= 0 || len(candles) < period+1 {
		return nil
	}
	series := make([]float64, len(candles))
	for i, c := range candles {
		series[i] = c.Close
	}
	return wilderRSI(series, period)
}

// VolumeRSI is the RSI applied to per-candle volume instead of price. It
// reads volume pressure the same way price RSI reads momentum.
func VolumeRSI(candles []models.Candle, period int) []float64 {
	if period <= 0 || len(candles) < period+1 {
		return nil
	}
	series := make([]float64, len(candles))
	for i, c := range candles {
		series[i] = c.Volume
	}
	return wilderRSI(series, period)
}

// wilderRSI runs the smoothed gain/loss recurrence over an arbitrary series.
// A window with zero gains and zero losses has no defined trend and reads as
// the 50 midpoint.
func wilderRSI(series []float64, period int) []float64 {
	gains := make([]float64, len(series)-1)
	losses := make([]float64, len(series)-1)
	for i := 1; i < len(series); i++ {
		change := series[i] - series[i-1]
		if change >= 0 {
			gains[i-1] = change
		} else {
			losses[i-1] = -change
		}
	}

	rsi := make([]float64, len(series)-period)
	avgGain := 0.0
	avgLoss := 0.0
	for i := 0; i < period; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	rsi[0] = rsiFromAverages(avgGain, avgLoss)

	for i := 1; i < len(rsi); i++ {
		avgGain = (avgGain*float64(period-1) + gains[i+period-1]) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + losses[i+period-1]) / float64(period)
		rsi[i] = rsiFromAverages(avgGain, avgLoss)
	}

	return rsi
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgGain == 0 && avgLoss == 0 {
		return 50
	}
	rs := 100.0
	if avgLoss != 0 {
		rs = avgGain / avgLoss
	}
	return Finite(100-100/(1+rs), 50)
}

// LastRSI is a convenience accessor for the most recent value of an RSI
// series, with 50 as the no-data default.
func LastRSI(series []float64) float64 {
	if len(series) == 0 {
		return 50
	}
	return series[len(series)-1]
}
