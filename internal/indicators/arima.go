package indicators

import (
	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// ARIMAForecast is the lightweight AR(1) price forecast: fit a single-lag
// autoregression on simple returns, project the next return from the last
// one, and price it off the last close. Confidence is the R-squared of the
// one-lag fit clamped into [0.05, 0.95]. Requires at least 10 candles; below
// that the forecast is 0 with 0 confidence.
func ARIMAForecast(candles []models.Candle) (forecast, confidence float64) {
	if len(candles) < 10 {
		return 0, 0
	}

	returns := make([]float64, 0, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		prev := candles[i-1].Close
		if prev == 0 {
			return 0, 0
		}
		returns = append(returns, (candles[i].Close-prev)/prev)
	}

	lagged := returns[:len(returns)-1]
	current := returns[1:]

	varLag := covariance(lagged, lagged)
	if varLag == 0 {
		return 0, 0
	}

	covLC := covariance(lagged, current)
	phi := covLC / varLag

	lastReturn := returns[len(returns)-1]
	forecastReturn := phi * lastReturn
	forecast = candles[len(candles)-1].Close * (1 + forecastReturn)

	varCur := covariance(current, current)
	rSquared := 0.0
	if varCur != 0 {
		rSquared = (covLC * covLC) / (varLag * varCur)
	}

	return Finite(forecast, 0), Clamp(Finite(rSquared, 0), 0.05, 0.95)
}

// covariance computes the sample covariance of two equal-length series.
func covariance(a, b []float64) float64 {
	n := len(a)
	if n < 2 || n != len(b) {
		return 0
	}

	var meanA, meanB float64
	for i := 0; i < n; i++ {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= float64(n)
	meanB /= float64(n)

	sum := 0.0
	for i := 0; i < n; i++ {
		sum += (a[i] - meanA) * (b[i] - meanB)
	}
	return sum / float64(n-1)
}
