// Package analyzer is the statistical forecast aggregator: it turns one
// market snapshot into a predicted price, confidence band, and risk envelope
// by blending the rule-based signal cascade with an AR(1) forecast.
package analyzer

import (
	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/analyze"
	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/indicators"
	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/risk"
	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// Analyze is the single entry point of the forecast pipeline. It is pure:
// no I/O, no mutation of the input state, and identical input plus identical
// configuration always produces an identical result.
//
// Histories shorter than cfg.MinDataPoints degrade to the neutral fallback
// result instead of raising an error.
func Analyze(state *models.MarketDataState, cfg models.AnalyzerConfig) *models.BayesianRegressionResult {
	price := currentPrice(state)

	if state == nil || len(state.Candles) < cfg.MinDataPoints || price <= 0 {
		return neutralFallback(state, price, cfg)
	}

	candles := state.Candles

	rsiSeries := indicators.RSI(candles, cfg.RSIPeriod)
	volumeRSISeries := indicators.VolumeRSI(candles, cfg.VolumeRSIPeriod)
	rsi := indicators.LastRSI(rsiSeries)
	volumeRSI := indicators.LastRSI(volumeRSISeries)

	vwmaSeries := indicators.VWMA(candles, cfg.VWMAPeriod)
	vwma := price
	if len(vwmaSeries) > 0 {
		vwma = vwmaSeries[len(vwmaSeries)-1]
	}

	avgVolume := state.AverageVolume
	if avgVolume == 0 {
		avgVolume = indicators.AverageVolume(candles)
	}
	vwap := indicators.VWAP(candles, avgVolume)

	obv := indicators.OBV(candles, cfg.OBVLookback)
	support, resistance := indicators.VolumeProfile(candles, cfg.ProfileLookback, cfg.VolumeProfileThreshold, price)
	volumeDelta := indicators.VolumeDelta(candles)
	imbalance := indicators.BidAskImbalance(state.OrderBook)
	clusters := indicators.LiquidityClusters(state.OrderBook)
	arimaForecast, arimaConfidence := indicators.ARIMAForecast(candles)

	regime := analyze.DetectRegime(vwmaSeries, rsi, cfg.TrendThreshold)

	signal := analyze.DetectSignal(analyze.Inputs{
		Candles:      candles,
		CurrentPrice: price,
		Book:         state.OrderBook,
		Support:      support,
		Resistance:   resistance,
		RSI:          rsi,
		VolumeRSI:    volumeRSI,
		OBV:          obv,
		Config:       cfg,
	})

	// A neutral cascade read inside a trending regime still trades with the
	// trend; the cascade only overrides the regime when it has a specific
	// price-action reason to.
	trend := signal.Direction
	if trend == models.TrendNeutral {
		trend = analyze.TrendDirectionForRegime(regime)
	}

	volatility := 0.0
	if price > 0 {
		volatility = indicators.Finite(vwap.Volatility/price, 0)
	}

	predicted := blendPrediction(signal, arimaForecast, arimaConfidence, volatility, cfg)
	predicted = indicators.Finite(predicted, price)
	if predicted <= 0 {
		predicted = price
	}

	levels := risk.Levels(risk.Params{
		Candles:      candles,
		CurrentPrice: price,
		Support:      support,
		Resistance:   resistance,
		Trend:        trend,
		Clusters:     clusters,
		Config:       cfg,
	})

	return &models.BayesianRegressionResult{
		Symbol:             state.Symbol,
		CurrentPrice:       price,
		PredictedPrice:     predicted,
		ConfidenceInterval: [2]float64{support, resistance},
		StopLoss:           levels.StopLoss,
		TakeProfit:         levels.TakeProfit,
		TrendDirection:     trend,
		Volatility:         volatility,
		Probability:        signal.Confidence,
		Regime:             regime,
		Indicators: models.IndicatorSnapshot{
			Support:           support,
			Resistance:        resistance,
			VWMA:              vwma,
			OBV:               obv.Value,
			RSI:               rsi,
			VolumeRSI:         volumeRSI,
			VWAP:              vwap.Last,
			VolumeDelta:       volumeDelta,
			BidAskImbalance:   imbalance,
			LiquidityClusters: clusters,
			ArimaForecast:     arimaForecast,
			ArimaConfidence:   arimaConfidence,
		},
	}
}

// blendPrediction mixes the AR(1) forecast into the rule-based prediction
// with a confidence-derived weight. The weight only applies above the
// configured floor, and never when the AR(1) fit produced no usable price.
func blendPrediction(signal models.Signal, arimaForecast, arimaConfidence, volatility float64, cfg models.AnalyzerConfig) float64 {
	base := signal.Prediction

	if arimaForecast <= 0 {
		return base
	}

	trendStrength := signal.Confidence
	volatilityFactor := indicators.Clamp(volatility/0.03, 0, 1)

	weight := cfg.BlendArimaCoef*arimaConfidence +
		cfg.BlendTrendCoef*trendStrength +
		cfg.BlendVolatilityCoef*volatilityFactor
	if weight > cfg.BlendWeightCap {
		weight = cfg.BlendWeightCap
	}

	if weight <= cfg.BlendWeightFloor {
		return base
	}

	return weight*arimaForecast + (1-weight)*base
}

// neutralFallback is the exact degraded result for short histories: the
// prediction pins to the current price with a symmetric 2% band.
func neutralFallback(state *models.MarketDataState, price float64, cfg models.AnalyzerConfig) *models.BayesianRegressionResult {
	symbol := ""
	if state != nil {
		symbol = state.Symbol
	}

	stopDistance := price * 0.02

	return &models.BayesianRegressionResult{
		Symbol:             symbol,
		CurrentPrice:       price,
		PredictedPrice:     price,
		ConfidenceInterval: [2]float64{price * 0.98, price * 1.02},
		StopLoss:           price - stopDistance,
		TakeProfit:         price + stopDistance*cfg.RiskRewardRatio,
		TrendDirection:     models.TrendNeutral,
		Volatility:         0.02,
		Probability:        0.5,
		Regime:             models.RegimeConsolidating,
	}
}

func currentPrice(state *models.MarketDataState) float64 {
	if state == nil {
		return 0
	}
	if state.CurrentPrice > 0 {
		return state.CurrentPrice
	}
	if last, ok := state.LastCandle(); ok {
		return last.Close
	}
	return 0
}
