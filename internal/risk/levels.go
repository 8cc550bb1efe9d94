package risk

import (
	"math"

	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/indicators"
	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// Params carries everything the risk-level calculation needs for one
// forecast. Inputs are read-only.
type Params struct {
	Candles      []models.Candle
	CurrentPrice float64
	Support      float64
	Resistance   float64
	Trend        models.TrendDirection
	Clusters     []models.LiquidityCluster
	Config       models.AnalyzerConfig
}

// Levels derives stop-loss and take-profit from daily ATR, liquidity
// clusters, and trend direction, with hard min/max distance clamps. For a
// bullish trend the stop always lands strictly below the current price and
// the target strictly above; bearish is the mirror.
func Levels(p Params) models.RiskLevels {
	price := p.CurrentPrice
	cfg := p.Config

	atr := dailyATR(p.Candles, cfg.ATRPeriod)
	if atr <= 0 {
		// Not enough daily history for a real range estimate.
		atr = price * 0.02
	}

	ratio := 0.0
	if price > 0 {
		ratio = atr / price
	}

	multiplier := cfg.ATRMultiplier
	switch {
	case ratio > 0.03:
		multiplier *= 1.5
	case ratio > 0.02:
		multiplier *= 1.25
	}

	// Buffer below/above the anchoring level scales with volatility, bounded
	// to 2-5% so quiet markets still clear the level and violent ones do not
	// park the stop half the book away.
	buffer := indicators.Clamp(2*ratio, 0.02, 0.05)

	switch p.Trend {
	case models.TrendBullish:
		return bullishLevels(p, atr, multiplier, buffer)
	case models.TrendBearish:
		return bearishLevels(p, atr, multiplier, buffer)
	default:
		return neutralLevels(p, atr, multiplier)
	}
}

func bullishLevels(p Params, atr, multiplier, buffer float64) models.RiskLevels {
	price := p.CurrentPrice
	cfg := p.Config

	anchor := p.Support
	if cluster, ok := nearestClusterBelow(p.Clusters, price); ok {
		anchor = cluster.Price
	}
	effectiveSupport := anchor * (1 - buffer)

	stop := math.Max(effectiveSupport, price-atr*multiplier)
	stop = indicators.Clamp(stop, price*(1-cfg.MaxStopDistancePct), price*(1-cfg.MinStopDistancePct))

	target := 0.0
	if cluster, ok := nearestClusterAbove(p.Clusters, price); ok {
		target = cluster.Price
	} else {
		target = price + math.Max(0.5*atr, 0.005*price)
	}
	target = price + clampTargetDistance(target-price, atr, price)

	return models.RiskLevels{StopLoss: stop, TakeProfit: target}
}

func bearishLevels(p Params, atr, multiplier, buffer float64) models.RiskLevels {
	price := p.CurrentPrice
	cfg := p.Config

	anchor := p.Resistance
	if cluster, ok := nearestClusterAbove(p.Clusters, price); ok {
		anchor = cluster.Price
	}
	effectiveResistance := anchor * (1 + buffer)

	stop := math.Min(effectiveResistance, price+atr*multiplier)
	stop = indicators.Clamp(stop, price*(1+cfg.MinStopDistancePct), price*(1+cfg.MaxStopDistancePct))

	target := 0.0
	if cluster, ok := nearestClusterBelow(p.Clusters, price); ok {
		target = cluster.Price
	} else {
		target = price - math.Max(0.5*atr, 0.005*price)
	}
	target = price - clampTargetDistance(price-target, atr, price)

	return models.RiskLevels{StopLoss: stop, TakeProfit: target}
}

func neutralLevels(p Params, atr, multiplier float64) models.RiskLevels {
	price := p.CurrentPrice
	cfg := p.Config

	stopDistance := math.Max(atr*multiplier, cfg.MinStopDistancePct*price)
	stopDistance = math.Min(stopDistance, cfg.MaxStopDistancePct*price)

	return models.RiskLevels{
		StopLoss:   price - stopDistance,
		TakeProfit: price + stopDistance*cfg.RiskRewardRatio,
	}
}

// clampTargetDistance bounds the take-profit distance into
// [0.5% of price, min(4*ATR, 15% of price)].
func clampTargetDistance(distance, atr, price float64) float64 {
	maxDistance := math.Min(4*atr, 0.15*price)
	minDistance := 0.005 * price
	if maxDistance < minDistance {
		maxDistance = minDistance
	}
	return indicators.Clamp(distance, minDistance, maxDistance)
}

// dailyATR resamples to daily bars and measures the range there; intraday
// stops anchored to intraday ATR whipsaw too easily on spike-driven pairs.
func dailyATR(candles []models.Candle, period int) float64 {
	daily := ResampleDaily(candles)
	if len(daily) < 2 {
		return 0
	}
	if len(daily) < period+1 {
		period = len(daily) - 1
	}
	return indicators.ATR(daily, period)
}

func nearestClusterBelow(clusters []models.LiquidityCluster, price float64) (models.LiquidityCluster, bool) {
	var best models.LiquidityCluster
	found := false
	for _, c := range clusters {
		if c.Price >= price {
			continue
		}
		if !found || c.Price > best.Price {
			best = c
			found = true
		}
	}
	return best, found
}

func nearestClusterAbove(clusters []models.LiquidityCluster, price float64) (models.LiquidityCluster, bool) {
	var best models.LiquidityCluster
	found := false
	for _, c := range clusters {
		if c.Price <= price {
			continue
		}
		if !found || c.Price < best.Price {
			best = c
			found = true
		}
	}
	return best, found
}
