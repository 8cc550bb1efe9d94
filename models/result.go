package models

// MarketRegime is a coarse market-state classification.
type MarketRegime string

const (
	RegimeUptrend       MarketRegime = "uptrend"
	RegimeDowntrend     MarketRegime = "downtrend"
	RegimeConsolidating MarketRegime = "consolidating"
	RegimeExhaustion    MarketRegime = "exhaustion"
)

// TrendDirection is the directional read of price action.
type TrendDirection string

const (
	TrendBullish TrendDirection = "bullish"
	TrendBearish TrendDirection = "bearish"
	TrendNeutral TrendDirection = "neutral"
)

// LiquidityCluster is a price level with concentrated order-book depth.
type LiquidityCluster struct {
	Price        float64 `json:"price"`
	BidLiquidity float64 `json:"bidLiquidity"`
	AskLiquidity float64 `json:"askLiquidity"`
}

// IndicatorSnapshot captures the raw indicator values behind a forecast so
// the prompt builder and the decision validator see the same numbers.
type IndicatorSnapshot struct {
	Support           float64            `json:"support"`
	Resistance        float64            `json:"resistance"`
	VWMA              float64            `json:"vwma"`
	OBV               float64            `json:"obv"`
	RSI               float64            `json:"rsi"`
	VolumeRSI         float64            `json:"volumeRsi"`
	VWAP              float64            `json:"vwap"`
	VolumeDelta       float64            `json:"volumeDelta"`
	BidAskImbalance   float64            `json:"bidAskImbalance"`
	LiquidityClusters []LiquidityCluster `json:"liquidityClusters,omitempty"`
	ArimaForecast     float64            `json:"arimaForecast"`
	ArimaConfidence   float64            `json:"arimaConfidence"`
}

// Signal is a directional price-action read produced by the signal cascade.
type Signal struct {
	Direction  TrendDirection `json:"direction"`
	Prediction float64        `json:"prediction"`
	Confidence float64        `json:"confidence"`
	Source     string         `json:"source"`
}

// RiskLevels holds the stop-loss/take-profit pair derived for a forecast.
type RiskLevels struct {
	StopLoss   float64 `json:"stopLoss"`
	TakeProfit float64 `json:"takeProfit"`
}

// BayesianRegressionResult is the analyzer's output: a statistical price
// forecast plus the risk envelope the decision validator checks external
// decisions against. Created fresh on every analysis call, never mutated.
type BayesianRegressionResult struct {
	Symbol             string            `json:"symbol"`
	CurrentPrice       float64           `json:"currentPrice"`
	PredictedPrice     float64           `json:"predictedPrice"`
	ConfidenceInterval [2]float64        `json:"confidenceInterval"` // [support, resistance]
	StopLoss           float64           `json:"stopLoss"`
	TakeProfit         float64           `json:"takeProfit"`
	TrendDirection     TrendDirection    `json:"trendDirection"`
	Volatility         float64           `json:"volatility"`
	Probability        float64           `json:"probability"`
	Regime             MarketRegime      `json:"regime"`
	Indicators         IndicatorSnapshot `json:"indicators"`
}
