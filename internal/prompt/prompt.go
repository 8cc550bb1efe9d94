// Package prompt builds the market-context prompt the inference service is
// queried with.
package prompt

import (
	"fmt"
	"strings"

	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// Build renders the analyzer's forecast into a prompt with a strict JSON
// response schema. The schema mirrors models.TradingDecision exactly so the
// response can round-trip through the decision parser.
func Build(result *models.BayesianRegressionResult, pair models.TokenPair, deviation float64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are a trading assistant for the %s pair on-chain.\n\n", pair.Symbol))
	sb.WriteString("Market context:\n")
	sb.WriteString(fmt.Sprintf("- current price: %.6f\n", result.CurrentPrice))
	sb.WriteString(fmt.Sprintf("- predicted price: %.6f\n", result.PredictedPrice))
	sb.WriteString(fmt.Sprintf("- confidence interval: [%.6f, %.6f]\n", result.ConfidenceInterval[0], result.ConfidenceInterval[1]))
	sb.WriteString(fmt.Sprintf("- regime: %s, trend: %s, probability: %.2f\n", result.Regime, result.TrendDirection, result.Probability))
	sb.WriteString(fmt.Sprintf("- volatility: %.4f\n", result.Volatility))
	sb.WriteString(fmt.Sprintf("- RSI: %.1f, volume RSI: %.1f, VWAP: %.6f, VWMA: %.6f\n",
		result.Indicators.RSI, result.Indicators.VolumeRSI, result.Indicators.VWAP, result.Indicators.VWMA))
	sb.WriteString(fmt.Sprintf("- OBV: %.2f, volume delta: %.2f, bid/ask imbalance: %.4f\n",
		result.Indicators.OBV, result.Indicators.VolumeDelta, result.Indicators.BidAskImbalance))
	sb.WriteString(fmt.Sprintf("- ARIMA forecast: %.6f (confidence %.2f)\n",
		result.Indicators.ArimaForecast, result.Indicators.ArimaConfidence))
	sb.WriteString(fmt.Sprintf("- computed stop-loss: %.6f, take-profit: %.6f\n", result.StopLoss, result.TakeProfit))
	sb.WriteString(fmt.Sprintf("- forecast deviation: %.2f sigma\n", deviation))

	if len(result.Indicators.LiquidityClusters) > 0 {
		sb.WriteString("- liquidity clusters (price/bid/ask):\n")
		for _, c := range result.Indicators.LiquidityClusters {
			sb.WriteString(fmt.Sprintf("  %.2f / %.2f / %.2f\n", c.Price, c.BidLiquidity, c.AskLiquidity))
		}
	}

	sb.WriteString(fmt.Sprintf(`
Token addresses: stable=%s volatile=%s
For a buy, tokenIn is the stable token and tokenOut the volatile token; for
a sell the reverse. Use the computed stop-loss and take-profit above.

Respond with ONLY a JSON object, no prose:
{"decision": "buy|sell|hold", "tokenIn": "...", "tokenOut": "...", "amount": "...", "slippage": 0.0, "stopLoss": 0.0, "takeProfit": 0.0, "reasoning": "...", "confidence": "high|medium|low"}

For a hold, set tokenIn, tokenOut to empty strings and amount, slippage,
stopLoss, takeProfit to zero.
`, pair.StableToken, pair.VolatileToken))

	return sb.String()
}
