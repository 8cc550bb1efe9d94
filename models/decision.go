package models

import (
	"github.com/shopspring/decimal"
)

// Action is the trade direction of a decision.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
	ActionHold Action = "hold"
)

// Confidence buckets reported by the inference service.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// TradingDecision is a buy/sell/hold instruction. It has two lifecycles: a
// raw untrusted payload parsed from the inference response, and a validated
// instance produced by the decision validator. Only the validated form may
// reach trade execution. Amounts are decimal so on-chain quantities never
// pass through binary floats.
type TradingDecision struct {
	Decision   Action          `json:"decision"`
	TokenIn    string          `json:"tokenIn"`
	TokenOut   string          `json:"tokenOut"`
	Amount     decimal.Decimal `json:"amount"`
	Slippage   float64         `json:"slippage"`
	StopLoss   float64         `json:"stopLoss"`
	TakeProfit float64         `json:"takeProfit"`
	Reasoning  string          `json:"reasoning,omitempty"`
	Confidence string          `json:"confidence,omitempty"`
}

// HoldDecision returns the safe no-op decision: zero addresses, zero amount.
// It is the fallback when the inference payload cannot be parsed.
func HoldDecision(reason string) TradingDecision {
	return TradingDecision{
		Decision:  ActionHold,
		Amount:    decimal.Zero,
		Reasoning: reason,
	}
}

// IsHold reports whether the decision is the no-op direction.
func (d TradingDecision) IsHold() bool {
	return d.Decision == ActionHold
}
