// Package decision parses and validates externally-sourced trading
// decisions against the analyzer's forecast before they can reach trade
// execution.
package decision

import (
	"errors"
	"fmt"
)

// Sentinel errors for the validation taxonomy. Every typed error below
// unwraps to one of these, so callers can branch with errors.Is while still
// getting a descriptive message. All are recoverable-by-caller conditions;
// none should crash the process.
var (
	ErrMalformedDecision    = errors.New("malformed decision")
	ErrTokenMismatch        = errors.New("token mismatch")
	ErrAmountOutOfRange     = errors.New("amount out of range")
	ErrRiskLevelDivergence  = errors.New("risk level divergence")
	ErrSlippageOutOfRange   = errors.New("slippage out of range")
	ErrPositionSizeMismatch = errors.New("position size mismatch")
)

// MalformedDecisionError reports a payload that parsed but is structurally
// invalid (unknown action, non-hold fields on a hold, bad confidence).
type MalformedDecisionError struct {
	Reason string
}

func (e *MalformedDecisionError) Error() string {
	return fmt.Sprintf("malformed decision: %s", e.Reason)
}

func (e *MalformedDecisionError) Unwrap() error { return ErrMalformedDecision }

// TokenMismatchError reports tokenIn/tokenOut that do not match the expected
// stable/volatile pair for the decision's direction.
type TokenMismatchError struct {
	Direction string
	TokenIn   string
	TokenOut  string
}

func (e *TokenMismatchError) Error() string {
	return fmt.Sprintf("token mismatch for %s: tokenIn=%s tokenOut=%s", e.Direction, e.TokenIn, e.TokenOut)
}

func (e *TokenMismatchError) Unwrap() error { return ErrTokenMismatch }

// AmountOutOfRangeError reports a missing, non-positive, or unparseable
// amount.
type AmountOutOfRangeError struct {
	Amount string
}

func (e *AmountOutOfRangeError) Error() string {
	return fmt.Sprintf("amount out of range: %q", e.Amount)
}

func (e *AmountOutOfRangeError) Unwrap() error { return ErrAmountOutOfRange }

// RiskLevelDivergenceError reports stop-loss/take-profit that disagree with
// the analyzer's computed levels beyond tolerance, or that violate the
// directional ordering contract.
type RiskLevelDivergenceError struct {
	Field    string
	Proposed float64
	Computed float64
	Reason   string
}

func (e *RiskLevelDivergenceError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("risk level divergence on %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("risk level divergence on %s: proposed %.6f vs computed %.6f", e.Field, e.Proposed, e.Computed)
}

func (e *RiskLevelDivergenceError) Unwrap() error { return ErrRiskLevelDivergence }

// SlippageOutOfRangeError reports slippage outside the volatility-dependent
// bounds.
type SlippageOutOfRangeError struct {
	Slippage float64
	Min      float64
	Max      float64
}

func (e *SlippageOutOfRangeError) Error() string {
	return fmt.Sprintf("slippage %.4f outside [%.4f, %.4f]", e.Slippage, e.Min, e.Max)
}

func (e *SlippageOutOfRangeError) Unwrap() error { return ErrSlippageOutOfRange }

// PositionSizeMismatchError reports an amount inconsistent with the size
// implied by the forecast deviation.
type PositionSizeMismatchError struct {
	Proposed float64
	Expected float64
}

func (e *PositionSizeMismatchError) Error() string {
	return fmt.Sprintf("position size %.6f does not match expected %.6f", e.Proposed, e.Expected)
}

func (e *PositionSizeMismatchError) Unwrap() error { return ErrPositionSizeMismatch }
