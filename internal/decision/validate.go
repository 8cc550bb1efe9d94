package decision

import (
	"math"

	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// Context carries the forecast-side inputs a validation run checks the
// external decision against.
type Context struct {
	Result *models.BayesianRegressionResult
	Pair   models.TokenPair
	// StdDev is the sample standard deviation of closing prices over the
	// analysis window, used for position sizing.
	StdDev float64
	Config models.AnalyzerConfig
}

// Validator enforces consistency between an externally proposed decision
// and the analyzer's forecast. The strict validator rejects on every
// violation; the lenient variant auto-corrects the documented cases
// (reversed token pairs, out-of-bounds slippage) and rejects the rest.
// Validation is synchronous and side-effect-free.
type Validator struct {
	lenient bool
}

// NewValidator returns the strict validator.
func NewValidator() *Validator { return &Validator{} }

// NewLenientValidator returns the auto-correcting variant.
func NewLenientValidator() *Validator { return &Validator{lenient: true} }

// Validate runs the ordered check sequence and returns the normalized,
// safe-to-execute decision, or the first typed validation failure.
// Validating an already-normalized decision again returns it unchanged.
func (v *Validator) Validate(d models.TradingDecision, ctx Context) (models.TradingDecision, error) {
	// 1. Action must be one of the three known directions.
	switch d.Decision {
	case models.ActionBuy, models.ActionSell, models.ActionHold:
	default:
		return models.TradingDecision{}, &MalformedDecisionError{Reason: "unknown action " + string(d.Decision)}
	}

	// 2. A hold carries nothing: token addresses, amount, and risk levels
	// must all be zero. Anything else is a malformed hold, not a trade.
	if d.Decision == models.ActionHold {
		if d.TokenIn != "" || d.TokenOut != "" || !d.Amount.IsZero() ||
			d.Slippage != 0 || d.StopLoss != 0 || d.TakeProfit != 0 {
			return models.TradingDecision{}, &MalformedDecisionError{Reason: "hold decision carries trade fields"}
		}
		norm := models.HoldDecision(d.Reasoning)
		norm.Confidence = d.Confidence
		return norm, nil
	}

	// 3. Token pair must match the expected stable/volatile pair exactly.
	// The lenient validator swaps an exactly-reversed pair back.
	expectedIn, expectedOut := ctx.Pair.StableToken, ctx.Pair.VolatileToken
	if d.Decision == models.ActionSell {
		expectedIn, expectedOut = ctx.Pair.VolatileToken, ctx.Pair.StableToken
	}
	if d.TokenIn != expectedIn || d.TokenOut != expectedOut {
		if v.lenient && d.TokenIn == expectedOut && d.TokenOut == expectedIn {
			d.TokenIn, d.TokenOut = expectedIn, expectedOut
		} else {
			return models.TradingDecision{}, &TokenMismatchError{
				Direction: string(d.Decision),
				TokenIn:   d.TokenIn,
				TokenOut:  d.TokenOut,
			}
		}
	}

	// 4. Amount must be a positive number.
	if d.Amount.Sign() <= 0 {
		return models.TradingDecision{}, &AmountOutOfRangeError{Amount: d.Amount.String()}
	}

	if err := v.checkRiskLevels(d, ctx); err != nil {
		return models.TradingDecision{}, err
	}

	normalized, err := v.checkSlippage(d, ctx)
	if err != nil {
		return models.TradingDecision{}, err
	}
	d = normalized

	// 7. Confidence must be one of the three known buckets.
	switch d.Confidence {
	case models.ConfidenceHigh, models.ConfidenceMedium, models.ConfidenceLow:
	default:
		return models.TradingDecision{}, &MalformedDecisionError{Reason: "unknown confidence " + d.Confidence}
	}

	if err := v.checkPositionSize(d, ctx); err != nil {
		return models.TradingDecision{}, err
	}

	return d, nil
}

// checkRiskLevels is the trust-but-verify core: the external stop-loss and
// take-profit must sit within tolerance of the analyzer's own levels and
// respect directional ordering. The inference service proposes risk levels;
// it never gets to invent them.
func (v *Validator) checkRiskLevels(d models.TradingDecision, ctx Context) error {
	res := ctx.Result
	price := res.CurrentPrice
	tolerance := ctx.Config.RiskLevelTolerancePct * price

	if d.StopLoss == 0 {
		return &RiskLevelDivergenceError{Field: "stopLoss", Reason: "missing stop-loss"}
	}
	if d.TakeProfit == 0 {
		return &RiskLevelDivergenceError{Field: "takeProfit", Reason: "missing take-profit"}
	}

	if math.Abs(d.StopLoss-res.StopLoss) > tolerance {
		return &RiskLevelDivergenceError{Field: "stopLoss", Proposed: d.StopLoss, Computed: res.StopLoss}
	}
	if math.Abs(d.TakeProfit-res.TakeProfit) > tolerance {
		return &RiskLevelDivergenceError{Field: "takeProfit", Proposed: d.TakeProfit, Computed: res.TakeProfit}
	}

	switch d.Decision {
	case models.ActionBuy:
		if !(d.StopLoss < price && price < d.TakeProfit) {
			return &RiskLevelDivergenceError{Field: "ordering", Reason: "buy requires stopLoss < price < takeProfit"}
		}
	case models.ActionSell:
		if !(d.TakeProfit < price && price < d.StopLoss) {
			return &RiskLevelDivergenceError{Field: "ordering", Reason: "sell requires takeProfit < price < stopLoss"}
		}
	}

	if math.Abs(d.TakeProfit-d.StopLoss) < 0.01*price {
		return &RiskLevelDivergenceError{Field: "distance", Reason: "stop-loss and take-profit closer than 1% of price"}
	}

	return nil
}

// checkSlippage enforces the volatility-dependent slippage band. The
// lenient validator clamps into bounds; the strict one rejects.
func (v *Validator) checkSlippage(d models.TradingDecision, ctx Context) (models.TradingDecision, error) {
	minSlip := ctx.Config.MinSlippage
	maxSlip := ctx.Config.MaxSlippage(ctx.Result.Volatility)

	if d.Slippage < minSlip || d.Slippage > maxSlip {
		if !v.lenient {
			return models.TradingDecision{}, &SlippageOutOfRangeError{Slippage: d.Slippage, Min: minSlip, Max: maxSlip}
		}
		if d.Slippage < minSlip {
			d.Slippage = minSlip
		} else {
			d.Slippage = maxSlip
		}
	}

	return d, nil
}

// checkPositionSize verifies the amount against the size implied by the
// forecast deviation, within tolerance.
func (v *Validator) checkPositionSize(d models.TradingDecision, ctx Context) error {
	deviation := ForecastDeviation(ctx.Result, ctx.StdDev)
	expected := ExpectedInputAmount(d.Decision, deviation, ctx.Result.CurrentPrice, ctx.Config)
	if expected <= 0 {
		return nil
	}

	amount, _ := d.Amount.Float64()
	if math.Abs(amount-expected)/expected > ctx.Config.PositionTolerancePct {
		return &PositionSizeMismatchError{Proposed: amount, Expected: expected}
	}

	return nil
}
