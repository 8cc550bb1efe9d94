// Package ledger is the opaque boundary to the blockchain: it emits
// price-spike events and accepts normalized trade calls. Nothing in here
// touches the analysis pipeline.
package ledger

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// Executor accepts a validated, normalized trading decision for submission.
// Implementations own signing and transaction mechanics.
type Executor interface {
	Execute(ctx context.Context, decision models.TradingDecision, result *models.BayesianRegressionResult) error
}

// LogExecutor is the no-op executor: it records the decision instead of
// submitting it. Useful for dry runs and as the default until a signer is
// wired in.
type LogExecutor struct {
	logger zerolog.Logger
}

// NewLogExecutor creates a dry-run executor.
func NewLogExecutor() *LogExecutor {
	return &LogExecutor{logger: log.With().Str("component", "executor").Logger()}
}

func (e *LogExecutor) Execute(_ context.Context, d models.TradingDecision, result *models.BayesianRegressionResult) error {
	e.logger.Info().
		Str("decision", string(d.Decision)).
		Str("tokenIn", d.TokenIn).
		Str("tokenOut", d.TokenOut).
		Str("amount", d.Amount.String()).
		Float64("slippage", d.Slippage).
		Float64("stopLoss", d.StopLoss).
		Float64("takeProfit", d.TakeProfit).
		Float64("currentPrice", result.CurrentPrice).
		Msg("Dry-run execution")
	return nil
}
