// Package trader runs the spike-triggered trading loop: market snapshot →
// statistical forecast → inference call → validation → execution-or-hold.
package trader

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/analyzer"
	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/decision"
	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/indicators"
	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/ledger"
	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/metrics"
	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/prompt"
	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// MarketData supplies read-only market snapshots. The provider owns the
// candle window and order book; the loop never mutates what it receives.
type MarketData interface {
	Snapshot(ctx context.Context, symbol string) (*models.MarketDataState, error)
}

// Inference is the opaque text-completion service.
type Inference interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Store is the append-only decision/analysis log. Optional; nil disables
// persistence.
type Store interface {
	SaveAnalysis(ctx context.Context, result *models.BayesianRegressionResult) error
	SaveDecision(ctx context.Context, symbol string, d models.TradingDecision, outcome, failure string) error
}

// Options wires one Trader.
type Options struct {
	Pair      models.TokenPair
	Analyzer  models.AnalyzerConfig
	Market    MarketData
	Inference Inference
	Executor  ledger.Executor
	Store     Store
	Validator *decision.Validator
	Cooldown  time.Duration
}

// Trader serializes spike-triggered cycles per trading pair: at most one
// in-flight analysis/validation/execution cycle at a time, with a cooldown
// window between cycles.
type Trader struct {
	opts   Options
	logger zerolog.Logger

	mu      sync.Mutex
	busy    bool
	lastRun time.Time
}

// New creates a Trader.
func New(opts Options) *Trader {
	if opts.Validator == nil {
		opts.Validator = decision.NewValidator()
	}
	return &Trader{
		opts:   opts,
		logger: log.With().Str("component", "trader").Str("symbol", opts.Pair.Symbol).Logger(),
	}
}

// Run consumes spike events until the channel closes or the context ends.
func (t *Trader) Run(ctx context.Context, events <-chan models.SpikeEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Symbol != "" && event.Symbol != t.opts.Pair.Symbol {
				continue
			}
			t.handleSpike(ctx, event)
		}
	}
}

// handleSpike runs one full cycle, skipping when a cycle is already in
// flight or the cooldown has not expired.
func (t *Trader) handleSpike(ctx context.Context, event models.SpikeEvent) {
	t.mu.Lock()
	if t.busy {
		t.mu.Unlock()
		metrics.SpikesDropped.WithLabelValues("overlap").Inc()
		t.logger.Debug().Msg("Cycle already in flight, dropping spike")
		return
	}
	if t.opts.Cooldown > 0 && time.Since(t.lastRun) < t.opts.Cooldown {
		t.mu.Unlock()
		metrics.SpikesDropped.WithLabelValues("cooldown").Inc()
		t.logger.Debug().Msg("Within cooldown window, dropping spike")
		return
	}
	t.busy = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.busy = false
		t.lastRun = time.Now()
		t.mu.Unlock()
	}()

	t.logger.Info().
		Float64("price", event.Price).
		Float64("changePct", event.ChangePct).
		Msg("Price spike received, starting analysis cycle")

	state, err := t.opts.Market.Snapshot(ctx, t.opts.Pair.Symbol)
	if err != nil {
		t.logger.Error().Err(err).Msg("Market snapshot failed, skipping cycle")
		return
	}

	result := analyzer.Analyze(state, t.opts.Analyzer)
	metrics.AnalysisCycles.WithLabelValues(t.opts.Pair.Symbol).Inc()
	t.saveAnalysis(ctx, result)

	stdDev := indicators.CloseStdDev(state.Candles)
	deviation := decision.ForecastDeviation(result, stdDev)

	promptText := prompt.Build(result, t.opts.Pair, deviation)

	started := time.Now()
	completion, err := t.opts.Inference.Complete(ctx, promptText)
	metrics.InferenceLatency.Observe(time.Since(started).Seconds())
	if err != nil {
		t.logger.Error().Err(err).Msg("Inference call failed, holding")
		t.saveDecision(ctx, models.HoldDecision("inference failure"), "hold", "inference_error")
		return
	}

	raw := decision.ParseOrHold(completion)

	normalized, err := t.opts.Validator.Validate(raw, decision.Context{
		Result: result,
		Pair:   t.opts.Pair,
		StdDev: stdDev,
		Config: t.opts.Analyzer,
	})
	if err != nil {
		kind := failureKind(err)
		metrics.ValidationFailures.WithLabelValues(kind).Inc()
		t.logger.Warn().Err(err).Str("kind", kind).Msg("Decision rejected, holding")
		t.saveDecision(ctx, raw, "rejected", kind)
		return
	}

	t.saveDecision(ctx, normalized, "accepted", "")

	if normalized.IsHold() {
		t.logger.Info().Str("reasoning", normalized.Reasoning).Msg("Hold decision, no trade")
		return
	}

	metrics.DecisionsExecuted.WithLabelValues(string(normalized.Decision)).Inc()
	if err := t.opts.Executor.Execute(ctx, normalized, result); err != nil {
		t.logger.Error().Err(err).Msg("Trade execution failed")
		return
	}

	t.logger.Info().
		Str("decision", string(normalized.Decision)).
		Str("amount", normalized.Amount.String()).
		Msg("Trade submitted")
}

func (t *Trader) saveAnalysis(ctx context.Context, result *models.BayesianRegressionResult) {
	if t.opts.Store == nil {
		return
	}
	if err := t.opts.Store.SaveAnalysis(ctx, result); err != nil {
		t.logger.Warn().Err(err).Msg("Failed to persist analysis result")
	}
}

func (t *Trader) saveDecision(ctx context.Context, d models.TradingDecision, outcome, failure string) {
	if t.opts.Store == nil {
		return
	}
	if err := t.opts.Store.SaveDecision(ctx, t.opts.Pair.Symbol, d, outcome, failure); err != nil {
		t.logger.Warn().Err(err).Msg("Failed to persist decision")
	}
}

// failureKind maps a validation error onto its metric label.
func failureKind(err error) string {
	switch {
	case errors.Is(err, decision.ErrMalformedDecision):
		return "malformed"
	case errors.Is(err, decision.ErrTokenMismatch):
		return "token_mismatch"
	case errors.Is(err, decision.ErrAmountOutOfRange):
		return "amount"
	case errors.Is(err, decision.ErrRiskLevelDivergence):
		return "risk_divergence"
	case errors.Is(err, decision.ErrSlippageOutOfRange):
		return "slippage"
	case errors.Is(err, decision.ErrPositionSizeMismatch):
		return "position_size"
	default:
		return "other"
	}
}
