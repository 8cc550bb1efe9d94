package analyze

import (
	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/indicators"
	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// Inputs bundles the indicator reads the signal cascade consumes. All fields
// are derived from one market snapshot and are never mutated here.
type Inputs struct {
	Candles      []models.Candle
	CurrentPrice float64
	Book         *models.OrderBookSnapshot
	Support      float64
	Resistance   float64
	RSI          float64
	VolumeRSI    float64
	OBV          indicators.OBVResult
	Config       models.AnalyzerConfig
}

// Cascade branch confidences. The cascade is an ordered priority list:
// the first matching branch wins.
const (
	confAbsorption  = 0.85
	confStopRun     = 0.80
	confVolumeCheck = 0.70
	confDivergence  = 0.75
	confNeutral     = 0.50
)

// absorptionSizeRatio is the best-bid/best-ask size multiple that reads as
// one side absorbing the other.
const absorptionSizeRatio = 3.0

// levelProximity is how close (relative) price must be to a level to count
// as testing it.
const levelProximity = 0.005

// DetectSignal runs the ordered signal cascade and returns the first match.
func DetectSignal(in Inputs) models.Signal {
	if sig, ok := absorptionSignal(in); ok {
		return sig
	}
	if sig, ok := stopRunSignal(in); ok {
		return sig
	}
	if sig, ok := supportBounceSignal(in); ok {
		return sig
	}
	if sig, ok := resistanceRejectionSignal(in); ok {
		return sig
	}
	if sig, ok := volumeConfirmedSignal(in); ok {
		return sig
	}
	if sig, ok := divergenceSignal(in); ok {
		return sig
	}

	return models.Signal{
		Direction:  models.TrendNeutral,
		Prediction: in.CurrentPrice,
		Confidence: confNeutral,
		Source:     "neutral",
	}
}

// absorptionSignal fires when one side of the top of book dwarfs the other
// while price is testing the matching level: resting size soaking up sell
// pressure at support reads bullish, the mirror at resistance bearish.
func absorptionSignal(in Inputs) (models.Signal, bool) {
	if in.Book == nil {
		return models.Signal{}, false
	}

	bid := in.Book.BestBid()
	ask := in.Book.BestAsk()
	if bid.Quantity == 0 || ask.Quantity == 0 {
		return models.Signal{}, false
	}

	if bid.Quantity > ask.Quantity*absorptionSizeRatio && nearLevel(in.CurrentPrice, in.Support) {
		return models.Signal{
			Direction:  models.TrendBullish,
			Prediction: in.Resistance,
			Confidence: confAbsorption,
			Source:     "absorption",
		}, true
	}

	if ask.Quantity > bid.Quantity*absorptionSizeRatio && nearLevel(in.CurrentPrice, in.Resistance) {
		return models.Signal{
			Direction:  models.TrendBearish,
			Prediction: in.Support,
			Confidence: confAbsorption,
			Source:     "absorption",
		}, true
	}

	return models.Signal{}, false
}

// stopRunSignal fires when the latest candle sweeps the previous candle's
// extreme while its own buy/sell delta moves the other way: a break above
// the prior high on net selling is a stop run to the upside, faded bearish.
func stopRunSignal(in Inputs) (models.Signal, bool) {
	if len(in.Candles) < 2 {
		return models.Signal{}, false
	}

	last := in.Candles[len(in.Candles)-1]
	prev := in.Candles[len(in.Candles)-2]
	delta := last.BuyVolume - last.SellVolume

	if last.High > prev.High && delta < 0 {
		return models.Signal{
			Direction:  models.TrendBearish,
			Prediction: in.Support,
			Confidence: confStopRun,
			Source:     "stop_run",
		}, true
	}

	if last.Low < prev.Low && delta > 0 {
		return models.Signal{
			Direction:  models.TrendBullish,
			Prediction: in.Resistance,
			Confidence: confStopRun,
			Source:     "stop_run",
		}, true
	}

	return models.Signal{}, false
}

// supportBounceSignal fires when price trades at or through support, the
// latest candle closes up (the bounce itself), and the accumulated
// confidence score clears 0.6.
func supportBounceSignal(in Inputs) (models.Signal, bool) {
	if in.Support <= 0 || in.CurrentPrice > in.Support*0.995 {
		return models.Signal{}, false
	}
	if len(in.Candles) == 0 || !in.Candles[len(in.Candles)-1].IsBullish() {
		return models.Signal{}, false
	}

	score := SupportConfidence(in)
	if score <= 0.6 {
		return models.Signal{}, false
	}

	return models.Signal{
		Direction:  models.TrendBullish,
		Prediction: in.Resistance,
		Confidence: score,
		Source:     "support_bounce",
	}, true
}

// resistanceRejectionSignal is the bearish mirror of the support bounce:
// price at or through resistance with a down-close rejecting the level.
// Without the down-close a push through resistance is a breakout, not a
// rejection.
func resistanceRejectionSignal(in Inputs) (models.Signal, bool) {
	if in.Resistance <= 0 || in.CurrentPrice < in.Resistance*1.005 {
		return models.Signal{}, false
	}
	if n := len(in.Candles); n == 0 || in.Candles[n-1].Close >= in.Candles[n-1].Open {
		return models.Signal{}, false
	}

	score := ResistanceConfidence(in)
	if score <= 0.6 {
		return models.Signal{}, false
	}

	return models.Signal{
		Direction:  models.TrendBearish,
		Prediction: in.Support,
		Confidence: score,
		Source:     "resistance_rejection",
	}, true
}

// volumeConfirmedSignal fires on a directional candle backed by a volume-RSI
// extreme and a volume expansion over the previous candle.
func volumeConfirmedSignal(in Inputs) (models.Signal, bool) {
	if len(in.Candles) < 2 {
		return models.Signal{}, false
	}

	last := in.Candles[len(in.Candles)-1]
	prev := in.Candles[len(in.Candles)-2]
	expanded := last.Volume > prev.Volume*in.Config.VolumeConfirmationThreshold

	if in.VolumeRSI > 60 && last.IsBullish() && expanded {
		return models.Signal{
			Direction:  models.TrendBullish,
			Prediction: in.Resistance,
			Confidence: confVolumeCheck,
			Source:     "volume_confirmation",
		}, true
	}

	if in.VolumeRSI < 40 && last.Close < last.Open && expanded {
		return models.Signal{
			Direction:  models.TrendBearish,
			Prediction: in.Support,
			Confidence: confVolumeCheck,
			Source:     "volume_confirmation",
		}, true
	}

	return models.Signal{}, false
}

// divergenceSignal fires when OBV diverges from price beyond the configured
// magnitude while RSI sits at an extreme: accumulation into an oversold tape
// reads bullish, distribution into an overbought one bearish.
func divergenceSignal(in Inputs) (models.Signal, bool) {
	if !in.OBV.Divergence || in.OBV.Magnitude <= in.Config.VolumeDivergenceThreshold {
		return models.Signal{}, false
	}

	if in.OBV.Trend > 0 && in.RSI < 30 {
		return models.Signal{
			Direction:  models.TrendBullish,
			Prediction: in.Resistance,
			Confidence: confDivergence,
			Source:     "obv_divergence",
		}, true
	}

	if in.OBV.Trend < 0 && in.RSI > 70 {
		return models.Signal{
			Direction:  models.TrendBearish,
			Prediction: in.Support,
			Confidence: confDivergence,
			Source:     "obv_divergence",
		}, true
	}

	return models.Signal{}, false
}

func nearLevel(price, level float64) bool {
	if level <= 0 {
		return false
	}
	diff := price - level
	if diff < 0 {
		diff = -diff
	}
	return diff/level <= levelProximity
}
