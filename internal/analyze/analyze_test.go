package analyze

import (
	"testing"

	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/indicators"
	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

func TestDetectRegime(t *testing.T) {
	tests := []struct {
		name string
		vwma []float64
		rsi  float64
		want models.MarketRegime
	}{
		{
			name: "single point defaults to consolidation",
			vwma: []float64{100},
			rsi:  50,
			want: models.RegimeConsolidating,
		},
		{
			name: "empty series defaults to consolidation",
			vwma: nil,
			rsi:  85,
			want: models.RegimeConsolidating,
		},
		{
			name: "gap above threshold reads uptrend",
			vwma: []float64{100, 101, 103},
			rsi:  50,
			want: models.RegimeUptrend,
		},
		{
			name: "gap below threshold reads downtrend",
			vwma: []float64{103, 102, 100},
			rsi:  50,
			want: models.RegimeDowntrend,
		},
		{
			name: "flat slope with overbought RSI reads exhaustion",
			vwma: []float64{100, 100.1, 100.2},
			rsi:  75,
			want: models.RegimeExhaustion,
		},
		{
			name: "flat slope with oversold RSI reads exhaustion",
			vwma: []float64{100, 100.1, 100.2},
			rsi:  25,
			want: models.RegimeExhaustion,
		},
		{
			name: "flat slope with mid RSI consolidates",
			vwma: []float64{100, 100, 100},
			rsi:  50,
			want: models.RegimeConsolidating,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectRegime(tt.vwma, tt.rsi, 0.015); got != tt.want {
				t.Errorf("DetectRegime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrendDirectionForRegime(t *testing.T) {
	tests := []struct {
		regime models.MarketRegime
		want   models.TrendDirection
	}{
		{models.RegimeUptrend, models.TrendBullish},
		{models.RegimeDowntrend, models.TrendBearish},
		{models.RegimeConsolidating, models.TrendNeutral},
		{models.RegimeExhaustion, models.TrendNeutral},
	}

	for _, tt := range tests {
		if got := TrendDirectionForRegime(tt.regime); got != tt.want {
			t.Errorf("TrendDirectionForRegime(%v) = %v, want %v", tt.regime, got, tt.want)
		}
	}
}

// quietInputs builds an Inputs fixture where no cascade branch fires: flat
// candles, balanced book, mid-range price and oscillators.
func quietInputs() Inputs {
	return Inputs{
		Candles: []models.Candle{
			{Open: 100, High: 100.5, Low: 99.5, Close: 100, Volume: 1000},
			{Open: 100, High: 100.5, Low: 99.5, Close: 100, Volume: 1000},
		},
		CurrentPrice: 100,
		Book: &models.OrderBookSnapshot{
			Bids: []models.PriceLevel{{Price: 99.9, Quantity: 20}},
			Asks: []models.PriceLevel{{Price: 100.1, Quantity: 20}},
		},
		Support:    95,
		Resistance: 105,
		RSI:        50,
		VolumeRSI:  50,
		Config:     models.DefaultAnalyzerConfig(),
	}
}

func TestDetectSignalNeutral(t *testing.T) {
	sig := DetectSignal(quietInputs())
	if sig.Source != "neutral" {
		t.Fatalf("source = %q, want neutral", sig.Source)
	}
	if sig.Direction != models.TrendNeutral || sig.Confidence != 0.50 {
		t.Errorf("signal = %+v, want neutral direction at 0.50", sig)
	}
	if sig.Prediction != 100 {
		t.Errorf("neutral prediction = %v, want current price 100", sig.Prediction)
	}
}

func TestDetectSignalAbsorption(t *testing.T) {
	in := quietInputs()
	in.CurrentPrice = 95.2 // testing support at 95
	in.Book = &models.OrderBookSnapshot{
		Bids: []models.PriceLevel{{Price: 95.1, Quantity: 40}},
		Asks: []models.PriceLevel{{Price: 95.3, Quantity: 10}},
	}

	sig := DetectSignal(in)
	if sig.Source != "absorption" || sig.Direction != models.TrendBullish {
		t.Fatalf("signal = %+v, want bullish absorption", sig)
	}
	if sig.Confidence != 0.85 {
		t.Errorf("confidence = %v, want 0.85", sig.Confidence)
	}
	if sig.Prediction != in.Resistance {
		t.Errorf("prediction = %v, want resistance %v", sig.Prediction, in.Resistance)
	}

	// Mirror: heavy asks at resistance.
	in.CurrentPrice = 104.8
	in.Book = &models.OrderBookSnapshot{
		Bids: []models.PriceLevel{{Price: 104.7, Quantity: 10}},
		Asks: []models.PriceLevel{{Price: 104.9, Quantity: 40}},
	}
	sig = DetectSignal(in)
	if sig.Source != "absorption" || sig.Direction != models.TrendBearish {
		t.Fatalf("signal = %+v, want bearish absorption", sig)
	}
	if sig.Prediction != in.Support {
		t.Errorf("prediction = %v, want support %v", sig.Prediction, in.Support)
	}
}

func TestDetectSignalStopRun(t *testing.T) {
	in := quietInputs()
	// Break above the prior high on net selling.
	in.Candles = []models.Candle{
		{Open: 100, High: 100.5, Low: 99.5, Close: 100, Volume: 1000},
		{Open: 100, High: 101.2, Low: 99.8, Close: 100.1, Volume: 1000, BuyVolume: 100, SellVolume: 400},
	}

	sig := DetectSignal(in)
	if sig.Source != "stop_run" || sig.Direction != models.TrendBearish {
		t.Fatalf("signal = %+v, want bearish stop run", sig)
	}
	if sig.Confidence != 0.80 {
		t.Errorf("confidence = %v, want 0.80", sig.Confidence)
	}

	// Break below the prior low on net buying.
	in.Candles = []models.Candle{
		{Open: 100, High: 100.5, Low: 99.5, Close: 100, Volume: 1000},
		{Open: 100, High: 100.4, Low: 98.9, Close: 99.9, Volume: 1000, BuyVolume: 400, SellVolume: 100},
	}
	sig = DetectSignal(in)
	if sig.Source != "stop_run" || sig.Direction != models.TrendBullish {
		t.Fatalf("signal = %+v, want bullish stop run", sig)
	}
}

func TestDetectSignalSupportBounce(t *testing.T) {
	in := quietInputs()
	in.CurrentPrice = 94.4 // through support at 95
	in.RSI = 25
	in.VolumeRSI = 65
	in.Candles = []models.Candle{
		{Open: 96, High: 97, Low: 94.5, Close: 95.5, Volume: 1000},
		// Hammer on twice the volume expansion threshold.
		{Open: 95, High: 95.2, Low: 93, Close: 95.1, Volume: 2000},
	}

	sig := DetectSignal(in)
	if sig.Source != "support_bounce" || sig.Direction != models.TrendBullish {
		t.Fatalf("signal = %+v, want bullish support bounce", sig)
	}
	if sig.Confidence != 0.95 {
		t.Errorf("confidence = %v, want capped 0.95", sig.Confidence)
	}
	if sig.Prediction != in.Resistance {
		t.Errorf("prediction = %v, want resistance %v", sig.Prediction, in.Resistance)
	}
}

func TestDetectSignalSupportBounceNeedsScore(t *testing.T) {
	in := quietInputs()
	in.CurrentPrice = 94.4
	// Up-close at support but no hammer, no expansion, no oscillator
	// alignment: score stays at the 0.6 base and the branch must not fire.
	in.Candles = []models.Candle{
		{Open: 95, High: 95.5, Low: 94.2, Close: 94.5, Volume: 1000},
		{Open: 94.3, High: 94.8, Low: 94.2, Close: 94.4, Volume: 1000},
	}

	if sig := DetectSignal(in); sig.Source != "neutral" {
		t.Errorf("signal source = %q, want neutral when score at base", sig.Source)
	}
}

func TestDetectSignalResistanceRejection(t *testing.T) {
	in := quietInputs()
	in.CurrentPrice = 105.6 // through resistance at 105
	in.RSI = 75
	in.VolumeRSI = 35
	in.Candles = []models.Candle{
		{Open: 105, High: 108, Low: 104.5, Close: 105.8, Volume: 1000},
		// Shooting star on expanded volume.
		{Open: 105.8, High: 107.8, Low: 105.5, Close: 105.7, Volume: 2000},
	}

	sig := DetectSignal(in)
	if sig.Source != "resistance_rejection" || sig.Direction != models.TrendBearish {
		t.Fatalf("signal = %+v, want bearish resistance rejection", sig)
	}
	if sig.Confidence != 0.95 {
		t.Errorf("confidence = %v, want capped 0.95", sig.Confidence)
	}
	if sig.Prediction != in.Support {
		t.Errorf("prediction = %v, want support %v", sig.Prediction, in.Support)
	}
}

func TestDetectSignalBreakoutIsNotRejection(t *testing.T) {
	// Price closing up through resistance is a breakout; the rejection
	// branch must not read it as bearish.
	in := quietInputs()
	in.CurrentPrice = 105.6
	in.RSI = 75
	in.Candles = []models.Candle{
		{Open: 104, High: 105, Low: 103.5, Close: 104.8, Volume: 1000},
		{Open: 104.8, High: 105.7, Low: 104.6, Close: 105.6, Volume: 1000},
	}

	if sig := DetectSignal(in); sig.Direction == models.TrendBearish {
		t.Errorf("signal = %+v, breakout candle must not read bearish", sig)
	}
}

func TestDetectSignalVolumeConfirmation(t *testing.T) {
	in := quietInputs()
	in.VolumeRSI = 65
	in.Candles = []models.Candle{
		{Open: 99.5, High: 100.5, Low: 98.5, Close: 99, Volume: 1000},
		{Open: 99, High: 100.2, Low: 98.8, Close: 100, Volume: 1600},
	}

	sig := DetectSignal(in)
	if sig.Source != "volume_confirmation" || sig.Direction != models.TrendBullish {
		t.Fatalf("signal = %+v, want bullish volume confirmation", sig)
	}
	if sig.Confidence != 0.70 {
		t.Errorf("confidence = %v, want 0.70", sig.Confidence)
	}

	// Bearish mirror: down candle, weak volume RSI.
	in.VolumeRSI = 35
	in.Candles = []models.Candle{
		{Open: 100.5, High: 101.5, Low: 99.5, Close: 101, Volume: 1000},
		{Open: 101, High: 101.2, Low: 99.6, Close: 100, Volume: 1600},
	}
	sig = DetectSignal(in)
	if sig.Source != "volume_confirmation" || sig.Direction != models.TrendBearish {
		t.Fatalf("signal = %+v, want bearish volume confirmation", sig)
	}
}

func TestDetectSignalOBVDivergence(t *testing.T) {
	in := quietInputs()
	in.RSI = 25
	in.OBV = indicators.OBVResult{
		Trend:      500,
		PriceTrend: -0.01,
		Divergence: true,
		Magnitude:  0.01,
	}

	sig := DetectSignal(in)
	if sig.Source != "obv_divergence" || sig.Direction != models.TrendBullish {
		t.Fatalf("signal = %+v, want bullish divergence", sig)
	}
	if sig.Confidence != 0.75 {
		t.Errorf("confidence = %v, want 0.75", sig.Confidence)
	}

	// Distribution into an overbought tape.
	in.RSI = 75
	in.OBV = indicators.OBVResult{
		Trend:      -500,
		PriceTrend: 0.01,
		Divergence: true,
		Magnitude:  0.01,
	}
	sig = DetectSignal(in)
	if sig.Source != "obv_divergence" || sig.Direction != models.TrendBearish {
		t.Fatalf("signal = %+v, want bearish divergence", sig)
	}
}

func TestDetectSignalDivergenceBelowThreshold(t *testing.T) {
	in := quietInputs()
	in.RSI = 25
	in.OBV = indicators.OBVResult{
		Trend:      500,
		PriceTrend: -0.001,
		Divergence: true,
		Magnitude:  0.001, // under the 0.003 config threshold
	}

	if sig := DetectSignal(in); sig.Source != "neutral" {
		t.Errorf("signal source = %q, want neutral for weak divergence", sig.Source)
	}
}
