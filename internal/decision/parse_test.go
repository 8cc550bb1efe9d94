package decision

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

const cleanPayload = `{
	"decision": "BUY",
	"tokenIn": "USDC",
	"tokenOut": "WETH",
	"amount": 40,
	"slippage": "0.01",
	"stopLoss": 1950,
	"takeProfit": 2100,
	"reasoning": "support bounce with volume",
	"confidence": "High"
}`

func TestParseDirect(t *testing.T) {
	res := Parse(cleanPayload)
	if !res.Parsed || res.Strategy != StrategyDirect {
		t.Fatalf("result = %+v, want direct parse", res)
	}

	d := res.Decision
	if d.Decision != models.ActionBuy {
		t.Errorf("action = %q, want buy (lowercased)", d.Decision)
	}
	if d.Confidence != models.ConfidenceHigh {
		t.Errorf("confidence = %q, want high (lowercased)", d.Confidence)
	}
	if !d.Amount.Equal(decimal.NewFromInt(40)) {
		t.Errorf("amount = %s, want 40", d.Amount)
	}
	if d.Slippage != 0.01 {
		t.Errorf("quoted slippage = %v, want 0.01", d.Slippage)
	}
	if d.StopLoss != 1950 || d.TakeProfit != 2100 {
		t.Errorf("levels = (%v, %v), want (1950, 2100)", d.StopLoss, d.TakeProfit)
	}
}

func TestParseBrackets(t *testing.T) {
	payload := "Here is my decision:\n" + cleanPayload + "\nGood luck out there."

	res := Parse(payload)
	if !res.Parsed || res.Strategy != StrategyBrackets {
		t.Fatalf("result = %+v, want bracket-matched parse", res)
	}
	if res.Decision.Decision != models.ActionBuy {
		t.Errorf("action = %q, want buy", res.Decision.Decision)
	}
}

func TestParseRegex(t *testing.T) {
	// A stray unbalanced brace before the object defeats bracket matching;
	// the flat-object scan still recovers the decision.
	payload := "trace { begin\n" +
		`{"decision": "sell", "tokenIn": "WETH", "tokenOut": "USDC", "amount": 0.02, ` +
		`"slippage": 0.01, "stopLoss": 2050, "takeProfit": 1900, "confidence": "medium"}`

	res := Parse(payload)
	if !res.Parsed || res.Strategy != StrategyRegex {
		t.Fatalf("result = %+v, want regex parse", res)
	}
	if res.Decision.Decision != models.ActionSell {
		t.Errorf("action = %q, want sell", res.Decision.Decision)
	}
	if !res.Decision.Amount.Equal(decimal.RequireFromString("0.02")) {
		t.Errorf("amount = %s, want 0.02", res.Decision.Amount)
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty payload", ""},
		{"whitespace only", "   \n\t  "},
		{"no JSON at all", "the market looks uncertain, holding"},
		{"object without decision field", `{"tokenIn": "USDC"}`},
		{"truncated object", `{"decision": "buy", "amount":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.payload)
			if res.Parsed {
				t.Fatalf("result = %+v, want failure", res)
			}
			if res.Strategy != StrategyNone {
				t.Errorf("strategy = %q, want none", res.Strategy)
			}
			if res.Reason == "" {
				t.Error("failure must carry a reason")
			}
		})
	}
}

func TestParseOrHoldDegrades(t *testing.T) {
	d := ParseOrHold("complete garbage")
	if !d.IsHold() {
		t.Fatalf("decision = %+v, want hold", d)
	}
	if !d.Amount.IsZero() {
		t.Errorf("hold amount = %s, want 0", d.Amount)
	}
	if !strings.HasPrefix(d.Reasoning, "unparseable inference payload") {
		t.Errorf("reasoning = %q, want unparseable prefix", d.Reasoning)
	}
}

func TestParseRoundTrip(t *testing.T) {
	original := models.TradingDecision{
		Decision:   models.ActionSell,
		TokenIn:    "WETH",
		TokenOut:   "USDC",
		Amount:     decimal.RequireFromString("0.03"),
		Slippage:   0.012,
		StopLoss:   2050,
		TakeProfit: 1900,
		Reasoning:  "distribution into resistance",
		Confidence: models.ConfidenceMedium,
	}

	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	res := Parse(string(raw))
	if !res.Parsed || res.Strategy != StrategyDirect {
		t.Fatalf("result = %+v, want direct parse of serialized decision", res)
	}
	got := res.Decision
	if got.Decision != original.Decision || got.TokenIn != original.TokenIn || got.TokenOut != original.TokenOut {
		t.Errorf("decision fields = %+v, want %+v", got, original)
	}
	if !got.Amount.Equal(original.Amount) {
		t.Errorf("amount = %s, want %s", got.Amount, original.Amount)
	}
	if got.Slippage != original.Slippage || got.StopLoss != original.StopLoss || got.TakeProfit != original.TakeProfit {
		t.Errorf("numeric fields differ: %+v vs %+v", got, original)
	}
}
