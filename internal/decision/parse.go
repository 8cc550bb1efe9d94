package decision

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// ParseStrategy names which extraction strategy produced a parse.
type ParseStrategy string

const (
	StrategyDirect   ParseStrategy = "direct"
	StrategyBrackets ParseStrategy = "brackets"
	StrategyRegex    ParseStrategy = "regex"
	StrategyNone     ParseStrategy = "none"
)

// ParseResult is the tagged outcome of parsing an inference payload: either
// a parsed raw decision or an explicit reason it was unparseable. No
// exception-driven control flow between the fallback strategies.
type ParseResult struct {
	Parsed   bool
	Decision models.TradingDecision
	Strategy ParseStrategy
	Reason   string
}

// flatObjectPattern finds brace-free JSON objects. The decision schema is
// flat, so this recovers a decision object even when stray braces elsewhere
// in the payload defeat bracket matching.
var flatObjectPattern = regexp.MustCompile(`(?s)\{[^{}]*\}`)

// Parse attempts the three extraction strategies in order: direct JSON
// parse, bracket-matched substring parse, regex-extracted parse. The first
// success wins; if all three fail the result carries the last failure
// reason.
func Parse(payload string) ParseResult {
	trimmed := strings.TrimSpace(payload)
	if trimmed == "" {
		return ParseResult{Strategy: StrategyNone, Reason: "empty payload"}
	}

	if d, err := decodeDecision(trimmed); err == nil {
		return ParseResult{Parsed: true, Decision: d, Strategy: StrategyDirect}
	}

	reason := "no JSON object found"
	if sub, ok := bracketMatch(trimmed); ok {
		d, err := decodeDecision(sub)
		if err == nil {
			return ParseResult{Parsed: true, Decision: d, Strategy: StrategyBrackets}
		}
		reason = err.Error()
	}

	for _, sub := range flatObjectPattern.FindAllString(trimmed, -1) {
		d, err := decodeDecision(sub)
		if err == nil {
			return ParseResult{Parsed: true, Decision: d, Strategy: StrategyRegex}
		}
		reason = err.Error()
	}

	return ParseResult{Strategy: StrategyNone, Reason: reason}
}

// ParseOrHold parses the payload and degrades to the safe hold decision
// (zero addresses, zero amount) when every strategy fails. No error ever
// escapes to the caller from an unparseable payload.
func ParseOrHold(payload string) models.TradingDecision {
	res := Parse(payload)
	if !res.Parsed {
		return models.HoldDecision("unparseable inference payload: " + res.Reason)
	}
	return res.Decision
}

// rawDecision mirrors the inference response schema with tolerant numeric
// fields; models tend to quote numbers at random.
type rawDecision struct {
	Decision   string          `json:"decision"`
	TokenIn    string          `json:"tokenIn"`
	TokenOut   string          `json:"tokenOut"`
	Amount     decimal.Decimal `json:"amount"`
	Slippage   flexFloat       `json:"slippage"`
	StopLoss   flexFloat       `json:"stopLoss"`
	TakeProfit flexFloat       `json:"takeProfit"`
	Reasoning  string          `json:"reasoning"`
	Confidence string          `json:"confidence"`
}

func decodeDecision(s string) (models.TradingDecision, error) {
	var raw rawDecision
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	if err := dec.Decode(&raw); err != nil {
		return models.TradingDecision{}, err
	}
	if raw.Decision == "" {
		return models.TradingDecision{}, &MalformedDecisionError{Reason: "missing decision field"}
	}

	return models.TradingDecision{
		Decision:   models.Action(strings.ToLower(strings.TrimSpace(raw.Decision))),
		TokenIn:    strings.TrimSpace(raw.TokenIn),
		TokenOut:   strings.TrimSpace(raw.TokenOut),
		Amount:     raw.Amount,
		Slippage:   float64(raw.Slippage),
		StopLoss:   float64(raw.StopLoss),
		TakeProfit: float64(raw.TakeProfit),
		Reasoning:  raw.Reasoning,
		Confidence: strings.ToLower(strings.TrimSpace(raw.Confidence)),
	}, nil
}

// bracketMatch extracts the first balanced top-level JSON object from mixed
// text, respecting string literals and escapes.
func bracketMatch(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}

// flexFloat decodes JSON numbers whether or not the model quoted them.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}
