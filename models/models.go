package models

import (
	"time"
)

// Candle represents a single OHLC price candle. Candles are immutable once
// recorded and ordered chronologically ascending.
type Candle struct {
	Timestamp     time.Time `json:"timestamp"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Close         float64   `json:"close"`
	Volume        float64   `json:"volume"`
	BuyVolume     float64   `json:"buyVolume,omitempty"`
	SellVolume    float64   `json:"sellVolume,omitempty"`
	AverageVolume float64   `json:"averageVolume,omitempty"`
}

// TypicalPrice returns (high+low+close)/3.
func (c Candle) TypicalPrice() float64 {
	return (c.High + c.Low + c.Close) / 3
}

// IsBullish reports whether the candle closed above its open.
func (c Candle) IsBullish() bool {
	return c.Close > c.Open
}

// PriceLevel is a single price+quantity entry on one side of an order book.
type PriceLevel struct {
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// OrderBookSnapshot is a point-in-time view of the book. The core consumes
// one snapshot per analysis cycle and retains no history.
type OrderBookSnapshot struct {
	Bids      []PriceLevel `json:"bids"`
	Asks      []PriceLevel `json:"asks"`
	Timestamp time.Time    `json:"timestamp"`
}

// BestBid returns the highest bid level, or a zero level if the side is empty.
func (ob *OrderBookSnapshot) BestBid() PriceLevel {
	if ob == nil || len(ob.Bids) == 0 {
		return PriceLevel{}
	}
	best := ob.Bids[0]
	for _, lvl := range ob.Bids[1:] {
		if lvl.Price > best.Price {
			best = lvl
		}
	}
	return best
}

// BestAsk returns the lowest ask level, or a zero level if the side is empty.
func (ob *OrderBookSnapshot) BestAsk() PriceLevel {
	if ob == nil || len(ob.Asks) == 0 {
		return PriceLevel{}
	}
	best := ob.Asks[0]
	for _, lvl := range ob.Asks[1:] {
		if lvl.Price < best.Price {
			best = lvl
		}
	}
	return best
}

// MarketDataState aggregates the bounded candle window and order book the
// analyzer consumes. It is owned and refreshed by the market-data collaborator;
// the analyzer treats it as a read-only snapshot per invocation.
type MarketDataState struct {
	Symbol        string             `json:"symbol"`
	Candles       []Candle           `json:"candles"`
	Prices        []float64          `json:"prices"`
	Volumes       []float64          `json:"volumes"`
	CurrentPrice  float64            `json:"currentPrice"`
	AverageVolume float64            `json:"averageVolume"`
	OrderBook     *OrderBookSnapshot `json:"orderBook,omitempty"`
}

// LastCandle returns the most recent candle and true, or a zero candle and
// false when the window is empty.
func (s *MarketDataState) LastCandle() (Candle, bool) {
	if len(s.Candles) == 0 {
		return Candle{}, false
	}
	return s.Candles[len(s.Candles)-1], true
}

// TokenPair names the stable/volatile token pair a trading cycle operates on.
// Addresses are opaque to the core; they only have to match the decision's
// tokenIn/tokenOut exactly.
type TokenPair struct {
	Symbol        string `json:"symbol"`
	StableToken   string `json:"stableToken"`
	VolatileToken string `json:"volatileToken"`
}

// SpikeEvent is a price-spike notification emitted by the ledger collaborator.
type SpikeEvent struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	ChangePct float64   `json:"changePct"`
	Timestamp time.Time `json:"timestamp"`
}
