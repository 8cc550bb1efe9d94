package risk

import (
	"sort"
	"time"

	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// ResampleDaily groups candles by UTC calendar day and aggregates each group
// into a single daily bar: first open, max high, min low, last close, summed
// volume. The input is assumed chronologically ascending and the output
// preserves that order.
func ResampleDaily(candles []models.Candle) []models.Candle {
	if len(candles) == 0 {
		return nil
	}

	type bucket struct {
		day    time.Time
		candle models.Candle
	}

	byDay := make(map[time.Time]*bucket)
	for _, c := range candles {
		day := c.Timestamp.UTC().Truncate(24 * time.Hour)
		b, ok := byDay[day]
		if !ok {
			daily := c
			daily.Timestamp = day
			byDay[day] = &bucket{day: day, candle: daily}
			continue
		}
		if c.High > b.candle.High {
			b.candle.High = c.High
		}
		if c.Low < b.candle.Low {
			b.candle.Low = c.Low
		}
		b.candle.Close = c.Close
		b.candle.Volume += c.Volume
		b.candle.BuyVolume += c.BuyVolume
		b.candle.SellVolume += c.SellVolume
	}

	daily := make([]models.Candle, 0, len(byDay))
	for _, b := range byDay {
		daily = append(daily, b.candle)
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Timestamp.Before(daily[j].Timestamp)
	})

	return daily
}
