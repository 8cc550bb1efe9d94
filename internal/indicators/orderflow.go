package indicators

import (
	"sort"

	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// VolumeDelta sums buyVolume-sellVolume across the candle history. Candles
// without side-tagged volume contribute zero.
func VolumeDelta(candles []models.Candle) float64 {
	delta := 0.0
	for _, c := range candles {
		delta += c.BuyVolume - c.SellVolume
	}
	return Finite(delta, 0)
}

// BidAskImbalance returns (totalBid-totalAsk)/(totalBid+totalAsk) from the
// order-book snapshot, 0 when both sides are empty.
func BidAskImbalance(book *models.OrderBookSnapshot) float64 {
	if book == nil {
		return 0
	}

	var totalBid, totalAsk float64
	for _, lvl := range book.Bids {
		totalBid += lvl.Quantity
	}
	for _, lvl := range book.Asks {
		totalAsk += lvl.Quantity
	}

	if totalBid+totalAsk == 0 {
		return 0
	}
	return Finite((totalBid-totalAsk)/(totalBid+totalAsk), 0)
}

// LiquidityClusters returns the top-5 price levels (2-decimal grid) by
// aggregated bid liquidity, each annotated with the bid and ask liquidity
// resting at that level. Ordered by bid liquidity descending.
func LiquidityClusters(book *models.OrderBookSnapshot) []models.LiquidityCluster {
	if book == nil || len(book.Bids) == 0 {
		return nil
	}

	bidAt := make(map[float64]float64)
	askAt := make(map[float64]float64)
	for _, lvl := range book.Bids {
		bidAt[roundLevel(lvl.Price)] += lvl.Quantity
	}
	for _, lvl := range book.Asks {
		askAt[roundLevel(lvl.Price)] += lvl.Quantity
	}

	clusters := make([]models.LiquidityCluster, 0, len(bidAt))
	for price, bid := range bidAt {
		clusters = append(clusters, models.LiquidityCluster{
			Price:        price,
			BidLiquidity: bid,
			AskLiquidity: askAt[price],
		})
	}

	sort.Slice(clusters, func(i, j int) bool {
		if clusters[i].BidLiquidity != clusters[j].BidLiquidity {
			return clusters[i].BidLiquidity > clusters[j].BidLiquidity
		}
		return clusters[i].Price > clusters[j].Price
	})

	if len(clusters) > 5 {
		clusters = clusters[:5]
	}
	return clusters
}
