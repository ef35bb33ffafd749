// Package score computes the flipping score of an auction listing.
package score

import "math"

const (
	// Max is the upper bound of every score component and of the score itself.
	Max = 999

	proximityWeight = 0.7
	goldWeight      = 0.3
	goldDivisor     = 1000
)

// Flipping rates how attractive a listing is to buy and resell, in [0, Max].
//
// The score mixes how close the market value is to the historical price (70%)
// with the gold earned by buying at minBuyout and selling at marketValue (30%).
// A non-positive marketValue yields 0.
func Flipping(marketValue, historical, minBuyout float64, quantity int) int {
	if marketValue <= 0 {
		return 0
	}

	proximity := clamp(1-math.Abs(marketValue-historical)/marketValue, 0, 1)
	normalizedProximity := clamp(proximity*Max, 0, Max)

	goldEarned := (marketValue - minBuyout) * float64(quantity)
	normalizedGold := clamp(goldEarned/goldDivisor, 0, Max)

	return int(math.Round(normalizedProximity*proximityWeight + normalizedGold*goldWeight))
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
