// Package scoring ranks vendor candidates for one line item with a weighted
// sum of five criteria: quantity fit, cost, delivery time, quality and
// reliability.
//
// Quantity fit decays exponentially with the distance from the target. Cost
// is min-max normalised over the candidate set. Delivery is 1/days on an
// absolute scale. Quality and reliability are read on a 0-10 scale. The sum
// is multiplied by 10 and rounded to two decimals.
package scoring

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// Score returns a scored copy of candidates, best first. Ties keep input
// order. The input slice is not modified.
func Score(candidates []domain.VendorCandidate, targetQty int, presets []string) []domain.VendorCandidate {
	if len(candidates) == 0 {
		return []domain.VendorCandidate{}
	}
	w := AverageWeights(presets)

	minCost, maxCost := candidates[0].LandedCost, candidates[0].LandedCost
	for _, c := range candidates[1:] {
		minCost = math.Min(minCost, c.LandedCost)
		maxCost = math.Max(maxCost, c.LandedCost)
	}
	costRange := maxCost - minCost
	if costRange == 0 {
		costRange = 1
	}
	target := float64(max(1, targetQty))

	scores := make([]float64, len(candidates))
	order := make([]int, len(candidates))
	for i, c := range candidates {
		raw := w.Qty*math.Exp(-math.Abs(float64(c.AvailableQty-targetQty))/target) +
			w.Cost*((maxCost-c.LandedCost)/costRange) +
			w.Delivery*(1/float64(max(1, c.DeliveryDays))) +
			w.Quality*(c.QualityScore/10) +
			w.Reliability*(c.ReliabilityScore/10)
		scores[i] = round2(raw * 10)
		order[i] = i
	}

	// Rank on the published score so equal scores keep input order.
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	out := make([]domain.VendorCandidate, len(candidates))
	for i, idx := range order {
		c := candidates[idx]
		c.Score = scores[idx]
		out[i] = c
	}
	return out
}

// Rank scores candidates and splits off the best one. Others holds at most
// limit-1 candidates; a limit of 0 or less keeps all of them. Top is nil and
// others empty when there are no candidates.
func Rank(candidates []domain.VendorCandidate, targetQty int, presets []string, limit int) (*domain.VendorCandidate, []domain.VendorCandidate) {
	scored := Score(candidates, targetQty, presets)
	if len(scored) == 0 {
		return nil, []domain.VendorCandidate{}
	}

	top := scored[0]
	end := len(scored)
	if limit > 0 && limit < end {
		end = limit
	}
	others := make([]domain.VendorCandidate, end-1)
	copy(others, scored[1:end])
	return &top, others
}

func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
