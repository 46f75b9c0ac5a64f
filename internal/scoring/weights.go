package scoring

import (
	"sort"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// PresetBalanced is the fallback preset for empty or unknown selections.
const PresetBalanced = "balanced"

// Presets maps preset names to criterion weights. Each vector sums to 1.
var Presets = map[string]domain.Weights{
	"time":            {Qty: 0.15, Cost: 0.05, Delivery: 0.50, Quality: 0.15, Reliability: 0.15},
	"quality":         {Qty: 0.15, Cost: 0.05, Delivery: 0.10, Quality: 0.50, Reliability: 0.20},
	"quantity":        {Qty: 0.50, Cost: 0.10, Delivery: 0.10, Quality: 0.15, Reliability: 0.15},
	"resource-saving": {Qty: 0.20, Cost: 0.50, Delivery: 0.10, Quality: 0.10, Reliability: 0.10},
	PresetBalanced:    {Qty: 0.25, Cost: 0.25, Delivery: 0.15, Quality: 0.20, Reliability: 0.15},
}

// PresetNames returns the known preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AverageWeights returns the elementwise mean of the selected presets.
// Unknown names count as balanced; an empty selection is balanced exactly.
func AverageWeights(presets []string) domain.Weights {
	if len(presets) == 0 {
		return Presets[PresetBalanced]
	}

	var sum domain.Weights
	for _, name := range presets {
		w, ok := Presets[name]
		if !ok {
			w = Presets[PresetBalanced]
		}
		sum.Qty += w.Qty
		sum.Cost += w.Cost
		sum.Delivery += w.Delivery
		sum.Quality += w.Quality
		sum.Reliability += w.Reliability
	}

	n := float64(len(presets))
	return domain.Weights{
		Qty:         sum.Qty / n,
		Cost:        sum.Cost / n,
		Delivery:    sum.Delivery / n,
		Quality:     sum.Quality / n,
		Reliability: sum.Reliability / n,
	}
}
