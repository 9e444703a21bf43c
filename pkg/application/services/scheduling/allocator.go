package scheduling

import (
	"sort"

	"github.com/plantops/replan/pkg/domain/entities"
)

// skuDemand is one SKU's aggregated demand for the day: total cases, the best
// priority score among its orders, and the position of the SKU's first order
// in the input (the final, deterministic tie-break).
type skuDemand struct {
	sku         entities.SKUCode
	totalCases  entities.Cases
	maxPriority float64
	firstSeen   int
}

// lineState is the per-line mutable state of one scheduling pass. It is
// created at the start of the pass and discarded when the pass ends.
type lineState struct {
	line      *entities.Line
	remaining entities.Cases
	lastSKU   entities.SKUCode
}

// aggregateDemand groups scored orders by SKU. Total demand is the sum of
// case quantities; the priority key is the maximum score among the SKU's
// orders. Group order records first appearance for the tie-break.
func aggregateDemand(orders []*entities.Order, scores []float64) []skuDemand {
	index := make(map[entities.SKUCode]int, len(orders))
	var groups []skuDemand
	for i, o := range orders {
		gi, ok := index[o.SKU]
		if !ok {
			gi = len(groups)
			index[o.SKU] = gi
			groups = append(groups, skuDemand{sku: o.SKU, firstSeen: gi, maxPriority: scores[i]})
		}
		groups[gi].totalCases += o.QtyCases
		if scores[i] > groups[gi].maxPriority {
			groups[gi].maxPriority = scores[i]
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].maxPriority != groups[j].maxPriority {
			return groups[i].maxPriority > groups[j].maxPriority
		}
		if groups[i].totalCases != groups[j].totalCases {
			return groups[i].totalCases > groups[j].totalCases
		}
		return groups[i].firstSeen < groups[j].firstSeen
	})
	return groups
}

// medianRate returns the median cases-per-hour rate across all lines (the
// mean of the two middle values for an even count).
func medianRate(lines []*entities.Line) float64 {
	if len(lines) == 0 {
		return 0
	}
	rates := make([]int, len(lines))
	for i, l := range lines {
		rates[i] = l.RateCPH
	}
	sort.Ints(rates)
	mid := len(rates) / 2
	if len(rates)%2 == 1 {
		return float64(rates[mid])
	}
	return float64(rates[mid-1]+rates[mid]) / 2.0
}
