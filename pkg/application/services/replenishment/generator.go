// Package replenishment converts inventory-policy gaps into a short
// multi-day production plan, the input to the MRP explosion.
package replenishment

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/plantops/replan/pkg/domain/entities"
	"github.com/plantops/replan/pkg/domain/repositories"
	"github.com/plantops/replan/pkg/domain/services/policystatus"
)

// DefaultSplitFractions spread a SKU's rounded gap across three consecutive
// days starting today. They sum to exactly 1.0.
var DefaultSplitFractions = []float64{0.45, 0.35, 0.20}

// Generator builds the plan-by-SKU-and-day table from policy gaps.
type Generator struct {
	splits []float64
}

// NewGenerator creates a generator with the standard 3-day split profile.
func NewGenerator() *Generator {
	return NewGeneratorWithSplits(DefaultSplitFractions)
}

// NewGeneratorWithSplits creates a generator with a custom day-split profile.
func NewGeneratorWithSplits(splits []float64) *Generator {
	return &Generator{splits: splits}
}

// Plan loads inventory, forecast and policy tables and generates the plan.
func (g *Generator) Plan(
	ctx context.Context,
	today time.Time,
	fgRepo repositories.FGInventoryRepository,
	forecastRepo repositories.ForecastRepository,
	policyRepo repositories.PolicyRepository,
) ([]entities.PlanEntry, error) {
	positions, err := fgRepo.GetPositions()
	if err != nil {
		return nil, fmt.Errorf("failed to load FG inventory: %w", err)
	}
	forecast, err := forecastRepo.GetForecast()
	if err != nil {
		return nil, fmt.Errorf("failed to load forecast: %w", err)
	}
	policies, err := policyRepo.GetPolicies()
	if err != nil {
		return nil, fmt.Errorf("failed to load policies: %w", err)
	}
	return g.Generate(positions, forecast, policies, today), nil
}

// Generate computes plan entries from pre-loaded tables. For each SKU the gap
// is target DOS times average daily forecast minus on-hand; a positive gap is
// raised to at least the MOQ, rounded up to the pack-rounding unit, then
// split across the profile days. Zero-quantity day entries are omitted, and
// SKUs without a gap (or without a policy row) produce nothing.
func (g *Generator) Generate(
	positions []*entities.FGInventoryPosition,
	forecast []*entities.ForecastPoint,
	policies []*entities.Policy,
	today time.Time,
) []entities.PlanEntry {
	avg := policystatus.AverageDailyForecast(forecast, today, policystatus.ForecastWindowDays)

	policyBySKU := make(map[entities.SKUCode]*entities.Policy, len(policies))
	for _, p := range policies {
		policyBySKU[p.SKU] = p
	}

	var plan []entities.PlanEntry
	for _, pos := range positions {
		pol, ok := policyBySKU[pos.SKU]
		if !ok {
			continue
		}
		mu, ok := avg[pos.SKU]
		if !ok {
			mu = 1.0
		}

		target := entities.Cases(math.RoundToEven(pol.TargetDOS * mu))
		gap := target - pos.OnHandCases
		if gap <= 0 {
			continue
		}
		gap = RoundGap(gap, pol.MOQCases, pol.PackRounding)

		for i, frac := range g.splits {
			qty := entities.Cases(math.RoundToEven(float64(gap) * frac))
			if qty <= 0 {
				continue
			}
			plan = append(plan, entities.PlanEntry{
				Date:         today.AddDate(0, 0, i),
				SKU:          pos.SKU,
				PlannedCases: qty,
			})
		}
	}
	return plan
}

// RoundGap raises a positive gap to at least the MOQ and rounds it up to the
// next multiple of the pack rounding unit.
func RoundGap(gap, moq entities.Cases, packRounding int) entities.Cases {
	if gap < moq {
		gap = moq
	}
	unit := entities.Cases(packRounding)
	if unit < 1 {
		unit = 1
	}
	return (gap + unit - 1) / unit * unit
}
