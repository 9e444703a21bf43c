// Package policystatus derives a days-of-supply figure and a RED/YELLOW/GREEN
// adherence status per SKU from finished-goods stock, the near-term forecast
// and the SKU's inventory policy.
package policystatus

import (
	"time"

	"github.com/plantops/replan/pkg/domain/entities"
)

// ForecastWindowDays is the forward window used to average daily demand.
const ForecastWindowDays = 7

// AverageDailyForecast averages forecast cases per SKU over the half-open
// window [today, today+days). SKUs with no forecast rows in the window are
// absent from the result; callers apply the 1.0 default.
func AverageDailyForecast(forecast []*entities.ForecastPoint, today time.Time, days int) map[entities.SKUCode]float64 {
	end := today.AddDate(0, 0, days)
	sums := make(map[entities.SKUCode]float64)
	counts := make(map[entities.SKUCode]int)
	for _, fp := range forecast {
		if fp.Date.Before(today) || !fp.Date.Before(end) {
			continue
		}
		sums[fp.SKU] += float64(fp.Cases)
		counts[fp.SKU]++
	}
	avg := make(map[entities.SKUCode]float64, len(sums))
	for sku, sum := range sums {
		avg[sku] = sum / float64(counts[sku])
	}
	return avg
}

// Classify returns the status for a days-of-supply figure against policy
// thresholds. RED is evaluated before YELLOW; the order matters when the
// thresholds are inconsistent.
func Classify(dos, minDOS, maxDOS float64) entities.PolicyStatus {
	if dos < minDOS {
		return entities.StatusRed
	}
	if dos > maxDOS {
		return entities.StatusYellow
	}
	return entities.StatusGreen
}

// Snapshot computes one adherence row per finished-goods position. A SKU with
// no forecast in the window uses an average of 1.0 to keep the division
// defined; a SKU with no policy row carries zero thresholds and classifies
// GREEN, matching the upstream left-join semantics.
func Snapshot(
	positions []*entities.FGInventoryPosition,
	forecast []*entities.ForecastPoint,
	policies []*entities.Policy,
	today time.Time,
) []entities.PolicySnapshot {
	avg := AverageDailyForecast(forecast, today, ForecastWindowDays)

	policyBySKU := make(map[entities.SKUCode]*entities.Policy, len(policies))
	for _, p := range policies {
		policyBySKU[p.SKU] = p
	}

	snapshot := make([]entities.PolicySnapshot, 0, len(positions))
	for _, pos := range positions {
		mu, ok := avg[pos.SKU]
		if !ok {
			mu = 1.0
		}
		dos := float64(pos.OnHandCases) / mu

		row := entities.PolicySnapshot{SKU: pos.SKU, DOS: dos, Status: entities.StatusGreen}
		if pol, ok := policyBySKU[pos.SKU]; ok {
			row.MinDOS = pol.MinDOS
			row.TargetDOS = pol.TargetDOS
			row.MaxDOS = pol.MaxDOS
			row.Status = Classify(dos, pol.MinDOS, pol.MaxDOS)
		}
		snapshot = append(snapshot, row)
	}
	return snapshot
}

// StatusIndex builds a SKU-to-status lookup from a snapshot. SKUs absent from
// the snapshot read as GREEN.
func StatusIndex(snapshot []entities.PolicySnapshot) map[entities.SKUCode]entities.PolicyStatus {
	idx := make(map[entities.SKUCode]entities.PolicyStatus, len(snapshot))
	for _, row := range snapshot {
		idx[row.SKU] = row.Status
	}
	return idx
}
