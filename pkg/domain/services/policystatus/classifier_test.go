package policystatus

import (
	"testing"
	"time"

	"github.com/plantops/replan/pkg/domain/entities"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// flatForecast builds a constant forecast of casesPerDay for one SKU across
// the given number of days starting at start.
func flatForecast(sku entities.SKUCode, start time.Time, days int, casesPerDay entities.Cases) []*entities.ForecastPoint {
	var points []*entities.ForecastPoint
	for i := 0; i < days; i++ {
		points = append(points, &entities.ForecastPoint{
			SKU:   sku,
			Date:  start.AddDate(0, 0, i),
			Cases: casesPerDay,
		})
	}
	return points
}

func TestSnapshot_Classification(t *testing.T) {
	today := date("2026-02-09")
	forecast := flatForecast("WTR-1L-12PK", today, 7, 10)
	policies := []*entities.Policy{
		{SKU: "WTR-1L-12PK", MinDOS: 6, TargetDOS: 10, MaxDOS: 14},
	}

	tests := []struct {
		name     string
		onHand   entities.Cases
		wantDOS  float64
		wantStat entities.PolicyStatus
	}{
		{name: "below_min_is_red", onHand: 50, wantDOS: 5, wantStat: entities.StatusRed},
		{name: "above_max_is_yellow", onHand: 150, wantDOS: 15, wantStat: entities.StatusYellow},
		{name: "within_band_is_green", onHand: 100, wantDOS: 10, wantStat: entities.StatusGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			positions := []*entities.FGInventoryPosition{
				{SKU: "WTR-1L-12PK", OnHandCases: tt.onHand},
			}
			snap := Snapshot(positions, forecast, policies, today)
			if len(snap) != 1 {
				t.Fatalf("expected 1 snapshot row, got %d", len(snap))
			}
			if snap[0].DOS != tt.wantDOS {
				t.Errorf("DOS = %v, want %v", snap[0].DOS, tt.wantDOS)
			}
			if snap[0].Status != tt.wantStat {
				t.Errorf("Status = %s, want %s", snap[0].Status, tt.wantStat)
			}
		})
	}
}

func TestSnapshot_NoForecastDefaultsToOne(t *testing.T) {
	today := date("2026-02-09")
	positions := []*entities.FGInventoryPosition{
		{SKU: "WTR-35PK", OnHandCases: 42},
	}
	policies := []*entities.Policy{
		{SKU: "WTR-35PK", MinDOS: 5, TargetDOS: 8, MaxDOS: 12},
	}

	snap := Snapshot(positions, nil, policies, today)
	if snap[0].DOS != 42 {
		t.Errorf("DOS = %v, want 42 (on-hand / default 1.0)", snap[0].DOS)
	}
	if snap[0].Status != entities.StatusYellow {
		t.Errorf("Status = %s, want YELLOW", snap[0].Status)
	}
}

func TestSnapshot_ForecastOutsideWindowIgnored(t *testing.T) {
	today := date("2026-02-09")
	// One point the day before the window, one on day 7 (outside the
	// half-open window), one inside.
	forecast := []*entities.ForecastPoint{
		{SKU: "A", Date: date("2026-02-08"), Cases: 1000},
		{SKU: "A", Date: date("2026-02-16"), Cases: 1000},
		{SKU: "A", Date: date("2026-02-12"), Cases: 20},
	}
	positions := []*entities.FGInventoryPosition{{SKU: "A", OnHandCases: 100}}
	policies := []*entities.Policy{{SKU: "A", MinDOS: 1, TargetDOS: 3, MaxDOS: 100}}

	snap := Snapshot(positions, forecast, policies, today)
	if snap[0].DOS != 5 {
		t.Errorf("DOS = %v, want 5 (only the in-window point counts)", snap[0].DOS)
	}
}

func TestSnapshot_MissingPolicyIsGreen(t *testing.T) {
	today := date("2026-02-09")
	positions := []*entities.FGInventoryPosition{{SKU: "NOPOLICY", OnHandCases: 5}}

	snap := Snapshot(positions, nil, nil, today)
	if snap[0].Status != entities.StatusGreen {
		t.Errorf("Status = %s, want GREEN for SKU without policy", snap[0].Status)
	}
}

func TestClassify_RedWinsOnInconsistentThresholds(t *testing.T) {
	// min > max: a value under min must classify RED even though it is also
	// above max.
	if got := Classify(12, 14, 10); got != entities.StatusRed {
		t.Errorf("Classify = %s, want RED", got)
	}
}

func TestStatusIndex(t *testing.T) {
	snap := []entities.PolicySnapshot{
		{SKU: "A", Status: entities.StatusRed},
		{SKU: "B", Status: entities.StatusGreen},
	}
	idx := StatusIndex(snap)
	if idx["A"] != entities.StatusRed {
		t.Errorf("idx[A] = %s, want RED", idx["A"])
	}
	if _, ok := idx["C"]; ok {
		t.Error("unknown SKU should be absent from the index")
	}
}
