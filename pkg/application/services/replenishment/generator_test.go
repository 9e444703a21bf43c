package replenishment

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

func TestRoundGap(t *testing.T) {
	tests := []struct {
		name     string
		gap      entities.Cases
		moq      entities.Cases
		rounding int
		expected entities.Cases
	}{
		{name: "raised_to_moq_then_rounded", gap: 120, moq: 200, rounding: 60, expected: 240},
		{name: "already_above_moq", gap: 250, moq: 200, rounding: 60, expected: 300},
		{name: "exact_multiple_unchanged", gap: 240, moq: 200, rounding: 60, expected: 240},
		{name: "zero_rounding_treated_as_one", gap: 120, moq: 100, rounding: 0, expected: 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundGap(tt.gap, tt.moq, tt.rounding); got != tt.expected {
				t.Errorf("RoundGap(%d, %d, %d) = %d, want %d",
					tt.gap, tt.moq, tt.rounding, got, tt.expected)
			}
		})
	}
}

func TestGenerate_DaySplit(t *testing.T) {
	today := date("2026-02-09")
	gen := NewGenerator()

	// avg forecast 100/day, target 10 DOS, on-hand 880 -> gap 120 -> MOQ 200
	// -> rounded 240 -> split 108/84/48.
	var forecast []*entities.ForecastPoint
	for i := 0; i < 7; i++ {
		forecast = append(forecast, &entities.ForecastPoint{
			SKU: "A", Date: today.AddDate(0, 0, i), Cases: 100,
		})
	}
	positions := []*entities.FGInventoryPosition{{SKU: "A", OnHandCases: 880}}
	policies := []*entities.Policy{
		{SKU: "A", TargetDOS: 10, MOQCases: 200, PackRounding: 60},
	}

	plan := gen.Generate(positions, forecast, policies, today)
	if len(plan) != 3 {
		t.Fatalf("expected 3 plan entries, got %d", len(plan))
	}

	expected := []struct {
		day string
		qty entities.Cases
	}{
		{"2026-02-09", 108},
		{"2026-02-10", 84},
		{"2026-02-11", 48},
	}
	var total entities.Cases
	for i, want := range expected {
		if !plan[i].Date.Equal(date(want.day)) {
			t.Errorf("entry %d date = %s, want %s", i, plan[i].Date.Format("2006-01-02"), want.day)
		}
		if plan[i].PlannedCases != want.qty {
			t.Errorf("entry %d qty = %d, want %d", i, plan[i].PlannedCases, want.qty)
		}
		total += plan[i].PlannedCases
	}
	if total != 240 {
		t.Errorf("split total = %d, want the full rounded gap 240", total)
	}
}

func TestGenerate_NoGapNoRows(t *testing.T) {
	today := date("2026-02-09")
	gen := NewGenerator()

	var forecast []*entities.ForecastPoint
	for i := 0; i < 7; i++ {
		forecast = append(forecast, &entities.ForecastPoint{
			SKU: "A", Date: today.AddDate(0, 0, i), Cases: 100,
		})
	}
	// On-hand already covers the target.
	positions := []*entities.FGInventoryPosition{{SKU: "A", OnHandCases: 1500}}
	policies := []*entities.Policy{{SKU: "A", TargetDOS: 10, MOQCases: 200, PackRounding: 60}}

	if plan := gen.Generate(positions, forecast, policies, today); len(plan) != 0 {
		t.Errorf("expected no plan rows, got %d", len(plan))
	}
}

func TestGenerate_MissingPolicySkipped(t *testing.T) {
	today := date("2026-02-09")
	gen := NewGenerator()

	positions := []*entities.FGInventoryPosition{{SKU: "NOPOLICY", OnHandCases: 0}}
	if plan := gen.Generate(positions, nil, nil, today); len(plan) != 0 {
		t.Errorf("expected no rows for SKU without policy, got %d", len(plan))
	}
}

func TestGenerate_ZeroQuantityDaysOmitted(t *testing.T) {
	today := date("2026-02-09")
	// A custom split with a zero-weight final day must not emit a row.
	gen := NewGeneratorWithSplits([]float64{0.999, 0.001, 0})

	positions := []*entities.FGInventoryPosition{{SKU: "A", OnHandCases: 0}}
	policies := []*entities.Policy{{SKU: "A", TargetDOS: 1, MOQCases: 100, PackRounding: 1}}

	plan := gen.Generate(positions, nil, policies, today)
	// gap = 100: day0 round(99.9)=100, day1 round(0.1)=0 omitted, day2 0 omitted.
	if len(plan) != 1 {
		t.Fatalf("expected 1 plan entry, got %d", len(plan))
	}
	if plan[0].PlannedCases != 100 {
		t.Errorf("qty = %d, want 100", plan[0].PlannedCases)
	}
}

func TestGenerate_HalfCaseSplitRoundsToEven(t *testing.T) {
	today := date("2026-02-09")
	gen := NewGenerator()

	// No forecast rows: avg defaults to 1.0, so the gap equals target DOS
	// minus on-hand. Gaps of 10 and 50 put day-0 and day-1 products exactly
	// on .5 case boundaries.
	tests := []struct {
		name     string
		policy   *entities.Policy
		expected []entities.Cases
	}{
		{
			name:     "gap_10",
			policy:   &entities.Policy{SKU: "A", TargetDOS: 10, MOQCases: 10, PackRounding: 10},
			expected: []entities.Cases{4, 4, 2},
		},
		{
			name:     "gap_50",
			policy:   &entities.Policy{SKU: "A", TargetDOS: 50, MOQCases: 50, PackRounding: 10},
			expected: []entities.Cases{22, 18, 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			positions := []*entities.FGInventoryPosition{{SKU: "A", OnHandCases: 0}}
			plan := gen.Generate(positions, nil, []*entities.Policy{tt.policy}, today)
			if len(plan) != len(tt.expected) {
				t.Fatalf("expected %d plan entries, got %d", len(tt.expected), len(plan))
			}
			var total entities.Cases
			for i, want := range tt.expected {
				if plan[i].PlannedCases != want {
					t.Errorf("day %d qty = %d, want %d", i, plan[i].PlannedCases, want)
				}
				total += plan[i].PlannedCases
			}
			if total != entities.Cases(tt.policy.TargetDOS) {
				t.Errorf("split total = %d, want the full gap %v", total, tt.policy.TargetDOS)
			}
		})
	}
}

func TestDefaultSplitFractionsSumToOne(t *testing.T) {
	sum := 0.0
	for _, f := range DefaultSplitFractions {
		sum += f
	}
	if sum != 1.0 {
		t.Errorf("split fractions sum = %v, want exactly 1.0", sum)
	}
}
