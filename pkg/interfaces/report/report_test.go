package report

import (
	"testing"
	"time"

	"github.com/plantops/replan/pkg/domain/entities"
)

func day(d int) time.Time {
	return time.Date(2025, 3, 1+d, 0, 0, 0, 0, time.UTC)
}

func testInputs() Inputs {
	var forecast []*entities.ForecastPoint
	for d := 0; d < 7; d++ {
		forecast = append(forecast, &entities.ForecastPoint{
			SKU: "SKU-001", Date: day(d), Cases: 100,
		})
	}
	return Inputs{
		Today: day(0),
		Positions: []*entities.FGInventoryPosition{
			{SKU: "SKU-001", OnHandCases: 200},
			{SKU: "SKU-NO-POLICY", OnHandCases: 50},
		},
		Policies: []*entities.Policy{
			{SKU: "SKU-001", ABC: entities.ClassA, MinDOS: 3, TargetDOS: 5, MaxDOS: 9,
				MOQCases: 250, PackRounding: 40},
		},
		Forecast: forecast,
		Schedule: []entities.ScheduleAssignment{
			{Date: day(0), Line: "L1", SKU: "SKU-001", PlannedCases: 900},
			{Date: day(0), Line: "L2", SKU: "SKU-002", PlannedCases: 400},
			{Date: day(0), Line: entities.UnassignedLine, SKU: "SKU-003", UnmetCases: 120},
		},
	}
}

func TestBuildSheets(t *testing.T) {
	f, err := Build(testInputs())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{sheetAdherence, sheetLineLoad, sheetOTIF} {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Errorf("missing sheet %q (idx=%d, err=%v)", sheet, idx, err)
		}
	}
	if idx, _ := f.GetSheetIndex("Sheet1"); idx >= 0 {
		t.Error("default sheet should be removed")
	}
}

func TestAdherenceRecommendation(t *testing.T) {
	f, err := Build(testInputs())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetAdherence)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	// SKU-001: dos = 200/100 = 2 < min 3 -> RED;
	// gap = 5*100-200 = 300 -> already above MOQ 250, rounded up to 320
	if rows[1][0] != "SKU-001" {
		t.Fatalf("unexpected first SKU: %v", rows[1][0])
	}
	if rows[1][10] != "RED" {
		t.Errorf("expected RED status, got %v", rows[1][10])
	}
	if rows[1][11] != "320" {
		t.Errorf("expected recommended 320 cases, got %v", rows[1][11])
	}
	// SKU without a policy row classifies GREEN with no recommendation
	if rows[2][10] != "GREEN" || rows[2][11] != "0" {
		t.Errorf("no-policy SKU should be GREEN/0, got %v/%v", rows[2][10], rows[2][11])
	}
}

func TestLineLoadExcludesUnassigned(t *testing.T) {
	f, err := Build(testInputs())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetLineLoad)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 lines, got %d", len(rows))
	}
	// sorted by planned cases, highest first
	if rows[1][0] != "L1" || rows[2][0] != "L2" {
		t.Errorf("unexpected line order: %v, %v", rows[1][0], rows[2][0])
	}
	for _, row := range rows[1:] {
		if row[0] == string(entities.UnassignedLine) {
			t.Error("UNASSIGNED must not appear in line load")
		}
	}
}

func TestOTIFRiskListsUnmet(t *testing.T) {
	f, err := Build(testInputs())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetOTIF)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if rows[1][0] != "SKU-003" || rows[1][1] != "120" {
		t.Errorf("unexpected OTIF row: %v", rows[1])
	}
}

func TestOTIFRiskPlaceholderWhenClean(t *testing.T) {
	in := testInputs()
	in.Schedule = in.Schedule[:2] // drop the unmet row
	f, err := Build(in)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetOTIF)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "(none)" {
		t.Errorf("expected (none) placeholder, got %v", rows)
	}
}
