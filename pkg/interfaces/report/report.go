// Package report builds the plant review workbook: policy adherence with
// recommended production, planned load by line, and an OTIF risk list of
// unmet cases by SKU.
package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/plantops/replan/pkg/application/services/replenishment"
	"github.com/plantops/replan/pkg/domain/entities"
	"github.com/plantops/replan/pkg/domain/services/policystatus"
)

const (
	sheetAdherence = "Policy Adherence"
	sheetLineLoad  = "Line Load"
	sheetOTIF      = "OTIF Risk"
)

// Inputs holds everything the workbook is built from.
type Inputs struct {
	Today     time.Time
	Positions []*entities.FGInventoryPosition
	Policies  []*entities.Policy
	Forecast  []*entities.ForecastPoint
	Schedule  []entities.ScheduleAssignment
}

// Write builds the workbook and saves it to path.
func Write(path string, in Inputs) error {
	f, err := Build(in)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report %s: %w", path, err)
	}
	return nil
}

// Build assembles the workbook in memory.
func Build(in Inputs) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeAdherence(f, in); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeLineLoad(f, in.Schedule); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeOTIF(f, in.Schedule); err != nil {
		f.Close()
		return nil, err
	}

	// drop the default sheet so the workbook opens on adherence
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	return f, nil
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func writeAdherence(f *excelize.File, in Inputs) error {
	avg := policystatus.AverageDailyForecast(in.Forecast, in.Today, policystatus.ForecastWindowDays)
	policyBySKU := make(map[entities.SKUCode]*entities.Policy, len(in.Policies))
	for _, p := range in.Policies {
		policyBySKU[p.SKU] = p
	}

	rows := [][]interface{}{{
		"sku", "abc", "on_hand_cases", "on_order_cases", "eta_date",
		"avg_daily_fcst_7d", "dos", "min_dos", "target_dos", "max_dos",
		"status", "recommended_prod_cases",
	}}
	for _, pos := range in.Positions {
		mu, ok := avg[pos.SKU]
		if !ok {
			mu = 1.0
		}
		dos := float64(pos.OnHandCases) / mu

		abc, eta := "", ""
		var minDOS, targetDOS, maxDOS float64
		status := entities.StatusGreen
		var recommended entities.Cases
		if pol, ok := policyBySKU[pos.SKU]; ok {
			abc = pol.ABC.String()
			minDOS, targetDOS, maxDOS = pol.MinDOS, pol.TargetDOS, pol.MaxDOS
			status = policystatus.Classify(dos, pol.MinDOS, pol.MaxDOS)
			if gap := entities.Cases(math.RoundToEven(pol.TargetDOS*mu)) - pos.OnHandCases; gap > 0 {
				recommended = replenishment.RoundGap(gap, pol.MOQCases, pol.PackRounding)
			}
		}
		if pos.ETA != nil {
			eta = pos.ETA.Format("2006-01-02")
		}

		rows = append(rows, []interface{}{
			string(pos.SKU), abc, int64(pos.OnHandCases), int64(pos.OnOrderCases), eta,
			mu, dos, minDOS, targetDOS, maxDOS, status.String(), int64(recommended),
		})
	}
	return setRows(f, sheetAdherence, rows)
}

func writeLineLoad(f *excelize.File, schedule []entities.ScheduleAssignment) error {
	totals := make(map[entities.LineID]int64)
	for _, r := range schedule {
		if r.Unassigned() {
			continue
		}
		totals[r.Line] += int64(r.PlannedCases)
	}
	lines := make([]entities.LineID, 0, len(totals))
	for id := range totals {
		lines = append(lines, id)
	}
	sort.Slice(lines, func(i, j int) bool {
		if totals[lines[i]] != totals[lines[j]] {
			return totals[lines[i]] > totals[lines[j]]
		}
		return lines[i] < lines[j]
	})

	rows := [][]interface{}{{"line_id", "planned_cases"}}
	for _, id := range lines {
		rows = append(rows, []interface{}{string(id), totals[id]})
	}
	return setRows(f, sheetLineLoad, rows)
}

func writeOTIF(f *excelize.File, schedule []entities.ScheduleAssignment) error {
	totals := make(map[entities.SKUCode]int64)
	for _, r := range schedule {
		if r.UnmetCases > 0 {
			totals[r.SKU] += int64(r.UnmetCases)
		}
	}
	skus := make([]entities.SKUCode, 0, len(totals))
	for sku := range totals {
		skus = append(skus, sku)
	}
	sort.Slice(skus, func(i, j int) bool {
		if totals[skus[i]] != totals[skus[j]] {
			return totals[skus[i]] > totals[skus[j]]
		}
		return skus[i] < skus[j]
	})

	rows := [][]interface{}{{"sku", "unmet_qty_cases"}}
	for _, sku := range skus {
		rows = append(rows, []interface{}{string(sku), totals[sku]})
	}
	if len(rows) == 1 {
		rows = append(rows, []interface{}{"(none)", int64(0)})
	}
	return setRows(f, sheetOTIF, rows)
}
