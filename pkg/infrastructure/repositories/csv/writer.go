package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/plantops/replan/pkg/domain/entities"
)

// Writer writes the planning output tables as CSV files.
type Writer struct{}

// NewWriter creates a new CSV writer
func NewWriter() *Writer {
	return &Writer{}
}

// writeTable creates the file (and its directory) and writes header + rows.
func writeTable(filename string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", filename, err)
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", filename, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", filename, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", filename, err)
	}
	return nil
}

// WriteSchedule writes the daily production schedule table.
func (w *Writer) WriteSchedule(filename string, rows []entities.ScheduleAssignment) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Date.Format(dateLayout),
			string(r.Line),
			string(r.SKU),
			strconv.FormatInt(int64(r.PlannedCases), 10),
			strconv.FormatInt(int64(r.UnmetCases), 10),
			r.PlanSource,
			strconv.Itoa(r.ChangeoverMin),
			r.Flags,
		})
	}
	return writeTable(filename, []string{
		"date", "line_id", "sku", "planned_qty_cases", "unmet_qty_cases",
		"plan_source", "changeover_min", "flags",
	}, out)
}

// WritePlan writes the planned-production-by-SKU-and-day table.
func (w *Writer) WritePlan(filename string, entries []entities.PlanEntry) error {
	out := make([][]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, []string{
			e.Date.Format(dateLayout),
			string(e.SKU),
			strconv.FormatInt(int64(e.PlannedCases), 10),
		})
	}
	return writeTable(filename, []string{"date", "sku", "planned_qty_cases"}, out)
}

// WritePolicySnapshot writes the inventory policy adherence snapshot.
func (w *Writer) WritePolicySnapshot(filename string, rows []entities.PolicySnapshot) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			string(r.SKU),
			strconv.FormatFloat(r.DOS, 'f', 2, 64),
			strconv.FormatFloat(r.MinDOS, 'f', -1, 64),
			strconv.FormatFloat(r.TargetDOS, 'f', -1, 64),
			strconv.FormatFloat(r.MaxDOS, 'f', -1, 64),
			r.Status.String(),
		})
	}
	return writeTable(filename, []string{
		"sku", "dos", "min_dos", "target_dos", "max_dos", "policy_status",
	}, out)
}

// WriteRequirements writes the dated material requirements table.
func (w *Writer) WriteRequirements(filename string, rows []entities.MaterialRequirement) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Date.Format(dateLayout),
			string(r.Material),
			r.ReqQty.String(),
		})
	}
	return writeTable(filename, []string{"date", "material", "req_qty"}, out)
}

// WriteExceptions writes the material shortage exception report. The file is
// written even when there are no exceptions, so a clean run is distinguishable
// from a run that never reached the shortage check.
func (w *Writer) WriteExceptions(filename string, rows []entities.ShortageException) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		eta := ""
		if r.EarliestETA != nil {
			eta = r.EarliestETA.Format(dateLayout)
		}
		out = append(out, []string{
			r.Date.Format(dateLayout),
			string(r.Material),
			r.ReqQty.String(),
			r.AvailableQty.String(),
			r.ShortQty.String(),
			eta,
			r.SuggestedAction,
		})
	}
	return writeTable(filename, []string{
		"date", "material", "req_qty", "available_qty", "short_qty",
		"earliest_eta", "suggested_action",
	}, out)
}
