// Package csv loads the plant input tables and writes the planning output
// tables. File layouts follow the upstream data provider's schemas; a
// missing file or a malformed header is a fatal precondition failure.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/plantops/replan/pkg/domain/entities"
)

// Canonical file names, as produced by the data provider and consumed by the
// reporting layer.
const (
	OrdersFile            = "orders.csv"
	ForecastFile          = "forecast.csv"
	FGInventoryFile       = "fg_inventory.csv"
	PolicyFile            = "policy.csv"
	LinesFile             = "lines.csv"
	ChangeoverMatrixFile  = "changeover_matrix.csv"
	BOMMaterialsFile      = "bom_materials.csv"
	MaterialInventoryFile = "material_inventory.csv"

	ScheduleFile       = "daily_production_schedule.csv"
	PlanFile           = "plan_by_sku_day.csv"
	PolicySnapshotFile = "inventory_policy_snapshot.csv"
	RequirementsFile   = "mrp_requirements.csv"
	ExceptionsFile     = "mrp_exception_report.csv"
)

const dateLayout = "2006-01-02"

// Loader handles loading planning data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// readTable opens a CSV file, validates its header and returns the data rows.
func readTable(filename string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%s is empty: expected a header row", filename)
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s header mismatch. Expected: %v, Got: %v",
			filename, expectedHeader, records[0])
	}
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d",
				filename, i+2, len(expectedHeader), len(record))
		}
	}
	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}

// LoadOrders loads sales orders from a CSV file
func (l *Loader) LoadOrders(filename string) ([]*entities.Order, error) {
	rows, err := readTable(filename, []string{
		"order_id", "customer", "sku", "qty_cases", "order_date", "due_date", "priority_class",
	})
	if err != nil {
		return nil, err
	}

	var orders []*entities.Order
	for i, record := range rows {
		order, err := parseOrder(record)
		if err != nil {
			return nil, fmt.Errorf("orders CSV row %d: %w", i+2, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func parseOrder(record []string) (*entities.Order, error) {
	qty, err := strconv.ParseInt(record[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid qty_cases: %s", record[3])
	}
	orderDate, err := time.Parse(dateLayout, record[4])
	if err != nil {
		return nil, fmt.Errorf("invalid order_date: %s (expected YYYY-MM-DD)", record[4])
	}
	dueDate, err := time.Parse(dateLayout, record[5])
	if err != nil {
		return nil, fmt.Errorf("invalid due_date: %s (expected YYYY-MM-DD)", record[5])
	}
	priority, err := entities.ParsePriorityClass(record[6])
	if err != nil {
		return nil, err
	}

	return &entities.Order{
		ID:        entities.OrderID(record[0]),
		Customer:  entities.CustomerCode(record[1]),
		SKU:       entities.SKUCode(record[2]),
		QtyCases:  entities.Cases(qty),
		OrderDate: orderDate,
		DueDate:   dueDate,
		Priority:  priority,
	}, nil
}

// LoadForecast loads forecast points from a CSV file
func (l *Loader) LoadForecast(filename string) ([]*entities.ForecastPoint, error) {
	rows, err := readTable(filename, []string{
		"sku", "date", "forecast_cases", "baseline_method", "promo_flag",
	})
	if err != nil {
		return nil, err
	}

	var points []*entities.ForecastPoint
	for i, record := range rows {
		day, err := time.Parse(dateLayout, record[1])
		if err != nil {
			return nil, fmt.Errorf("forecast CSV row %d: invalid date: %s", i+2, record[1])
		}
		cases, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("forecast CSV row %d: invalid forecast_cases: %s", i+2, record[2])
		}
		points = append(points, &entities.ForecastPoint{
			SKU:            entities.SKUCode(record[0]),
			Date:           day,
			Cases:          entities.Cases(cases),
			BaselineMethod: record[3],
			Promo:          record[4] == "1",
		})
	}
	return points, nil
}

// LoadFGInventory loads finished-goods stock positions from a CSV file
func (l *Loader) LoadFGInventory(filename string) ([]*entities.FGInventoryPosition, error) {
	rows, err := readTable(filename, []string{
		"sku", "on_hand_cases", "on_order_cases", "eta_date",
	})
	if err != nil {
		return nil, err
	}

	var positions []*entities.FGInventoryPosition
	for i, record := range rows {
		onHand, err := strconv.ParseInt(record[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("fg_inventory CSV row %d: invalid on_hand_cases: %s", i+2, record[1])
		}
		onOrder, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("fg_inventory CSV row %d: invalid on_order_cases: %s", i+2, record[2])
		}
		eta, err := parseOptionalDate(record[3])
		if err != nil {
			return nil, fmt.Errorf("fg_inventory CSV row %d: %w", i+2, err)
		}
		positions = append(positions, &entities.FGInventoryPosition{
			SKU:          entities.SKUCode(record[0]),
			OnHandCases:  entities.Cases(onHand),
			OnOrderCases: entities.Cases(onOrder),
			ETA:          eta,
		})
	}
	return positions, nil
}

// LoadPolicies loads inventory policies from a CSV file
func (l *Loader) LoadPolicies(filename string) ([]*entities.Policy, error) {
	rows, err := readTable(filename, []string{
		"sku", "abc", "min_dos", "target_dos", "max_dos", "service_level",
		"lead_time_days", "moq_cases", "pack_rounding",
	})
	if err != nil {
		return nil, err
	}

	var policies []*entities.Policy
	for i, record := range rows {
		policy, err := parsePolicy(record)
		if err != nil {
			return nil, fmt.Errorf("policy CSV row %d: %w", i+2, err)
		}
		policies = append(policies, policy)
	}
	return policies, nil
}

func parsePolicy(record []string) (*entities.Policy, error) {
	abc, err := entities.ParseABCClass(record[1])
	if err != nil {
		return nil, err
	}
	minDOS, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid min_dos: %s", record[2])
	}
	targetDOS, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid target_dos: %s", record[3])
	}
	maxDOS, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid max_dos: %s", record[4])
	}
	serviceLevel, err := strconv.ParseFloat(record[5], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid service_level: %s", record[5])
	}
	leadTime, err := strconv.Atoi(record[6])
	if err != nil {
		return nil, fmt.Errorf("invalid lead_time_days: %s", record[6])
	}
	moq, err := strconv.ParseInt(record[7], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid moq_cases: %s", record[7])
	}
	packRounding, err := strconv.Atoi(record[8])
	if err != nil {
		return nil, fmt.Errorf("invalid pack_rounding: %s", record[8])
	}

	return &entities.Policy{
		SKU:          entities.SKUCode(record[0]),
		ABC:          abc,
		MinDOS:       minDOS,
		TargetDOS:    targetDOS,
		MaxDOS:       maxDOS,
		ServiceLevel: serviceLevel,
		LeadTimeDays: leadTime,
		MOQCases:     entities.Cases(moq),
		PackRounding: packRounding,
	}, nil
}

// LoadLines loads production lines from a CSV file. The eligible_skus column
// is pipe-delimited and becomes an explicit set.
func (l *Loader) LoadLines(filename string) ([]*entities.Line, error) {
	rows, err := readTable(filename, []string{
		"line_id", "rate_cph", "shift_hours", "downtime_min", "eligible_skus",
	})
	if err != nil {
		return nil, err
	}

	var lines []*entities.Line
	for i, record := range rows {
		rate, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("lines CSV row %d: invalid rate_cph: %s", i+2, record[1])
		}
		shiftHours, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("lines CSV row %d: invalid shift_hours: %s", i+2, record[2])
		}
		downtime, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("lines CSV row %d: invalid downtime_min: %s", i+2, record[3])
		}

		eligible := make(map[entities.SKUCode]struct{})
		for _, sku := range strings.Split(record[4], "|") {
			if sku = strings.TrimSpace(sku); sku != "" {
				eligible[entities.SKUCode(sku)] = struct{}{}
			}
		}

		lines = append(lines, &entities.Line{
			ID:           entities.LineID(record[0]),
			RateCPH:      rate,
			ShiftHours:   shiftHours,
			DowntimeMin:  downtime,
			EligibleSKUs: eligible,
		})
	}
	return lines, nil
}

// LoadChangeovers loads the changeover matrix from a CSV file
func (l *Loader) LoadChangeovers(filename string) ([]entities.ChangeoverEntry, error) {
	rows, err := readTable(filename, []string{"from_sku", "to_sku", "changeover_min"})
	if err != nil {
		return nil, err
	}

	var entries []entities.ChangeoverEntry
	for i, record := range rows {
		minutes, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, fmt.Errorf("changeover CSV row %d: invalid changeover_min: %s", i+2, record[2])
		}
		entries = append(entries, entities.ChangeoverEntry{
			From:    entities.SKUCode(record[0]),
			To:      entities.SKUCode(record[1]),
			Minutes: minutes,
		})
	}
	return entries, nil
}

// LoadBOM loads bill-of-materials lines from a CSV file
func (l *Loader) LoadBOM(filename string) ([]*entities.BOMLine, error) {
	rows, err := readTable(filename, []string{"sku", "material", "usage_per_case"})
	if err != nil {
		return nil, err
	}

	var lines []*entities.BOMLine
	for i, record := range rows {
		usage, err := decimal.NewFromString(record[2])
		if err != nil {
			return nil, fmt.Errorf("bom CSV row %d: invalid usage_per_case: %s", i+2, record[2])
		}
		lines = append(lines, &entities.BOMLine{
			SKU:          entities.SKUCode(record[0]),
			Material:     entities.MaterialCode(record[1]),
			UsagePerCase: usage,
		})
	}
	return lines, nil
}

// LoadMaterialInventory loads material stock positions from a CSV file
func (l *Loader) LoadMaterialInventory(filename string) ([]*entities.MaterialInventory, error) {
	rows, err := readTable(filename, []string{
		"material", "on_hand_qty", "on_order_qty", "eta_date",
	})
	if err != nil {
		return nil, err
	}

	var materials []*entities.MaterialInventory
	for i, record := range rows {
		onHand, err := decimal.NewFromString(record[1])
		if err != nil {
			return nil, fmt.Errorf("material_inventory CSV row %d: invalid on_hand_qty: %s", i+2, record[1])
		}
		onOrder, err := decimal.NewFromString(record[2])
		if err != nil {
			return nil, fmt.Errorf("material_inventory CSV row %d: invalid on_order_qty: %s", i+2, record[2])
		}
		eta, err := parseOptionalDate(record[3])
		if err != nil {
			return nil, fmt.Errorf("material_inventory CSV row %d: %w", i+2, err)
		}
		materials = append(materials, &entities.MaterialInventory{
			Material: entities.MaterialCode(record[0]),
			OnHand:   onHand,
			OnOrder:  onOrder,
			ETA:      eta,
		})
	}
	return materials, nil
}

// LoadSchedule loads the daily production schedule written by the scheduler.
func (l *Loader) LoadSchedule(filename string) ([]entities.ScheduleAssignment, error) {
	rows, err := readTable(filename, []string{
		"date", "line_id", "sku", "planned_qty_cases", "unmet_qty_cases",
		"plan_source", "changeover_min", "flags",
	})
	if err != nil {
		return nil, err
	}

	var schedule []entities.ScheduleAssignment
	for i, record := range rows {
		day, err := time.Parse(dateLayout, record[0])
		if err != nil {
			return nil, fmt.Errorf("schedule CSV row %d: invalid date: %s", i+2, record[0])
		}
		planned, err := strconv.ParseInt(record[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("schedule CSV row %d: invalid planned_qty_cases: %s", i+2, record[3])
		}
		unmet, err := strconv.ParseInt(record[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("schedule CSV row %d: invalid unmet_qty_cases: %s", i+2, record[4])
		}
		changeover, err := strconv.Atoi(record[6])
		if err != nil {
			return nil, fmt.Errorf("schedule CSV row %d: invalid changeover_min: %s", i+2, record[6])
		}
		schedule = append(schedule, entities.ScheduleAssignment{
			Date:          day,
			Line:          entities.LineID(record[1]),
			SKU:           entities.SKUCode(record[2]),
			PlannedCases:  entities.Cases(planned),
			UnmetCases:    entities.Cases(unmet),
			PlanSource:    record[5],
			ChangeoverMin: changeover,
			Flags:         record[7],
		})
	}
	return schedule, nil
}

// LoadPlan loads the planned-production table written by the scheduler.
func (l *Loader) LoadPlan(filename string) ([]entities.PlanEntry, error) {
	rows, err := readTable(filename, []string{"date", "sku", "planned_qty_cases"})
	if err != nil {
		return nil, err
	}

	var entries []entities.PlanEntry
	for i, record := range rows {
		day, err := time.Parse(dateLayout, record[0])
		if err != nil {
			return nil, fmt.Errorf("plan CSV row %d: invalid date: %s", i+2, record[0])
		}
		qty, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("plan CSV row %d: invalid planned_qty_cases: %s", i+2, record[2])
		}
		entries = append(entries, entities.PlanEntry{
			Date:         day,
			SKU:          entities.SKUCode(record[1]),
			PlannedCases: entities.Cases(qty),
		})
	}
	return entries, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid eta_date: %s (expected YYYY-MM-DD or empty)", s)
	}
	return &d, nil
}
