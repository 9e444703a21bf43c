// Package datagen produces a deterministic bottled-water-plant dataset for
// demos and integration testing: SKU catalog, lines, changeover matrix, BOM,
// policies, inventories, forecast, orders and a shipping calendar. The same
// seed always yields the same files.
package datagen

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/plantops/replan/pkg/domain/entities"
	csvrepo "github.com/plantops/replan/pkg/infrastructure/repositories/csv"
)

// Params controls dataset shape. Zero value is not usable; start from
// DefaultParams.
type Params struct {
	Seed         int64
	StartDate    time.Time
	HorizonDays  int
	Lines        int
	Customers    int
	OrdersPerDay int
	SKUs         int
}

// DefaultParams returns the standard single-plant dataset shape.
func DefaultParams() Params {
	return Params{
		Seed:         42,
		StartDate:    time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), // a Monday
		HorizonDays:  14,
		Lines:        8,
		Customers:    8,
		OrdersPerDay: 25,
		SKUs:         12,
	}
}

// Generator builds one dataset from a seeded random stream.
type Generator struct {
	params Params
	rng    *rand.Rand
}

// New creates a generator for the given parameters.
func New(params Params) *Generator {
	return &Generator{
		params: params,
		rng:    rand.New(rand.NewSource(params.Seed)),
	}
}

// Dataset holds the generated tables in memory.
type Dataset struct {
	Catalog     []entities.SKU
	Lines       []*entities.Line
	Changeovers []entities.ChangeoverEntry
	BOM         []*entities.BOMLine
	Policies    []*entities.Policy
	FGInventory []*entities.FGInventoryPosition
	Materials   []*entities.MaterialInventory
	Forecast    []*entities.ForecastPoint
	Orders      []*entities.Order
	Calendar    []ShippingDay
	Overrides   []ForecastOverride
}

// ForecastOverride is one row of the synthetic forecast override log: a
// manual adjustment on top of the baseline, with its reason and owning team.
type ForecastOverride struct {
	SKU         entities.SKUCode
	Date        time.Time
	BaselineQty entities.Cases
	OverrideQty entities.Cases
	Reason      string
	Owner       string
}

// ShippingDay is one row of the outbound shipping calendar.
type ShippingDay struct {
	Date         time.Time
	LoadCapacity int
	DCCutoff     string
}

// intBetween returns a uniform integer in [lo, hi).
func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo)
}

func (g *Generator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}

// Generate builds the full dataset.
func (g *Generator) Generate() *Dataset {
	catalog := g.catalog()
	ds := &Dataset{Catalog: catalog}
	ds.Lines = g.lines(catalog)
	ds.Changeovers = g.changeovers(catalog)
	ds.BOM = g.bom(catalog)
	ds.Policies = g.policies(catalog)
	ds.Calendar = g.calendar()
	ds.FGInventory, ds.Materials = g.inventories(catalog, ds.BOM)
	ds.Forecast = g.forecast(catalog)
	ds.Orders = g.orders(catalog)
	ds.Overrides = g.overrides(ds.Forecast)
	return ds
}

// unitCostBySize maps bottle size to an approximate per-case unit cost.
var unitCostBySize = map[string]float64{
	"8oz": 0.45, "16.9oz": 0.55, "20oz": 0.58, "500ml": 0.60,
	"700ml": 0.68, "1L": 0.75, "1.5L": 0.95, "1gal": 1.30,
}

func (g *Generator) catalog() []entities.SKU {
	type proto struct {
		code              string
		size, pack, resin string
		unitCost          float64
	}
	base := []proto{
		{"WTR-169OZ-24PK", "16.9oz", "24pk", "PET", 0.55},
		{"WTR-500ML-24PK", "500ml", "24pk", "PET", 0.60},
		{"WTR-1L-12PK", "1L", "12pk", "PET", 0.75},
		{"WTR-1GAL-6PK", "1gal", "6pk", "HDPE", 1.30},
		{"WTR-35PK", "16.9oz", "35pk", "PET", 0.78},
		{"WTR-8OZ-48PK", "8oz", "48pk", "PET", 0.62},
	}
	seen := make(map[string]bool, g.params.SKUs)
	for _, p := range base {
		seen[p.code] = true
	}
	for len(base) < g.params.SKUs {
		size := g.pick([]string{"16.9oz", "20oz", "700ml", "1L", "1.5L"})
		pack := g.pick([]string{"12pk", "24pk", "35pk", "48pk", "6pk"})
		resin := "PET"
		if pack == "6pk" {
			resin = g.pick([]string{"HDPE", "PET"})
		}
		code := "WTR-" + strings.ToUpper(strings.ReplaceAll(size, ".", "")) + "-" + strings.ToUpper(pack)
		if seen[code] {
			// same size/pack drawn twice; disambiguate with a variant suffix
			code = fmt.Sprintf("%s-V%d", code, len(base))
		}
		seen[code] = true
		cost, ok := unitCostBySize[size]
		if !ok {
			cost = 0.70
		}
		base = append(base, proto{code, size, pack, resin, cost})
	}

	catalog := make([]entities.SKU, g.params.SKUs)
	for i, p := range base[:g.params.SKUs] {
		catalog[i] = entities.SKU{
			Code:        entities.SKUCode(p.code),
			BottleSize:  p.size,
			Pack:        p.pack,
			Resin:       p.resin,
			UnitCost:    p.unitCost,
			Family:      p.size + "|" + p.pack + "|" + p.resin,
			PalletUnits: g.intBetween(40, 120),
		}
	}
	return catalog
}

func (g *Generator) lines(catalog []entities.SKU) []*entities.Line {
	lines := make([]*entities.Line, 0, g.params.Lines)
	for i := 1; i <= g.params.Lines; i++ {
		count := g.intBetween(5, min(10, len(catalog)))
		perm := g.rng.Perm(len(catalog))
		eligible := make(map[entities.SKUCode]struct{}, count)
		for _, idx := range perm[:count] {
			eligible[catalog[idx].Code] = struct{}{}
		}
		shiftHours := []float64{16, 20, 24}[g.weightedIndex([]float64{0.35, 0.35, 0.30})]
		lines = append(lines, &entities.Line{
			ID:           entities.LineID(fmt.Sprintf("L%d", i)),
			RateCPH:      g.intBetween(350, 900),
			ShiftHours:   shiftHours,
			DowntimeMin:  float64(g.intBetween(0, 120)),
			EligibleSKUs: eligible,
		})
	}
	return lines
}

// weightedIndex draws an index with the given probability weights.
func (g *Generator) weightedIndex(weights []float64) int {
	r := g.rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return i
		}
	}
	return len(weights) - 1
}

func (g *Generator) changeovers(catalog []entities.SKU) []entities.ChangeoverEntry {
	family := make(map[entities.SKUCode]string, len(catalog))
	for _, s := range catalog {
		family[s.Code] = s.Family
	}
	var entries []entities.ChangeoverEntry
	for _, from := range catalog {
		for _, to := range catalog {
			var minutes int
			switch {
			case from.Code == to.Code:
				minutes = 0
			case family[from.Code] == family[to.Code]:
				minutes = g.intBetween(10, 25)
			default:
				minutes = g.intBetween(30, 90)
			}
			minutes += g.intBetween(-3, 4)
			if minutes < 0 {
				minutes = 0
			}
			entries = append(entries, entities.ChangeoverEntry{
				From: from.Code, To: to.Code, Minutes: minutes,
			})
		}
	}
	return entries
}

func (g *Generator) bom(catalog []entities.SKU) []*entities.BOMLine {
	var lines []*entities.BOMLine
	for _, s := range catalog {
		bottles := bottlesPerCase(s.Pack)
		perBottle := decimal.NewFromInt(int64(bottles))
		one := decimal.NewFromInt(1)
		pallet := one.DivRound(decimal.NewFromInt(int64(s.PalletUnits)), 6)
		lines = append(lines,
			&entities.BOMLine{SKU: s.Code, Material: "PREP", UsagePerCase: perBottle},
			&entities.BOMLine{SKU: s.Code, Material: "CAP", UsagePerCase: perBottle},
			&entities.BOMLine{SKU: s.Code, Material: "LABEL", UsagePerCase: perBottle},
			&entities.BOMLine{SKU: s.Code, Material: "CARTON", UsagePerCase: one},
			&entities.BOMLine{SKU: s.Code, Material: "FILM", UsagePerCase: one},
			&entities.BOMLine{SKU: s.Code, Material: "PALLET", UsagePerCase: pallet},
		)
	}
	return lines
}

func bottlesPerCase(pack string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(pack, "pk"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// dosBands maps ABC class to (min, target, max) DOS and service level.
var dosBands = map[entities.ABCClass][4]float64{
	entities.ClassA: {6, 10, 14, 0.98},
	entities.ClassB: {5, 8, 12, 0.95},
	entities.ClassC: {4, 6, 10, 0.90},
}

func (g *Generator) policies(catalog []entities.SKU) []*entities.Policy {
	// ABC by unit-cost terciles: cheapest third C, middle B, priciest A
	byCost := make([]entities.SKU, len(catalog))
	copy(byCost, catalog)
	for i := 1; i < len(byCost); i++ {
		for j := i; j > 0 && byCost[j].UnitCost < byCost[j-1].UnitCost; j-- {
			byCost[j], byCost[j-1] = byCost[j-1], byCost[j]
		}
	}
	class := make(map[entities.SKUCode]entities.ABCClass, len(byCost))
	tercile := len(byCost) / 3
	for i, s := range byCost {
		switch {
		case i < tercile:
			class[s.Code] = entities.ClassC
		case i < 2*tercile:
			class[s.Code] = entities.ClassB
		default:
			class[s.Code] = entities.ClassA
		}
	}

	policies := make([]*entities.Policy, 0, len(catalog))
	for _, s := range catalog {
		abc := class[s.Code]
		band := dosBands[abc]
		policies = append(policies, &entities.Policy{
			SKU:          s.Code,
			ABC:          abc,
			MinDOS:       band[0],
			TargetDOS:    band[1],
			MaxDOS:       band[2],
			ServiceLevel: band[3],
			LeadTimeDays: g.intBetween(3, 10),
			MOQCases:     entities.Cases(g.intBetween(200, 900)),
			PackRounding: g.intBetween(20, 60),
		})
	}
	return policies
}

func (g *Generator) calendar() []ShippingDay {
	days := make([]ShippingDay, 0, g.params.HorizonDays)
	for d := 0; d < g.params.HorizonDays; d++ {
		day := g.params.StartDate.AddDate(0, 0, d)
		var loads int
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			loads = g.intBetween(8, 14)
		} else {
			loads = g.intBetween(16, 26)
		}
		days = append(days, ShippingDay{Date: day, LoadCapacity: loads, DCCutoff: "16:00"})
	}
	return days
}

func (g *Generator) inventories(catalog []entities.SKU, bom []*entities.BOMLine) ([]*entities.FGInventoryPosition, []*entities.MaterialInventory) {
	today := g.params.StartDate

	fg := make([]*entities.FGInventoryPosition, 0, len(catalog))
	for _, s := range catalog {
		onOrder := g.intBetween(0, 1800)
		var eta *time.Time
		if onOrder > 0 {
			d := today.AddDate(0, 0, g.intBetween(1, 8))
			eta = &d
		}
		fg = append(fg, &entities.FGInventoryPosition{
			SKU:          s.Code,
			OnHandCases:  entities.Cases(g.intBetween(300, 2500)),
			OnOrderCases: entities.Cases(onOrder),
			ETA:          eta,
		})
	}

	seen := make(map[entities.MaterialCode]bool)
	var materialCodes []entities.MaterialCode
	for _, line := range bom {
		if !seen[line.Material] {
			seen[line.Material] = true
			materialCodes = append(materialCodes, line.Material)
		}
	}
	// sort for stable output
	for i := 1; i < len(materialCodes); i++ {
		for j := i; j > 0 && materialCodes[j] < materialCodes[j-1]; j-- {
			materialCodes[j], materialCodes[j-1] = materialCodes[j-1], materialCodes[j]
		}
	}

	materials := make([]*entities.MaterialInventory, 0, len(materialCodes))
	for _, m := range materialCodes {
		onOrder := g.intBetween(0, 120000)
		var eta *time.Time
		if onOrder > 0 {
			d := today.AddDate(0, 0, g.intBetween(2, 10))
			eta = &d
		}
		materials = append(materials, &entities.MaterialInventory{
			Material: m,
			OnHand:   decimal.NewFromInt(int64(g.intBetween(20000, 160000))),
			OnOrder:  decimal.NewFromInt(int64(onOrder)),
			ETA:      eta,
		})
	}
	return fg, materials
}

func (g *Generator) forecast(catalog []entities.SKU) []*entities.ForecastPoint {
	var points []*entities.ForecastPoint
	for _, s := range catalog {
		base := float64(g.intBetween(300, 1200))
		for d := 0; d < g.params.HorizonDays; d++ {
			day := g.params.StartDate.AddDate(0, 0, d)
			factor := 1.1
			if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
				factor = 0.8
			}
			promo := g.rng.Float64() < 0.08
			mean := base * factor
			if promo {
				mean *= 1.25
			}
			qty := g.rng.NormFloat64()*base*0.18 + mean
			if qty < 0 {
				qty = 0
			}
			points = append(points, &entities.ForecastPoint{
				SKU:            s.Code,
				Date:           day,
				Cases:          entities.Cases(int64(qty)),
				BaselineMethod: "baseline",
				Promo:          promo,
			})
		}
	}
	return points
}

func (g *Generator) orders(catalog []entities.SKU) []*entities.Order {
	customers := make([]entities.CustomerCode, g.params.Customers)
	for i := range customers {
		customers[i] = entities.CustomerCode(fmt.Sprintf("CUST-%02d", i+1))
	}
	// due-date offsets, weighted toward the near term
	offsets := []int{0, 1, 1, 2, 2, 3, 4, 5}

	var orders []*entities.Order
	oid := 100000
	for d := 0; d < g.params.HorizonDays; d++ {
		day := g.params.StartDate.AddDate(0, 0, d)
		for i := 0; i < g.params.OrdersPerDay; i++ {
			oid++
			sku := catalog[g.rng.Intn(len(catalog))].Code
			customer := customers[g.rng.Intn(len(customers))]
			qty := g.rng.NormFloat64()*140 + 200
			if qty < 20 {
				qty = 20
			}
			if qty > 1200 {
				qty = 1200
			}
			due := day.AddDate(0, 0, offsets[g.rng.Intn(len(offsets))])

			priority := entities.PriorityLow
			keyAccount := customer == "CUST-01" || customer == "CUST-02"
			if keyAccount && g.rng.Float64() < 0.6 {
				priority = entities.PriorityHigh
			} else if g.rng.Float64() < 0.5 {
				priority = entities.PriorityMed
			}

			orders = append(orders, &entities.Order{
				ID:        entities.OrderID(fmt.Sprintf("SO%d", oid)),
				Customer:  customer,
				SKU:       sku,
				QtyCases:  entities.Cases(int64(qty)),
				OrderDate: day,
				DueDate:   due,
				Priority:  priority,
			})
		}
	}
	return orders
}

// overrides samples a handful of forecast points and applies a manual
// adjustment of roughly -15% to +35%, tagged with a reason and owner.
func (g *Generator) overrides(forecast []*entities.ForecastPoint) []ForecastOverride {
	reasons := []string{"Customer add-on", "Promo lift", "Trend break", "Ops constraint"}
	owners := []string{"CS", "Sales", "Planning"}

	n := 18
	if n > len(forecast) {
		n = len(forecast)
	}
	perm := g.rng.Perm(len(forecast))

	out := make([]ForecastOverride, 0, n)
	for _, idx := range perm[:n] {
		fp := forecast[idx]
		mult := 0.85 + g.rng.Float64()*0.50
		out = append(out, ForecastOverride{
			SKU:         fp.SKU,
			Date:        fp.Date,
			BaselineQty: fp.Cases,
			OverrideQty: entities.Cases(int64(float64(fp.Cases)*mult + 0.5)),
			Reason:      g.pick(reasons),
			Owner:       g.pick(owners),
		})
	}
	return out
}

// WriteCSV writes the dataset's input tables under dir with the canonical
// file names, plus sku_catalog.csv and shipping_calendar.csv for reference.
func (d *Dataset) WriteCSV(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	write := func(name string, header []string, rows [][]string) error {
		file, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", name, err)
		}
		defer file.Close()
		w := csv.NewWriter(file)
		if err := w.Write(header); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		if err := w.WriteAll(rows); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		return nil
	}

	const dateLayout = "2006-01-02"
	optDate := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format(dateLayout)
	}

	var rows [][]string
	for _, s := range d.Catalog {
		rows = append(rows, []string{
			string(s.Code), s.BottleSize, s.Pack, s.Resin,
			strconv.FormatFloat(s.UnitCost, 'f', 2, 64),
			s.Family, strconv.Itoa(s.PalletUnits),
		})
	}
	if err := write("sku_catalog.csv",
		[]string{"sku", "bottle_size", "pack", "resin", "unit_cost", "family", "pallet_units"}, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, l := range d.Lines {
		var eligible []string
		for _, s := range d.Catalog {
			if l.Eligible(s.Code) {
				eligible = append(eligible, string(s.Code))
			}
		}
		rows = append(rows, []string{
			string(l.ID), strconv.Itoa(l.RateCPH),
			strconv.FormatFloat(l.ShiftHours, 'f', -1, 64),
			strconv.FormatFloat(l.DowntimeMin, 'f', -1, 64),
			strings.Join(eligible, "|"),
		})
	}
	if err := write(csvrepo.LinesFile,
		[]string{"line_id", "rate_cph", "shift_hours", "downtime_min", "eligible_skus"}, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, e := range d.Changeovers {
		rows = append(rows, []string{string(e.From), string(e.To), strconv.Itoa(e.Minutes)})
	}
	if err := write(csvrepo.ChangeoverMatrixFile,
		[]string{"from_sku", "to_sku", "changeover_min"}, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, b := range d.BOM {
		rows = append(rows, []string{string(b.SKU), string(b.Material), b.UsagePerCase.String()})
	}
	if err := write(csvrepo.BOMMaterialsFile,
		[]string{"sku", "material", "usage_per_case"}, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, p := range d.Policies {
		rows = append(rows, []string{
			string(p.SKU), p.ABC.String(),
			strconv.FormatFloat(p.MinDOS, 'f', -1, 64),
			strconv.FormatFloat(p.TargetDOS, 'f', -1, 64),
			strconv.FormatFloat(p.MaxDOS, 'f', -1, 64),
			strconv.FormatFloat(p.ServiceLevel, 'f', 2, 64),
			strconv.Itoa(p.LeadTimeDays),
			strconv.FormatInt(int64(p.MOQCases), 10),
			strconv.Itoa(p.PackRounding),
		})
	}
	if err := write(csvrepo.PolicyFile, []string{
		"sku", "abc", "min_dos", "target_dos", "max_dos", "service_level",
		"lead_time_days", "moq_cases", "pack_rounding",
	}, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, day := range d.Calendar {
		rows = append(rows, []string{
			day.Date.Format(dateLayout), strconv.Itoa(day.LoadCapacity), day.DCCutoff,
		})
	}
	if err := write("shipping_calendar.csv",
		[]string{"date", "load_capacity", "dc_cutoff_local"}, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, p := range d.FGInventory {
		rows = append(rows, []string{
			string(p.SKU),
			strconv.FormatInt(int64(p.OnHandCases), 10),
			strconv.FormatInt(int64(p.OnOrderCases), 10),
			optDate(p.ETA),
		})
	}
	if err := write(csvrepo.FGInventoryFile,
		[]string{"sku", "on_hand_cases", "on_order_cases", "eta_date"}, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, m := range d.Materials {
		rows = append(rows, []string{
			string(m.Material), m.OnHand.String(), m.OnOrder.String(), optDate(m.ETA),
		})
	}
	if err := write(csvrepo.MaterialInventoryFile,
		[]string{"material", "on_hand_qty", "on_order_qty", "eta_date"}, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, f := range d.Forecast {
		promo := "0"
		if f.Promo {
			promo = "1"
		}
		rows = append(rows, []string{
			string(f.SKU), f.Date.Format(dateLayout),
			strconv.FormatInt(int64(f.Cases), 10), f.BaselineMethod, promo,
		})
	}
	if err := write(csvrepo.ForecastFile,
		[]string{"sku", "date", "forecast_cases", "baseline_method", "promo_flag"}, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, o := range d.Overrides {
		rows = append(rows, []string{
			string(o.SKU), o.Date.Format(dateLayout),
			strconv.FormatInt(int64(o.BaselineQty), 10),
			strconv.FormatInt(int64(o.OverrideQty), 10),
			o.Reason, o.Owner,
		})
	}
	if err := write("forecast_override_log.csv",
		[]string{"sku", "date", "baseline_fcst", "override_fcst", "reason", "owner"}, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, o := range d.Orders {
		rows = append(rows, []string{
			string(o.ID), string(o.Customer), string(o.SKU),
			strconv.FormatInt(int64(o.QtyCases), 10),
			o.OrderDate.Format(dateLayout), o.DueDate.Format(dateLayout),
			o.Priority.String(),
		})
	}
	return write(csvrepo.OrdersFile, []string{
		"order_id", "customer", "sku", "qty_cases", "order_date", "due_date", "priority_class",
	}, rows)
}
