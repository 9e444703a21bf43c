package datagen

import (
	"path/filepath"
	"testing"

	"github.com/plantops/replan/pkg/domain/entities"
	csvrepo "github.com/plantops/replan/pkg/infrastructure/repositories/csv"
)

func TestGenerateIsDeterministic(t *testing.T) {
	a := New(DefaultParams()).Generate()
	b := New(DefaultParams()).Generate()

	if len(a.Orders) != len(b.Orders) {
		t.Fatalf("order counts differ: %d vs %d", len(a.Orders), len(b.Orders))
	}
	for i := range a.Orders {
		x, y := a.Orders[i], b.Orders[i]
		if x.ID != y.ID || x.SKU != y.SKU || x.QtyCases != y.QtyCases || x.Priority != y.Priority {
			t.Fatalf("order %d differs between same-seed runs: %+v vs %+v", i, x, y)
		}
	}
	for i := range a.Changeovers {
		if a.Changeovers[i] != b.Changeovers[i] {
			t.Fatalf("changeover %d differs between same-seed runs", i)
		}
	}
	if len(a.Overrides) != len(b.Overrides) {
		t.Fatalf("override counts differ: %d vs %d", len(a.Overrides), len(b.Overrides))
	}
	for i := range a.Overrides {
		if a.Overrides[i] != b.Overrides[i] {
			t.Fatalf("override %d differs between same-seed runs", i)
		}
	}
}

func TestGenerateShape(t *testing.T) {
	params := DefaultParams()
	ds := New(params).Generate()

	if len(ds.Catalog) != params.SKUs {
		t.Errorf("expected %d SKUs, got %d", params.SKUs, len(ds.Catalog))
	}
	if len(ds.Lines) != params.Lines {
		t.Errorf("expected %d lines, got %d", params.Lines, len(ds.Lines))
	}
	if want := params.SKUs * params.SKUs; len(ds.Changeovers) != want {
		t.Errorf("expected full %d-entry changeover matrix, got %d", want, len(ds.Changeovers))
	}
	if want := params.HorizonDays * params.OrdersPerDay; len(ds.Orders) != want {
		t.Errorf("expected %d orders, got %d", want, len(ds.Orders))
	}
	if want := params.SKUs * 6; len(ds.BOM) != want {
		t.Errorf("expected %d BOM lines, got %d", want, len(ds.BOM))
	}

	seen := make(map[entities.SKUCode]bool)
	for _, s := range ds.Catalog {
		if seen[s.Code] {
			t.Errorf("duplicate SKU code %s in catalog", s.Code)
		}
		seen[s.Code] = true
	}

	for _, e := range ds.Changeovers {
		if e.From == e.To && e.Minutes != 0 {
			t.Errorf("diagonal changeover %s should be 0, got %d", e.From, e.Minutes)
		}
		if e.Minutes < 0 {
			t.Errorf("negative changeover %s->%s: %d", e.From, e.To, e.Minutes)
		}
	}

	if len(ds.Overrides) == 0 || len(ds.Overrides) > 18 {
		t.Errorf("expected between 1 and 18 forecast overrides, got %d", len(ds.Overrides))
	}
	for _, o := range ds.Overrides {
		if o.OverrideQty < 0 || o.Reason == "" || o.Owner == "" {
			t.Errorf("malformed forecast override: %+v", o)
		}
	}

	for _, l := range ds.Lines {
		if len(l.EligibleSKUs) < 5 {
			t.Errorf("line %s has only %d eligible SKUs", l.ID, len(l.EligibleSKUs))
		}
		if l.Capacity() <= 0 {
			t.Errorf("line %s has non-positive capacity", l.ID)
		}
	}
}

func TestWriteCSVLoadsBackThroughLoader(t *testing.T) {
	dir := t.TempDir()
	ds := New(DefaultParams()).Generate()
	if err := ds.WriteCSV(dir); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	loader := csvrepo.NewLoader()
	orders, err := loader.LoadOrders(filepath.Join(dir, csvrepo.OrdersFile))
	if err != nil {
		t.Fatalf("generated orders should load: %v", err)
	}
	if len(orders) != len(ds.Orders) {
		t.Errorf("expected %d orders after reload, got %d", len(ds.Orders), len(orders))
	}

	lines, err := loader.LoadLines(filepath.Join(dir, csvrepo.LinesFile))
	if err != nil {
		t.Fatalf("generated lines should load: %v", err)
	}
	for i, l := range lines {
		if len(l.EligibleSKUs) != len(ds.Lines[i].EligibleSKUs) {
			t.Errorf("line %s eligible set did not survive the round trip", l.ID)
		}
	}

	if _, err := loader.LoadForecast(filepath.Join(dir, csvrepo.ForecastFile)); err != nil {
		t.Errorf("generated forecast should load: %v", err)
	}
	if _, err := loader.LoadPolicies(filepath.Join(dir, csvrepo.PolicyFile)); err != nil {
		t.Errorf("generated policies should load: %v", err)
	}
	if _, err := loader.LoadChangeovers(filepath.Join(dir, csvrepo.ChangeoverMatrixFile)); err != nil {
		t.Errorf("generated changeover matrix should load: %v", err)
	}
	if _, err := loader.LoadBOM(filepath.Join(dir, csvrepo.BOMMaterialsFile)); err != nil {
		t.Errorf("generated BOM should load: %v", err)
	}
	if _, err := loader.LoadFGInventory(filepath.Join(dir, csvrepo.FGInventoryFile)); err != nil {
		t.Errorf("generated FG inventory should load: %v", err)
	}
	if _, err := loader.LoadMaterialInventory(filepath.Join(dir, csvrepo.MaterialInventoryFile)); err != nil {
		t.Errorf("generated material inventory should load: %v", err)
	}
}
