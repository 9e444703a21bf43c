package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/plantops/replan/pkg/domain/entities"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}

func TestLoadOrders(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, OrdersFile,
		"order_id,customer,sku,qty_cases,order_date,due_date,priority_class\n"+
			"SO-1001,CUST-07,SKU-003,240,2025-03-01,2025-03-04,HIGH\n"+
			"SO-1002,CUST-02,SKU-010,80,2025-03-01,2025-03-09,low\n")

	orders, err := NewLoader().LoadOrders(path)
	if err != nil {
		t.Fatalf("LoadOrders failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	o := orders[0]
	if o.ID != "SO-1001" || o.SKU != "SKU-003" || o.QtyCases != 240 {
		t.Errorf("unexpected first order: %+v", o)
	}
	if o.Priority != entities.PriorityHigh {
		t.Errorf("expected HIGH priority, got %v", o.Priority)
	}
	if orders[1].Priority != entities.PriorityLow {
		t.Errorf("priority_class should parse case-insensitively, got %v", orders[1].Priority)
	}
	if !o.DueDate.Equal(time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected due date: %v", o.DueDate)
	}
}

func TestLoadOrdersHeaderMismatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, OrdersFile,
		"order_id,customer,sku,qty,order_date,due_date,priority_class\n")

	_, err := NewLoader().LoadOrders(path)
	if err == nil {
		t.Fatal("expected header mismatch error, got nil")
	}
	if !strings.Contains(err.Error(), "header mismatch") {
		t.Errorf("expected header mismatch error, got: %v", err)
	}
}

func TestLoadOrdersBadRow(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, OrdersFile,
		"order_id,customer,sku,qty_cases,order_date,due_date,priority_class\n"+
			"SO-1001,CUST-07,SKU-003,240,2025-03-01,2025-03-04,HIGH\n"+
			"SO-1002,CUST-02,SKU-010,eighty,2025-03-01,2025-03-09,LOW\n")

	_, err := NewLoader().LoadOrders(path)
	if err == nil {
		t.Fatal("expected row error, got nil")
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("error should name the failing row: %v", err)
	}
}

func TestLoadOrdersMissingFile(t *testing.T) {
	_, err := NewLoader().LoadOrders(filepath.Join(t.TempDir(), OrdersFile))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoadLinesParsesEligibleSet(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, LinesFile,
		"line_id,rate_cph,shift_hours,downtime_min,eligible_skus\n"+
			"L1,1200,16,45,SKU-001|SKU-002|SKU-003\n")

	lines, err := NewLoader().LoadLines(path)
	if err != nil {
		t.Fatalf("LoadLines failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	l := lines[0]
	if !l.Eligible("SKU-002") {
		t.Error("SKU-002 should be eligible on L1")
	}
	if l.Eligible("SKU-009") {
		t.Error("SKU-009 should not be eligible on L1")
	}
	// 1200*16 - 1200*45/60 = 18300
	if got := l.Capacity(); got != 18300 {
		t.Errorf("expected capacity 18300, got %d", got)
	}
}

func TestLoadFGInventoryOptionalETA(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, FGInventoryFile,
		"sku,on_hand_cases,on_order_cases,eta_date\n"+
			"SKU-001,500,200,2025-03-05\n"+
			"SKU-002,300,0,\n")

	positions, err := NewLoader().LoadFGInventory(path)
	if err != nil {
		t.Fatalf("LoadFGInventory failed: %v", err)
	}
	if positions[0].ETA == nil {
		t.Error("expected ETA for SKU-001")
	}
	if positions[1].ETA != nil {
		t.Errorf("expected nil ETA for SKU-002, got %v", *positions[1].ETA)
	}
}

func TestLoadBOMDecimalUsage(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, BOMMaterialsFile,
		"sku,material,usage_per_case\n"+
			"SKU-001,PALLET,0.0167\n"+
			"SKU-001,PREP-500,24\n")

	lines, err := NewLoader().LoadBOM(path)
	if err != nil {
		t.Fatalf("LoadBOM failed: %v", err)
	}
	if !lines[0].UsagePerCase.Equal(decimal.RequireFromString("0.0167")) {
		t.Errorf("fractional usage should survive parsing, got %s", lines[0].UsagePerCase)
	}
}

func TestWritePlanRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, PlanFile)
	in := []entities.PlanEntry{
		{Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), SKU: "SKU-001", PlannedCases: 450},
		{Date: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), SKU: "SKU-001", PlannedCases: 350},
	}
	if err := NewWriter().WritePlan(path, in); err != nil {
		t.Fatalf("WritePlan failed: %v", err)
	}

	out, err := NewLoader().LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan failed: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d entries, got %d", len(in), len(out))
	}
	for i := range in {
		if !out[i].Date.Equal(in[i].Date) || out[i].SKU != in[i].SKU || out[i].PlannedCases != in[i].PlannedCases {
			t.Errorf("entry %d mismatch: got %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestWritePolicySnapshotColumns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, PolicySnapshotFile)
	in := []entities.PolicySnapshot{
		{SKU: "SKU-001", DOS: 3.517, MinDOS: 5, TargetDOS: 8, MaxDOS: 12, Status: entities.StatusRed},
	}
	if err := NewWriter().WritePolicySnapshot(path, in); err != nil {
		t.Fatalf("WritePolicySnapshot failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("snapshot should exist: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "sku,dos,min_dos,target_dos,max_dos,policy_status" {
		t.Errorf("unexpected snapshot header: %q", lines[0])
	}
	if len(lines) != 2 {
		t.Fatalf("expected 1 data row, got %d", len(lines)-1)
	}
	if lines[1] != "SKU-001,3.52,5,8,12,RED" {
		t.Errorf("unexpected snapshot row: %q", lines[1])
	}
}

func TestWriteExceptionsEmptyStillWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ExceptionsFile)
	if err := NewWriter().WriteExceptions(path, nil); err != nil {
		t.Fatalf("WriteExceptions failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("exception report should exist even with no shortages: %v", err)
	}
	if !strings.HasPrefix(string(data), "date,material,req_qty") {
		t.Errorf("unexpected header: %q", string(data))
	}
}
