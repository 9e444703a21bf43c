// Package mrp explodes planned finished-goods production through the bill of
// materials into dated material requirements and flags shortages against the
// material inventory.
package mrp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/plantops/replan/pkg/domain/entities"
	"github.com/plantops/replan/pkg/domain/repositories"
)

// ErrPlanMissing signals that the plan artifact was never produced. The plan
// file is a hard precondition for the MRP stage: its absence aborts the run
// before any output is written. A present plan with zero entries is a valid
// input and yields empty requirement and exception tables.
var ErrPlanMissing = errors.New("production plan is missing: run the scheduler first")

// Result holds the outputs of one MRP run.
type Result struct {
	Requirements []entities.MaterialRequirement
	Exceptions   []entities.ShortageException
}

// Service runs the MRP explosion and shortage check.
type Service struct{}

// NewService creates an MRP service.
func NewService() *Service {
	return &Service{}
}

// Run loads the plan, BOM and material inventory and computes requirements
// and exceptions. Material shortfalls are data, not errors; the only error
// cases are missing prerequisites and repository failures.
func (s *Service) Run(
	ctx context.Context,
	planRepo repositories.PlanRepository,
	bomRepo repositories.BOMRepository,
	materialRepo repositories.MaterialInventoryRepository,
) (*Result, error) {
	plan, err := planRepo.GetPlan()
	if err != nil {
		return nil, fmt.Errorf("failed to load production plan: %w", err)
	}
	bom, err := bomRepo.GetLines()
	if err != nil {
		return nil, fmt.Errorf("failed to load BOM: %w", err)
	}
	materials, err := materialRepo.GetMaterials()
	if err != nil {
		return nil, fmt.Errorf("failed to load material inventory: %w", err)
	}

	requirements := Explode(plan, bom)
	exceptions := DetectShortages(requirements, materials)
	return &Result{Requirements: requirements, Exceptions: exceptions}, nil
}

type requirementKey struct {
	date     time.Time
	material entities.MaterialCode
}

// Explode converts planned production into material requirements aggregated
// by date and material: planned cases times usage per case, summed across
// SKUs. A SKU with no BOM mapping contributes nothing; that is a data gap,
// not an error. Output is ordered by date, then material.
func Explode(plan []entities.PlanEntry, bom []*entities.BOMLine) []entities.MaterialRequirement {
	bomBySKU := make(map[entities.SKUCode][]*entities.BOMLine)
	for _, line := range bom {
		bomBySKU[line.SKU] = append(bomBySKU[line.SKU], line)
	}

	totals := make(map[requirementKey]decimal.Decimal)
	for _, entry := range plan {
		for _, line := range bomBySKU[entry.SKU] {
			qty := decimal.NewFromInt(int64(entry.PlannedCases)).Mul(line.UsagePerCase)
			key := requirementKey{date: entry.Date, material: line.Material}
			totals[key] = totals[key].Add(qty)
		}
	}

	requirements := make([]entities.MaterialRequirement, 0, len(totals))
	for key, qty := range totals {
		requirements = append(requirements, entities.MaterialRequirement{
			Date:     key.date,
			Material: key.material,
			ReqQty:   qty,
		})
	}
	sort.Slice(requirements, func(i, j int) bool {
		if !requirements[i].Date.Equal(requirements[j].Date) {
			return requirements[i].Date.Before(requirements[j].Date)
		}
		return requirements[i].Material < requirements[j].Material
	})
	return requirements
}

// DetectShortages compares requirements against date-aware availability.
// Each date bucket is checked independently: available is on-hand plus any
// on-order quantity whose arrival date is on or before the bucket date.
// On-hand is not depleted across buckets. Rows that are not short are
// dropped; surviving rows carry the earliest known arrival date and a fixed
// advisory action.
func DetectShortages(
	requirements []entities.MaterialRequirement,
	materials []*entities.MaterialInventory,
) []entities.ShortageException {
	byMaterial := make(map[entities.MaterialCode]*entities.MaterialInventory, len(materials))
	for _, m := range materials {
		byMaterial[m.Material] = m
	}

	var exceptions []entities.ShortageException
	for _, req := range requirements {
		available := decimal.Zero
		var eta *time.Time
		if inv, ok := byMaterial[req.Material]; ok {
			available = inv.AvailableOn(req.Date)
			eta = inv.ETA
		}
		short := req.ReqQty.Sub(available)
		if short.Sign() <= 0 {
			continue
		}
		exceptions = append(exceptions, entities.ShortageException{
			Date:            req.Date,
			Material:        req.Material,
			ReqQty:          req.ReqQty,
			AvailableQty:    available,
			ShortQty:        short,
			EarliestETA:     eta,
			SuggestedAction: entities.SuggestedActionDefault,
		})
	}
	return exceptions
}
