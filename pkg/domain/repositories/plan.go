package repositories

import "github.com/plantops/replan/pkg/domain/entities"

// PlanRepository provides access to the planned-production-by-SKU-and-day
// table produced by the scheduler and consumed by the MRP explosion.
type PlanRepository interface {
	GetPlan() ([]entities.PlanEntry, error)
	LoadPlan(entries []entities.PlanEntry) error
}
