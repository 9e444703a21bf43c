package memory

import (
	"github.com/plantops/replan/pkg/domain/entities"
	"github.com/plantops/replan/pkg/domain/repositories"
)

// PlanRepository provides in-memory storage of the production plan
type PlanRepository struct {
	entries []entities.PlanEntry
}

// NewPlanRepository creates a new in-memory plan repository
func NewPlanRepository() *PlanRepository {
	return &PlanRepository{}
}

// Verify interface compliance
var _ repositories.PlanRepository = (*PlanRepository)(nil)

// LoadPlan loads plan entries into the repository
func (r *PlanRepository) LoadPlan(entries []entities.PlanEntry) error {
	r.entries = append(r.entries, entries...)
	return nil
}

// GetPlan returns all plan entries in load order
func (r *PlanRepository) GetPlan() ([]entities.PlanEntry, error) {
	return r.entries, nil
}
