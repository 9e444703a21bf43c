package memory

import (
	"fmt"

	"github.com/plantops/replan/pkg/domain/entities"
	"github.com/plantops/replan/pkg/domain/repositories"
)

// LineRepository provides in-memory production line storage
type LineRepository struct {
	lines []*entities.Line
}

// NewLineRepository creates a new in-memory line repository
func NewLineRepository() *LineRepository {
	return &LineRepository{}
}

// Verify interface compliance
var _ repositories.LineRepository = (*LineRepository)(nil)

// LoadLines loads lines into the repository. Load order is the line
// enumeration order used for scheduling tie-breaks.
func (r *LineRepository) LoadLines(lines []*entities.Line) error {
	r.lines = append(r.lines, lines...)
	return nil
}

// GetLines returns all lines in load order
func (r *LineRepository) GetLines() ([]*entities.Line, error) {
	return r.lines, nil
}

// ChangeoverRepository provides in-memory changeover matrix storage
type ChangeoverRepository struct {
	entries    []entities.ChangeoverEntry
	defaultMin int
}

// NewChangeoverRepository creates a new in-memory changeover repository
func NewChangeoverRepository() *ChangeoverRepository {
	return NewChangeoverRepositoryWithDefault(entities.DefaultChangeoverMinutes)
}

// NewChangeoverRepositoryWithDefault creates a repository whose matrix uses a
// custom missing-pair default.
func NewChangeoverRepositoryWithDefault(defaultMin int) *ChangeoverRepository {
	return &ChangeoverRepository{defaultMin: defaultMin}
}

// Verify interface compliance
var _ repositories.ChangeoverRepository = (*ChangeoverRepository)(nil)

// LoadEntries loads changeover entries into the repository
func (r *ChangeoverRepository) LoadEntries(entries []entities.ChangeoverEntry) error {
	r.entries = append(r.entries, entries...)
	return nil
}

// GetMatrix builds the lookup matrix from the loaded entries
func (r *ChangeoverRepository) GetMatrix() (*entities.ChangeoverMatrix, error) {
	return entities.NewChangeoverMatrixWithDefault(r.entries, r.defaultMin), nil
}

// PolicyRepository provides in-memory inventory policy storage
type PolicyRepository struct {
	policies []*entities.Policy
	index    map[entities.SKUCode]int
}

// NewPolicyRepository creates a new in-memory policy repository
func NewPolicyRepository() *PolicyRepository {
	return &PolicyRepository{index: make(map[entities.SKUCode]int)}
}

// Verify interface compliance
var _ repositories.PolicyRepository = (*PolicyRepository)(nil)

// LoadPolicies loads policies into the repository
func (r *PolicyRepository) LoadPolicies(policies []*entities.Policy) error {
	for _, p := range policies {
		r.index[p.SKU] = len(r.policies)
		r.policies = append(r.policies, p)
	}
	return nil
}

// GetPolicies returns all policies in load order
func (r *PolicyRepository) GetPolicies() ([]*entities.Policy, error) {
	return r.policies, nil
}

// GetPolicy returns the policy for one SKU
func (r *PolicyRepository) GetPolicy(sku entities.SKUCode) (*entities.Policy, error) {
	i, ok := r.index[sku]
	if !ok {
		return nil, fmt.Errorf("no policy for SKU %s", sku)
	}
	return r.policies[i], nil
}

// BOMRepository provides in-memory bill-of-materials storage
type BOMRepository struct {
	lines []*entities.BOMLine
	bySKU map[entities.SKUCode][]*entities.BOMLine
}

// NewBOMRepository creates a new in-memory BOM repository
func NewBOMRepository() *BOMRepository {
	return &BOMRepository{bySKU: make(map[entities.SKUCode][]*entities.BOMLine)}
}

// Verify interface compliance
var _ repositories.BOMRepository = (*BOMRepository)(nil)

// LoadLines loads BOM lines into the repository
func (r *BOMRepository) LoadLines(lines []*entities.BOMLine) error {
	for _, l := range lines {
		r.lines = append(r.lines, l)
		r.bySKU[l.SKU] = append(r.bySKU[l.SKU], l)
	}
	return nil
}

// GetLines returns all BOM lines in load order
func (r *BOMRepository) GetLines() ([]*entities.BOMLine, error) {
	return r.lines, nil
}

// GetLinesForSKU returns the BOM lines of one SKU. A SKU without a BOM
// returns an empty slice, not an error.
func (r *BOMRepository) GetLinesForSKU(sku entities.SKUCode) ([]*entities.BOMLine, error) {
	return r.bySKU[sku], nil
}
