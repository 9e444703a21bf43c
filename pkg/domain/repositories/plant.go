package repositories

import "github.com/plantops/replan/pkg/domain/entities"

// LineRepository provides access to production line master data
type LineRepository interface {
	GetLines() ([]*entities.Line, error)
	LoadLines(lines []*entities.Line) error
}

// ChangeoverRepository provides access to the SKU changeover matrix
type ChangeoverRepository interface {
	GetMatrix() (*entities.ChangeoverMatrix, error)
	LoadEntries(entries []entities.ChangeoverEntry) error
}

// PolicyRepository provides access to inventory policy parameters
type PolicyRepository interface {
	GetPolicies() ([]*entities.Policy, error)
	GetPolicy(sku entities.SKUCode) (*entities.Policy, error)
	LoadPolicies(policies []*entities.Policy) error
}

// BOMRepository provides access to bill-of-materials data
type BOMRepository interface {
	GetLines() ([]*entities.BOMLine, error)
	GetLinesForSKU(sku entities.SKUCode) ([]*entities.BOMLine, error)
	LoadLines(lines []*entities.BOMLine) error
}
