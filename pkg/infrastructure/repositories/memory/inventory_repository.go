package memory

import (
	"fmt"

	"github.com/plantops/replan/pkg/domain/entities"
	"github.com/plantops/replan/pkg/domain/repositories"
)

// FGInventoryRepository provides in-memory finished-goods inventory storage
type FGInventoryRepository struct {
	positions []*entities.FGInventoryPosition
	index     map[entities.SKUCode]int
}

// NewFGInventoryRepository creates a new in-memory FG inventory repository
func NewFGInventoryRepository() *FGInventoryRepository {
	return &FGInventoryRepository{index: make(map[entities.SKUCode]int)}
}

// Verify interface compliance
var _ repositories.FGInventoryRepository = (*FGInventoryRepository)(nil)

// LoadPositions loads stock positions into the repository
func (r *FGInventoryRepository) LoadPositions(positions []*entities.FGInventoryPosition) error {
	for _, p := range positions {
		r.index[p.SKU] = len(r.positions)
		r.positions = append(r.positions, p)
	}
	return nil
}

// GetPositions returns all positions in load order
func (r *FGInventoryRepository) GetPositions() ([]*entities.FGInventoryPosition, error) {
	return r.positions, nil
}

// GetPosition returns the stock position for one SKU
func (r *FGInventoryRepository) GetPosition(sku entities.SKUCode) (*entities.FGInventoryPosition, error) {
	i, ok := r.index[sku]
	if !ok {
		return nil, fmt.Errorf("no FG inventory position for SKU %s", sku)
	}
	return r.positions[i], nil
}

// MaterialInventoryRepository provides in-memory material inventory storage
type MaterialInventoryRepository struct {
	materials []*entities.MaterialInventory
	index     map[entities.MaterialCode]int
}

// NewMaterialInventoryRepository creates a new in-memory material inventory repository
func NewMaterialInventoryRepository() *MaterialInventoryRepository {
	return &MaterialInventoryRepository{index: make(map[entities.MaterialCode]int)}
}

// Verify interface compliance
var _ repositories.MaterialInventoryRepository = (*MaterialInventoryRepository)(nil)

// LoadMaterials loads material positions into the repository
func (r *MaterialInventoryRepository) LoadMaterials(materials []*entities.MaterialInventory) error {
	for _, m := range materials {
		r.index[m.Material] = len(r.materials)
		r.materials = append(r.materials, m)
	}
	return nil
}

// GetMaterials returns all material positions in load order
func (r *MaterialInventoryRepository) GetMaterials() ([]*entities.MaterialInventory, error) {
	return r.materials, nil
}

// GetMaterial returns the stock position for one material
func (r *MaterialInventoryRepository) GetMaterial(material entities.MaterialCode) (*entities.MaterialInventory, error) {
	i, ok := r.index[material]
	if !ok {
		return nil, fmt.Errorf("no inventory position for material %s", material)
	}
	return r.materials[i], nil
}
