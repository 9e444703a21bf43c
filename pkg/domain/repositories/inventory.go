package repositories

import "github.com/plantops/replan/pkg/domain/entities"

// FGInventoryRepository provides access to finished-goods stock positions
type FGInventoryRepository interface {
	GetPositions() ([]*entities.FGInventoryPosition, error)
	GetPosition(sku entities.SKUCode) (*entities.FGInventoryPosition, error)
	LoadPositions(positions []*entities.FGInventoryPosition) error
}

// MaterialInventoryRepository provides access to raw-material stock positions
type MaterialInventoryRepository interface {
	GetMaterials() ([]*entities.MaterialInventory, error)
	GetMaterial(material entities.MaterialCode) (*entities.MaterialInventory, error)
	LoadMaterials(materials []*entities.MaterialInventory) error
}
