package entities

import "github.com/shopspring/decimal"

// BOMLine represents one bill-of-materials entry: the quantity of a material
// consumed per case of a finished SKU. Usage is decimal because pallet and
// film usage are fractions of a unit per case.
type BOMLine struct {
	SKU          SKUCode
	Material     MaterialCode
	UsagePerCase decimal.Decimal
}
