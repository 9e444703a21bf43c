package entities

// SKUCode represents a unique finished-goods stock-keeping-unit identifier
type SKUCode string

// MaterialCode represents a raw-material identifier
type MaterialCode string

// CustomerCode represents a customer account identifier
type CustomerCode string

// OrderID represents a unique sales order identifier
type OrderID string

// LineID represents a production line identifier
type LineID string

// Cases represents an integer quantity of finished-goods cases
type Cases int64

// SKU represents catalog reference data for a finished-goods item.
// The Family string groups SKUs that share bottle size, pack count and resin;
// changeovers inside a family are cheap, across families expensive.
type SKU struct {
	Code        SKUCode
	BottleSize  string
	Pack        string
	Resin       string
	UnitCost    float64
	Family      string
	PalletUnits int // cases per pallet
}
