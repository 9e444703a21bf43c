package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// FGInventoryPosition represents the finished-goods stock position of a SKU
// at the start of a planning run. ETA is the expected arrival date of the
// on-order quantity; nil when nothing is inbound.
type FGInventoryPosition struct {
	SKU          SKUCode
	OnHandCases  Cases
	OnOrderCases Cases
	ETA          *time.Time
}

// MaterialInventory represents the raw-material stock position of one
// material. Quantities are decimal because usage rates are fractional
// (pallets per case, film per case).
type MaterialInventory struct {
	Material MaterialCode
	OnHand   decimal.Decimal
	OnOrder  decimal.Decimal
	ETA      *time.Time
}

// AvailableOn returns the quantity usable on the given bucket date: on-hand
// plus the on-order quantity when its arrival date is on or before the bucket
// date. On-hand is a static snapshot for every date in the run; it is not
// depleted by earlier buckets.
func (m *MaterialInventory) AvailableOn(date time.Time) decimal.Decimal {
	if m.ETA != nil && !m.ETA.After(date) {
		return m.OnHand.Add(m.OnOrder)
	}
	return m.OnHand
}
