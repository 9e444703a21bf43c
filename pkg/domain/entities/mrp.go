package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// SuggestedActionDefault is the advisory carried by every shortage exception.
const SuggestedActionDefault = "Expedite / Re-sequence / Substitute"

// MaterialRequirement represents the total quantity of one material needed on
// one date, aggregated across all SKUs planned for that date.
type MaterialRequirement struct {
	Date     time.Time
	Material MaterialCode
	ReqQty   decimal.Decimal
}

// ShortageException represents a material shortfall on one date bucket.
// EarliestETA is the known arrival date of inbound supply, nil when none.
type ShortageException struct {
	Date            time.Time
	Material        MaterialCode
	ReqQty          decimal.Decimal
	AvailableQty    decimal.Decimal
	ShortQty        decimal.Decimal
	EarliestETA     *time.Time
	SuggestedAction string
}
