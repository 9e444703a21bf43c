package entities

import "time"

// ForecastPoint represents one day of demand forecast for a SKU.
type ForecastPoint struct {
	SKU            SKUCode
	Date           time.Time
	Cases          Cases
	BaselineMethod string
	Promo          bool
}
