package entities

// Line represents a production line and its daily operating parameters.
// EligibleSKUs is the set of SKUs the line is tooled to run.
type Line struct {
	ID           LineID
	RateCPH      int     // cases per hour
	ShiftHours   float64 // scheduled hours per day
	DowntimeMin  float64 // scheduled downtime, minutes per day
	EligibleSKUs map[SKUCode]struct{}
}

// Capacity returns the line's daily capacity in whole cases:
// rate x shift hours minus rate x downtime, never negative.
func (l *Line) Capacity() Cases {
	c := float64(l.RateCPH)*l.ShiftHours - float64(l.RateCPH)*(l.DowntimeMin/60.0)
	if c < 0 {
		return 0
	}
	return Cases(c)
}

// Eligible reports whether the line can produce the given SKU.
func (l *Line) Eligible(sku SKUCode) bool {
	_, ok := l.EligibleSKUs[sku]
	return ok
}
