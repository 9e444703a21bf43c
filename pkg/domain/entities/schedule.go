package entities

import "time"

// UnassignedLine is the sentinel line ID emitted when a SKU's demand could
// not be placed on any line.
const UnassignedLine LineID = "UNASSIGNED"

// FlagCapacityOrEligibility marks a schedule row whose SKU had no eligible
// line with remaining capacity.
const FlagCapacityOrEligibility = "CAPACITY_OR_ELIGIBILITY"

// PlanSourceAuto marks schedule rows produced by the automatic scheduler.
const PlanSourceAuto = "AUTO"

// ScheduleAssignment represents one row of the daily production schedule.
// Rows are write-once; re-running with identical inputs reproduces them
// exactly.
type ScheduleAssignment struct {
	Date          time.Time
	Line          LineID
	SKU           SKUCode
	PlannedCases  Cases
	UnmetCases    Cases
	PlanSource    string
	ChangeoverMin int
	Flags         string
}

// Unassigned reports whether the row records demand that found no line.
func (a *ScheduleAssignment) Unassigned() bool {
	return a.Line == UnassignedLine
}

// PlanEntry represents planned production of one SKU on one day. The
// replenishment plan feeds the MRP explosion.
type PlanEntry struct {
	Date         time.Time
	SKU          SKUCode
	PlannedCases Cases
}
