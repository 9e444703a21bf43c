package entities

import (
	"fmt"
	"strings"
	"time"
)

// PriorityClass represents the commercial priority of a sales order
type PriorityClass int

const (
	PriorityLow PriorityClass = iota
	PriorityMed
	PriorityHigh
)

func (p PriorityClass) String() string {
	switch p {
	case PriorityHigh:
		return "HIGH"
	case PriorityMed:
		return "MED"
	case PriorityLow:
		return "LOW"
	default:
		return "Unknown"
	}
}

// ParsePriorityClass parses the HIGH/MED/LOW wire representation.
func ParsePriorityClass(s string) (PriorityClass, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HIGH":
		return PriorityHigh, nil
	case "MED":
		return PriorityMed, nil
	case "LOW":
		return PriorityLow, nil
	default:
		return PriorityLow, fmt.Errorf("invalid priority_class: %s (expected: HIGH, MED, or LOW)", s)
	}
}

// Order represents one sales order line. Orders are immutable inputs for a
// planning run; the scheduler only aggregates them.
type Order struct {
	ID        OrderID
	Customer  CustomerCode
	SKU       SKUCode
	QtyCases  Cases
	OrderDate time.Time
	DueDate   time.Time
	Priority  PriorityClass
}
