package entities

import (
	"fmt"
	"strings"
)

// ABCClass represents the ABC inventory classification of a SKU
type ABCClass int

const (
	ClassA ABCClass = iota
	ClassB
	ClassC
)

func (c ABCClass) String() string {
	switch c {
	case ClassA:
		return "A"
	case ClassB:
		return "B"
	case ClassC:
		return "C"
	default:
		return "Unknown"
	}
}

// ParseABCClass parses the A/B/C wire representation.
func ParseABCClass(s string) (ABCClass, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return ClassA, nil
	case "B":
		return ClassB, nil
	case "C":
		return ClassC, nil
	default:
		return ClassC, fmt.Errorf("invalid abc class: %s (expected: A, B, or C)", s)
	}
}

// PolicyStatus represents days-of-supply adherence for a SKU
type PolicyStatus int

const (
	StatusGreen PolicyStatus = iota
	StatusYellow
	StatusRed
)

func (s PolicyStatus) String() string {
	switch s {
	case StatusRed:
		return "RED"
	case StatusYellow:
		return "YELLOW"
	case StatusGreen:
		return "GREEN"
	default:
		return "Unknown"
	}
}

// ParsePolicyStatus parses the RED/YELLOW/GREEN wire representation.
func ParsePolicyStatus(s string) (PolicyStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RED":
		return StatusRed, nil
	case "YELLOW":
		return StatusYellow, nil
	case "GREEN":
		return StatusGreen, nil
	default:
		return StatusGreen, fmt.Errorf("invalid policy_status: %s (expected: RED, YELLOW, or GREEN)", s)
	}
}

// Policy represents the inventory policy parameters for a SKU.
// Invariant (assumed upstream, not re-validated here): MinDOS <= TargetDOS <= MaxDOS.
type Policy struct {
	SKU          SKUCode
	ABC          ABCClass
	MinDOS       float64
	TargetDOS    float64
	MaxDOS       float64
	ServiceLevel float64
	LeadTimeDays int
	MOQCases     Cases
	PackRounding int
}

// PolicySnapshot represents one row of the inventory policy adherence
// snapshot: the computed days of supply and its classification against the
// SKU's thresholds.
type PolicySnapshot struct {
	SKU       SKUCode
	DOS       float64
	MinDOS    float64
	TargetDOS float64
	MaxDOS    float64
	Status    PolicyStatus
}
