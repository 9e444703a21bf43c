// Package orderpriority scores sales orders for the daily scheduler. The
// score is a sum of additive weights for due-date proximity, key accounts,
// the order's priority class and the SKU's policy status.
package orderpriority

import (
	"time"

	"github.com/plantops/replan/pkg/domain/entities"
)

// Weights holds the additive scoring weights.
type Weights struct {
	Overdue      float64 `yaml:"overdue"`
	Due0To1      float64 `yaml:"due_0_1"`
	Due2To3      float64 `yaml:"due_2_3"`
	KeyCustomer  float64 `yaml:"key_customer"`
	HighPriority float64 `yaml:"high_priority"`
	MedPriority  float64 `yaml:"med_priority"`
	LowPriority  float64 `yaml:"low_priority"`
	PolicyRed    float64 `yaml:"policy_red"`
	PolicyYellow float64 `yaml:"policy_yellow"`
}

// DefaultWeights returns the standard plant weighting.
func DefaultWeights() Weights {
	return Weights{
		Overdue:      100,
		Due0To1:      60,
		Due2To3:      35,
		KeyCustomer:  20,
		HighPriority: 18,
		MedPriority:  8,
		LowPriority:  0,
		PolicyRed:    25,
		PolicyYellow: 10,
	}
}

// Scorer scores orders against a fixed weight set and key-account list.
type Scorer struct {
	weights     Weights
	keyAccounts map[entities.CustomerCode]struct{}
}

// NewScorer creates a scorer for the given weights and key accounts.
func NewScorer(weights Weights, keyAccounts []entities.CustomerCode) *Scorer {
	keys := make(map[entities.CustomerCode]struct{}, len(keyAccounts))
	for _, c := range keyAccounts {
		keys[c] = struct{}{}
	}
	return &Scorer{weights: weights, keyAccounts: keys}
}

// Score returns the priority score of one order as of today. Due-date buckets
// are mutually exclusive and checked in order: overdue, 0-1 days, 2-3 days.
func (s *Scorer) Score(order *entities.Order, today time.Time, status entities.PolicyStatus) float64 {
	score := 0.0

	daysToDue := daysBetween(today, order.DueDate)
	switch {
	case daysToDue < 0:
		score += s.weights.Overdue
	case daysToDue <= 1:
		score += s.weights.Due0To1
	case daysToDue <= 3:
		score += s.weights.Due2To3
	}

	if _, ok := s.keyAccounts[order.Customer]; ok {
		score += s.weights.KeyCustomer
	}

	switch order.Priority {
	case entities.PriorityHigh:
		score += s.weights.HighPriority
	case entities.PriorityMed:
		score += s.weights.MedPriority
	default:
		score += s.weights.LowPriority
	}

	switch status {
	case entities.StatusRed:
		score += s.weights.PolicyRed
	case entities.StatusYellow:
		score += s.weights.PolicyYellow
	}

	return score
}

// daysBetween returns whole calendar days from a to b. Inputs are date-valued
// (midnight) timestamps.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
