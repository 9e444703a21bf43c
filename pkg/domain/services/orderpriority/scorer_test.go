package orderpriority

import (
	"testing"
	"time"

	"github.com/plantops/replan/pkg/domain/entities"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestScorer_Score(t *testing.T) {
	today := date("2026-02-09")
	scorer := NewScorer(DefaultWeights(), []entities.CustomerCode{"CUST01", "CUST02"})

	tests := []struct {
		name     string
		customer entities.CustomerCode
		due      string
		priority entities.PriorityClass
		status   entities.PolicyStatus
		expected float64
	}{
		{
			name:     "overdue_high_key_red_stacks_everything",
			customer: "CUST01",
			due:      "2026-02-08",
			priority: entities.PriorityHigh,
			status:   entities.StatusRed,
			expected: 100 + 20 + 18 + 25,
		},
		{
			name:     "due_today",
			customer: "CUST05",
			due:      "2026-02-09",
			priority: entities.PriorityLow,
			status:   entities.StatusGreen,
			expected: 60,
		},
		{
			name:     "due_tomorrow",
			customer: "CUST05",
			due:      "2026-02-10",
			priority: entities.PriorityLow,
			status:   entities.StatusGreen,
			expected: 60,
		},
		{
			name:     "due_in_two_days",
			customer: "CUST05",
			due:      "2026-02-11",
			priority: entities.PriorityLow,
			status:   entities.StatusGreen,
			expected: 35,
		},
		{
			name:     "due_in_three_days",
			customer: "CUST05",
			due:      "2026-02-12",
			priority: entities.PriorityLow,
			status:   entities.StatusGreen,
			expected: 35,
		},
		{
			name:     "due_beyond_three_days_scores_no_bucket",
			customer: "CUST05",
			due:      "2026-02-13",
			priority: entities.PriorityLow,
			status:   entities.StatusGreen,
			expected: 0,
		},
		{
			name:     "med_priority_yellow",
			customer: "CUST06",
			due:      "2026-02-14",
			priority: entities.PriorityMed,
			status:   entities.StatusYellow,
			expected: 8 + 10,
		},
		{
			name:     "key_account_only",
			customer: "CUST02",
			due:      "2026-02-20",
			priority: entities.PriorityLow,
			status:   entities.StatusGreen,
			expected: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &entities.Order{
				ID:       "SO100001",
				Customer: tt.customer,
				SKU:      "WTR-1L-12PK",
				QtyCases: 100,
				DueDate:  date(tt.due),
				Priority: tt.priority,
			}
			if got := scorer.Score(order, today, tt.status); got != tt.expected {
				t.Errorf("Score() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestScorer_DoesNotMutateOrder(t *testing.T) {
	today := date("2026-02-09")
	scorer := NewScorer(DefaultWeights(), nil)
	order := &entities.Order{ID: "SO1", Customer: "C", SKU: "A", QtyCases: 10, DueDate: today}
	before := *order
	scorer.Score(order, today, entities.StatusRed)
	if *order != before {
		t.Error("Score must not mutate the order")
	}
}
