// Package scheduling implements the daily re-plan: it scores the day's
// orders, aggregates demand by SKU and greedily assigns each SKU to the best
// eligible production line, tracking remaining capacity and changeover state
// per line.
package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/plantops/replan/pkg/domain/entities"
	"github.com/plantops/replan/pkg/domain/repositories"
	"github.com/plantops/replan/pkg/domain/services/orderpriority"
	"github.com/plantops/replan/pkg/domain/services/policystatus"
)

// changeoverCasePenalty converts changeover minutes into an additional flat
// penalty on the line-selection score, on top of the lost-production term.
const changeoverCasePenalty = 10.0

// Result holds the outputs of one scheduling pass.
type Result struct {
	Day      time.Time
	Snapshot []entities.PolicySnapshot
	Schedule []entities.ScheduleAssignment
}

// Service runs the daily scheduling pass.
type Service struct {
	scorer *orderpriority.Scorer
}

// NewService creates a scheduling service using the given order scorer.
func NewService(scorer *orderpriority.Scorer) *Service {
	return &Service{scorer: scorer}
}

// TodayFromOrders returns the earliest order date in the file, the simulation
// "today" used when no explicit plan date is configured.
func TodayFromOrders(orders []*entities.Order) (time.Time, error) {
	if len(orders) == 0 {
		return time.Time{}, fmt.Errorf("cannot derive plan date: no orders loaded")
	}
	today := orders[0].OrderDate
	for _, o := range orders[1:] {
		if o.OrderDate.Before(today) {
			today = o.OrderDate
		}
	}
	return today, nil
}

// PlanDay computes the policy snapshot and the line-level schedule for one
// day. Scheduling never fails for capacity or eligibility gaps; those surface
// as UNASSIGNED rows.
func (s *Service) PlanDay(
	ctx context.Context,
	day time.Time,
	orderRepo repositories.OrderRepository,
	lineRepo repositories.LineRepository,
	changeoverRepo repositories.ChangeoverRepository,
	fgRepo repositories.FGInventoryRepository,
	forecastRepo repositories.ForecastRepository,
	policyRepo repositories.PolicyRepository,
) (*Result, error) {
	positions, err := fgRepo.GetPositions()
	if err != nil {
		return nil, fmt.Errorf("failed to load FG inventory: %w", err)
	}
	forecast, err := forecastRepo.GetForecast()
	if err != nil {
		return nil, fmt.Errorf("failed to load forecast: %w", err)
	}
	policies, err := policyRepo.GetPolicies()
	if err != nil {
		return nil, fmt.Errorf("failed to load policies: %w", err)
	}
	orders, err := orderRepo.GetOrdersForDate(day)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	lines, err := lineRepo.GetLines()
	if err != nil {
		return nil, fmt.Errorf("failed to load lines: %w", err)
	}
	matrix, err := changeoverRepo.GetMatrix()
	if err != nil {
		return nil, fmt.Errorf("failed to load changeover matrix: %w", err)
	}

	snapshot := policystatus.Snapshot(positions, forecast, policies, day)
	schedule := s.ScheduleDay(day, orders, policystatus.StatusIndex(snapshot), lines, matrix)

	return &Result{Day: day, Snapshot: snapshot, Schedule: schedule}, nil
}

// ScheduleDay runs the greedy allocation pass over pre-loaded tables.
//
// The pass is strictly sequential and fully deterministic: demand groups are
// processed in priority order (max score desc, total cases desc, first-seen
// asc) and line ties resolve by line enumeration order. Each SKU's demand is
// assigned to at most one line; what the chosen line cannot absorb becomes
// unmet quantity rather than spilling to a second line.
func (s *Service) ScheduleDay(
	day time.Time,
	orders []*entities.Order,
	status map[entities.SKUCode]entities.PolicyStatus,
	lines []*entities.Line,
	matrix *entities.ChangeoverMatrix,
) []entities.ScheduleAssignment {
	scores := make([]float64, len(orders))
	for i, o := range orders {
		scores[i] = s.scorer.Score(o, day, status[o.SKU])
	}
	groups := aggregateDemand(orders, scores)

	states := make([]lineState, len(lines))
	for i, l := range lines {
		states[i] = lineState{line: l, remaining: l.Capacity()}
	}
	median := medianRate(lines)

	schedule := make([]entities.ScheduleAssignment, 0, len(groups))
	for _, g := range groups {
		best := -1
		var bestScore float64
		bestChangeover := 0

		for i := range states {
			st := &states[i]
			if st.remaining <= 0 || !st.line.Eligible(g.sku) {
				continue
			}
			co := matrix.Minutes(st.lastSKU, g.sku)
			// Remaining capacity, minus production lost to the changeover,
			// minus a flat per-minute penalty.
			score := float64(st.remaining) - float64(co)*median/60.0 - float64(co)*changeoverCasePenalty
			if best == -1 || score > bestScore {
				best = i
				bestScore = score
				bestChangeover = co
			}
		}

		if best == -1 {
			schedule = append(schedule, entities.ScheduleAssignment{
				Date:       day,
				Line:       entities.UnassignedLine,
				SKU:        g.sku,
				UnmetCases: g.totalCases,
				Flags:      entities.FlagCapacityOrEligibility,
			})
			continue
		}

		st := &states[best]
		alloc := g.totalCases
		if st.remaining < alloc {
			alloc = st.remaining
		}
		st.remaining -= alloc
		st.lastSKU = g.sku

		schedule = append(schedule, entities.ScheduleAssignment{
			Date:          day,
			Line:          st.line.ID,
			SKU:           g.sku,
			PlannedCases:  alloc,
			UnmetCases:    g.totalCases - alloc,
			PlanSource:    entities.PlanSourceAuto,
			ChangeoverMin: bestChangeover,
		})
	}

	return schedule
}
