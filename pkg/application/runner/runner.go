// Package runner wires the planning stages together for the CLI and the
// serve-mode re-plan job: load input tables, run the scheduling pass and the
// replenishment plan, explode MRP, write the output tables and optionally
// persist the run.
package runner

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/plantops/replan/pkg/application/services/mrp"
	"github.com/plantops/replan/pkg/application/services/replenishment"
	"github.com/plantops/replan/pkg/application/services/scheduling"
	"github.com/plantops/replan/pkg/config"
	"github.com/plantops/replan/pkg/domain/entities"
	"github.com/plantops/replan/pkg/domain/services/orderpriority"
	csvrepo "github.com/plantops/replan/pkg/infrastructure/repositories/csv"
	"github.com/plantops/replan/pkg/infrastructure/repositories/memory"
	"github.com/plantops/replan/pkg/infrastructure/store"
)

// Runner executes planning stages against the configured data and results
// directories. The store is optional; a nil store skips persistence.
type Runner struct {
	cfg    *config.Config
	loader *csvrepo.Loader
	writer *csvrepo.Writer
	store  *store.Store
}

// New creates a runner. st may be nil when runs should not be persisted.
func New(cfg *config.Config, st *store.Store) *Runner {
	return &Runner{
		cfg:    cfg,
		loader: csvrepo.NewLoader(),
		writer: csvrepo.NewWriter(),
		store:  st,
	}
}

func (r *Runner) dataPath(name string) string {
	return filepath.Join(r.cfg.DataDir, name)
}

func (r *Runner) resultsPath(name string) string {
	return filepath.Join(r.cfg.ResultsDir, name)
}

// inputs bundles the loaded planning tables.
type inputs struct {
	orders      *memory.OrderRepository
	forecast    *memory.ForecastRepository
	fg          *memory.FGInventoryRepository
	policies    *memory.PolicyRepository
	lines       *memory.LineRepository
	changeovers *memory.ChangeoverRepository
}

func (r *Runner) loadScheduleInputs() (*inputs, error) {
	in := &inputs{
		orders:      memory.NewOrderRepository(),
		forecast:    memory.NewForecastRepository(),
		fg:          memory.NewFGInventoryRepository(),
		policies:    memory.NewPolicyRepository(),
		lines:       memory.NewLineRepository(),
		changeovers: memory.NewChangeoverRepositoryWithDefault(r.cfg.ChangeoverDefaultMin),
	}

	orders, err := r.loader.LoadOrders(r.dataPath(csvrepo.OrdersFile))
	if err != nil {
		return nil, err
	}
	if err := in.orders.LoadOrders(orders); err != nil {
		return nil, err
	}

	forecast, err := r.loader.LoadForecast(r.dataPath(csvrepo.ForecastFile))
	if err != nil {
		return nil, err
	}
	if err := in.forecast.LoadForecast(forecast); err != nil {
		return nil, err
	}

	positions, err := r.loader.LoadFGInventory(r.dataPath(csvrepo.FGInventoryFile))
	if err != nil {
		return nil, err
	}
	if err := in.fg.LoadPositions(positions); err != nil {
		return nil, err
	}

	policies, err := r.loader.LoadPolicies(r.dataPath(csvrepo.PolicyFile))
	if err != nil {
		return nil, err
	}
	if err := in.policies.LoadPolicies(policies); err != nil {
		return nil, err
	}

	lines, err := r.loader.LoadLines(r.dataPath(csvrepo.LinesFile))
	if err != nil {
		return nil, err
	}
	if err := in.lines.LoadLines(lines); err != nil {
		return nil, err
	}

	changeovers, err := r.loader.LoadChangeovers(r.dataPath(csvrepo.ChangeoverMatrixFile))
	if err != nil {
		return nil, err
	}
	if err := in.changeovers.LoadEntries(changeovers); err != nil {
		return nil, err
	}

	return in, nil
}

// planDay resolves the simulation "today": the configured plan date, or the
// earliest order date when none is pinned.
func (r *Runner) planDay(orderRepo *memory.OrderRepository) (time.Time, error) {
	if day := r.cfg.PlanDateOrZero(); !day.IsZero() {
		return day, nil
	}
	orders, err := orderRepo.GetOrders()
	if err != nil {
		return time.Time{}, err
	}
	return scheduling.TodayFromOrders(orders)
}

// ScheduleOutput holds everything the scheduling stage produced.
type ScheduleOutput struct {
	Day      time.Time
	Snapshot []entities.PolicySnapshot
	Schedule []entities.ScheduleAssignment
	Plan     []entities.PlanEntry
}

// RunSchedule executes the daily scheduling pass and the replenishment plan,
// and writes the schedule, plan and policy snapshot tables.
func (r *Runner) RunSchedule(ctx context.Context) (*ScheduleOutput, error) {
	in, err := r.loadScheduleInputs()
	if err != nil {
		return nil, err
	}
	day, err := r.planDay(in.orders)
	if err != nil {
		return nil, err
	}

	scorer := orderpriority.NewScorer(r.cfg.Weights, r.cfg.KeyAccountCodes())
	svc := scheduling.NewService(scorer)
	result, err := svc.PlanDay(ctx, day, in.orders, in.lines, in.changeovers, in.fg, in.forecast, in.policies)
	if err != nil {
		return nil, err
	}

	gen := replenishment.NewGeneratorWithSplits(r.cfg.SplitFractions)
	plan, err := gen.Plan(ctx, day, in.fg, in.forecast, in.policies)
	if err != nil {
		return nil, err
	}

	if err := r.writer.WriteSchedule(r.resultsPath(csvrepo.ScheduleFile), result.Schedule); err != nil {
		return nil, err
	}
	if err := r.writer.WritePlan(r.resultsPath(csvrepo.PlanFile), plan); err != nil {
		return nil, err
	}
	if err := r.writer.WritePolicySnapshot(r.resultsPath(csvrepo.PolicySnapshotFile), result.Snapshot); err != nil {
		return nil, err
	}

	log.Printf("scheduled %d SKU groups for %s (%d plan entries)",
		len(result.Schedule), day.Format("2006-01-02"), len(plan))

	return &ScheduleOutput{
		Day:      day,
		Snapshot: result.Snapshot,
		Schedule: result.Schedule,
		Plan:     plan,
	}, nil
}

// RunMRP explodes the production plan written by the scheduling stage and
// writes the requirements and exception tables. A missing plan file aborts
// before any output is written.
func (r *Runner) RunMRP(ctx context.Context) (*mrp.Result, error) {
	planFile := r.resultsPath(csvrepo.PlanFile)
	if _, err := os.Stat(planFile); err != nil {
		return nil, fmt.Errorf("%w: %s not found", mrp.ErrPlanMissing, planFile)
	}

	plan, err := r.loader.LoadPlan(planFile)
	if err != nil {
		return nil, err
	}
	bom, err := r.loader.LoadBOM(r.dataPath(csvrepo.BOMMaterialsFile))
	if err != nil {
		return nil, err
	}
	materials, err := r.loader.LoadMaterialInventory(r.dataPath(csvrepo.MaterialInventoryFile))
	if err != nil {
		return nil, err
	}

	planRepo := memory.NewPlanRepository()
	if err := planRepo.LoadPlan(plan); err != nil {
		return nil, err
	}
	bomRepo := memory.NewBOMRepository()
	if err := bomRepo.LoadLines(bom); err != nil {
		return nil, err
	}
	materialRepo := memory.NewMaterialInventoryRepository()
	if err := materialRepo.LoadMaterials(materials); err != nil {
		return nil, err
	}

	result, err := mrp.NewService().Run(ctx, planRepo, bomRepo, materialRepo)
	if err != nil {
		return nil, err
	}

	if err := r.writer.WriteRequirements(r.resultsPath(csvrepo.RequirementsFile), result.Requirements); err != nil {
		return nil, err
	}
	if err := r.writer.WriteExceptions(r.resultsPath(csvrepo.ExceptionsFile), result.Exceptions); err != nil {
		return nil, err
	}

	log.Printf("exploded %d material requirements, %d shortage exceptions",
		len(result.Requirements), len(result.Exceptions))
	return result, nil
}

// RunAll executes the full daily re-plan: scheduling, replenishment and MRP.
// When the runner has a store, the complete run is persisted in one
// transaction and the new run ID is returned.
func (r *Runner) RunAll(ctx context.Context) (string, error) {
	sched, err := r.RunSchedule(ctx)
	if err != nil {
		return "", err
	}
	mrpResult, err := r.RunMRP(ctx)
	if err != nil {
		return "", err
	}

	if r.store == nil {
		return "", nil
	}
	runID, err := r.store.SaveRun(store.RunInputs{
		PlanDate:     sched.Day,
		Params:       r.cfg,
		Schedule:     sched.Schedule,
		Plan:         sched.Plan,
		Snapshot:     sched.Snapshot,
		Requirements: mrpResult.Requirements,
		Exceptions:   mrpResult.Exceptions,
	})
	if err != nil {
		return "", fmt.Errorf("failed to persist run: %w", err)
	}
	log.Printf("persisted run %s", runID)
	return runID, nil
}
