package main

import (
	"context"
	"fmt"

	"github.com/plantops/replan/pkg/application/services/mrp"
	"github.com/plantops/replan/pkg/application/services/replenishment"
	"github.com/plantops/replan/pkg/application/services/scheduling"
	"github.com/plantops/replan/pkg/domain/entities"
	"github.com/plantops/replan/pkg/domain/services/orderpriority"
	"github.com/plantops/replan/pkg/infrastructure/datagen"
	"github.com/plantops/replan/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Generate a deterministic demo plant entirely in memory
	ds := datagen.New(datagen.DefaultParams()).Generate()

	orderRepo := memory.NewOrderRepository()
	forecastRepo := memory.NewForecastRepository()
	fgRepo := memory.NewFGInventoryRepository()
	policyRepo := memory.NewPolicyRepository()
	lineRepo := memory.NewLineRepository()
	changeoverRepo := memory.NewChangeoverRepository()
	planRepo := memory.NewPlanRepository()
	bomRepo := memory.NewBOMRepository()
	materialRepo := memory.NewMaterialInventoryRepository()

	mustLoad(orderRepo.LoadOrders(ds.Orders))
	mustLoad(forecastRepo.LoadForecast(ds.Forecast))
	mustLoad(fgRepo.LoadPositions(ds.FGInventory))
	mustLoad(policyRepo.LoadPolicies(ds.Policies))
	mustLoad(lineRepo.LoadLines(ds.Lines))
	mustLoad(changeoverRepo.LoadEntries(ds.Changeovers))
	mustLoad(bomRepo.LoadLines(ds.BOM))
	mustLoad(materialRepo.LoadMaterials(ds.Materials))

	today, err := scheduling.TodayFromOrders(ds.Orders)
	if err != nil {
		fmt.Printf("no orders: %v\n", err)
		return
	}
	fmt.Printf("🏭 Daily re-plan for %s\n\n", today.Format("2006-01-02"))

	scorer := orderpriority.NewScorer(orderpriority.DefaultWeights(),
		[]entities.CustomerCode{"CUST-01", "CUST-02", "CUST-03"})
	svc := scheduling.NewService(scorer)
	result, err := svc.PlanDay(ctx, today, orderRepo, lineRepo, changeoverRepo, fgRepo, forecastRepo, policyRepo)
	if err != nil {
		fmt.Printf("scheduling failed: %v\n", err)
		return
	}
	for _, row := range result.Schedule {
		if row.Unassigned() {
			fmt.Printf("  %-16s  UNASSIGNED  unmet=%d\n", row.SKU, row.UnmetCases)
			continue
		}
		fmt.Printf("  %-16s  %-3s  planned=%d  changeover=%dmin\n",
			row.SKU, row.Line, row.PlannedCases, row.ChangeoverMin)
	}

	plan := replenishment.NewGenerator().Generate(ds.FGInventory, ds.Forecast, ds.Policies, today)
	mustLoad(planRepo.LoadPlan(plan))
	fmt.Printf("\n📦 Replenishment plan: %d SKU-day entries\n", len(plan))

	mrpResult, err := mrp.NewService().Run(ctx, planRepo, bomRepo, materialRepo)
	if err != nil {
		fmt.Printf("MRP failed: %v\n", err)
		return
	}
	fmt.Printf("🔩 MRP: %d material requirements, %d shortages\n",
		len(mrpResult.Requirements), len(mrpResult.Exceptions))
	for _, x := range mrpResult.Exceptions {
		fmt.Printf("  %s  %-8s short %s (%s)\n",
			x.Date.Format("2006-01-02"), x.Material, x.ShortQty, x.SuggestedAction)
	}
}

func mustLoad(err error) {
	if err != nil {
		panic(err)
	}
}
