package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/plantops/replan/pkg/application/services/scheduling"
	csvrepo "github.com/plantops/replan/pkg/infrastructure/repositories/csv"
	"github.com/plantops/replan/pkg/interfaces/report"
)

var reportOut string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the plant review workbook from the latest scheduling outputs",
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := csvrepo.NewLoader()

		positions, err := loader.LoadFGInventory(filepath.Join(cfg.DataDir, csvrepo.FGInventoryFile))
		if err != nil {
			return err
		}
		policies, err := loader.LoadPolicies(filepath.Join(cfg.DataDir, csvrepo.PolicyFile))
		if err != nil {
			return err
		}
		forecast, err := loader.LoadForecast(filepath.Join(cfg.DataDir, csvrepo.ForecastFile))
		if err != nil {
			return err
		}
		schedule, err := loader.LoadSchedule(filepath.Join(cfg.ResultsDir, csvrepo.ScheduleFile))
		if err != nil {
			return fmt.Errorf("schedule outputs are required for the report (run `replan schedule` first): %w", err)
		}

		today := cfg.PlanDateOrZero()
		if today.IsZero() {
			orders, err := loader.LoadOrders(filepath.Join(cfg.DataDir, csvrepo.OrdersFile))
			if err != nil {
				return err
			}
			today, err = scheduling.TodayFromOrders(orders)
			if err != nil {
				return err
			}
		}

		out := reportOut
		if out == "" {
			out = filepath.Join(cfg.ResultsDir, "plant_report.xlsx")
		}
		if err := report.Write(out, report.Inputs{
			Today:     today,
			Positions: positions,
			Policies:  policies,
			Forecast:  forecast,
			Schedule:  schedule,
		}); err != nil {
			return err
		}
		fmt.Printf("report written to %s\n", out)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportOut, "out", "", "workbook path (default <results>/plant_report.xlsx)")
	rootCmd.AddCommand(reportCmd)
}
