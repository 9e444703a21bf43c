package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plantops/replan/pkg/application/runner"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the daily scheduling pass and write schedule, plan and policy snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := runner.New(cfg, nil).RunSchedule(cmd.Context())
		if err != nil {
			return err
		}

		unassigned := 0
		for _, row := range out.Schedule {
			if row.Unassigned() {
				unassigned++
			}
		}
		fmt.Printf("plan date %s: %d schedule rows (%d unassigned), %d plan entries\n",
			out.Day.Format("2006-01-02"), len(out.Schedule), unassigned, len(out.Plan))
		return nil
	},
}

var mrpCmd = &cobra.Command{
	Use:   "mrp",
	Short: "Explode the production plan into material requirements and shortages",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := runner.New(cfg, nil).RunMRP(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%d material requirements, %d shortage exceptions\n",
			len(result.Requirements), len(result.Exceptions))
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Full daily re-plan: schedule, replenishment plan and MRP, persisted to the run store",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		runID, err := runner.New(cfg, st).RunAll(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("run %s complete; outputs under %s\n", runID, cfg.ResultsDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(mrpCmd)
	rootCmd.AddCommand(runCmd)
}
