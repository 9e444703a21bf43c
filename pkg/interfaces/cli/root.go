// Package cli defines the replan command tree: generate, schedule, mrp, run,
// report and serve.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plantops/replan/pkg/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "replan",
	Short: "Daily production re-plan and MRP for a single bottling plant",
	Long: `replan schedules one day of production across the plant's lines from
orders, forecast and inventory policy, generates a short replenishment plan,
and explodes it through the bill of materials into dated material
requirements and shortage exceptions.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "planner.yaml",
		"path to the planner YAML config (missing file falls back to defaults)")
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
