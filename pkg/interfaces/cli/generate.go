package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/plantops/replan/pkg/infrastructure/datagen"
)

var (
	genSeed  int64
	genStart string
	genDays  int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a deterministic demo dataset into the data directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := datagen.DefaultParams()
		params.Seed = genSeed
		if !cmd.Flags().Changed("seed") {
			params.Seed = cfg.DatagenSeed
		}
		params.HorizonDays = genDays
		if genStart != "" {
			start, err := time.Parse("2006-01-02", genStart)
			if err != nil {
				return fmt.Errorf("invalid --start %q: expected YYYY-MM-DD", genStart)
			}
			params.StartDate = start
		}

		ds := datagen.New(params).Generate()
		if err := ds.WriteCSV(cfg.DataDir); err != nil {
			return err
		}
		fmt.Printf("generated %d SKUs, %d lines, %d orders under %s\n",
			len(ds.Catalog), len(ds.Lines), len(ds.Orders), cfg.DataDir)
		return nil
	},
}

func init() {
	generateCmd.Flags().Int64Var(&genSeed, "seed", 42, "random seed")
	generateCmd.Flags().StringVar(&genStart, "start", "", "horizon start date (YYYY-MM-DD)")
	generateCmd.Flags().IntVar(&genDays, "days", 14, "horizon length in days")
	rootCmd.AddCommand(generateCmd)
}
