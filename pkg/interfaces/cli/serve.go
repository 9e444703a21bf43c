package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/plantops/replan/pkg/application/runner"
	"github.com/plantops/replan/pkg/infrastructure/store"
	"github.com/plantops/replan/pkg/interfaces/httpapi"
)

var serveCron string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the latest planning run over HTTP, optionally re-planning on a cron schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}

		spec := serveCron
		if spec == "" {
			spec = cfg.ReplanCron
		}
		if spec != "" {
			r := runner.New(cfg, st)
			c := cron.New()
			if _, err := c.AddFunc(spec, func() {
				if _, err := r.RunAll(cmd.Context()); err != nil {
					log.Printf("scheduled re-plan failed: %v", err)
				}
			}); err != nil {
				return fmt.Errorf("invalid cron expression %q: %w", spec, err)
			}
			c.Start()
			defer c.Stop()
			log.Printf("re-plan scheduled: %s", spec)
		}

		e := httpapi.NewServer(st).Echo()
		return e.Start(fmt.Sprintf(":%d", cfg.HTTPPort))
	},
}

// openStore opens the run store at the configured path, creating the parent
// directory when needed.
func openStore() (*store.Store, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
		}
	}
	return store.Open(cfg.DBPath)
}

func init() {
	serveCmd.Flags().StringVar(&serveCron, "replan-cron", "", "cron expression for periodic re-plans (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
