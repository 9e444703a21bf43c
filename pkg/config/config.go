// Package config loads planner configuration: built-in defaults, overridden
// by an optional YAML file, overridden by environment variables (a .env file
// is honored when present).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/plantops/replan/pkg/domain/entities"
	"github.com/plantops/replan/pkg/domain/services/orderpriority"
)

// Config holds every planner knob. Zero-value fields mean "use the default".
type Config struct {
	DataDir    string `yaml:"data_dir"`
	ResultsDir string `yaml:"results_dir"`
	DBPath     string `yaml:"db_path"`
	HTTPPort   int    `yaml:"http_port"`

	// PlanDate pins the simulation "today" (YYYY-MM-DD). Empty means derive
	// it from the earliest order date.
	PlanDate string `yaml:"plan_date"`

	// ReplanCron, when non-empty, schedules periodic re-plans in serve mode.
	ReplanCron string `yaml:"replan_cron"`

	KeyAccounts          []string  `yaml:"key_accounts"`
	SplitFractions       []float64 `yaml:"split_fractions"`
	ChangeoverDefaultMin int       `yaml:"changeover_default_min"`

	Weights orderpriority.Weights `yaml:"weights"`

	DatagenSeed int64 `yaml:"datagen_seed"`
}

// Default returns the standard planner configuration.
func Default() *Config {
	return &Config{
		DataDir:              "data",
		ResultsDir:           "results",
		DBPath:               "results/replan.db",
		HTTPPort:             8080,
		KeyAccounts:          []string{"CUST-01", "CUST-02", "CUST-03"},
		SplitFractions:       []float64{0.45, 0.35, 0.20},
		ChangeoverDefaultMin: 60,
		Weights:              orderpriority.DefaultWeights(),
		DatagenSeed:          42,
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (skipped when path is empty or the file does not exist), then
// environment variables. A .env file in the working directory is loaded
// first so its variables participate in the env pass.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("REPLAN_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("REPLAN_RESULTS_DIR"); v != "" {
		c.ResultsDir = v
	}
	if v := os.Getenv("REPLAN_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("REPLAN_HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.HTTPPort = port
		}
	}
	if v := os.Getenv("REPLAN_PLAN_DATE"); v != "" {
		c.PlanDate = v
	}
	if v := os.Getenv("REPLAN_CRON"); v != "" {
		c.ReplanCron = v
	}
}

// Validate checks the cross-field constraints that would otherwise surface as
// confusing planner behavior.
func (c *Config) Validate() error {
	if c.ChangeoverDefaultMin < 0 {
		return fmt.Errorf("changeover_default_min must be non-negative, got %d", c.ChangeoverDefaultMin)
	}
	if len(c.SplitFractions) == 0 {
		return fmt.Errorf("split_fractions must not be empty")
	}
	sum := 0.0
	for _, f := range c.SplitFractions {
		if f < 0 {
			return fmt.Errorf("split_fractions must be non-negative, got %v", f)
		}
		sum += f
	}
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("split_fractions must sum to 1.0, got %v", sum)
	}
	if c.PlanDate != "" {
		if _, err := time.Parse("2006-01-02", c.PlanDate); err != nil {
			return fmt.Errorf("invalid plan_date %q: expected YYYY-MM-DD", c.PlanDate)
		}
	}
	return nil
}

// PlanDateOrZero returns the pinned plan date, or the zero time when the date
// should be derived from the order file.
func (c *Config) PlanDateOrZero() time.Time {
	if c.PlanDate == "" {
		return time.Time{}
	}
	d, _ := time.Parse("2006-01-02", c.PlanDate)
	return d
}

// KeyAccountCodes returns the key accounts as typed customer codes.
func (c *Config) KeyAccountCodes() []entities.CustomerCode {
	codes := make([]entities.CustomerCode, len(c.KeyAccounts))
	for i, a := range c.KeyAccounts {
		codes[i] = entities.CustomerCode(a)
	}
	return codes
}
