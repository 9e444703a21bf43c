// Package store persists planning runs to SQLite so the HTTP surface and the
// report command can read results without re-planning. CSV files remain the
// canonical outputs; the store is a queryable copy.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/plantops/replan/pkg/domain/entities"
)

// ErrNoRuns is returned when the store holds no completed planning run.
var ErrNoRuns = errors.New("no planning runs recorded")

// RunRecord is one completed planning run. Params is a JSON snapshot of the
// planner knobs in effect, kept for run-to-run comparison.
type RunRecord struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	PlanDate  time.Time
	CreatedAt time.Time      `gorm:"index"`
	Params    datatypes.JSON
}

func (RunRecord) TableName() string { return "runs" }

// ScheduleRow mirrors one daily-production-schedule row.
type ScheduleRow struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	RunID         string `gorm:"type:uuid;index;not null"`
	Date          time.Time
	LineID        string
	SKU           string `gorm:"index"`
	PlannedCases  int64
	UnmetCases    int64
	PlanSource    string
	ChangeoverMin int
	Flags         string
}

func (ScheduleRow) TableName() string { return "schedule_rows" }

// PlanRow mirrors one plan-by-SKU-and-day row.
type PlanRow struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	RunID        string `gorm:"type:uuid;index;not null"`
	Date         time.Time
	SKU          string `gorm:"index"`
	PlannedCases int64
}

func (PlanRow) TableName() string { return "plan_rows" }

// PolicyRow mirrors one inventory-policy-snapshot row.
type PolicyRow struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	RunID     string `gorm:"type:uuid;index;not null"`
	SKU       string `gorm:"index"`
	DOS       float64
	MinDOS    float64
	TargetDOS float64
	MaxDOS    float64
	Status    string
}

func (PolicyRow) TableName() string { return "policy_rows" }

// RequirementRow mirrors one dated material requirement. Quantities are
// stored as decimal strings to avoid float drift.
type RequirementRow struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	RunID    string `gorm:"type:uuid;index;not null"`
	Date     time.Time
	Material string `gorm:"index"`
	ReqQty   string
}

func (RequirementRow) TableName() string { return "requirement_rows" }

// ExceptionRow mirrors one material shortage exception.
type ExceptionRow struct {
	ID              uint   `gorm:"primaryKey;autoIncrement"`
	RunID           string `gorm:"type:uuid;index;not null"`
	Date            time.Time
	Material        string `gorm:"index"`
	ReqQty          string
	AvailableQty    string
	ShortQty        string
	EarliestETA     *time.Time
	SuggestedAction string
}

func (ExceptionRow) TableName() string { return "exception_rows" }

// Store wraps the runs database.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the SQLite database at path and migrates the run
// tables.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store %s: %w", path, err)
	}
	if err := db.AutoMigrate(
		&RunRecord{},
		&ScheduleRow{},
		&PlanRow{},
		&PolicyRow{},
		&RequirementRow{},
		&ExceptionRow{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate run tables: %w", err)
	}
	return &Store{db: db}, nil
}

// RunInputs is everything persisted for one planning run.
type RunInputs struct {
	PlanDate     time.Time
	Params       any
	Schedule     []entities.ScheduleAssignment
	Plan         []entities.PlanEntry
	Snapshot     []entities.PolicySnapshot
	Requirements []entities.MaterialRequirement
	Exceptions   []entities.ShortageException
}

// SaveRun persists one run and all of its result tables in a single
// transaction. Returns the new run ID.
func (s *Store) SaveRun(in RunInputs) (string, error) {
	runID := uuid.NewString()

	params, err := json.Marshal(in.Params)
	if err != nil {
		return "", fmt.Errorf("failed to encode run params: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		run := RunRecord{
			ID:        runID,
			PlanDate:  in.PlanDate,
			CreatedAt: time.Now().UTC(),
			Params:    datatypes.JSON(params),
		}
		if err := tx.Create(&run).Error; err != nil {
			return fmt.Errorf("failed to create run record: %w", err)
		}
		for _, r := range in.Schedule {
			row := ScheduleRow{
				RunID:         runID,
				Date:          r.Date,
				LineID:        string(r.Line),
				SKU:           string(r.SKU),
				PlannedCases:  int64(r.PlannedCases),
				UnmetCases:    int64(r.UnmetCases),
				PlanSource:    r.PlanSource,
				ChangeoverMin: r.ChangeoverMin,
				Flags:         r.Flags,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save schedule row: %w", err)
			}
		}
		for _, e := range in.Plan {
			row := PlanRow{
				RunID:        runID,
				Date:         e.Date,
				SKU:          string(e.SKU),
				PlannedCases: int64(e.PlannedCases),
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save plan row: %w", err)
			}
		}
		for _, p := range in.Snapshot {
			row := PolicyRow{
				RunID:     runID,
				SKU:       string(p.SKU),
				DOS:       p.DOS,
				MinDOS:    p.MinDOS,
				TargetDOS: p.TargetDOS,
				MaxDOS:    p.MaxDOS,
				Status:    p.Status.String(),
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save policy row: %w", err)
			}
		}
		for _, r := range in.Requirements {
			row := RequirementRow{
				RunID:    runID,
				Date:     r.Date,
				Material: string(r.Material),
				ReqQty:   r.ReqQty.String(),
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save requirement row: %w", err)
			}
		}
		for _, x := range in.Exceptions {
			row := ExceptionRow{
				RunID:           runID,
				Date:            x.Date,
				Material:        string(x.Material),
				ReqQty:          x.ReqQty.String(),
				AvailableQty:    x.AvailableQty.String(),
				ShortQty:        x.ShortQty.String(),
				EarliestETA:     x.EarliestETA,
				SuggestedAction: x.SuggestedAction,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save exception row: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return runID, nil
}

// LatestRun returns the most recently created run record.
func (s *Store) LatestRun() (*RunRecord, error) {
	var run RunRecord
	err := s.db.Order("created_at DESC").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest run: %w", err)
	}
	return &run, nil
}

// Schedule returns the schedule rows of a run as domain entities.
func (s *Store) Schedule(runID string) ([]entities.ScheduleAssignment, error) {
	var rows []ScheduleRow
	if err := s.db.Where("run_id = ?", runID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load schedule rows: %w", err)
	}
	out := make([]entities.ScheduleAssignment, len(rows))
	for i, r := range rows {
		out[i] = entities.ScheduleAssignment{
			Date:          r.Date,
			Line:          entities.LineID(r.LineID),
			SKU:           entities.SKUCode(r.SKU),
			PlannedCases:  entities.Cases(r.PlannedCases),
			UnmetCases:    entities.Cases(r.UnmetCases),
			PlanSource:    r.PlanSource,
			ChangeoverMin: r.ChangeoverMin,
			Flags:         r.Flags,
		}
	}
	return out, nil
}

// Plan returns the plan rows of a run as domain entities.
func (s *Store) Plan(runID string) ([]entities.PlanEntry, error) {
	var rows []PlanRow
	if err := s.db.Where("run_id = ?", runID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load plan rows: %w", err)
	}
	out := make([]entities.PlanEntry, len(rows))
	for i, r := range rows {
		out[i] = entities.PlanEntry{
			Date:         r.Date,
			SKU:          entities.SKUCode(r.SKU),
			PlannedCases: entities.Cases(r.PlannedCases),
		}
	}
	return out, nil
}

// PolicySnapshot returns the policy rows of a run as domain entities.
func (s *Store) PolicySnapshot(runID string) ([]entities.PolicySnapshot, error) {
	var rows []PolicyRow
	if err := s.db.Where("run_id = ?", runID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load policy rows: %w", err)
	}
	out := make([]entities.PolicySnapshot, len(rows))
	for i, r := range rows {
		status, err := entities.ParsePolicyStatus(r.Status)
		if err != nil {
			return nil, fmt.Errorf("corrupt policy row %d: %w", r.ID, err)
		}
		out[i] = entities.PolicySnapshot{
			SKU:       entities.SKUCode(r.SKU),
			DOS:       r.DOS,
			MinDOS:    r.MinDOS,
			TargetDOS: r.TargetDOS,
			MaxDOS:    r.MaxDOS,
			Status:    status,
		}
	}
	return out, nil
}

// Requirements returns the requirement rows of a run as domain entities.
func (s *Store) Requirements(runID string) ([]entities.MaterialRequirement, error) {
	var rows []RequirementRow
	if err := s.db.Where("run_id = ?", runID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load requirement rows: %w", err)
	}
	out := make([]entities.MaterialRequirement, len(rows))
	for i, r := range rows {
		qty, err := decimal.NewFromString(r.ReqQty)
		if err != nil {
			return nil, fmt.Errorf("corrupt requirement row %d: %w", r.ID, err)
		}
		out[i] = entities.MaterialRequirement{
			Date:     r.Date,
			Material: entities.MaterialCode(r.Material),
			ReqQty:   qty,
		}
	}
	return out, nil
}

// Exceptions returns the exception rows of a run as domain entities.
func (s *Store) Exceptions(runID string) ([]entities.ShortageException, error) {
	var rows []ExceptionRow
	if err := s.db.Where("run_id = ?", runID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load exception rows: %w", err)
	}
	out := make([]entities.ShortageException, len(rows))
	for i, r := range rows {
		req, err := decimal.NewFromString(r.ReqQty)
		if err != nil {
			return nil, fmt.Errorf("corrupt exception row %d: %w", r.ID, err)
		}
		avail, err := decimal.NewFromString(r.AvailableQty)
		if err != nil {
			return nil, fmt.Errorf("corrupt exception row %d: %w", r.ID, err)
		}
		short, err := decimal.NewFromString(r.ShortQty)
		if err != nil {
			return nil, fmt.Errorf("corrupt exception row %d: %w", r.ID, err)
		}
		out[i] = entities.ShortageException{
			Date:            r.Date,
			Material:        entities.MaterialCode(r.Material),
			ReqQty:          req,
			AvailableQty:    avail,
			ShortQty:        short,
			EarliestETA:     r.EarliestETA,
			SuggestedAction: r.SuggestedAction,
		}
	}
	return out, nil
}
