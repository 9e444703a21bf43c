// Package httpapi exposes a read-only view of the latest planning run over
// HTTP. It serves from the run store; it never triggers planning itself.
package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/plantops/replan/pkg/infrastructure/store"
)

const dateLayout = "2006-01-02"

// Server serves planning results from the run store.
type Server struct {
	store *store.Store
}

// NewServer creates a server over the given store.
func NewServer(st *store.Store) *Server {
	return &Server{store: st}
}

// Echo builds the configured echo instance with all routes registered.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/health", s.Health)
	e.GET("/runs/latest", s.LatestRun)

	g := e.Group("/runs/latest")
	g.GET("/schedule", s.Schedule)
	g.GET("/plan", s.Plan)
	g.GET("/policy", s.Policy)
	g.GET("/mrp/requirements", s.Requirements)
	g.GET("/mrp/exceptions", s.Exceptions)
	return e
}

// Health reports liveness.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type runDTO struct {
	ID        string    `json:"id"`
	PlanDate  string    `json:"plan_date"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) latest(c echo.Context) (*store.RunRecord, error) {
	run, err := s.store.LatestRun()
	if errors.Is(err, store.ErrNoRuns) {
		return nil, echo.NewHTTPError(http.StatusNotFound, "no planning runs recorded yet")
	}
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return run, nil
}

// LatestRun returns the most recent run record.
func (s *Server) LatestRun(c echo.Context) error {
	run, err := s.latest(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, runDTO{
		ID:        run.ID,
		PlanDate:  run.PlanDate.Format(dateLayout),
		CreatedAt: run.CreatedAt,
	})
}

type scheduleRowDTO struct {
	Date          string `json:"date"`
	LineID        string `json:"line_id"`
	SKU           string `json:"sku"`
	PlannedCases  int64  `json:"planned_qty_cases"`
	UnmetCases    int64  `json:"unmet_qty_cases"`
	PlanSource    string `json:"plan_source"`
	ChangeoverMin int    `json:"changeover_min"`
	Flags         string `json:"flags,omitempty"`
}

// Schedule returns the latest run's production schedule.
func (s *Server) Schedule(c echo.Context) error {
	run, err := s.latest(c)
	if err != nil {
		return err
	}
	rows, err := s.store.Schedule(run.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	out := make([]scheduleRowDTO, len(rows))
	for i, r := range rows {
		out[i] = scheduleRowDTO{
			Date:          r.Date.Format(dateLayout),
			LineID:        string(r.Line),
			SKU:           string(r.SKU),
			PlannedCases:  int64(r.PlannedCases),
			UnmetCases:    int64(r.UnmetCases),
			PlanSource:    r.PlanSource,
			ChangeoverMin: r.ChangeoverMin,
			Flags:         r.Flags,
		}
	}
	return c.JSON(http.StatusOK, out)
}

type planRowDTO struct {
	Date         string `json:"date"`
	SKU          string `json:"sku"`
	PlannedCases int64  `json:"planned_qty_cases"`
}

// Plan returns the latest run's planned production by SKU and day.
func (s *Server) Plan(c echo.Context) error {
	run, err := s.latest(c)
	if err != nil {
		return err
	}
	rows, err := s.store.Plan(run.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	out := make([]planRowDTO, len(rows))
	for i, r := range rows {
		out[i] = planRowDTO{
			Date:         r.Date.Format(dateLayout),
			SKU:          string(r.SKU),
			PlannedCases: int64(r.PlannedCases),
		}
	}
	return c.JSON(http.StatusOK, out)
}

type policyRowDTO struct {
	SKU       string  `json:"sku"`
	DOS       float64 `json:"dos"`
	MinDOS    float64 `json:"min_dos"`
	TargetDOS float64 `json:"target_dos"`
	MaxDOS    float64 `json:"max_dos"`
	Status    string  `json:"status"`
}

// Policy returns the latest run's inventory policy snapshot.
func (s *Server) Policy(c echo.Context) error {
	run, err := s.latest(c)
	if err != nil {
		return err
	}
	rows, err := s.store.PolicySnapshot(run.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	out := make([]policyRowDTO, len(rows))
	for i, r := range rows {
		out[i] = policyRowDTO{
			SKU:       string(r.SKU),
			DOS:       r.DOS,
			MinDOS:    r.MinDOS,
			TargetDOS: r.TargetDOS,
			MaxDOS:    r.MaxDOS,
			Status:    r.Status.String(),
		}
	}
	return c.JSON(http.StatusOK, out)
}

type requirementDTO struct {
	Date     string `json:"date"`
	Material string `json:"material"`
	ReqQty   string `json:"req_qty"`
}

// Requirements returns the latest run's dated material requirements.
func (s *Server) Requirements(c echo.Context) error {
	run, err := s.latest(c)
	if err != nil {
		return err
	}
	rows, err := s.store.Requirements(run.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	out := make([]requirementDTO, len(rows))
	for i, r := range rows {
		out[i] = requirementDTO{
			Date:     r.Date.Format(dateLayout),
			Material: string(r.Material),
			ReqQty:   r.ReqQty.String(),
		}
	}
	return c.JSON(http.StatusOK, out)
}

type exceptionDTO struct {
	Date            string `json:"date"`
	Material        string `json:"material"`
	ReqQty          string `json:"req_qty"`
	AvailableQty    string `json:"available_qty"`
	ShortQty        string `json:"short_qty"`
	EarliestETA     string `json:"earliest_eta,omitempty"`
	SuggestedAction string `json:"suggested_action"`
}

// Exceptions returns the latest run's material shortage exceptions.
func (s *Server) Exceptions(c echo.Context) error {
	run, err := s.latest(c)
	if err != nil {
		return err
	}
	rows, err := s.store.Exceptions(run.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	out := make([]exceptionDTO, len(rows))
	for i, r := range rows {
		dto := exceptionDTO{
			Date:            r.Date.Format(dateLayout),
			Material:        string(r.Material),
			ReqQty:          r.ReqQty.String(),
			AvailableQty:    r.AvailableQty.String(),
			ShortQty:        r.ShortQty.String(),
			SuggestedAction: r.SuggestedAction,
		}
		if r.EarliestETA != nil {
			dto.EarliestETA = r.EarliestETA.Format(dateLayout)
		}
		out[i] = dto
	}
	return c.JSON(http.StatusOK, out)
}
