package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"thermal_planner/internal/service"
	"thermal_planner/internal/simulation"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 500
)

// profileRequest is the wire form of a room control profile. Mode defaults to THERMOSTAT and
// target_temp to 21 °C.
type profileRequest struct {
	Mode            string   `json:"mode,omitempty" example:"THERMOSTAT"`
	TargetTemp      *float64 `json:"target_temp,omitempty" example:"21"`
	CycleOnHours    float64  `json:"cycle_on_hours,omitempty"`
	CycleOffHours   float64  `json:"cycle_off_hours,omitempty"`
	TimeOffsetHours float64  `json:"time_offset_hours,omitempty"`
}

func (r profileRequest) toProfile() (simulation.RoomControlProfile, error) {
	p := simulation.DefaultProfile()
	if r.Mode != "" {
		mode, err := simulation.ParseControlMode(r.Mode)
		if err != nil {
			return simulation.RoomControlProfile{}, err
		}
		p.Mode = mode
	}
	if r.TargetTemp != nil {
		p.TargetTemp = *r.TargetTemp
	}
	p.CycleOnHours = r.CycleOnHours
	p.CycleOffHours = r.CycleOffHours
	p.TimeOffsetHours = r.TimeOffsetHours
	return p, nil
}

// runRequest overrides the configured scenario; omitted fields keep their defaults.
type runRequest struct {
	StartTemp      *float64                  `json:"start_temp,omitempty" example:"20"`
	TMin           *float64                  `json:"t_min,omitempty" example:"-5"`
	TMax           *float64                  `json:"t_max,omitempty" example:"5"`
	InternalGain   *float64                  `json:"internal_gain,omitempty" example:"100"`
	Hours          *float64                  `json:"hours,omitempty" example:"24"`
	DtSeconds      *float64                  `json:"dt_seconds,omitempty" example:"60"`
	Profiles       map[string]profileRequest `json:"profiles,omitempty"`
	DefaultProfile *profileRequest           `json:"default_profile,omitempty"`
	Tariff         *float64                  `json:"tariff,omitempty" example:"0.3"`
	Project        string                    `json:"project,omitempty" example:"villa"`
}

func setIf(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func (r runRequest) toParams(p service.RunParams) (service.RunParams, error) {
	setIf(&p.StartTemp, r.StartTemp)
	setIf(&p.TMin, r.TMin)
	setIf(&p.TMax, r.TMax)
	setIf(&p.InternalGain, r.InternalGain)
	setIf(&p.Hours, r.Hours)
	setIf(&p.DtSeconds, r.DtSeconds)
	setIf(&p.Tariff, r.Tariff)
	p.Project = r.Project

	if r.DefaultProfile != nil {
		def, err := r.DefaultProfile.toProfile()
		if err != nil {
			return p, fmt.Errorf("default_profile: %w", err)
		}
		p.DefaultProfile = &def
	}
	if len(r.Profiles) > 0 {
		p.Profiles = make(map[string]simulation.RoomControlProfile, len(r.Profiles))
		for id, pr := range r.Profiles {
			prof, err := pr.toProfile()
			if err != nil {
				return p, fmt.Errorf("profile %q: %w", id, err)
			}
			p.Profiles[id] = prof
		}
	}
	return p, nil
}

// bindRunParams merges the optional JSON body into the configured defaults.
// Returns false if the request was already answered.
func (h *Handler) bindRunParams(c *gin.Context) (service.RunParams, bool) {
	var req runRequest
	if c.Request.ContentLength != 0 {
		if !h.bindJSONOrBadRequest(c, &req) {
			return service.RunParams{}, false
		}
	}
	p, err := req.toParams(h.services.DefaultParams())
	if err != nil {
		h.respondError(c, "simulation_bad_params", err)
		return service.RunParams{}, false
	}
	return p, true
}

// @Summary      Simulation defaults
// @Tags         simulation
// @Produce      json
// @Success      200  {object}  service.RunParams
// @Router       /api/v1/simulation/defaults [get]
// @Security     BearerAuth
func (h *Handler) simulationDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.DefaultParams())
}

// @Summary      Run simulation
// @Description  Simulates a frozen copy of the current building. Rooms without a profile use default_profile.
// @Tags         simulation
// @Accept       json
// @Produce      json
// @Param        body  body      runRequest  false  "Scenario overrides"
// @Success      200   {object}  simulation.Report
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/simulation/run [post]
// @Security     BearerAuth
func (h *Handler) runSimulation(c *gin.Context) {
	p, ok := h.bindRunParams(c)
	if !ok {
		return
	}
	rep, err := h.services.Simulation.Run(c.Request.Context(), p)
	if err != nil {
		h.respondError(c, "simulation_run_failed", err, "hours", p.Hours, "dt_seconds", p.DtSeconds)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// @Summary      Export simulation as CSV
// @Tags         simulation
// @Accept       json
// @Produce      text/csv
// @Param        body  body      runRequest  false  "Scenario overrides"
// @Success      200   {string}  string  "time_h,outdoor_c,<room> (<id>)..."
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/simulation/export.csv [post]
// @Security     BearerAuth
func (h *Handler) exportCSV(c *gin.Context) {
	p, ok := h.bindRunParams(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.services.ExportCSV(c.Request.Context(), p, &buf); err != nil {
		h.respondError(c, "simulation_export_failed", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="simulation.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// @Summary      Recent simulation runs
// @Tags         simulation
// @Produce      json
// @Param        limit  query     int  false  "Max runs (1-500)"  default(20)
// @Success      200    {object}  map[string]interface{}  "count, runs"
// @Failure      400    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/simulation/runs [get]
// @Security     BearerAuth
func (h *Handler) listRuns(c *gin.Context) {
	limit := defaultRunsLimit
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 || v > maxRunsLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("limit must be an integer in [1, %d]", maxRunsLimit)})
			return
		}
		limit = v
	}
	runs, err := h.services.Runs(c.Request.Context(), limit)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load runs", "simulation_runs_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(runs), "runs": runs})
}
