package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"thermal_planner/internal/building"
	"thermal_planner/internal/config"
	"thermal_planner/internal/logger"
	"thermal_planner/internal/models"
	"thermal_planner/internal/repository"
	"thermal_planner/internal/simulation"
)

var (
	ErrInvalidParams  = errors.New("invalid parameters")
	ErrStreamFinished = errors.New("simulation stream already finished")
)

// maxSteps bounds the work of a single request.
const maxSteps = 2_000_000

// ctxCheckEvery is how many steps run between context checks.
const ctxCheckEvery = 1024

// buildingSource hands out frozen copies of the edited building.
type buildingSource interface {
	Snapshot() (*building.Building, error)
}

type SimulationService struct {
	source buildingSource
	runs   repository.RunRepo
	cfg    config.SimulationConfig

	events eventRecorder
	log    *logger.Logger
	now    func() time.Time
}

func NewSimulationService(source buildingSource, runs repository.RunRepo, cfg config.SimulationConfig, events eventRecorder, log *logger.Logger) *SimulationService {
	if log == nil {
		log = logger.Nop()
	}
	return &SimulationService{
		source: source,
		runs:   runs,
		cfg:    cfg,
		events: events,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// DefaultParams returns a scenario built from the configured defaults.
func (s *SimulationService) DefaultParams() RunParams {
	def := simulation.DefaultProfile()
	return RunParams{
		StartTemp:      s.cfg.StartTemp,
		TMin:           s.cfg.TMin,
		TMax:           s.cfg.TMax,
		InternalGain:   s.cfg.InternalGain,
		Hours:          s.cfg.Hours,
		DtSeconds:      s.cfg.DtSeconds,
		DefaultProfile: &def,
		Tariff:         s.cfg.Tariff,
		ChunkHours:     s.cfg.StreamChunkHours,
	}
}

func (s *SimulationService) validate(p RunParams) error {
	if p.DtSeconds <= 0 {
		return fmt.Errorf("%w: dt_seconds must be > 0", ErrInvalidParams)
	}
	if p.Hours < 0 {
		return fmt.Errorf("%w: hours cannot be negative", ErrInvalidParams)
	}
	if s.cfg.MaxHours > 0 && p.Hours > s.cfg.MaxHours {
		return fmt.Errorf("%w: hours %v exceeds the limit of %v", ErrInvalidParams, p.Hours, s.cfg.MaxHours)
	}
	if n := simulation.Steps(p.Hours, p.DtSeconds); n > maxSteps {
		return fmt.Errorf("%w: %d steps requested, limit is %d", ErrInvalidParams, n, maxSteps)
	}
	if p.Tariff < 0 {
		return fmt.Errorf("%w: tariff cannot be negative", ErrInvalidParams)
	}
	if p.ChunkHours < 0 {
		return fmt.Errorf("%w: chunk_hours cannot be negative", ErrInvalidParams)
	}
	return nil
}

// prepare snapshots the building and initializes a simulation over it. Rooms without a
// profile in p get p.DefaultProfile, or the built-in profile when it is nil.
func (s *SimulationService) prepare(p RunParams) (*simulation.ThermalSimulation, error) {
	if err := s.validate(p); err != nil {
		return nil, err
	}
	b, err := s.source.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("snapshot building: %w", err)
	}
	if b.RoomCount() == 0 {
		return nil, fmt.Errorf("%w: building has no rooms", ErrInvalidParams)
	}

	def := simulation.DefaultProfile()
	if p.DefaultProfile != nil {
		def = *p.DefaultProfile
	}
	profiles := make(map[string]simulation.RoomControlProfile, b.RoomCount())
	for _, r := range b.Rooms() {
		if prof, ok := p.Profiles[r.ID()]; ok {
			profiles[r.ID()] = prof
		} else {
			profiles[r.ID()] = def
		}
	}

	sim := simulation.New(b)
	if err := sim.Initialize(p.StartTemp, profiles, p.TMin, p.TMax, p.InternalGain); err != nil {
		return nil, err
	}
	return sim, nil
}

// advance runs n steps, checking ctx every few steps.
func advance(ctx context.Context, sim *simulation.ThermalSimulation, n int, dt float64) error {
	for i := 0; i < n; i++ {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := sim.Step(dt); err != nil {
			return err
		}
	}
	return nil
}

// Run executes the whole scenario and returns its report. The run summary is persisted.
func (s *SimulationService) Run(ctx context.Context, p RunParams) (simulation.Report, error) {
	started := s.now()
	sim, err := s.prepare(p)
	if err != nil {
		s.log.Infow("simulation_rejected", "err", err)
		return simulation.Report{}, err
	}
	if err := advance(ctx, sim, simulation.Steps(p.Hours, p.DtSeconds), p.DtSeconds); err != nil {
		s.log.Warnw("simulation_run_failed", "err", err)
		return simulation.Report{}, err
	}
	return s.complete(ctx, sim, p, started)
}

// ExportCSV executes the scenario and writes its history as CSV.
func (s *SimulationService) ExportCSV(ctx context.Context, p RunParams, w io.Writer) error {
	started := s.now()
	sim, err := s.prepare(p)
	if err != nil {
		return err
	}
	if err := advance(ctx, sim, simulation.Steps(p.Hours, p.DtSeconds), p.DtSeconds); err != nil {
		return err
	}
	if _, err := s.complete(ctx, sim, p, started); err != nil {
		return err
	}
	return sim.WriteCSV(w)
}

// complete builds the report, stores the run and records the event.
func (s *SimulationService) complete(ctx context.Context, sim *simulation.ThermalSimulation, p RunParams, started time.Time) (simulation.Report, error) {
	rep, err := sim.Report()
	if err != nil {
		return simulation.Report{}, err
	}
	rep.ApplyTariff(p.Tariff)

	run := models.SimulationRun{
		ID:        uuid.NewString(),
		Project:   p.Project,
		StartedAt: started,
		Hours:     rep.ElapsedHours,
		DtSeconds: p.DtSeconds,
		Rooms:     len(rep.Summaries),
		TotalKWh:  rep.TotalEnergyKWh,
		Summary:   rep.Summaries,
	}
	if s.runs != nil {
		if err := s.runs.Append(ctx, run); err != nil {
			// the report is still useful without its history entry
			s.log.Warnw("simulation_run_persist_failed", "run_id", run.ID, "err", err)
		}
	}

	s.log.Infow("simulation_completed",
		"run_id", run.ID,
		"hours", run.Hours,
		"dt_seconds", run.DtSeconds,
		"rooms", run.Rooms,
		"total_kwh", run.TotalKWh,
		"total_cost", rep.TotalCost,
	)
	s.events.record(ctx, models.EventSimulation, "Simulation completed", map[string]any{
		"run_id":    run.ID,
		"hours":     run.Hours,
		"rooms":     run.Rooms,
		"total_kwh": run.TotalKWh,
	})
	return rep, nil
}

func (s *SimulationService) Runs(ctx context.Context, limit int) ([]models.SimulationRun, error) {
	if s.runs == nil {
		return []models.SimulationRun{}, nil
	}
	return s.runs.List(ctx, limit)
}

// Start prepares a scenario that the caller advances chunk by chunk.
func (s *SimulationService) Start(_ context.Context, p RunParams) (ProgressStream, error) {
	started := s.now()
	sim, err := s.prepare(p)
	if err != nil {
		s.log.Infow("simulation_rejected", "err", err)
		return nil, err
	}
	chunkHours := p.ChunkHours
	if chunkHours == 0 {
		chunkHours = s.cfg.StreamChunkHours
	}
	chunk := simulation.Steps(chunkHours, p.DtSeconds)
	if chunk < 1 {
		chunk = 1
	}
	return &simulationStream{
		svc:     s,
		sim:     sim,
		params:  p,
		started: started,
		total:   simulation.Steps(p.Hours, p.DtSeconds),
		chunk:   chunk,
	}, nil
}

// simulationStream is a ProgressStream over one prepared simulation. Not safe for concurrent use.
type simulationStream struct {
	svc     *SimulationService
	sim     *simulation.ThermalSimulation
	params  RunParams
	started time.Time

	total, chunk, done int
	finished           bool
}

func (st *simulationStream) Done() bool { return st.done >= st.total }

// Next advances one chunk and reports the state reached.
func (st *simulationStream) Next(ctx context.Context) (Progress, error) {
	if st.finished || st.Done() {
		return Progress{}, ErrStreamFinished
	}
	n := min(st.chunk, st.total-st.done)
	if err := advance(ctx, st.sim, n, st.params.DtSeconds); err != nil {
		return Progress{}, err
	}
	st.done += n
	return st.progress(), nil
}

func (st *simulationStream) progress() Progress {
	elapsed := st.sim.ElapsedSeconds()
	return Progress{
		ElapsedHours:   elapsed / 3600,
		TotalHours:     float64(st.total) * st.params.DtSeconds / 3600,
		Outdoor:        st.sim.OutdoorTemperature(elapsed),
		Temperatures:   st.sim.Temperatures(),
		TotalEnergyKWh: st.sim.TotalEnergyKWh(),
	}
}

// Finish reports what has been simulated so far and stores the run. It can be called once.
func (st *simulationStream) Finish(ctx context.Context) (simulation.Report, error) {
	if st.finished {
		return simulation.Report{}, ErrStreamFinished
	}
	st.finished = true
	return st.svc.complete(ctx, st.sim, st.params, st.started)
}
