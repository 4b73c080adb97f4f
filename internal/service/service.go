package service

import (
	"context"
	"fmt"
	"io"

	"thermal_planner/internal/catalog"
	"thermal_planner/internal/config"
	"thermal_planner/internal/logger"
	"thermal_planner/internal/models"
	"thermal_planner/internal/repository"
	"thermal_planner/internal/simulation"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Planner owns the building being edited.
type Planner interface {
	Document(ctx context.Context) models.BuildingDocument
	Reset(ctx context.Context) models.BuildingDocument
	CreateInitialRoom(ctx context.Context, p InitialRoomParams) (Mutation, error)
	AddRoomToWall(ctx context.Context, wallID string, depth float64, name string) (Mutation, error)
	DeleteRoom(ctx context.Context, roomID string) (Mutation, error)
	RenameRoom(ctx context.Context, roomID, name string) (Mutation, error)
	AddOpening(ctx context.Context, wallID string, p OpeningParams) (Mutation, error)
	SetWallMaterial(ctx context.Context, wallID, materialKey string) (Mutation, error)
	AddHVAC(ctx context.Context, roomID, presetKey string) (Mutation, error)
	RemoveHVAC(ctx context.Context, roomID, deviceID string) (Mutation, error)
	WallByDirection(ctx context.Context, roomID, direction string) (models.WallDocument, error)
	Catalog(f catalog.Filter) catalog.Listing
}

// Simulation runs thermal scenarios against a frozen copy of the current building.
type Simulation interface {
	DefaultParams() RunParams
	Run(ctx context.Context, p RunParams) (simulation.Report, error)
	ExportCSV(ctx context.Context, p RunParams, w io.Writer) error
	Start(ctx context.Context, p RunParams) (ProgressStream, error)
	Runs(ctx context.Context, limit int) ([]models.SimulationRun, error)
}

// ProgressStream advances a simulation chunk by chunk.
type ProgressStream interface {
	Next(ctx context.Context) (Progress, error)
	Done() bool
	Finish(ctx context.Context) (simulation.Report, error)
}

// Projects saves and restores named building plans.
type Projects interface {
	SaveProject(ctx context.Context, name string) (models.ProjectInfo, error)
	LoadProject(ctx context.Context, name string) (models.BuildingDocument, error)
	ListProjects(ctx context.Context) ([]models.ProjectInfo, error)
	DeleteProject(ctx context.Context, name string) error
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.Event, error)
}

type Service struct {
	Planner
	Simulation
	Projects
	EventLog
	Authorization
}

// Deps are the non-repository collaborators of the services.
type Deps struct {
	Catalog *catalog.Catalog
	Config  config.Config
	Log     *logger.Logger
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, deps Deps) (*Service, error) {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	events := eventRecorder{repo: repos.EventRepo, log: deps.Log}

	planner, err := NewPlannerService(deps.Catalog, deps.Config.Building.DefaultMaterial, events, deps.Log)
	if err != nil {
		return nil, fmt.Errorf("init planner: %w", err)
	}

	return &Service{
		Planner:       planner,
		Simulation:    NewSimulationService(planner, repos.RunRepo, deps.Config.Simulation, events, deps.Log),
		Projects:      NewProjectService(planner, repos.ProjectRepo, events, deps.Log),
		EventLog:      NewEventLogService(repos.EventRepo),
		Authorization: NewAuthService(repos.Auth, deps.Config.Auth.SigningKey, deps.Config.Auth.TokenTTL),
	}, nil
}
