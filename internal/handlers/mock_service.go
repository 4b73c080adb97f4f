package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"thermal_planner/internal/catalog"
	"thermal_planner/internal/models"
	"thermal_planner/internal/service"
	"thermal_planner/internal/simulation"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

// mockPlanner returns the same mutation (or error) from every edit and records the last call.
type mockPlanner struct {
	doc      models.BuildingDocument
	mutation service.Mutation
	wall     models.WallDocument
	listing  catalog.Listing
	filter   catalog.Filter
	err      error

	lastCall string
	lastArgs []any
	resets   int
}

func (m *mockPlanner) record(call string, args ...any) {
	m.lastCall = call
	m.lastArgs = args
}

func (m *mockPlanner) Document(ctx context.Context) models.BuildingDocument { return m.doc }
func (m *mockPlanner) Reset(ctx context.Context) models.BuildingDocument {
	m.resets++
	return models.BuildingDocument{}
}
func (m *mockPlanner) CreateInitialRoom(ctx context.Context, p service.InitialRoomParams) (service.Mutation, error) {
	m.record("CreateInitialRoom", p)
	return m.mutation, m.err
}
func (m *mockPlanner) AddRoomToWall(ctx context.Context, wallID string, depth float64, name string) (service.Mutation, error) {
	m.record("AddRoomToWall", wallID, depth, name)
	return m.mutation, m.err
}
func (m *mockPlanner) DeleteRoom(ctx context.Context, roomID string) (service.Mutation, error) {
	m.record("DeleteRoom", roomID)
	return m.mutation, m.err
}
func (m *mockPlanner) RenameRoom(ctx context.Context, roomID, name string) (service.Mutation, error) {
	m.record("RenameRoom", roomID, name)
	return m.mutation, m.err
}
func (m *mockPlanner) AddOpening(ctx context.Context, wallID string, p service.OpeningParams) (service.Mutation, error) {
	m.record("AddOpening", wallID, p)
	return m.mutation, m.err
}
func (m *mockPlanner) SetWallMaterial(ctx context.Context, wallID, materialKey string) (service.Mutation, error) {
	m.record("SetWallMaterial", wallID, materialKey)
	return m.mutation, m.err
}
func (m *mockPlanner) AddHVAC(ctx context.Context, roomID, presetKey string) (service.Mutation, error) {
	m.record("AddHVAC", roomID, presetKey)
	return m.mutation, m.err
}
func (m *mockPlanner) RemoveHVAC(ctx context.Context, roomID, deviceID string) (service.Mutation, error) {
	m.record("RemoveHVAC", roomID, deviceID)
	return m.mutation, m.err
}
func (m *mockPlanner) WallByDirection(ctx context.Context, roomID, direction string) (models.WallDocument, error) {
	m.record("WallByDirection", roomID, direction)
	return m.wall, m.err
}
func (m *mockPlanner) Catalog(f catalog.Filter) catalog.Listing {
	m.filter = f
	return m.listing
}

type mockSimulation struct {
	defaults service.RunParams
	report   simulation.Report
	csv      string
	runs     []models.SimulationRun
	stream   *mockStream
	err      error

	lastParams service.RunParams
	lastLimit  int
}

func (m *mockSimulation) DefaultParams() service.RunParams { return m.defaults }
func (m *mockSimulation) Run(ctx context.Context, p service.RunParams) (simulation.Report, error) {
	m.lastParams = p
	return m.report, m.err
}
func (m *mockSimulation) ExportCSV(ctx context.Context, p service.RunParams, w io.Writer) error {
	m.lastParams = p
	if m.err != nil {
		return m.err
	}
	_, err := io.WriteString(w, m.csv)
	return err
}
func (m *mockSimulation) Start(ctx context.Context, p service.RunParams) (service.ProgressStream, error) {
	m.lastParams = p
	if m.err != nil {
		return nil, m.err
	}
	return m.stream, nil
}
func (m *mockSimulation) Runs(ctx context.Context, limit int) ([]models.SimulationRun, error) {
	m.lastLimit = limit
	return m.runs, m.err
}

// mockStream yields the given frames in order, then finishes with report.
type mockStream struct {
	frames    []service.Progress
	report    simulation.Report
	nextErr   error
	finishErr error

	next     int
	finishes int
}

func (s *mockStream) Done() bool { return s.next >= len(s.frames) }
func (s *mockStream) Next(ctx context.Context) (service.Progress, error) {
	if s.nextErr != nil {
		return service.Progress{}, s.nextErr
	}
	p := s.frames[s.next]
	s.next++
	return p, nil
}
func (s *mockStream) Finish(ctx context.Context) (simulation.Report, error) {
	s.finishes++
	return s.report, s.finishErr
}

type mockProjects struct {
	info     models.ProjectInfo
	doc      models.BuildingDocument
	projects []models.ProjectInfo
	err      error

	lastName string
}

func (m *mockProjects) SaveProject(ctx context.Context, name string) (models.ProjectInfo, error) {
	m.lastName = name
	return m.info, m.err
}
func (m *mockProjects) LoadProject(ctx context.Context, name string) (models.BuildingDocument, error) {
	m.lastName = name
	return m.doc, m.err
}
func (m *mockProjects) ListProjects(ctx context.Context) ([]models.ProjectInfo, error) {
	return m.projects, m.err
}
func (m *mockProjects) DeleteProject(ctx context.Context, name string) error {
	m.lastName = name
	return m.err
}

type mockEventLog struct {
	resp     []models.Event
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.Event, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
