package service

import (
	"context"
	"errors"
	"testing"

	"thermal_planner/internal/building"
	"thermal_planner/internal/catalog"
	"thermal_planner/internal/models"
)

func newTestPlanner(t *testing.T) (*PlannerService, *fakeEventRepo) {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	events := &fakeEventRepo{}
	p, err := NewPlannerService(c, "Brick_Red_380", eventRecorder{repo: events}, nil)
	if err != nil {
		t.Fatalf("NewPlannerService: %v", err)
	}
	return p, events
}

// seedRoom creates a 4x5x3 initial room and returns its id.
func seedRoom(t *testing.T, p *PlannerService) string {
	t.Helper()
	m, err := p.CreateInitialRoom(context.Background(), InitialRoomParams{XLen: 4, YLen: 5, Height: 3, Name: "Living"})
	if err != nil {
		t.Fatalf("CreateInitialRoom: %v", err)
	}
	return m.ID
}

func TestNewPlannerService_UnknownDefaultMaterial(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	_, err = NewPlannerService(c, "Cardboard", eventRecorder{}, nil)
	if !errors.Is(err, catalog.ErrUnknownEntry) {
		t.Fatalf("expected ErrUnknownEntry, got %v", err)
	}
}

func TestPlanner_CreateInitialRoom_UsesDefaultMaterial(t *testing.T) {
	p, events := newTestPlanner(t)
	ctx := context.Background()

	m, err := p.CreateInitialRoom(ctx, InitialRoomParams{XLen: 4, YLen: 5, Height: 3, Name: "Living"})
	if err != nil {
		t.Fatalf("CreateInitialRoom: %v", err)
	}
	if m.ID == "" {
		t.Fatalf("expected room id")
	}
	if len(m.Building.Rooms) != 1 || len(m.Building.Walls) != 4 {
		t.Fatalf("expected 1 room and 4 walls, got %d/%d", len(m.Building.Rooms), len(m.Building.Walls))
	}
	for id, w := range m.Building.Walls {
		if w.BaseMaterial.Name != "Solid red brick 380mm" {
			t.Fatalf("wall %s: unexpected material %q", id, w.BaseMaterial.Name)
		}
	}
	if got := m.Building.Rooms[m.ID].Name; got != "Living" {
		t.Fatalf("room name = %q", got)
	}

	if len(events.appended) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events.appended))
	}
	ev := events.appended[0]
	if ev.Type != models.EventBuildingChange {
		t.Fatalf("event type = %q", ev.Type)
	}
	if meta, _ := ev.Metadata.(map[string]any); meta["id"] != m.ID {
		t.Fatalf("event metadata misses room id: %#v", ev.Metadata)
	}
}

func TestPlanner_CreateInitialRoom_Errors(t *testing.T) {
	p, events := newTestPlanner(t)
	ctx := context.Background()

	_, err := p.CreateInitialRoom(ctx, InitialRoomParams{XLen: 4, YLen: 5, Height: 3, Material: "Cardboard"})
	if !errors.Is(err, catalog.ErrUnknownEntry) {
		t.Fatalf("expected ErrUnknownEntry, got %v", err)
	}
	_, err = p.CreateInitialRoom(ctx, InitialRoomParams{XLen: -1, YLen: 5, Height: 3})
	if !errors.Is(err, building.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	seedRoom(t, p)
	_, err = p.CreateInitialRoom(ctx, InitialRoomParams{XLen: 2, YLen: 2, Height: 3})
	if !errors.Is(err, ErrBuildingNotEmpty) || !errors.Is(err, building.ErrRoomOverlap) {
		t.Fatalf("expected ErrBuildingNotEmpty, got %v", err)
	}
	if len(events.appended) != 1 {
		t.Fatalf("rejected edits must not be recorded, got %d events", len(events.appended))
	}
}

func TestPlanner_AddRoomToWall(t *testing.T) {
	p, _ := newTestPlanner(t)
	ctx := context.Background()
	roomID := seedRoom(t, p)

	east, err := p.WallByDirection(ctx, roomID, "east")
	if err != nil {
		t.Fatalf("WallByDirection: %v", err)
	}
	if east.StartX != 4 || east.EndX != 4 {
		t.Fatalf("east wall should lie on x=4, got %+v", east)
	}

	m, err := p.AddRoomToWall(ctx, east.ID, 3, "Kitchen")
	if err != nil {
		t.Fatalf("AddRoomToWall: %v", err)
	}
	if len(m.Building.Rooms) != 2 || len(m.Building.Walls) != 7 {
		t.Fatalf("expected 2 rooms and 7 walls, got %d/%d", len(m.Building.Rooms), len(m.Building.Walls))
	}
	if got := m.Building.Walls[east.ID].RoomIDs; len(got) != 2 {
		t.Fatalf("shared wall should border 2 rooms, got %v", got)
	}

	if _, err := p.AddRoomToWall(ctx, east.ID, 3, ""); !errors.Is(err, building.ErrWallFull) {
		t.Fatalf("expected ErrWallFull, got %v", err)
	}
	if _, err := p.AddRoomToWall(ctx, "missing", 3, ""); !errors.Is(err, building.ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
}

func TestPlanner_WallByDirection_Errors(t *testing.T) {
	p, _ := newTestPlanner(t)
	ctx := context.Background()
	roomID := seedRoom(t, p)

	if _, err := p.WallByDirection(ctx, roomID, "up"); !errors.Is(err, building.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := p.WallByDirection(ctx, "nope", "N"); !errors.Is(err, building.ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
}

func TestPlanner_WallEdits(t *testing.T) {
	p, _ := newTestPlanner(t)
	ctx := context.Background()
	roomID := seedRoom(t, p)

	south, err := p.WallByDirection(ctx, roomID, "S")
	if err != nil {
		t.Fatalf("WallByDirection: %v", err)
	}

	m, err := p.AddOpening(ctx, south.ID, OpeningParams{Tech: "Win_Standard", Width: 1.2, Height: 1.4})
	if err != nil {
		t.Fatalf("AddOpening: %v", err)
	}
	ops := m.Building.Walls[south.ID].Openings
	if len(ops) != 1 || ops[0].ID != m.ID || ops[0].Tech.Category != "WINDOW" {
		t.Fatalf("unexpected openings: %+v", ops)
	}

	if _, err := p.AddOpening(ctx, south.ID, OpeningParams{Tech: "Portal", Width: 1, Height: 1}); !errors.Is(err, catalog.ErrUnknownEntry) {
		t.Fatalf("expected ErrUnknownEntry, got %v", err)
	}
	if _, err := p.AddOpening(ctx, south.ID, OpeningParams{Tech: "Door_Wood", Width: 0, Height: 2}); !errors.Is(err, building.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	m, err = p.SetWallMaterial(ctx, south.ID, "Aeroc_D400_300")
	if err != nil {
		t.Fatalf("SetWallMaterial: %v", err)
	}
	if got := m.Building.Walls[south.ID].BaseMaterial.Name; got != "Aerated concrete D400 300mm" {
		t.Fatalf("material = %q", got)
	}
	if _, err := p.SetWallMaterial(ctx, "missing", "Aeroc_D400_300"); !errors.Is(err, building.ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
}

func TestPlanner_HVACAndRename(t *testing.T) {
	p, _ := newTestPlanner(t)
	ctx := context.Background()
	roomID := seedRoom(t, p)

	m, err := p.AddHVAC(ctx, roomID, "AC_09")
	if err != nil {
		t.Fatalf("AddHVAC: %v", err)
	}
	devs := m.Building.Rooms[roomID].HVACDevices
	if len(devs) != 1 || devs[0].ID != m.ID || devs[0].PowerCooling != 2500 {
		t.Fatalf("unexpected devices: %+v", devs)
	}

	// a second install of the same preset is a separate device
	m2, err := p.AddHVAC(ctx, roomID, "AC_09")
	if err != nil {
		t.Fatalf("AddHVAC: %v", err)
	}
	if m2.ID == m.ID {
		t.Fatalf("expected distinct device ids")
	}

	m, err = p.RemoveHVAC(ctx, roomID, m.ID)
	if err != nil {
		t.Fatalf("RemoveHVAC: %v", err)
	}
	if got := len(m.Building.Rooms[roomID].HVACDevices); got != 1 {
		t.Fatalf("expected 1 device left, got %d", got)
	}

	m, err = p.RenameRoom(ctx, roomID, "Studio")
	if err != nil {
		t.Fatalf("RenameRoom: %v", err)
	}
	if got := m.Building.Rooms[roomID].Name; got != "Studio" {
		t.Fatalf("name = %q", got)
	}
	if _, err := p.RenameRoom(ctx, roomID, "  "); !errors.Is(err, building.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPlanner_SnapshotIsIsolated(t *testing.T) {
	p, _ := newTestPlanner(t)
	ctx := context.Background()
	roomID := seedRoom(t, p)

	snap, err := p.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if _, err := p.DeleteRoom(ctx, roomID); err != nil {
		t.Fatalf("DeleteRoom: %v", err)
	}

	if got := len(p.Document(ctx).Rooms); got != 0 {
		t.Fatalf("expected empty building, got %d rooms", got)
	}
	if snap.RoomCount() != 1 || snap.WallCount() != 4 {
		t.Fatalf("snapshot changed: %d rooms, %d walls", snap.RoomCount(), snap.WallCount())
	}
}

func TestPlanner_Reset(t *testing.T) {
	p, events := newTestPlanner(t)
	ctx := context.Background()
	seedRoom(t, p)

	doc := p.Reset(ctx)
	if len(doc.Rooms) != 0 || len(doc.Walls) != 0 {
		t.Fatalf("expected empty document, got %+v", doc)
	}
	if last := events.appended[len(events.appended)-1]; last.Description != "Building reset" {
		t.Fatalf("unexpected last event %+v", last)
	}
	// a fresh initial room is accepted again
	seedRoom(t, p)
}

func TestPlanner_Catalog(t *testing.T) {
	p, _ := newTestPlanner(t)
	l := p.Catalog(catalog.Filter{})
	if len(l.Materials) == 0 || len(l.Openings) == 0 || len(l.HVAC) == 0 {
		t.Fatalf("catalog listing is empty: %+v", l)
	}

	umax := 0.3
	l = p.Catalog(catalog.Filter{UMax: &umax, Query: "aerated"})
	if len(l.Materials) == 0 || len(l.HVAC) != 0 {
		t.Fatalf("unexpected filtered listing: %+v", l)
	}
	for _, m := range l.Materials {
		if m.U > umax {
			t.Fatalf("%s has U %v above %v", m.Key, m.U, umax)
		}
	}
}
