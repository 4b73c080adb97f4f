package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"thermal_planner/internal/building"
	"thermal_planner/internal/catalog"
	"thermal_planner/internal/logger"
	"thermal_planner/internal/models"
)

// ErrBuildingNotEmpty is returned when an initial room is requested for a building that has rooms.
var ErrBuildingNotEmpty = fmt.Errorf("%w: building already has rooms, reset it first", building.ErrRoomOverlap)

// PlannerService owns the single building being edited. Writers take the lock exclusively;
// readers and simulation snapshots share it.
type PlannerService struct {
	mu       sync.RWMutex
	b        *building.Building
	catalog  *catalog.Catalog
	material *building.Material // default wall construction

	events eventRecorder
	log    *logger.Logger
}

func NewPlannerService(c *catalog.Catalog, defaultMaterial string, events eventRecorder, log *logger.Logger) (*PlannerService, error) {
	if c == nil {
		return nil, errors.New("catalog is required")
	}
	m, err := c.Material(defaultMaterial)
	if err != nil {
		return nil, fmt.Errorf("default material: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PlannerService{
		b:        building.New(),
		catalog:  c,
		material: m,
		events:   events,
		log:      log,
	}, nil
}

func (s *PlannerService) Catalog(f catalog.Filter) catalog.Listing { return s.catalog.List(f) }

func (s *PlannerService) Document(_ context.Context) models.BuildingDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return building.ToDocument(s.b)
}

// Snapshot returns a deep copy of the building that later edits cannot reach.
func (s *PlannerService) Snapshot() (*building.Building, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return building.Clone(s.b)
}

// Replace swaps in a whole building, e.g. one restored from a project.
func (s *PlannerService) Replace(ctx context.Context, b *building.Building, reason string) models.BuildingDocument {
	s.mu.Lock()
	s.b = b
	doc := building.ToDocument(b)
	s.mu.Unlock()

	s.log.Infow("building_replaced", "reason", reason, "rooms", b.RoomCount(), "walls", b.WallCount())
	return doc
}

func (s *PlannerService) Reset(ctx context.Context) models.BuildingDocument {
	doc := s.Replace(ctx, building.New(), "reset")
	s.events.record(ctx, models.EventBuildingChange, "Building reset", nil)
	return doc
}

// mutate runs fn under the write lock and returns the resulting document. Successful edits are
// logged and recorded as events.
func (s *PlannerService) mutate(ctx context.Context, action string, meta map[string]any, fn func(b *building.Building) (string, error)) (Mutation, error) {
	s.mu.Lock()
	id, err := fn(s.b)
	var doc models.BuildingDocument
	if err == nil {
		doc = building.ToDocument(s.b)
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Infow("building_change_rejected", "action", action, "err", err)
		return Mutation{}, err
	}
	if id != "" {
		meta["id"] = id
	}
	s.log.Infow("building_changed", "action", action, "id", id)
	s.events.record(ctx, models.EventBuildingChange, action, meta)
	return Mutation{ID: id, Building: doc}, nil
}

func (s *PlannerService) CreateInitialRoom(ctx context.Context, p InitialRoomParams) (Mutation, error) {
	m := s.material
	if p.Material != "" {
		var err error
		if m, err = s.catalog.Material(p.Material); err != nil {
			return Mutation{}, err
		}
	}
	meta := map[string]any{"x_len": p.XLen, "y_len": p.YLen, "height": p.Height, "material": m.Name}
	return s.mutate(ctx, "initial room created", meta, func(b *building.Building) (string, error) {
		if b.RoomCount() > 0 {
			return "", ErrBuildingNotEmpty
		}
		r, err := b.CreateInitialRoom(p.XLen, p.YLen, p.Height, m, p.Name)
		if err != nil {
			return "", err
		}
		return r.ID(), nil
	})
}

func (s *PlannerService) AddRoomToWall(ctx context.Context, wallID string, depth float64, name string) (Mutation, error) {
	meta := map[string]any{"wall_id": wallID, "depth": depth}
	return s.mutate(ctx, "room added", meta, func(b *building.Building) (string, error) {
		r, err := b.AddRoomToWall(wallID, depth, name)
		if err != nil {
			return "", err
		}
		return r.ID(), nil
	})
}

func (s *PlannerService) DeleteRoom(ctx context.Context, roomID string) (Mutation, error) {
	meta := map[string]any{"room_id": roomID}
	return s.mutate(ctx, "room deleted", meta, func(b *building.Building) (string, error) {
		return "", b.DeleteRoom(roomID)
	})
}

func (s *PlannerService) RenameRoom(ctx context.Context, roomID, name string) (Mutation, error) {
	meta := map[string]any{"room_id": roomID, "name": name}
	return s.mutate(ctx, "room renamed", meta, func(b *building.Building) (string, error) {
		return "", b.RenameRoom(roomID, name)
	})
}

func (s *PlannerService) AddOpening(ctx context.Context, wallID string, p OpeningParams) (Mutation, error) {
	tech, err := s.catalog.OpeningTech(p.Tech)
	if err != nil {
		return Mutation{}, err
	}
	op, err := building.NewOpening(tech, p.Width, p.Height)
	if err != nil {
		return Mutation{}, err
	}
	meta := map[string]any{"wall_id": wallID, "tech": p.Tech, "width": p.Width, "height": p.Height}
	return s.mutate(ctx, "opening added", meta, func(b *building.Building) (string, error) {
		if err := b.AddOpeningToWall(wallID, op); err != nil {
			return "", err
		}
		return op.ID, nil
	})
}

func (s *PlannerService) SetWallMaterial(ctx context.Context, wallID, materialKey string) (Mutation, error) {
	m, err := s.catalog.Material(materialKey)
	if err != nil {
		return Mutation{}, err
	}
	meta := map[string]any{"wall_id": wallID, "material": materialKey}
	return s.mutate(ctx, "wall material changed", meta, func(b *building.Building) (string, error) {
		return "", b.SetWallMaterial(wallID, m)
	})
}

func (s *PlannerService) AddHVAC(ctx context.Context, roomID, presetKey string) (Mutation, error) {
	d, err := s.catalog.HVAC(presetKey)
	if err != nil {
		return Mutation{}, err
	}
	meta := map[string]any{"room_id": roomID, "preset": presetKey}
	return s.mutate(ctx, "hvac installed", meta, func(b *building.Building) (string, error) {
		if err := b.AddHVACToRoom(roomID, d); err != nil {
			return "", err
		}
		return d.ID, nil
	})
}

func (s *PlannerService) RemoveHVAC(ctx context.Context, roomID, deviceID string) (Mutation, error) {
	meta := map[string]any{"room_id": roomID, "device_id": deviceID}
	return s.mutate(ctx, "hvac removed", meta, func(b *building.Building) (string, error) {
		return "", b.RemoveHVACFromRoom(roomID, deviceID)
	})
}

// WallByDirection finds the room's wall facing the given compass direction.
func (s *PlannerService) WallByDirection(_ context.Context, roomID, direction string) (models.WallDocument, error) {
	d, err := building.ParseDirection(direction)
	if err != nil {
		return models.WallDocument{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	w, err := s.b.WallByDirection(roomID, d)
	if err != nil {
		return models.WallDocument{}, err
	}
	if w == nil {
		return models.WallDocument{}, fmt.Errorf("%w: room %q has no wall facing %s", building.ErrInvalidReference, roomID, d)
	}
	return building.WallDocument(w), nil
}
