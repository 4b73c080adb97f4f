package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"thermal_planner/internal/building"
	"thermal_planner/internal/logger"
	"thermal_planner/internal/models"
	"thermal_planner/internal/repository"
)

var ErrInvalidProjectName = fmt.Errorf("%w: project name must be 1-64 characters of letters, digits, '.', '_' or '-'", ErrInvalidParams)

var projectNameRe = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)

// buildingStore is the part of the planner projects read from and restore into.
type buildingStore interface {
	Document(ctx context.Context) models.BuildingDocument
	Replace(ctx context.Context, b *building.Building, reason string) models.BuildingDocument
}

type ProjectService struct {
	store buildingStore
	repo  repository.ProjectRepo

	events eventRecorder
	log    *logger.Logger
	now    func() time.Time
}

func NewProjectService(store buildingStore, repo repository.ProjectRepo, events eventRecorder, log *logger.Logger) *ProjectService {
	if log == nil {
		log = logger.Nop()
	}
	return &ProjectService{
		store:  store,
		repo:   repo,
		events: events,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func validateProjectName(name string) error {
	if !projectNameRe.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidProjectName, name)
	}
	return nil
}

// SaveProject stores the current building under name, overwriting any previous version.
func (s *ProjectService) SaveProject(ctx context.Context, name string) (models.ProjectInfo, error) {
	if err := validateProjectName(name); err != nil {
		return models.ProjectInfo{}, err
	}
	doc := s.store.Document(ctx)
	if err := s.repo.Save(ctx, name, doc); err != nil {
		s.log.Errorw("project_save_failed", "project", name, "err", err)
		return models.ProjectInfo{}, err
	}

	info := models.ProjectInfo{
		Name:      name,
		Rooms:     len(doc.Rooms),
		Walls:     len(doc.Walls),
		UpdatedAt: s.now(),
	}
	s.log.Infow("project_saved", "project", name, "rooms", info.Rooms, "walls", info.Walls)
	s.events.record(ctx, models.EventProject, "Project saved", map[string]any{
		"project": name,
		"rooms":   info.Rooms,
		"walls":   info.Walls,
	})
	return info, nil
}

// LoadProject replaces the current building with the stored one. A document that fails to
// decode leaves the current building untouched.
func (s *ProjectService) LoadProject(ctx context.Context, name string) (models.BuildingDocument, error) {
	if err := validateProjectName(name); err != nil {
		return models.BuildingDocument{}, err
	}
	doc, err := s.repo.Load(ctx, name)
	if err != nil {
		return models.BuildingDocument{}, err
	}
	b, err := building.FromDocument(doc)
	if err != nil {
		s.log.Errorw("project_decode_failed", "project", name, "err", err)
		return models.BuildingDocument{}, fmt.Errorf("project %q: %w", name, err)
	}

	out := s.store.Replace(ctx, b, "project "+name)
	s.events.record(ctx, models.EventProject, "Project loaded", map[string]any{"project": name})
	return out, nil
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]models.ProjectInfo, error) {
	return s.repo.List(ctx)
}

func (s *ProjectService) DeleteProject(ctx context.Context, name string) error {
	if err := validateProjectName(name); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, name); err != nil {
		return err
	}
	s.log.Infow("project_deleted", "project", name)
	s.events.record(ctx, models.EventProject, "Project deleted", map[string]any{"project": name})
	return nil
}
