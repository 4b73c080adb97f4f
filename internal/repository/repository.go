package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"thermal_planner/internal/models"
)

// ErrProjectNotFound is returned when no project is stored under the requested name.
var ErrProjectNotFound = errors.New("project not found")

// ErrUsernameTaken is returned when signing up with a username that already exists.
var ErrUsernameTaken = errors.New("username already taken")

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// ProjectRepo stores building documents under unique names.
type ProjectRepo interface {
	Save(ctx context.Context, name string, doc models.BuildingDocument) error
	Load(ctx context.Context, name string) (models.BuildingDocument, error)
	List(ctx context.Context) ([]models.ProjectInfo, error)
	Delete(ctx context.Context, name string) error
}

// RunRepo keeps a summary of every completed simulation.
type RunRepo interface {
	Append(ctx context.Context, run models.SimulationRun) error
	List(ctx context.Context, limit int) ([]models.SimulationRun, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.Event) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.Event, error)
}

type Repository struct {
	ProjectRepo ProjectRepo
	RunRepo     RunRepo
	EventRepo   EventRepo
	Auth        Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		ProjectRepo: NewProjectSQLite(db),
		RunRepo:     NewRunSQLite(db),
		EventRepo:   NewEventSQLite(db),
		Auth:        NewUserRepository(db),
	}
}
