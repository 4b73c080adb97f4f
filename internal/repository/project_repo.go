package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"thermal_planner/internal/models"
)

type ProjectSQLite struct {
	db  *sql.DB
	now func() time.Time
}

func NewProjectSQLite(db *sql.DB) *ProjectSQLite {
	return &ProjectSQLite{db: db, now: time.Now}
}

var _ ProjectRepo = (*ProjectSQLite)(nil)

const (
	upsertProjectSQL = `
		INSERT INTO projects (name, document, rooms, walls, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			document=excluded.document,
			rooms=excluded.rooms,
			walls=excluded.walls,
			updated_at=excluded.updated_at
	`

	selectProjectSQL = `SELECT document FROM projects WHERE name = ?`
	listProjectsSQL  = `SELECT name, rooms, walls, updated_at FROM projects ORDER BY name ASC`
	deleteProjectSQL = `DELETE FROM projects WHERE name = ?`
)

// Save inserts or overwrites the project stored under name.
func (r *ProjectSQLite) Save(ctx context.Context, name string, doc models.BuildingDocument) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal project %q: %w", name, err)
	}
	_, err = r.db.ExecContext(ctx, upsertProjectSQL,
		name,
		string(b),
		len(doc.Rooms),
		len(doc.Walls),
		r.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save project %q: %w", name, err)
	}
	return nil
}

// Load returns the stored document or ErrProjectNotFound.
func (r *ProjectSQLite) Load(ctx context.Context, name string) (models.BuildingDocument, error) {
	var raw string
	if err := r.db.QueryRowContext(ctx, selectProjectSQL, name).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BuildingDocument{}, fmt.Errorf("%w: %q", ErrProjectNotFound, name)
		}
		return models.BuildingDocument{}, fmt.Errorf("select project %q: %w", name, err)
	}

	var doc models.BuildingDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return models.BuildingDocument{}, fmt.Errorf("decode project %q: %w", name, err)
	}
	return doc, nil
}

func (r *ProjectSQLite) List(ctx context.Context) ([]models.ProjectInfo, error) {
	rows, err := r.db.QueryContext(ctx, listProjectsSQL)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]models.ProjectInfo, 0, 16)
	for rows.Next() {
		var p models.ProjectInfo
		if err := rows.Scan(&p.Name, &p.Rooms, &p.Walls, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.UpdatedAt = p.UpdatedAt.UTC()
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the project; a missing name yields ErrProjectNotFound.
func (r *ProjectSQLite) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, deleteProjectSQL, name)
	if err != nil {
		return fmt.Errorf("delete project %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}
	return nil
}
