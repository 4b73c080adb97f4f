package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"thermal_planner/internal/models"
)

type RunSQLite struct {
	db *sql.DB
}

func NewRunSQLite(db *sql.DB) *RunSQLite { return &RunSQLite{db: db} }

var _ RunRepo = (*RunSQLite)(nil)

const (
	defaultRunsLimit = 50

	insertRunSQL = `
		INSERT INTO simulation_runs (id, project, started_at, hours, dt_seconds, rooms, total_kwh, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	listRunsSQL = `
		SELECT id, project, started_at, hours, dt_seconds, rooms, total_kwh, summary
		FROM simulation_runs ORDER BY started_at DESC LIMIT ?
	`
)

// Append stores a run summary. Empty ID and zero StartedAt are filled in.
func (r *RunSQLite) Append(ctx context.Context, run models.SimulationRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	} else {
		run.StartedAt = run.StartedAt.UTC()
	}

	summary, err := json.Marshal(run.Summary)
	if err != nil {
		return fmt.Errorf("marshal run summary: %w", err)
	}

	var project *string
	if run.Project != "" {
		project = &run.Project
	}

	_, err = r.db.ExecContext(ctx, insertRunSQL,
		run.ID,
		project,
		run.StartedAt,
		run.Hours,
		run.DtSeconds,
		run.Rooms,
		run.TotalKWh,
		string(summary),
	)
	if err != nil {
		return fmt.Errorf("insert simulation run: %w", err)
	}
	return nil
}

// List returns the most recent runs first. A non-positive limit uses the default.
func (r *RunSQLite) List(ctx context.Context, limit int) ([]models.SimulationRun, error) {
	if limit <= 0 {
		limit = defaultRunsLimit
	}
	rows, err := r.db.QueryContext(ctx, listRunsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list simulation runs: %w", err)
	}
	defer rows.Close()

	out := make([]models.SimulationRun, 0, limit)
	for rows.Next() {
		var (
			run     models.SimulationRun
			project sql.NullString
			summary sql.NullString
		)
		if err := rows.Scan(&run.ID, &project, &run.StartedAt, &run.Hours, &run.DtSeconds,
			&run.Rooms, &run.TotalKWh, &summary); err != nil {
			return nil, fmt.Errorf("scan simulation run: %w", err)
		}
		run.Project = project.String
		run.StartedAt = run.StartedAt.UTC()
		if summary.Valid && summary.String != "" {
			if err := json.Unmarshal([]byte(summary.String), &run.Summary); err != nil {
				return nil, fmt.Errorf("decode summary of run %s: %w", run.ID, err)
			}
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
