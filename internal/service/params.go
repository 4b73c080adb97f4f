package service

import (
	"time"

	"thermal_planner/internal/models"
	"thermal_planner/internal/simulation"
)

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "BUILDING_CHANGE", "SIMULATION", "PROJECT", "ERROR"
}

// InitialRoomParams describes the first room of an empty building.
type InitialRoomParams struct {
	XLen     float64
	YLen     float64
	Height   float64
	Material string // catalog key; empty means the configured default
	Name     string
}

// OpeningParams places a catalog window or door on a wall.
type OpeningParams struct {
	Tech   string // catalog key
	Width  float64
	Height float64
}

// Mutation is the result of a building edit: the id of what was created (if anything)
// and the building document after the edit.
type Mutation struct {
	ID       string                  `json:"id,omitempty"`
	Building models.BuildingDocument `json:"building"`
}

// RunParams describes one simulation scenario.
type RunParams struct {
	StartTemp    float64 `json:"start_temp"`
	TMin         float64 `json:"t_min"`
	TMax         float64 `json:"t_max"`
	InternalGain float64 `json:"internal_gain"`
	Hours        float64 `json:"hours"`
	DtSeconds    float64 `json:"dt_seconds"`

	// Profiles by room id; rooms without an entry use DefaultProfile,
	// or the built-in thermostat profile when that is nil.
	Profiles       map[string]simulation.RoomControlProfile `json:"profiles,omitempty"`
	DefaultProfile *simulation.RoomControlProfile           `json:"default_profile,omitempty"`

	// Tariff is the energy price per kWh used for the cost figures.
	Tariff float64 `json:"tariff"`

	// ChunkHours is the streaming granularity; zero uses the configured value.
	ChunkHours float64 `json:"chunk_hours"`
	// Project tags the persisted run.
	Project string `json:"project,omitempty"`
}

// Progress is one streamed simulation frame.
type Progress struct {
	ElapsedHours   float64            `json:"elapsed_hours"`
	TotalHours     float64            `json:"total_hours"`
	Outdoor        float64            `json:"outdoor"`
	Temperatures   map[string]float64 `json:"temperatures"`
	TotalEnergyKWh float64            `json:"total_energy_kwh"`
}
