package models

import "time"

// ProjectInfo describes a saved building plan without its document.
type ProjectInfo struct {
	Name      string    `json:"name"`
	Rooms     int       `json:"rooms"`
	Walls     int       `json:"walls"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoomSummary aggregates one room's temperature trace and energy use over a simulation.
type RoomSummary struct {
	RoomID    string  `json:"room_id"`
	Name      string  `json:"name"`
	Final     float64 `json:"final_temp"`
	Min       float64 `json:"min_temp"`
	Max       float64 `json:"max_temp"`
	Mean      float64 `json:"mean_temp"`
	EnergyKWh float64 `json:"energy_kwh"`
	Cost      float64 `json:"cost"`
}

// SimulationRun is the persisted outcome of one simulation.
type SimulationRun struct {
	ID        string        `json:"id"`
	Project   string        `json:"project,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Hours     float64       `json:"hours"`
	DtSeconds float64       `json:"dt_seconds"`
	Rooms     int           `json:"rooms"`
	TotalKWh  float64       `json:"total_kwh"`
	Summary   []RoomSummary `json:"summary"`
}
