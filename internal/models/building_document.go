package models

// BuildingDocument is the persisted layout of a building plan.
type BuildingDocument struct {
	Walls map[string]WallDocument `json:"walls"`
	Rooms map[string]RoomDocument `json:"rooms"`
}

type MaterialDocument struct {
	Name         string  `json:"name"`
	Thickness    float64 `json:"thickness"`     // m
	Conductivity float64 `json:"conductivity"`  // W/(m·K)
	Density      float64 `json:"density"`       // kg/m³
	SpecificHeat float64 `json:"specific_heat"` // J/(kg·K)
	Color        string  `json:"color"`
	ID           string  `json:"id"`
}

type OpeningTechDocument struct {
	Name     string  `json:"name"`
	U        float64 `json:"U"`
	G        float64 `json:"g"`
	Category string  `json:"category"` // WINDOW | DOOR
	Color    string  `json:"color"`
}

type OpeningDocument struct {
	Tech   OpeningTechDocument `json:"tech"`
	Width  float64             `json:"width"`
	Height float64             `json:"height"`
	ID     string              `json:"id"`
}

type WallDocument struct {
	StartX       float64           `json:"start_x"`
	StartY       float64           `json:"start_y"`
	EndX         float64           `json:"end_x"`
	EndY         float64           `json:"end_y"`
	Height       float64           `json:"height"`
	BaseMaterial MaterialDocument  `json:"base_material"`
	Openings     []OpeningDocument `json:"openings"`
	RoomIDs      []string          `json:"room_ids"`
	ID           string            `json:"id"`
}

type HVACDocument struct {
	Name         string  `json:"name"`
	DeviceType   string  `json:"device_type"` // HEATER | COOLER | AC_INVERTER
	PowerHeating float64 `json:"power_heating"`
	PowerCooling float64 `json:"power_cooling"`
	Efficiency   float64 `json:"efficiency"`
	ID           string  `json:"id"`
}

type RoomDocument struct {
	Name        string         `json:"name"`
	Width       float64        `json:"width"`
	Length      float64        `json:"length"`
	Height      float64        `json:"height"`
	X           float64        `json:"x"`
	Y           float64        `json:"y"`
	WallIDs     []string       `json:"wall_ids"`
	HVACDevices []HVACDocument `json:"hvac_devices"`
	ID          string         `json:"id"`
}
