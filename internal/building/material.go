package building

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// surfaceResistance is the combined inner and outer surface resistance, m²K/W.
const surfaceResistance = 0.17

const (
	defaultMaterialColor = "#888888"
	defaultOpeningColor  = "#A0C4FF"
)

// newID returns a short random identifier.
func newID() string {
	return uuid.NewString()[:8]
}

// Material describes a homogeneous wall construction. Values are shared by pointer and never
// mutated after construction.
type Material struct {
	ID           string
	Name         string
	Thickness    float64 // m
	Conductivity float64 // W/(m·K)
	Density      float64 // kg/m³
	SpecificHeat float64 // J/(kg·K)
	Color        string
}

// NewMaterial validates the physical parameters and assigns a fresh id.
func NewMaterial(name string, thickness, conductivity, density, specificHeat float64, color string) (*Material, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalidf("material name cannot be empty")
	}
	if thickness <= 0 {
		return nil, invalidf("thickness must be > 0, got %v", thickness)
	}
	if conductivity <= 0 {
		return nil, invalidf("conductivity must be > 0, got %v", conductivity)
	}
	if density <= 0 {
		return nil, invalidf("density must be > 0, got %v", density)
	}
	if specificHeat <= 0 {
		return nil, invalidf("specific heat must be > 0, got %v", specificHeat)
	}
	if color == "" {
		color = defaultMaterialColor
	}
	return &Material{
		ID:           newID(),
		Name:         name,
		Thickness:    thickness,
		Conductivity: conductivity,
		Density:      density,
		SpecificHeat: specificHeat,
		Color:        color,
	}, nil
}

// U is the heat transfer coefficient in W/(m²·K), rounded to 3 decimals.
func (m *Material) U() float64 {
	r := m.Thickness / m.Conductivity
	return math.Round(1/(r+surfaceResistance)*1000) / 1000
}

// ThermalMass is the heat capacity of one square metre of the construction, J/K.
func (m *Material) ThermalMass() float64 {
	return m.Density * m.Thickness * m.SpecificHeat
}
