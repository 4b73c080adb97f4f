package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"thermal_planner/internal/building"
)

//go:embed catalog.yaml
var defaultData []byte

// ErrUnknownEntry is returned when a catalog key does not exist.
var ErrUnknownEntry = errors.New("unknown catalog entry")

type materialEntry struct {
	Name         string  `yaml:"name"`
	Thickness    float64 `yaml:"thickness"`
	Conductivity float64 `yaml:"conductivity"`
	Density      float64 `yaml:"density"`
	SpecificHeat float64 `yaml:"specific_heat"`
	Color        string  `yaml:"color"`
}

type openingEntry struct {
	Name     string  `yaml:"name"`
	U        float64 `yaml:"u"`
	G        float64 `yaml:"g"`
	Category string  `yaml:"category"`
	Color    string  `yaml:"color"`
}

type hvacEntry struct {
	Name       string  `yaml:"name"`
	Type       string  `yaml:"type"`
	Heating    float64 `yaml:"heating"`
	Cooling    float64 `yaml:"cooling"`
	Efficiency float64 `yaml:"efficiency"`
}

type file struct {
	Materials map[string]materialEntry `yaml:"materials"`
	Openings  map[string]openingEntry  `yaml:"openings"`
	HVAC      map[string]hvacEntry     `yaml:"hvac"`
}

// Catalog is read-only reference data: wall constructions, window and door types and HVAC presets.
// Materials and opening techs are shared by pointer across every wall that uses them.
type Catalog struct {
	materials map[string]*building.Material
	openings  map[string]*building.OpeningTech
	hvac      map[string]*building.HVACDevice
}

// Parse builds a catalog from YAML, validating every entry.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}

	c := &Catalog{
		materials: make(map[string]*building.Material, len(f.Materials)),
		openings:  make(map[string]*building.OpeningTech, len(f.Openings)),
		hvac:      make(map[string]*building.HVACDevice, len(f.HVAC)),
	}
	for key, e := range f.Materials {
		m, err := building.NewMaterial(e.Name, e.Thickness, e.Conductivity, e.Density, e.SpecificHeat, e.Color)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", key, err)
		}
		c.materials[key] = m
	}
	for key, e := range f.Openings {
		cat, err := building.ParseOpeningCategory(e.Category)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", key, err)
		}
		t, err := building.NewOpeningTech(e.Name, e.U, e.G, cat, e.Color)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", key, err)
		}
		c.openings[key] = t
	}
	for key, e := range f.HVAC {
		typ, err := building.ParseHVACType(e.Type)
		if err != nil {
			return nil, fmt.Errorf("hvac %q: %w", key, err)
		}
		eff := e.Efficiency
		if eff == 0 {
			eff = 1
		}
		d, err := building.NewHVACDevice(e.Name, typ, e.Heating, e.Cooling, eff)
		if err != nil {
			return nil, fmt.Errorf("hvac %q: %w", key, err)
		}
		c.hvac[key] = d
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog bundled with the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(defaultData)
	})
	return defaultCatalog, defaultErr
}

func (c *Catalog) Material(key string) (*building.Material, error) {
	m, ok := c.materials[key]
	if !ok {
		return nil, fmt.Errorf("%w: material %q", ErrUnknownEntry, key)
	}
	return m, nil
}

func (c *Catalog) OpeningTech(key string) (*building.OpeningTech, error) {
	t, ok := c.openings[key]
	if !ok {
		return nil, fmt.Errorf("%w: opening %q", ErrUnknownEntry, key)
	}
	return t, nil
}

// HVAC returns a fresh device built from the preset, ready to install in a room.
func (c *Catalog) HVAC(key string) (*building.HVACDevice, error) {
	d, ok := c.hvac[key]
	if !ok {
		return nil, fmt.Errorf("%w: hvac preset %q", ErrUnknownEntry, key)
	}
	return d.Clone(), nil
}

// MaterialEntry is the listing form of a material.
type MaterialEntry struct {
	Key          string  `json:"key"`
	Name         string  `json:"name"`
	Thickness    float64 `json:"thickness"`
	Conductivity float64 `json:"conductivity"`
	Density      float64 `json:"density"`
	SpecificHeat float64 `json:"specific_heat"`
	U            float64 `json:"U"`
	ThermalMass  float64 `json:"thermal_mass"`
	Color        string  `json:"color"`
}

type OpeningEntry struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	U        float64 `json:"U"`
	G        float64 `json:"g"`
	Category string  `json:"category"`
	Color    string  `json:"color"`
}

type HVACEntry struct {
	Key          string  `json:"key"`
	Name         string  `json:"name"`
	DeviceType   string  `json:"device_type"`
	PowerHeating float64 `json:"power_heating"`
	PowerCooling float64 `json:"power_cooling"`
	Description  string  `json:"description"`
}

// Listing is the whole catalog sorted by key.
type Listing struct {
	Materials []MaterialEntry `json:"materials"`
	Openings  []OpeningEntry  `json:"openings"`
	HVAC      []HVACEntry     `json:"hvac"`
}

// List returns the entries accepted by f. The zero Filter lists everything.
func (c *Catalog) List(f Filter) Listing {
	l := Listing{
		Materials: []MaterialEntry{},
		Openings:  []OpeningEntry{},
		HVAC:      []HVACEntry{},
	}
	for _, k := range sortedKeys(c.materials) {
		m := c.materials[k]
		e := MaterialEntry{
			Key: k, Name: m.Name, Thickness: m.Thickness, Conductivity: m.Conductivity,
			Density: m.Density, SpecificHeat: m.SpecificHeat, U: m.U(), ThermalMass: m.ThermalMass(), Color: m.Color,
		}
		if f.material(e) {
			l.Materials = append(l.Materials, e)
		}
	}
	for _, k := range sortedKeys(c.openings) {
		t := c.openings[k]
		e := OpeningEntry{
			Key: k, Name: t.Name, U: t.U, G: t.G, Category: t.Category.String(), Color: t.Color,
		}
		if f.opening(e) {
			l.Openings = append(l.Openings, e)
		}
	}
	for _, k := range sortedKeys(c.hvac) {
		d := c.hvac[k]
		e := HVACEntry{
			Key: k, Name: d.Name, DeviceType: d.Type.String(),
			PowerHeating: d.PowerHeating, PowerCooling: d.PowerCooling, Description: d.Description(),
		}
		if f.hvac(e) {
			l.HVAC = append(l.HVAC, e)
		}
	}
	return l
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
