package simulation

import (
	"errors"
	"fmt"
	"math"

	"thermal_planner/internal/building"
)

// Physical constants of the lumped room model.
const (
	airDensity      = 1.225  // kg/m³
	airSpecificHeat = 1005.0 // J/(kg·K)
	wallMassFactor  = 0.5    // share of wall mass exchanging heat with the room
	minThermalMass  = 1000.0 // J/K

	thermostatHysteresis = 0.5 // °C below target before heating starts
	peakHour             = 14.0
)

var (
	ErrInvalidInput   = errors.New("invalid simulation input")
	ErrMissingProfile = fmt.Errorf("%w: missing control profile", ErrInvalidInput)
	ErrNotInitialized = errors.New("simulation is not initialized")
)

// ThermalSimulation steps room temperatures forward in time over a fixed building graph.
// It is not safe for concurrent use.
type ThermalSimulation struct {
	building *building.Building

	tMin, tMax   float64
	internalGain float64 // W per room
	profiles     map[string]RoomControlProfile

	roomIDs []string // tracked rooms, sorted
	temps   map[string]float64
	energy  map[string]float64 // kWh
	elapsed float64            // s

	historyTime    []float64 // h
	historyOutdoor []float64
	historyTemps   map[string][]float64

	initialized bool
}

// New binds a simulation to a building. Call Initialize before stepping.
func New(b *building.Building) *ThermalSimulation {
	return &ThermalSimulation{building: b}
}

// Initialize validates the scenario and resets all state, history included, to t=0.
func (s *ThermalSimulation) Initialize(startTemp float64, profiles map[string]RoomControlProfile, tMin, tMax, internalGain float64) error {
	if tMin > tMax {
		return fmt.Errorf("%w: t_min (%v) cannot be greater than t_max (%v)", ErrInvalidInput, tMin, tMax)
	}
	if internalGain < 0 {
		return fmt.Errorf("%w: internal heat gain cannot be negative", ErrInvalidInput)
	}

	rooms := s.building.Rooms()
	var missing []string
	for _, r := range rooms {
		p, ok := profiles[r.ID()]
		if !ok {
			missing = append(missing, r.ID())
			continue
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("room %q: %w", r.ID(), err)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w for rooms %v", ErrMissingProfile, missing)
	}

	s.tMin, s.tMax = tMin, tMax
	s.internalGain = internalGain
	s.profiles = make(map[string]RoomControlProfile, len(profiles))
	for id, p := range profiles {
		s.profiles[id] = p
	}

	s.elapsed = 0
	s.roomIDs = make([]string, 0, len(rooms))
	s.temps = make(map[string]float64, len(rooms))
	s.energy = make(map[string]float64, len(rooms))
	s.historyTemps = make(map[string][]float64, len(rooms))
	for _, r := range rooms {
		s.roomIDs = append(s.roomIDs, r.ID())
		s.temps[r.ID()] = startTemp
		s.energy[r.ID()] = 0
		s.historyTemps[r.ID()] = []float64{startTemp}
	}
	s.historyTime = []float64{0}
	s.historyOutdoor = []float64{s.OutdoorTemperature(0)}
	s.initialized = true
	return nil
}

// OutdoorTemperature follows a daily cosine between t_min and t_max, peaking at 14:00.
func (s *ThermalSimulation) OutdoorTemperature(seconds float64) float64 {
	return OutdoorTemperature(s.tMin, s.tMax, seconds)
}

// OutdoorTemperature is the weather model: avg + amplitude·cos((hour-14)·2π/24).
func OutdoorTemperature(tMin, tMax, seconds float64) float64 {
	hour := math.Mod(seconds/3600, 24)
	avg := (tMin + tMax) / 2
	amp := (tMax - tMin) / 2
	return avg + amp*math.Cos((hour-peakHour)*2*math.Pi/24)
}

// thermalMass is the heat capacity of the room air plus half of its wall mass, J/K.
func (s *ThermalSimulation) thermalMass(r *building.Room) float64 {
	w, l := s.building.RoomDimensions(r.ID())
	c := w * l * r.Height() * airDensity * airSpecificHeat

	for _, wid := range r.WallIDs() {
		wall, ok := s.building.Wall(wid)
		if !ok {
			continue
		}
		m := wall.Material()
		c += wall.AreaNet() * m.Thickness * m.Density * m.SpecificHeat * wallMassFactor
	}
	return math.Max(c, minThermalMass)
}

// transmission is the heat flowing into the room through its walls and openings, W.
// Internal walls exchange heat with the neighbour's temperature from temps, external ones
// with the outdoor air.
func (s *ThermalSimulation) transmission(r *building.Room, current, outdoor float64, temps map[string]float64) float64 {
	var flow float64
	for _, wid := range r.WallIDs() {
		wall, ok := s.building.Wall(wid)
		if !ok {
			continue
		}
		neighbour := outdoor
		if other, ok := wall.OtherRoom(r.ID()); ok {
			if t, tracked := temps[other]; tracked {
				neighbour = t
			}
		}
		dt := neighbour - current
		flow += wall.Material().U() * wall.AreaNet() * dt
		for _, op := range wall.Openings() {
			flow += op.Tech.U * op.Area() * dt
		}
	}
	return flow
}

// hvacPower is the net heating (positive) or cooling (negative) power of the room's devices, W.
func (s *ThermalSimulation) hvacPower(r *building.Room, current float64) float64 {
	p, ok := s.profiles[r.ID()]
	if !ok {
		p = DefaultProfile()
	}
	return hvacPower(p, r.HVACDevices(), current, s.elapsed)
}

func hvacPower(p RoomControlProfile, devices []*building.HVACDevice, current, elapsed float64) float64 {
	switch p.Mode {
	case AlwaysOff:
		return 0
	case AlwaysOn:
		return fullPower(devices)
	case Cyclic:
		if p.cycleActive(elapsed) {
			return fullPower(devices)
		}
		return 0
	case Thermostat:
		// heating waits for the hysteresis band, cooling reacts as soon as the target is exceeded
		heatDemand := current < p.TargetTemp-thermostatHysteresis
		coolDemand := current > p.TargetTemp
		if !heatDemand && !coolDemand {
			return 0
		}
		var total float64
		for _, d := range devices {
			if d.PowerHeating > 0 && current < p.TargetTemp {
				total += d.PowerHeating
			} else if d.PowerCooling > 0 && current > p.TargetTemp {
				total -= d.PowerCooling
			}
		}
		return total
	}
	return 0
}

// fullPower runs every device flat out, heating first.
func fullPower(devices []*building.HVACDevice) float64 {
	var total float64
	for _, d := range devices {
		if d.PowerHeating > 0 {
			total += d.PowerHeating
		} else if d.PowerCooling > 0 {
			total -= d.PowerCooling
		}
	}
	return total
}

// EnergyKWh converts power held for dt seconds to kWh; cooling counts the same as heating.
func EnergyKWh(powerW, dtSeconds float64) float64 {
	return math.Abs(powerW) * dtSeconds / 3600 / 1000
}

// TemperatureDelta is the explicit Euler temperature change for a net flow over dt.
func TemperatureDelta(flowW, massJK, dtSeconds float64) float64 {
	return flowW * dtSeconds / massJK
}

// Step advances the simulation by dt seconds. All rooms read the temperatures of the
// previous step before any of them is updated.
func (s *ThermalSimulation) Step(dtSeconds float64) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if dtSeconds <= 0 {
		return fmt.Errorf("%w: dt must be > 0, got %v", ErrInvalidInput, dtSeconds)
	}
	s.step(dtSeconds)
	return nil
}

func (s *ThermalSimulation) step(dt float64) {
	outdoor := s.OutdoorTemperature(s.elapsed)
	s.historyOutdoor = append(s.historyOutdoor, outdoor)

	deltas := make(map[string]float64, len(s.roomIDs))
	for _, id := range s.roomIDs {
		r, ok := s.building.Room(id)
		if !ok {
			continue
		}
		current := s.temps[id]

		q := s.transmission(r, current, outdoor, s.temps)
		hvac := s.hvacPower(r, current)
		s.energy[id] += EnergyKWh(hvac, dt)

		total := q + hvac + s.internalGain
		deltas[id] = TemperatureDelta(total, s.thermalMass(r), dt)
	}

	s.elapsed += dt
	s.historyTime = append(s.historyTime, s.elapsed/3600)

	for _, id := range s.roomIDs {
		s.temps[id] += deltas[id]
		s.historyTemps[id] = append(s.historyTemps[id], s.temps[id])
	}
}

// Steps is the number of whole steps of dt seconds that fit in the given hours.
func Steps(durationHours, dtSeconds float64) int {
	return int(math.Floor(durationHours * 3600 / dtSeconds))
}

// Run performs floor(hours·3600/dt) steps. A trailing partial step is dropped.
func (s *ThermalSimulation) Run(durationHours, dtSeconds float64) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if dtSeconds <= 0 {
		return fmt.Errorf("%w: dt must be > 0, got %v", ErrInvalidInput, dtSeconds)
	}
	if durationHours < 0 {
		return fmt.Errorf("%w: duration cannot be negative", ErrInvalidInput)
	}
	for i, n := 0, Steps(durationHours, dtSeconds); i < n; i++ {
		s.step(dtSeconds)
	}
	return nil
}

func (s *ThermalSimulation) Initialized() bool      { return s.initialized }
func (s *ThermalSimulation) ElapsedSeconds() float64 { return s.elapsed }
func (s *ThermalSimulation) InternalGain() float64   { return s.internalGain }

// RoomIDs lists the rooms tracked since the last Initialize.
func (s *ThermalSimulation) RoomIDs() []string {
	return append([]string(nil), s.roomIDs...)
}

func (s *ThermalSimulation) CurrentTemperature(roomID string) (float64, bool) {
	t, ok := s.temps[roomID]
	return t, ok
}

// Temperatures is a copy of the current room temperatures.
func (s *ThermalSimulation) Temperatures() map[string]float64 {
	out := make(map[string]float64, len(s.temps))
	for k, v := range s.temps {
		out[k] = v
	}
	return out
}

func (s *ThermalSimulation) EnergyKWh(roomID string) float64 {
	return s.energy[roomID]
}

func (s *ThermalSimulation) TotalEnergyKWh() float64 {
	var sum float64
	for _, id := range s.roomIDs {
		sum += s.energy[id]
	}
	return sum
}

func (s *ThermalSimulation) HistoryTime() []float64 {
	return append([]float64(nil), s.historyTime...)
}

func (s *ThermalSimulation) HistoryOutdoor() []float64 {
	return append([]float64(nil), s.historyOutdoor...)
}

func (s *ThermalSimulation) HistoryRoom(roomID string) []float64 {
	return append([]float64(nil), s.historyTemps[roomID]...)
}
