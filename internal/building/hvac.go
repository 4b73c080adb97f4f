package building

import (
	"fmt"
	"strings"
)

// HVACDevice is a heater, cooler or reversible unit installed in a room.
type HVACDevice struct {
	ID           string
	Name         string
	Type         HVACType
	PowerHeating float64 // W
	PowerCooling float64 // W
	Efficiency   float64 // COP
}

// NewHVACDevice validates the power figures against the device type.
func NewHVACDevice(name string, typ HVACType, heating, cooling, efficiency float64) (*HVACDevice, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalidf("device name cannot be empty")
	}
	if heating < 0 {
		return nil, invalidf("heating power cannot be negative, got %v", heating)
	}
	if cooling < 0 {
		return nil, invalidf("cooling power cannot be negative, got %v", cooling)
	}
	if efficiency <= 0 {
		return nil, invalidf("efficiency must be > 0, got %v", efficiency)
	}

	switch typ {
	case HVACHeater:
		if heating == 0 {
			return nil, invalidf("a heater must have heating power > 0")
		}
		if cooling > 0 {
			return nil, invalidf("a heater cannot have cooling power")
		}
	case HVACCooler:
		if cooling == 0 {
			return nil, invalidf("a cooler must have cooling power > 0")
		}
		if heating > 0 {
			return nil, invalidf("a cooler cannot have heating power")
		}
	case HVACInverter:
		if heating == 0 && cooling == 0 {
			return nil, invalidf("an inverter must have heating or cooling power")
		}
	default:
		return nil, invalidf("unknown hvac device type %d", int(typ))
	}

	return &HVACDevice{
		ID:           newID(),
		Name:         name,
		Type:         typ,
		PowerHeating: heating,
		PowerCooling: cooling,
		Efficiency:   efficiency,
	}, nil
}

// Clone returns a copy of the device with a fresh id, used when installing catalog presets.
func (d *HVACDevice) Clone() *HVACDevice {
	c := *d
	c.ID = newID()
	return &c
}

// Description renders the capacities, e.g. "heat 2.8 kW / cool 2.5 kW".
func (d *HVACDevice) Description() string {
	var parts []string
	if d.PowerHeating > 0 {
		parts = append(parts, fmt.Sprintf("heat %.1f kW", d.PowerHeating/1000))
	}
	if d.PowerCooling > 0 {
		parts = append(parts, fmt.Sprintf("cool %.1f kW", d.PowerCooling/1000))
	}
	return strings.Join(parts, " / ")
}
