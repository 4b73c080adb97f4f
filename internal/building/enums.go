package building

import (
	"fmt"
	"strings"
)

// OpeningCategory distinguishes windows from doors.
type OpeningCategory int

const (
	CategoryWindow OpeningCategory = iota
	CategoryDoor
)

var categoryLabels = map[OpeningCategory]string{
	CategoryWindow: "WINDOW",
	CategoryDoor:   "DOOR",
}

func (c OpeningCategory) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c OpeningCategory) String() string {
	if s, ok := categoryLabels[c]; ok {
		return s
	}
	return fmt.Sprintf("OpeningCategory(%d)", int(c))
}

// ParseOpeningCategory maps a label (case-insensitive) to a category.
func ParseOpeningCategory(s string) (OpeningCategory, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for c, label := range categoryLabels {
		if label == s {
			return c, nil
		}
	}
	return 0, invalidf("unknown opening category %q", s)
}

func (c OpeningCategory) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, invalidf("unknown opening category %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *OpeningCategory) UnmarshalText(b []byte) error {
	v, err := ParseOpeningCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// HVACType is the kind of climate device installed in a room.
type HVACType int

const (
	HVACHeater HVACType = iota
	HVACCooler
	HVACInverter
)

var hvacLabels = map[HVACType]string{
	HVACHeater:   "HEATER",
	HVACCooler:   "COOLER",
	HVACInverter: "AC_INVERTER",
}

func (t HVACType) Valid() bool {
	_, ok := hvacLabels[t]
	return ok
}

func (t HVACType) String() string {
	if s, ok := hvacLabels[t]; ok {
		return s
	}
	return fmt.Sprintf("HVACType(%d)", int(t))
}

// ParseHVACType maps a label (case-insensitive) to a device type.
func ParseHVACType(s string) (HVACType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for t, label := range hvacLabels {
		if label == s {
			return t, nil
		}
	}
	return 0, invalidf("unknown hvac device type %q", s)
}

func (t HVACType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, invalidf("unknown hvac device type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *HVACType) UnmarshalText(b []byte) error {
	v, err := ParseHVACType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Direction is the cardinal side of a room a wall faces.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

var directionLabels = map[Direction]string{
	North: "N",
	East:  "E",
	South: "S",
	West:  "W",
}

func (d Direction) Valid() bool {
	_, ok := directionLabels[d]
	return ok
}

func (d Direction) String() string {
	if s, ok := directionLabels[d]; ok {
		return s
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection accepts "N", "E", "S", "W" and the full English names.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "N", "NORTH":
		return North, nil
	case "E", "EAST":
		return East, nil
	case "S", "SOUTH":
		return South, nil
	case "W", "WEST":
		return West, nil
	}
	return 0, invalidf("unknown direction %q", s)
}
