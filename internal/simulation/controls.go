package simulation

import (
	"fmt"
	"math"
	"strings"
)

// ControlMode selects how a room's HVAC devices are driven.
type ControlMode int

const (
	Thermostat ControlMode = iota
	AlwaysOn
	AlwaysOff
	Cyclic
)

var modeLabels = map[ControlMode]string{
	Thermostat: "THERMOSTAT",
	AlwaysOn:   "ALWAYS_ON",
	AlwaysOff:  "ALWAYS_OFF",
	Cyclic:     "CYCLIC",
}

func (m ControlMode) Valid() bool {
	_, ok := modeLabels[m]
	return ok
}

func (m ControlMode) String() string {
	if s, ok := modeLabels[m]; ok {
		return s
	}
	return fmt.Sprintf("ControlMode(%d)", int(m))
}

func ParseControlMode(s string) (ControlMode, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for m, label := range modeLabels {
		if label == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown control mode %q", ErrInvalidInput, s)
}

func (m ControlMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: unknown control mode %d", ErrInvalidInput, int(m))
	}
	return []byte(m.String()), nil
}

func (m *ControlMode) UnmarshalText(b []byte) error {
	v, err := ParseControlMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

const (
	minTargetC = -50.0
	maxTargetC = 100.0

	defaultTargetC = 21.0
)

// RoomControlProfile is the HVAC policy of one room.
type RoomControlProfile struct {
	Mode            ControlMode `json:"mode"`
	TargetTemp      float64     `json:"target_temp"`       // °C, THERMOSTAT
	CycleOnHours    float64     `json:"cycle_on_hours"`    // CYCLIC
	CycleOffHours   float64     `json:"cycle_off_hours"`   // CYCLIC
	TimeOffsetHours float64     `json:"time_offset_hours"` // shifts the CYCLIC phase
}

// DefaultProfile keeps the room at 21 °C with a thermostat.
func DefaultProfile() RoomControlProfile {
	return RoomControlProfile{Mode: Thermostat, TargetTemp: defaultTargetC}
}

func (p RoomControlProfile) Validate() error {
	if !p.Mode.Valid() {
		return fmt.Errorf("%w: unknown control mode %d", ErrInvalidInput, int(p.Mode))
	}
	if p.TargetTemp < minTargetC || p.TargetTemp > maxTargetC {
		return fmt.Errorf("%w: target temperature %v out of realistic range [%v, %v]",
			ErrInvalidInput, p.TargetTemp, minTargetC, maxTargetC)
	}
	if p.CycleOnHours < 0 || p.CycleOffHours < 0 {
		return fmt.Errorf("%w: cycle hours cannot be negative", ErrInvalidInput)
	}
	if p.TimeOffsetHours < 0 {
		return fmt.Errorf("%w: time offset cannot be negative", ErrInvalidInput)
	}
	if p.Mode == Cyclic && p.CycleOnHours+p.CycleOffHours <= 0 {
		return fmt.Errorf("%w: cyclic mode needs a cycle longer than zero", ErrInvalidInput)
	}
	return nil
}

// cycleActive reports whether a CYCLIC profile is in its on phase at elapsed seconds.
func (p RoomControlProfile) cycleActive(elapsed float64) bool {
	period := (p.CycleOnHours + p.CycleOffHours) * 3600
	if period <= 0 {
		return false
	}
	phase := math.Mod(elapsed+p.TimeOffsetHours*3600, period)
	return phase < p.CycleOnHours*3600
}
