package building

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermal_planner/internal/geometry"
)

func TestMaterial_U(t *testing.T) {
	tests := []struct {
		thickness, conductivity, want float64
	}{
		{0.2, 2.0, 3.704},
		{0.1, 0.04, 0.375},
		{0.25, 0.7, 1.897},
	}
	for _, tc := range tests {
		m, err := NewMaterial("m", tc.thickness, tc.conductivity, 1000, 1000, "")
		require.NoError(t, err)
		assert.InDelta(t, tc.want, m.U(), 1e-9)
	}
}

func TestMaterial_ThermalMass(t *testing.T) {
	m, err := NewMaterial("Concrete", 0.2, 2.04, 2500, 840, "#708090")
	require.NoError(t, err)
	assert.InDelta(t, 2500*0.2*840, m.ThermalMass(), 1e-6)
	assert.Len(t, m.ID, 8)
	assert.Equal(t, "#708090", m.Color)
}

func TestNewMaterial_Validation(t *testing.T) {
	tests := []struct {
		name                  string
		mname                 string
		thick, cond, rho, cap float64
	}{
		{"empty name", "", 1, 1, 1, 1},
		{"zero thickness", "m", 0, 1, 1, 1},
		{"negative conductivity", "m", 1, -1, 1, 1},
		{"zero density", "m", 1, 1, 0, 1},
		{"zero specific heat", "m", 1, 1, 1, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMaterial(tc.mname, tc.thick, tc.cond, tc.rho, tc.cap, "")
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestNewOpeningTech_Validation(t *testing.T) {
	_, err := NewOpeningTech("", 1, 0.5, CategoryWindow, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = NewOpeningTech("w", -0.1, 0.5, CategoryWindow, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = NewOpeningTech("w", 1, 1.1, CategoryWindow, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = NewOpeningTech("w", 1, 0.5, OpeningCategory(9), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	tech, err := NewOpeningTech("Door", 2.0, 0, CategoryDoor, "")
	require.NoError(t, err)
	assert.Equal(t, defaultOpeningColor, tech.Color)
}

func TestOpening(t *testing.T) {
	tech, err := NewOpeningTech("Window", 1.4, 0.65, CategoryWindow, "")
	require.NoError(t, err)

	op, err := NewOpening(tech, 1.5, 2)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, op.Area(), 1e-12)
	assert.InDelta(t, 4.2, op.HeatLossCoefficient(), 1e-9)

	_, err = NewOpening(tech, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = NewOpening(tech, 1, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = NewOpening(nil, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewWall_Validation(t *testing.T) {
	m := brick(t)
	_, err := NewWall(geometry.Seg(0, 0, 1, 0), 0, m)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = NewWall(geometry.Seg(1, 1, 1, 1), 3, m)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = NewWall(geometry.Seg(0, 0, 1, 0), 3, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWall_Areas(t *testing.T) {
	w, err := NewWall(geometry.Seg(0, 0, 4, 0), 2.5, brick(t))
	require.NoError(t, err)
	assert.InDelta(t, 10.0, w.AreaGross(), 1e-12)
	assert.InDelta(t, 10.0, w.AreaNet(), 1e-12)

	tech, _ := NewOpeningTech("Window", 1.4, 0.65, CategoryWindow, "")
	op, _ := NewOpening(tech, 2, 1.5)
	require.NoError(t, w.AddOpening(op))
	assert.InDelta(t, 3.0, w.AreaOpenings(), 1e-12)
	assert.InDelta(t, 7.0, w.AreaNet(), 1e-12)
}

func TestWall_AreaNetNeverNegative(t *testing.T) {
	w, err := NewWall(geometry.Seg(0, 0, 1, 0), 1, brick(t))
	require.NoError(t, err)
	tech, _ := NewOpeningTech("Window", 1.4, 0.65, CategoryWindow, "")
	// bypass the fit checks to force an over-sized opening
	w.openings = append(w.openings, &Opening{ID: "big", Tech: tech, Width: 3, Height: 3})
	assert.Equal(t, 0.0, w.AreaNet())
}

func TestWall_AddOpeningLimits(t *testing.T) {
	w, err := NewWall(geometry.Seg(0, 0, 4, 0), 2.5, brick(t))
	require.NoError(t, err)
	tech, _ := NewOpeningTech("Door", 1.8, 0, CategoryDoor, "")

	tall, _ := NewOpening(tech, 1, 2.6)
	assert.ErrorIs(t, w.AddOpening(tall), ErrInvalidInput)

	first, _ := NewOpening(tech, 2.5, 2)
	require.NoError(t, w.AddOpening(first))
	wide, _ := NewOpening(tech, 1.6, 2)
	assert.ErrorIs(t, w.AddOpening(wide), ErrInvalidInput)
	exact, _ := NewOpening(tech, 1.5, 2)
	assert.NoError(t, w.AddOpening(exact))
	assert.Len(t, w.Openings(), 2)
}

func TestWall_RoomIDs(t *testing.T) {
	w, err := NewWall(geometry.Seg(0, 0, 4, 0), 2.5, brick(t))
	require.NoError(t, err)

	require.NoError(t, w.AddRoomID("a"))
	_, ok := w.OtherRoom("a")
	assert.False(t, ok)
	require.NoError(t, w.AddRoomID("b"))
	assert.True(t, w.IsInternal())
	assert.ErrorIs(t, w.AddRoomID("c"), ErrWallFull)

	other, ok := w.OtherRoom("a")
	assert.True(t, ok)
	assert.Equal(t, "b", other)
	other, _ = w.OtherRoom("b")
	assert.Equal(t, "a", other)

	assert.True(t, w.RemoveRoomID("a"))
	assert.False(t, w.RemoveRoomID("a"))
	assert.Equal(t, []string{"b"}, w.RoomIDs())
}

func TestWall_OpeningLayout(t *testing.T) {
	w, err := NewWall(geometry.Seg(0, 0, 10, 0), 3, brick(t))
	require.NoError(t, err)
	assert.Nil(t, w.OpeningLayout())

	tech, _ := NewOpeningTech("Window", 1.4, 0.65, CategoryWindow, "")
	a, _ := NewOpening(tech, 2, 1)
	b, _ := NewOpening(tech, 2, 1)
	require.NoError(t, w.AddOpening(a))
	require.NoError(t, w.AddOpening(b))

	// gaps: (10 - 4) / 3 = 2
	spans := w.OpeningLayout()
	require.Len(t, spans, 2)
	assert.Equal(t, a.ID, spans[0].OpeningID)
	assert.InDelta(t, 2.0, spans[0].Start.X, 1e-9)
	assert.InDelta(t, 4.0, spans[0].End.X, 1e-9)
	assert.InDelta(t, 6.0, spans[1].Start.X, 1e-9)
	assert.InDelta(t, 8.0, spans[1].End.X, 1e-9)
}

func TestNewHVACDevice(t *testing.T) {
	tests := []struct {
		name            string
		dname           string
		typ             HVACType
		heat, cool, eff float64
		wantErr         bool
	}{
		{"heater ok", "r", HVACHeater, 1000, 0, 1, false},
		{"heater without heat", "r", HVACHeater, 0, 0, 1, true},
		{"heater with cooling", "r", HVACHeater, 1000, 500, 1, true},
		{"cooler ok", "c", HVACCooler, 0, 1000, 1, false},
		{"cooler with heating", "c", HVACCooler, 100, 1000, 1, true},
		{"cooler without cool", "c", HVACCooler, 0, 0, 1, true},
		{"inverter heat only", "ac", HVACInverter, 2800, 0, 3, false},
		{"inverter both", "ac", HVACInverter, 2800, 2500, 3, false},
		{"inverter neither", "ac", HVACInverter, 0, 0, 3, true},
		{"empty name", "", HVACHeater, 1000, 0, 1, true},
		{"negative heating", "x", HVACInverter, -1, 100, 1, true},
		{"negative cooling", "x", HVACInverter, 100, -1, 1, true},
		{"zero efficiency", "x", HVACHeater, 1000, 0, 0, true},
		{"unknown type", "x", HVACType(7), 1000, 0, 1, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := NewHVACDevice(tc.dname, tc.typ, tc.heat, tc.cool, tc.eff)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.typ, d.Type)
		})
	}
}

func TestHVACDevice_DescriptionAndClone(t *testing.T) {
	d, err := NewHVACDevice("AC 09", HVACInverter, 2800, 2500, 3.2)
	require.NoError(t, err)
	assert.Equal(t, "heat 2.8 kW / cool 2.5 kW", d.Description())

	c := d.Clone()
	assert.NotEqual(t, d.ID, c.ID)
	assert.Equal(t, d.PowerHeating, c.PowerHeating)
}

func TestEnumLabels(t *testing.T) {
	for _, label := range []string{"WINDOW", "DOOR"} {
		c, err := ParseOpeningCategory(label)
		require.NoError(t, err)
		assert.Equal(t, label, c.String())
	}
	for _, label := range []string{"HEATER", "COOLER", "AC_INVERTER"} {
		ht, err := ParseHVACType(label)
		require.NoError(t, err)
		assert.Equal(t, label, ht.String())
	}
	d, err := ParseDirection("north")
	require.NoError(t, err)
	assert.Equal(t, North, d)

	_, err = ParseOpeningCategory("skylight")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ParseHVACType("fan")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ParseDirection("up")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, Direction(9).Valid())
}
