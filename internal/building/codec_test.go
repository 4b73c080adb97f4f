package building

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermal_planner/internal/geometry"
)

func furnishedBuilding(t *testing.T) *Building {
	t.Helper()
	b, r1 := oneRoom(t, 10, 8)
	north := wallFacing(t, b, r1.ID(), North)
	r2, err := b.AddRoomToWall(north.ID(), 4, "Bedroom")
	require.NoError(t, err)

	win, err := NewOpeningTech("Energy window", 0.9, 0.5, CategoryWindow, "#E0FFFF")
	require.NoError(t, err)
	door, err := NewOpeningTech("Wood door", 1.8, 0, CategoryDoor, "#DEB887")
	require.NoError(t, err)
	op1, _ := NewOpening(win, 1.5, 1.2)
	op2, _ := NewOpening(door, 0.9, 2.0)
	south := wallFacing(t, b, r1.ID(), South)
	require.NoError(t, south.AddOpening(op1))
	require.NoError(t, north.AddOpening(op2))

	heater, _ := NewHVACDevice("Radiator", HVACHeater, 1000, 0, 1)
	ac, _ := NewHVACDevice("AC", HVACInverter, 2800, 2500, 3.2)
	require.NoError(t, r1.AddHVAC(heater))
	require.NoError(t, r2.AddHVAC(ac))
	return b
}

func TestCodec_RoundTrip(t *testing.T) {
	b := furnishedBuilding(t)

	data, err := json.Marshal(b)
	require.NoError(t, err)
	got, err := DecodeJSON(data)
	require.NoError(t, err)

	require.Equal(t, b.WallCount(), got.WallCount())
	require.Equal(t, b.RoomCount(), got.RoomCount())

	for _, w := range b.Walls() {
		gw, ok := got.Wall(w.ID())
		require.True(t, ok, "wall %s", w.ID())
		assert.Equal(t, w.Segment(), gw.Segment())
		assert.Equal(t, w.RoomIDs(), gw.RoomIDs())
		assert.Equal(t, w.Material().ID, gw.Material().ID)
		assert.Equal(t, w.Material().U(), gw.Material().U())
		assert.Equal(t, w.Material().ThermalMass(), gw.Material().ThermalMass())
		assert.Equal(t, w.AreaNet(), gw.AreaNet())
		require.Len(t, gw.Openings(), len(w.Openings()))
		for i, op := range w.Openings() {
			gop := gw.Openings()[i]
			assert.Equal(t, op.ID, gop.ID)
			assert.Equal(t, op.Tech.Category, gop.Tech.Category)
			assert.Equal(t, op.HeatLossCoefficient(), gop.HeatLossCoefficient())
		}
	}
	for _, r := range b.Rooms() {
		gr, ok := got.Room(r.ID())
		require.True(t, ok)
		assert.Equal(t, r.Name(), gr.Name())
		assert.Equal(t, r.WallIDs(), gr.WallIDs())
		require.Len(t, gr.HVACDevices(), len(r.HVACDevices()))
		for i, d := range r.HVACDevices() {
			assert.Equal(t, *d, *gr.HVACDevices()[i])
		}
	}

	again, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestCodec_DocumentLayout(t *testing.T) {
	b := furnishedBuilding(t)
	data, err := json.Marshal(b)
	require.NoError(t, err)

	var raw map[string]map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "walls")
	require.Contains(t, raw, "rooms")

	for id, w := range raw["walls"] {
		assert.Equal(t, id, w["id"])
		for _, k := range []string{"start_x", "start_y", "end_x", "end_y", "height", "base_material", "openings", "room_ids"} {
			assert.Contains(t, w, k)
		}
		for _, op := range w["openings"].([]any) {
			tech := op.(map[string]any)["tech"].(map[string]any)
			assert.Contains(t, []string{"WINDOW", "DOOR"}, tech["category"])
			assert.Contains(t, tech, "U")
			assert.Contains(t, tech, "g")
		}
	}
	for _, r := range raw["rooms"] {
		for _, k := range []string{"name", "width", "length", "height", "x", "y", "wall_ids", "hvac_devices", "id"} {
			assert.Contains(t, r, k)
		}
		for _, d := range r["hvac_devices"].([]any) {
			assert.Contains(t, []string{"HEATER", "COOLER", "AC_INVERTER"}, d.(map[string]any)["device_type"])
		}
	}
}

func TestCodec_SharesMaterials(t *testing.T) {
	b, _ := oneRoom(t, 5, 5)
	got, err := Clone(b)
	require.NoError(t, err)

	walls := got.Walls()
	for _, w := range walls[1:] {
		assert.Same(t, walls[0].Material(), w.Material())
	}
	assert.NotSame(t, b.Walls()[0].Material(), walls[0].Material())
}

func TestCodec_KeepsDanglingWallIDs(t *testing.T) {
	b, r := oneRoom(t, 5, 5)
	r.wallIDs = append(r.wallIDs, "ghost")

	got, err := Clone(b)
	require.NoError(t, err)
	gr, _ := got.Room(r.ID())
	assert.Contains(t, gr.WallIDs(), "ghost")
}

func TestCodec_RebuildsGeometryIndex(t *testing.T) {
	b, _ := oneRoom(t, 5, 5)
	got, err := Clone(b)
	require.NoError(t, err)

	w, ok := got.FindWallWithGeometry(geometry.Seg(5, 0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, geometry.Seg(0, 0, 5, 0), w.Segment())
}

func TestDecodeJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", `{"walls":`},
		{"bad category", `{"walls":{"w1":{"start_x":0,"start_y":0,"end_x":1,"end_y":0,"height":2,
			"base_material":{"name":"m","thickness":1,"conductivity":1,"density":1,"specific_heat":1,"color":"","id":"m1"},
			"openings":[{"tech":{"name":"t","U":1,"g":0.5,"category":"SKYLIGHT","color":""},"width":0.5,"height":0.5,"id":"o1"}],
			"room_ids":["r1"],"id":"w1"}},"rooms":{}}`},
		{"zero length wall", `{"walls":{"w1":{"start_x":1,"start_y":1,"end_x":1,"end_y":1,"height":2,
			"base_material":{"name":"m","thickness":1,"conductivity":1,"density":1,"specific_heat":1,"color":"","id":"m1"},
			"openings":[],"room_ids":[],"id":"w1"}},"rooms":{}}`},
		{"three rooms", `{"walls":{"w1":{"start_x":0,"start_y":0,"end_x":1,"end_y":0,"height":2,
			"base_material":{"name":"m","thickness":1,"conductivity":1,"density":1,"specific_heat":1,"color":"","id":"m1"},
			"openings":[],"room_ids":["a","b","c"],"id":"w1"}},"rooms":{}}`},
		{"id mismatch", `{"walls":{},"rooms":{"r1":{"name":"x","width":1,"length":1,"height":1,"x":0,"y":0,
			"wall_ids":[],"hvac_devices":[],"id":"r2"}}}`},
		{"unbalanced heater", `{"walls":{},"rooms":{"r1":{"name":"x","width":1,"length":1,"height":1,"x":0,"y":0,
			"wall_ids":[],"hvac_devices":[{"name":"h","device_type":"HEATER","power_heating":0,"power_cooling":10,"efficiency":1,"id":"d"}],"id":"r1"}}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tc.doc))
			assert.Error(t, err)
		})
	}
}
