package building

import (
	"strings"

	"thermal_planner/internal/geometry"
)

// Room is a bounded space referencing its walls by id. Width, length and the anchor are
// informational; live geometry always comes from the walls.
type Room struct {
	id      string
	name    string
	width   float64
	length  float64
	height  float64
	x, y    float64
	wallIDs []string
	hvac    []*HVACDevice
}

func newRoom(name string, width, length, height, x, y float64) *Room {
	return &Room{id: newID(), name: name, width: width, length: length, height: height, x: x, y: y}
}

func (r *Room) ID() string { return r.id }
func (r *Room) Name() string { return r.name }
func (r *Room) Width() float64 { return r.width }
func (r *Room) Length() float64 { return r.length }
func (r *Room) Height() float64 { return r.height }
func (r *Room) Anchor() geometry.Point { return geometry.Point{X: r.x, Y: r.y} }
func (r *Room) WallIDs() []string { return append([]string(nil), r.wallIDs...) }
func (r *Room) HVACDevices() []*HVACDevice { return append([]*HVACDevice(nil), r.hvac...) }

// Rename changes the display name.
func (r *Room) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return invalidf("room name cannot be empty")
	}
	r.name = name
	return nil
}

// Center averages the endpoints of every wall the room references that still exists.
func (r *Room) Center(b *Building) (geometry.Point, error) {
	var sx, sy float64
	n := 0
	for _, wid := range r.wallIDs {
		w, ok := b.walls[wid]
		if !ok {
			continue
		}
		sx += w.seg.A.X + w.seg.B.X
		sy += w.seg.A.Y + w.seg.B.Y
		n += 2
	}
	if n == 0 {
		return geometry.Point{}, ErrNoWalls
	}
	return geometry.Point{X: sx / float64(n), Y: sy / float64(n)}, nil
}

func (r *Room) AddHVAC(d *HVACDevice) error {
	if d == nil {
		return invalidf("hvac device is nil")
	}
	r.hvac = append(r.hvac, d)
	return nil
}

// RemoveHVAC removes the device with the given id.
func (r *Room) RemoveHVAC(deviceID string) error {
	for i, d := range r.hvac {
		if d.ID == deviceID {
			r.hvac = append(r.hvac[:i], r.hvac[i+1:]...)
			return nil
		}
	}
	return missingf("hvac device %q not found in room %q", deviceID, r.id)
}
