package building

import (
	"thermal_planner/internal/geometry"
)

// maxRoomsPerWall is the number of rooms a wall can separate.
const maxRoomsPerWall = 2

// Wall is a straight wall segment with a material, openings and up to two bordering rooms.
type Wall struct {
	id       string
	seg      geometry.Segment
	height   float64
	material *Material
	openings []*Opening
	roomIDs  []string
}

// NewWall validates the geometry and returns a wall with no rooms and no openings.
func NewWall(seg geometry.Segment, height float64, material *Material) (*Wall, error) {
	if height <= 0 {
		return nil, invalidf("wall height must be > 0, got %v", height)
	}
	if seg.Length() == 0 {
		return nil, invalidf("wall length cannot be 0, start and end coincide at (%v, %v)", seg.A.X, seg.A.Y)
	}
	if material == nil {
		return nil, invalidf("wall requires a material")
	}
	return &Wall{id: newID(), seg: seg, height: height, material: material}, nil
}

func (w *Wall) ID() string { return w.id }
func (w *Wall) Segment() geometry.Segment { return w.seg }
func (w *Wall) Start() geometry.Point { return w.seg.A }
func (w *Wall) End() geometry.Point { return w.seg.B }
func (w *Wall) Height() float64 { return w.height }
func (w *Wall) Material() *Material { return w.material }
func (w *Wall) Length() float64 { return w.seg.Length() }
func (w *Wall) AreaGross() float64 { return w.Length() * w.height }
func (w *Wall) IsInternal() bool { return len(w.roomIDs) == maxRoomsPerWall }
func (w *Wall) Openings() []*Opening { return append([]*Opening(nil), w.openings...) }
func (w *Wall) RoomIDs() []string { return append([]string(nil), w.roomIDs...) }
func (w *Wall) SameGeometry(o *Wall) bool { return w.seg.Equal(o.seg) }
func (w *Wall) key() geometry.Key { return w.seg.Key() }

func (w *Wall) AreaOpenings() float64 {
	var sum float64
	for _, op := range w.openings {
		sum += op.Area()
	}
	return sum
}

// AreaNet is the opaque area of the wall, never negative.
func (w *Wall) AreaNet() float64 {
	net := w.AreaGross() - w.AreaOpenings()
	if net < 0 {
		return 0
	}
	return net
}

// AddOpening appends an opening if it fits within the wall height and remaining length.
func (w *Wall) AddOpening(op *Opening) error {
	if op == nil {
		return invalidf("opening is nil")
	}
	if op.Height > w.height {
		return invalidf("opening height %.2fm exceeds wall height %.2fm", op.Height, w.height)
	}
	var used float64
	for _, o := range w.openings {
		used += o.Width
	}
	if used+op.Width > w.Length() {
		return invalidf("total opening width exceeds wall length %.2fm", w.Length())
	}
	w.openings = append(w.openings, op)
	return nil
}

// AddRoomID registers a bordering room.
func (w *Wall) AddRoomID(id string) error {
	if len(w.roomIDs) >= maxRoomsPerWall {
		return ErrWallFull
	}
	w.roomIDs = append(w.roomIDs, id)
	return nil
}

// RemoveRoomID drops a bordering room and reports whether it was present.
func (w *Wall) RemoveRoomID(id string) bool {
	for i, rid := range w.roomIDs {
		if rid == id {
			w.roomIDs = append(w.roomIDs[:i], w.roomIDs[i+1:]...)
			return true
		}
	}
	return false
}

func (w *Wall) HasRoom(id string) bool {
	for _, rid := range w.roomIDs {
		if rid == id {
			return true
		}
	}
	return false
}

// OtherRoom returns the room on the far side of an internal wall.
func (w *Wall) OtherRoom(id string) (string, bool) {
	if len(w.roomIDs) != maxRoomsPerWall {
		return "", false
	}
	if w.roomIDs[0] == id {
		return w.roomIDs[1], true
	}
	return w.roomIDs[0], true
}

// SetMaterial swaps the wall construction. The previous material is left untouched.
func (w *Wall) SetMaterial(m *Material) error {
	if m == nil {
		return invalidf("wall requires a material")
	}
	w.material = m
	return nil
}

// OpeningSpan is where an opening sits along its wall.
type OpeningSpan struct {
	OpeningID string
	Start     geometry.Point
	End       geometry.Point
}

// OpeningLayout spreads the openings evenly along the wall, separated by equal gaps
// at both ends and between neighbours.
func (w *Wall) OpeningLayout() []OpeningSpan {
	if len(w.openings) == 0 {
		return nil
	}
	length := w.Length()
	ux := (w.seg.B.X - w.seg.A.X) / length
	uy := (w.seg.B.Y - w.seg.A.Y) / length

	var total float64
	for _, op := range w.openings {
		total += op.Width
	}
	gap := (length - total) / float64(len(w.openings)+1)

	spans := make([]OpeningSpan, 0, len(w.openings))
	dist := 0.0
	for _, op := range w.openings {
		dist += gap
		start := geometry.Point{X: w.seg.A.X + ux*dist, Y: w.seg.A.Y + uy*dist}
		dist += op.Width
		end := geometry.Point{X: w.seg.A.X + ux*dist, Y: w.seg.A.Y + uy*dist}
		spans = append(spans, OpeningSpan{OpeningID: op.ID, Start: start, End: end})
	}
	return spans
}
