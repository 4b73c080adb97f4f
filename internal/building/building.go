package building

import (
	"fmt"
	"math"
	"sort"

	"thermal_planner/internal/geometry"
)

const (
	defaultInitialRoomName = "Room"
	defaultNewRoomName     = "New room"
)

// Building owns every wall and room by id. It is not safe for concurrent use.
type Building struct {
	walls map[string]*Wall
	rooms map[string]*Room
	// byGeometry maps a canonical segment to the id of the wall occupying it.
	byGeometry map[geometry.Key]string
}

func New() *Building {
	return &Building{
		walls:      make(map[string]*Wall),
		rooms:      make(map[string]*Room),
		byGeometry: make(map[geometry.Key]string),
	}
}

func (b *Building) Wall(id string) (*Wall, bool) {
	w, ok := b.walls[id]
	return w, ok
}

func (b *Building) Room(id string) (*Room, bool) {
	r, ok := b.rooms[id]
	return r, ok
}

func (b *Building) WallCount() int { return len(b.walls) }
func (b *Building) RoomCount() int { return len(b.rooms) }

// Walls returns all walls ordered by id.
func (b *Building) Walls() []*Wall {
	out := make([]*Wall, 0, len(b.walls))
	for _, w := range b.walls {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Rooms returns all rooms ordered by id.
func (b *Building) Rooms() []*Room {
	out := make([]*Room, 0, len(b.rooms))
	for _, r := range b.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (b *Building) putWall(w *Wall) {
	b.walls[w.id] = w
	if _, taken := b.byGeometry[w.key()]; !taken {
		b.byGeometry[w.key()] = w.id
	}
}

func (b *Building) dropWall(w *Wall) {
	delete(b.walls, w.id)
	k := w.key()
	if b.byGeometry[k] != w.id {
		return
	}
	delete(b.byGeometry, k)
	// hand the slot to a duplicate loaded from a document, if any
	for _, other := range b.walls {
		if other.key() == k {
			b.byGeometry[k] = other.id
			return
		}
	}
}

// CreateInitialRoom places an x_len by y_len rectangle at the origin. Walls are created
// counter-clockwise from (0,0): south, east, north, west.
func (b *Building) CreateInitialRoom(xLen, yLen, height float64, material *Material, name string) (*Room, error) {
	if xLen <= 0 || yLen <= 0 || height <= 0 {
		return nil, invalidf("room dimensions must be > 0, got %vx%vx%v", xLen, yLen, height)
	}
	if material == nil {
		return nil, invalidf("room requires a material")
	}
	if name == "" {
		name = defaultInitialRoomName
	}

	room := newRoom(name, xLen, yLen, height, 0, 0)
	segs := []geometry.Segment{
		geometry.Seg(0, 0, xLen, 0),       // south
		geometry.Seg(xLen, 0, xLen, yLen), // east
		geometry.Seg(xLen, yLen, 0, yLen), // north
		geometry.Seg(0, yLen, 0, 0),       // west
	}

	walls := make([]*Wall, 0, len(segs))
	for _, s := range segs {
		w, err := NewWall(s, height, material)
		if err != nil {
			return nil, err
		}
		w.roomIDs = []string{room.id}
		walls = append(walls, w)
	}

	for _, w := range walls {
		b.putWall(w)
		room.wallIDs = append(room.wallIDs, w.id)
	}
	b.rooms[room.id] = room
	return room, nil
}

// WallDirection tells which side of the room the wall is on, comparing the wall midpoint
// with the room center along the dominant axis. Only exact for axis-aligned rectangles.
func (b *Building) WallDirection(wallID, roomID string) (Direction, error) {
	w, ok := b.walls[wallID]
	if !ok {
		return 0, missingf("wall %q not found", wallID)
	}
	if !w.HasRoom(roomID) {
		return 0, missingf("wall %q does not border room %q", wallID, roomID)
	}
	room, ok := b.rooms[roomID]
	if !ok {
		return 0, missingf("room %q not found", roomID)
	}
	c, err := room.Center(b)
	if err != nil {
		return 0, err
	}

	mid := w.seg.Midpoint()
	vx, vy := mid.X-c.X, mid.Y-c.Y
	if math.Abs(vx) > math.Abs(vy) {
		if vx > 0 {
			return East, nil
		}
		return West, nil
	}
	if vy > 0 {
		return North, nil
	}
	return South, nil
}

// WallByDirection returns the first wall of the room facing d, or nil if none does.
func (b *Building) WallByDirection(roomID string, d Direction) (*Wall, error) {
	room, ok := b.rooms[roomID]
	if !ok {
		return nil, missingf("room %q not found", roomID)
	}
	for _, wid := range room.wallIDs {
		w, ok := b.walls[wid]
		if !ok {
			continue
		}
		dir, err := b.WallDirection(wid, roomID)
		if err != nil {
			continue
		}
		if dir == d {
			return w, nil
		}
	}
	return nil, nil
}

// FindWallWithGeometry returns the wall occupying the same segment in either orientation.
func (b *Building) FindWallWithGeometry(seg geometry.Segment) (*Wall, bool) {
	id, ok := b.byGeometry[seg.Key()]
	if !ok {
		return nil, false
	}
	w, ok := b.walls[id]
	return w, ok
}

// RoomDimensions is the bounding box of the room's existing walls as (width along x, length along y).
// Unknown rooms and rooms without resolvable walls yield (0, 0).
func (b *Building) RoomDimensions(roomID string) (float64, float64) {
	room, ok := b.rooms[roomID]
	if !ok {
		return 0, 0
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	found := false
	for _, wid := range room.wallIDs {
		w, ok := b.walls[wid]
		if !ok {
			continue
		}
		found = true
		for _, p := range []geometry.Point{w.seg.A, w.seg.B} {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if !found {
		return 0, 0
	}
	return maxX - minX, maxY - minY
}

// RoomCenter is a shorthand for Room.Center on a room looked up by id.
func (b *Building) RoomCenter(roomID string) (geometry.Point, error) {
	room, ok := b.rooms[roomID]
	if !ok {
		return geometry.Point{}, missingf("room %q not found", roomID)
	}
	return room.Center(b)
}

// CanPlace reports whether seg is a legal neighbour of every wall in the building.
func (b *Building) CanPlace(seg geometry.Segment) bool {
	for _, w := range b.walls {
		if !geometry.LegalAdjacency(w.seg, seg) {
			return false
		}
	}
	return true
}

// expansion returns the opposite wall, the two connectors and the new room's footprint
// for a room grown depth metres outward from seg on side d.
func expansion(seg geometry.Segment, d Direction, depth float64) ([3]geometry.Segment, float64, float64, error) {
	var dx, dy float64
	switch d {
	case North:
		dy = depth
	case South:
		dy = -depth
	case East:
		dx = depth
	case West:
		dx = -depth
	default:
		return [3]geometry.Segment{}, 0, 0, fmt.Errorf("unsupported wall direction %v", d)
	}

	s, e := seg.A, seg.B
	opposite := geometry.Seg(s.X+dx, s.Y+dy, e.X+dx, e.Y+dy)
	p1 := geometry.Seg(s.X, s.Y, s.X+dx, s.Y+dy)
	p2 := geometry.Seg(e.X, e.Y, e.X+dx, e.Y+dy)

	var width, length float64
	if d == North || d == South {
		width, length = e.X-s.X, depth
	} else {
		width, length = depth, e.Y-s.Y
	}
	return [3]geometry.Segment{opposite, p1, p2}, math.Abs(width), math.Abs(length), nil
}

// AddRoomToWall grows a new rectangular room of the given depth on the outer side of an
// external wall. Walls that already exist with the same geometry are shared instead of
// duplicated. Either every wall is committed or the building is left untouched.
func (b *Building) AddRoomToWall(wallID string, depth float64, name string) (*Room, error) {
	target, ok := b.walls[wallID]
	if !ok {
		return nil, missingf("wall %q not found", wallID)
	}
	if depth <= 0 {
		return nil, invalidf("depth must be > 0, got %v", depth)
	}
	if len(target.roomIDs) >= maxRoomsPerWall {
		return nil, ErrWallFull
	}
	if len(target.roomIDs) == 0 {
		return nil, missingf("wall %q borders no room", wallID)
	}
	if name == "" {
		name = defaultNewRoomName
	}

	dir, err := b.WallDirection(target.id, target.roomIDs[0])
	if err != nil {
		return nil, err
	}
	candidates, width, length, err := expansion(target.seg, dir, depth)
	if err != nil {
		// unreachable with a valid Direction
		panic(err)
	}

	room := newRoom(name, width, length, target.height, 0, 0)

	chosen := []*Wall{target}
	fresh := make(map[string]bool, len(candidates))
	for _, seg := range candidates {
		w, reused := b.FindWallWithGeometry(seg)
		if reused {
			if len(w.roomIDs) >= maxRoomsPerWall {
				return nil, fmt.Errorf("%w: wall %q is already internal", ErrRoomOverlap, w.id)
			}
		} else {
			w, err = NewWall(seg, target.height, target.material)
			if err != nil {
				return nil, err
			}
			fresh[w.id] = true
		}
		if !b.CanPlace(seg) {
			return nil, fmt.Errorf("%w: new wall (%v,%v)-(%v,%v) crosses the plan",
				ErrRoomOverlap, seg.A.X, seg.A.Y, seg.B.X, seg.B.Y)
		}
		chosen = append(chosen, w)
	}

	for _, w := range chosen {
		w.roomIDs = append(w.roomIDs, room.id)
		if fresh[w.id] {
			b.putWall(w)
		}
		room.wallIDs = append(room.wallIDs, w.id)
	}
	b.rooms[room.id] = room
	return room, nil
}

// DeleteRoom detaches the room from its walls, removes walls left without rooms and then the
// room itself. Wall ids that no longer resolve are skipped.
func (b *Building) DeleteRoom(roomID string) error {
	room, ok := b.rooms[roomID]
	if !ok {
		return missingf("room %q not found", roomID)
	}
	for _, wid := range room.wallIDs {
		w, ok := b.walls[wid]
		if !ok {
			continue
		}
		w.RemoveRoomID(roomID)
		if len(w.roomIDs) == 0 {
			b.dropWall(w)
		}
	}
	delete(b.rooms, roomID)
	return nil
}

// AddOpeningToWall cuts an opening into the wall with the given id.
func (b *Building) AddOpeningToWall(wallID string, op *Opening) error {
	w, ok := b.walls[wallID]
	if !ok {
		return missingf("wall %q not found", wallID)
	}
	return w.AddOpening(op)
}

func (b *Building) SetWallMaterial(wallID string, m *Material) error {
	w, ok := b.walls[wallID]
	if !ok {
		return missingf("wall %q not found", wallID)
	}
	return w.SetMaterial(m)
}

func (b *Building) AddHVACToRoom(roomID string, d *HVACDevice) error {
	r, ok := b.rooms[roomID]
	if !ok {
		return missingf("room %q not found", roomID)
	}
	return r.AddHVAC(d)
}

func (b *Building) RemoveHVACFromRoom(roomID, deviceID string) error {
	r, ok := b.rooms[roomID]
	if !ok {
		return missingf("room %q not found", roomID)
	}
	return r.RemoveHVAC(deviceID)
}

func (b *Building) RenameRoom(roomID, name string) error {
	r, ok := b.rooms[roomID]
	if !ok {
		return missingf("room %q not found", roomID)
	}
	return r.Rename(name)
}
