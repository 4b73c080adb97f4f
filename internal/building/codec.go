package building

import (
	"encoding/json"
	"fmt"

	"thermal_planner/internal/geometry"
	"thermal_planner/internal/models"
)

// ToDocument converts the building into its persisted layout.
func ToDocument(b *Building) models.BuildingDocument {
	doc := models.BuildingDocument{
		Walls: make(map[string]models.WallDocument, len(b.walls)),
		Rooms: make(map[string]models.RoomDocument, len(b.rooms)),
	}
	for id, w := range b.walls {
		doc.Walls[id] = WallDocument(w)
	}
	for id, r := range b.rooms {
		doc.Rooms[id] = roomDocument(r)
	}
	return doc
}

func materialDocument(m *Material) models.MaterialDocument {
	return models.MaterialDocument{
		Name:         m.Name,
		Thickness:    m.Thickness,
		Conductivity: m.Conductivity,
		Density:      m.Density,
		SpecificHeat: m.SpecificHeat,
		Color:        m.Color,
		ID:           m.ID,
	}
}

func techDocument(t *OpeningTech) models.OpeningTechDocument {
	return models.OpeningTechDocument{
		Name:     t.Name,
		U:        t.U,
		G:        t.G,
		Category: t.Category.String(),
		Color:    t.Color,
	}
}

// WallDocument is the document form of a single wall.
func WallDocument(w *Wall) models.WallDocument {
	ops := make([]models.OpeningDocument, 0, len(w.openings))
	for _, op := range w.openings {
		ops = append(ops, models.OpeningDocument{
			Tech:   techDocument(op.Tech),
			Width:  op.Width,
			Height: op.Height,
			ID:     op.ID,
		})
	}
	return models.WallDocument{
		StartX:       w.seg.A.X,
		StartY:       w.seg.A.Y,
		EndX:         w.seg.B.X,
		EndY:         w.seg.B.Y,
		Height:       w.height,
		BaseMaterial: materialDocument(w.material),
		Openings:     ops,
		RoomIDs:      append([]string{}, w.roomIDs...),
		ID:           w.id,
	}
}

func hvacDocument(d *HVACDevice) models.HVACDocument {
	return models.HVACDocument{
		Name:         d.Name,
		DeviceType:   d.Type.String(),
		PowerHeating: d.PowerHeating,
		PowerCooling: d.PowerCooling,
		Efficiency:   d.Efficiency,
		ID:           d.ID,
	}
}

func roomDocument(r *Room) models.RoomDocument {
	devices := make([]models.HVACDocument, 0, len(r.hvac))
	for _, d := range r.hvac {
		devices = append(devices, hvacDocument(d))
	}
	return models.RoomDocument{
		Name:        r.name,
		Width:       r.width,
		Length:      r.length,
		Height:      r.height,
		X:           r.x,
		Y:           r.y,
		WallIDs:     append([]string{}, r.wallIDs...),
		HVACDevices: devices,
		ID:          r.id,
	}
}

// decoder re-shares identical materials and opening techs across walls.
type decoder struct {
	materials map[models.MaterialDocument]*Material
	techs     map[models.OpeningTechDocument]*OpeningTech
}

func (d *decoder) material(doc models.MaterialDocument) (*Material, error) {
	if m, ok := d.materials[doc]; ok {
		return m, nil
	}
	m, err := NewMaterial(doc.Name, doc.Thickness, doc.Conductivity, doc.Density, doc.SpecificHeat, doc.Color)
	if err != nil {
		return nil, err
	}
	if doc.ID != "" {
		m.ID = doc.ID
	}
	d.materials[doc] = m
	return m, nil
}

func (d *decoder) tech(doc models.OpeningTechDocument) (*OpeningTech, error) {
	if t, ok := d.techs[doc]; ok {
		return t, nil
	}
	cat, err := ParseOpeningCategory(doc.Category)
	if err != nil {
		return nil, err
	}
	t, err := NewOpeningTech(doc.Name, doc.U, doc.G, cat, doc.Color)
	if err != nil {
		return nil, err
	}
	d.techs[doc] = t
	return t, nil
}

func (d *decoder) wall(key string, doc models.WallDocument) (*Wall, error) {
	if doc.ID != "" && doc.ID != key {
		return nil, invalidf("wall key %q does not match id %q", key, doc.ID)
	}
	mat, err := d.material(doc.BaseMaterial)
	if err != nil {
		return nil, fmt.Errorf("wall %q: %w", key, err)
	}
	w, err := NewWall(geometry.Seg(doc.StartX, doc.StartY, doc.EndX, doc.EndY), doc.Height, mat)
	if err != nil {
		return nil, fmt.Errorf("wall %q: %w", key, err)
	}
	w.id = key

	for _, od := range doc.Openings {
		tech, err := d.tech(od.Tech)
		if err != nil {
			return nil, fmt.Errorf("wall %q: %w", key, err)
		}
		op, err := NewOpening(tech, od.Width, od.Height)
		if err != nil {
			return nil, fmt.Errorf("wall %q: %w", key, err)
		}
		if od.ID != "" {
			op.ID = od.ID
		}
		if err := w.AddOpening(op); err != nil {
			return nil, fmt.Errorf("wall %q: %w", key, err)
		}
	}

	for _, rid := range doc.RoomIDs {
		if err := w.AddRoomID(rid); err != nil {
			return nil, fmt.Errorf("wall %q: %w", key, err)
		}
	}
	return w, nil
}

func (d *decoder) room(key string, doc models.RoomDocument) (*Room, error) {
	if doc.ID != "" && doc.ID != key {
		return nil, invalidf("room key %q does not match id %q", key, doc.ID)
	}
	r := newRoom(doc.Name, doc.Width, doc.Length, doc.Height, doc.X, doc.Y)
	r.id = key
	r.wallIDs = append([]string{}, doc.WallIDs...)
	for _, hd := range doc.HVACDevices {
		typ, err := ParseHVACType(hd.DeviceType)
		if err != nil {
			return nil, fmt.Errorf("room %q: %w", key, err)
		}
		dev, err := NewHVACDevice(hd.Name, typ, hd.PowerHeating, hd.PowerCooling, hd.Efficiency)
		if err != nil {
			return nil, fmt.Errorf("room %q: %w", key, err)
		}
		if hd.ID != "" {
			dev.ID = hd.ID
		}
		r.hvac = append(r.hvac, dev)
	}
	return r, nil
}

// FromDocument rebuilds a building from its persisted layout. Dangling wall ids in rooms
// are kept as they are.
func FromDocument(doc models.BuildingDocument) (*Building, error) {
	d := &decoder{
		materials: make(map[models.MaterialDocument]*Material),
		techs:     make(map[models.OpeningTechDocument]*OpeningTech),
	}
	b := New()
	for key, wd := range doc.Walls {
		w, err := d.wall(key, wd)
		if err != nil {
			return nil, err
		}
		b.putWall(w)
	}
	for key, rd := range doc.Rooms {
		r, err := d.room(key, rd)
		if err != nil {
			return nil, err
		}
		b.rooms[key] = r
	}
	return b, nil
}

// Clone returns a deep copy of the building sharing nothing with the original.
func Clone(b *Building) (*Building, error) {
	return FromDocument(ToDocument(b))
}

// MarshalJSON encodes the building in its document layout.
func (b *Building) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToDocument(b))
}

// DecodeJSON parses a document produced by MarshalJSON.
func DecodeJSON(data []byte) (*Building, error) {
	var doc models.BuildingDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode building: %v", ErrInvalidInput, err)
	}
	return FromDocument(doc)
}
