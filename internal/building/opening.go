package building

import "strings"

// OpeningTech is a catalog entry for a window or door construction.
type OpeningTech struct {
	Name     string
	U        float64 // W/(m²·K)
	G        float64 // solar factor, 0..1
	Category OpeningCategory
	Color    string
}

// NewOpeningTech validates a window or door type.
func NewOpeningTech(name string, u, g float64, category OpeningCategory, color string) (*OpeningTech, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalidf("opening tech name cannot be empty")
	}
	if u < 0 {
		return nil, invalidf("U must be >= 0, got %v", u)
	}
	if g < 0 || g > 1 {
		return nil, invalidf("g must be within [0, 1], got %v", g)
	}
	if !category.Valid() {
		return nil, invalidf("unknown opening category %d", int(category))
	}
	if color == "" {
		color = defaultOpeningColor
	}
	return &OpeningTech{Name: name, U: u, G: g, Category: category, Color: color}, nil
}

// Opening is one window or door cut into a wall.
type Opening struct {
	ID     string
	Tech   *OpeningTech
	Width  float64
	Height float64
}

func NewOpening(tech *OpeningTech, width, height float64) (*Opening, error) {
	if tech == nil {
		return nil, invalidf("opening requires a tech")
	}
	if width <= 0 {
		return nil, invalidf("opening width must be > 0, got %v", width)
	}
	if height <= 0 {
		return nil, invalidf("opening height must be > 0, got %v", height)
	}
	return &Opening{ID: newID(), Tech: tech, Width: width, Height: height}, nil
}

func (o *Opening) Area() float64 {
	return o.Width * o.Height
}

// HeatLossCoefficient is U·A in W/K.
func (o *Opening) HeatLossCoefficient() float64 {
	return o.Tech.U * o.Area()
}
