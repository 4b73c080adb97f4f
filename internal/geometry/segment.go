package geometry

import "math"

// eps is the tolerance used for orientation and collinearity tests.
const eps = 1e-9

// Point is a 2D coordinate in metres.
type Point struct {
	X float64
	Y float64
}

// Segment is a directed line segment A->B.
type Segment struct {
	A Point
	B Point
}

// Seg is a shorthand constructor.
func Seg(ax, ay, bx, by float64) Segment {
	return Segment{A: Point{X: ax, Y: ay}, B: Point{X: bx, Y: by}}
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return math.Hypot(s.B.X-s.A.X, s.B.Y-s.A.Y)
}

// Midpoint returns the middle of the segment.
func (s Segment) Midpoint() Point {
	return Point{X: (s.A.X + s.B.X) / 2, Y: (s.A.Y + s.B.Y) / 2}
}

// Equal reports whether both segments cover the same endpoints in either orientation.
func (s Segment) Equal(o Segment) bool {
	return (s.A == o.A && s.B == o.B) || (s.A == o.B && s.B == o.A)
}

// HasEndpoint reports whether p is one of the segment's endpoints.
func (s Segment) HasEndpoint(p Point) bool {
	return s.A == p || s.B == p
}

// Key is an order-independent map key for a segment.
// Two segments have the same Key iff Equal reports true.
type Key struct {
	P Point
	Q Point
}

// Key returns the canonical key with the lexicographically smaller endpoint first.
func (s Segment) Key() Key {
	if less(s.B, s.A) {
		return Key{P: s.B, Q: s.A}
	}
	return Key{P: s.A, Q: s.B}
}

func less(a, b Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// orientation returns the sign of the cross product (b-a)x(c-a): 1, -1 or 0 when collinear.
func orientation(a, b, c Point) int {
	v := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	switch {
	case v > eps:
		return 1
	case v < -eps:
		return -1
	default:
		return 0
	}
}

// LegalAdjacency decides whether two wall segments may coexist in a building plan.
//
// Identical segments, disjoint segments and segments touching in a single point that is an
// endpoint of either one are legal. A crossing through the interior of both segments, or any
// collinear overlap longer than a point, is not.
func LegalAdjacency(s, o Segment) bool {
	if s.Equal(o) {
		return true
	}

	o1 := orientation(s.A, s.B, o.A)
	o2 := orientation(s.A, s.B, o.B)
	o3 := orientation(o.A, o.B, s.A)
	o4 := orientation(o.A, o.B, s.B)

	if o1 == 0 && o2 == 0 {
		return collinearLegal(s, o)
	}

	// strict crossing: each segment separates the other's endpoints
	if o1*o2 < 0 && o3*o4 < 0 {
		return false
	}

	// any remaining contact happens at an endpoint (T or L junction) or not at all
	return true
}

// collinearLegal handles segments lying on the same line: only a shared single point
// or a gap between them is acceptable.
func collinearLegal(s, o Segment) bool {
	// project on the dominant axis of s
	proj := func(p Point) float64 { return p.X }
	if math.Abs(s.B.Y-s.A.Y) > math.Abs(s.B.X-s.A.X) {
		proj = func(p Point) float64 { return p.Y }
	}

	sMin, sMax := minMax(proj(s.A), proj(s.B))
	oMin, oMax := minMax(proj(o.A), proj(o.B))

	start := math.Max(sMin, oMin)
	end := math.Min(sMax, oMax)
	return end-start <= eps
}

func minMax(a, b float64) (float64, float64) {
	if a < b {
		return a, b
	}
	return b, a
}
