package geometry

import "math"

// Polygon is a closed ring of vertices; the last vertex connects back to the first
type Polygon []Point

// SignedArea returns the shoelace sum halved. Counter-clockwise rings in a
// y-up system are positive; self-intersecting rings yield the algebraic area.
func (poly Polygon) SignedArea() float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += poly[i].Cross(poly[j])
	}
	return sum / 2.0
}

// Area returns the absolute shoelace area of the polygon
func (poly Polygon) Area() float64 {
	return math.Abs(poly.SignedArea())
}

// Perimeter returns the length of the closed ring
func (poly Polygon) Perimeter() float64 {
	n := len(poly)
	if n < 2 {
		return 0
	}

	total := 0.0
	for i := 0; i < n; i++ {
		total += poly[i].Distance(poly[(i+1)%n])
	}
	return total
}

// Bounds returns the axis-aligned bounding box of the vertices
func (poly Polygon) Bounds() BoundingBox {
	return BoundsOf(poly)
}

// Scale multiplies every vertex by k about the origin
func (poly Polygon) Scale(k float64) Polygon {
	scaled := make(Polygon, len(poly))
	for i, p := range poly {
		scaled[i] = p.Mul(k)
	}
	return scaled
}
