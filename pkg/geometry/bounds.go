package geometry

import "math"

// BoundingBox represents an axis-aligned bounding box
type BoundingBox struct {
	Min Point
	Max Point
}

// NewBoundingBox creates an empty bounding box that any point will extend
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Point{X: math.MaxFloat64, Y: math.MaxFloat64},
		Max: Point{X: -math.MaxFloat64, Y: -math.MaxFloat64},
	}
}

// NewRect creates a bounding box from two opposite corners
func NewRect(a, b Point) BoundingBox {
	return BoundingBox{Min: a.Min(b), Max: a.Max(b)}
}

// BoundsOf returns the bounding box of the given points
func BoundsOf(points []Point) BoundingBox {
	bbox := NewBoundingBox()
	for _, p := range points {
		bbox.Extend(p)
	}
	return bbox
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point Point) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// IsEmpty reports whether no point has been added
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Size returns the width and height of the bounding box
func (b BoundingBox) Size() Point {
	return b.Max.Sub(b.Min)
}

// Contains reports whether the point lies inside or on the edge of the box
func (b BoundingBox) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Intersects reports whether two boxes overlap; touching edges count
func (b BoundingBox) Intersects(other BoundingBox) bool {
	if b.IsEmpty() || other.IsEmpty() {
		return false
	}
	return !(b.Max.X < other.Min.X ||
		b.Min.X > other.Max.X ||
		b.Max.Y < other.Min.Y ||
		b.Min.Y > other.Max.Y)
}
