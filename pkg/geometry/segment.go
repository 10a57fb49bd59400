package geometry

import "math"

// Segment represents a straight line between two points
type Segment struct {
	Start Point
	End   Point
}

// NewSegment creates a new segment
func NewSegment(start, end Point) Segment {
	return Segment{Start: start, End: end}
}

// Length returns the length of the segment
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// Angle returns the direction of the segment in degrees, in (-180, 180]
func (s Segment) Angle() float64 {
	d := s.End.Sub(s.Start)
	return math.Atan2(d.Y, d.X) * 180.0 / math.Pi
}

// Bounds returns the axis-aligned bounding box of the segment
func (s Segment) Bounds() BoundingBox {
	return BoundsOf([]Point{s.Start, s.End})
}

// IsParallel reports whether two segments point the same or the opposite way
// within toleranceDeg degrees.
func (s Segment) IsParallel(other Segment, toleranceDeg float64) bool {
	diff := math.Abs(s.Angle() - other.Angle())
	return diff < toleranceDeg || math.Abs(180-diff) < toleranceDeg || math.Abs(360-diff) < toleranceDeg
}
