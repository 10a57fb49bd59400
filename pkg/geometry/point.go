package geometry

import "math"

// Point represents a 2D point in page pixel space
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NewPoint creates a new 2D point
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference between two points
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Mul multiplies the point by a scalar
func (p Point) Mul(scalar float64) Point {
	return Point{X: p.X * scalar, Y: p.Y * scalar}
}

// Cross returns the z component of the 2D cross product
func (p Point) Cross(other Point) float64 {
	return p.X*other.Y - other.X*p.Y
}

// Length returns the magnitude of the point treated as a vector. It does not
// overflow for coordinates whose squares exceed the float64 range.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	return other.Sub(p).Length()
}

// Min returns a point with the minimum components of two points
func (p Point) Min(other Point) Point {
	return Point{X: math.Min(p.X, other.X), Y: math.Min(p.Y, other.Y)}
}

// Max returns a point with the maximum components of two points
func (p Point) Max(other Point) Point {
	return Point{X: math.Max(p.X, other.X), Y: math.Max(p.Y, other.Y)}
}

// IsFinite reports whether both coordinates are finite numbers
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
