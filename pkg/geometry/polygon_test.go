package geometry

import (
	"math"
	"testing"
)

func TestPolygonAreaSquare(t *testing.T) {
	square := Polygon{NewPoint(0, 0), NewPoint(100, 0), NewPoint(100, 100), NewPoint(0, 100)}

	if area := square.Area(); math.Abs(area-10000) > 1e-10 {
		t.Errorf("Area failed: expected 10000, got %v", area)
	}
}

func TestPolygonAreaOrientation(t *testing.T) {
	ccw := Polygon{NewPoint(0, 0), NewPoint(4, 0), NewPoint(0, 3)}
	cw := Polygon{NewPoint(0, 0), NewPoint(0, 3), NewPoint(4, 0)}

	if ccw.SignedArea() <= 0 {
		t.Errorf("expected positive signed area, got %v", ccw.SignedArea())
	}
	if cw.SignedArea() >= 0 {
		t.Errorf("expected negative signed area, got %v", cw.SignedArea())
	}
	if ccw.Area() != cw.Area() || math.Abs(ccw.Area()-6) > 1e-10 {
		t.Errorf("Area failed: expected 6 for both, got %v and %v", ccw.Area(), cw.Area())
	}
}

func TestPolygonAreaCollinear(t *testing.T) {
	line := Polygon{NewPoint(0, 0), NewPoint(5, 5), NewPoint(10, 10)}
	if area := line.Area(); area != 0 {
		t.Errorf("expected 0 for collinear points, got %v", area)
	}
}

func TestPolygonAreaSelfIntersecting(t *testing.T) {
	// Bow tie: the two lobes cancel out in the shoelace sum.
	bowtie := Polygon{NewPoint(0, 0), NewPoint(2, 2), NewPoint(2, 0), NewPoint(0, 2)}
	if area := bowtie.Area(); math.Abs(area) > 1e-10 {
		t.Errorf("expected algebraic area 0, got %v", area)
	}
}

func TestPolygonAreaScaling(t *testing.T) {
	poly := Polygon{NewPoint(1, 1), NewPoint(7, 2), NewPoint(5, 9), NewPoint(0, 4)}
	base := poly.Area()

	for _, k := range []float64{0.5, 2, 3.7, 10} {
		scaled := poly.Scale(k).Area()
		if math.Abs(scaled-base*k*k) > 1e-9 {
			t.Errorf("k=%v: expected %v, got %v", k, base*k*k, scaled)
		}
	}
}

func TestPolygonPerimeter(t *testing.T) {
	tri := Polygon{NewPoint(0, 0), NewPoint(3, 0), NewPoint(0, 4)}
	if p := tri.Perimeter(); math.Abs(p-12) > 1e-10 {
		t.Errorf("Perimeter failed: expected 12, got %v", p)
	}
}

func TestPolygonTooFewPoints(t *testing.T) {
	if a := (Polygon{NewPoint(0, 0), NewPoint(1, 1)}).SignedArea(); a != 0 {
		t.Errorf("expected 0 for two points, got %v", a)
	}
}
