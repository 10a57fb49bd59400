package takeoff

import (
	"fmt"
	"math"

	"github.com/philipparndt/takeoff/pkg/geometry"
)

const (
	linearPoints  = 2
	minAreaPoints = 3
)

// ComputeLinearDistance converts a two-point click sequence into a length.
// measured is false when the scale is uncalibrated; that is not an error.
func ComputeLinearDistance(points []geometry.Point, scale Scale) (value float64, measured bool, err error) {
	if len(points) != linearPoints {
		return 0, false, &InsufficientPointsError{Kind: KindLinear, Got: len(points), Min: linearPoints, Exact: true}
	}
	if err := checkFinite(points); err != nil {
		return 0, false, err
	}
	if !scale.IsCalibrated() {
		return 0, false, nil
	}

	return checkResult(scale.ToUnits(points[0].Distance(points[1])))
}

// ComputeArea converts a closed polygon into a real-world area using the
// shoelace formula. Self-intersecting rings are not rejected; they yield the
// algebraic area.
func ComputeArea(points []geometry.Point, scale Scale) (value float64, measured bool, err error) {
	if len(points) < minAreaPoints {
		return 0, false, &InsufficientPointsError{Kind: KindArea, Got: len(points), Min: minAreaPoints}
	}
	if err := checkFinite(points); err != nil {
		return 0, false, err
	}
	if !scale.IsCalibrated() {
		return 0, false, nil
	}

	return checkResult(scale.ToSquareUnits(geometry.Polygon(points).Area()))
}

// Compute dispatches on kind
func Compute(kind Kind, points []geometry.Point, scale Scale) (float64, bool, error) {
	switch kind {
	case KindLinear:
		return ComputeLinearDistance(points, scale)
	case KindArea:
		return ComputeArea(points, scale)
	}
	return 0, false, ErrUnknownKind
}

func checkFinite(points []geometry.Point) error {
	for _, p := range points {
		if !p.IsFinite() {
			return ErrInvalidPoint
		}
	}
	return nil
}

// checkResult rejects values that left the float64 range even though every
// input was finite.
func checkResult(v float64) (float64, bool, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("%w: coordinates out of range for this scale", ErrInvalidPoint)
	}
	return v, true, nil
}
