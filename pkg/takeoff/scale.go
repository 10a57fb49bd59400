package takeoff

import (
	"fmt"
	"math"

	"github.com/philipparndt/takeoff/pkg/geometry"
)

// Scale converts pixel distances into real-world units. The zero value is
// uncalibrated.
type Scale struct {
	pixelsPerUnit float64
}

// NewScale validates a pixels-per-unit ratio
func NewScale(pixelsPerUnit float64) (Scale, error) {
	if !isPositiveFinite(pixelsPerUnit) {
		return Scale{}, fmt.Errorf("%w: pixels per unit %v", ErrInvalidScaleInput, pixelsPerUnit)
	}
	return Scale{pixelsPerUnit: pixelsPerUnit}, nil
}

// ScaleFromReference derives the ratio from two reference clicks spanning a
// known real-world length.
func ScaleFromReference(p1, p2 geometry.Point, actualLength float64) (Scale, error) {
	if !isPositiveFinite(actualLength) {
		return Scale{}, fmt.Errorf("%w: reference length %v must be a positive finite number", ErrInvalidScaleInput, actualLength)
	}
	if !p1.IsFinite() || !p2.IsFinite() {
		return Scale{}, fmt.Errorf("%w: %w", ErrInvalidScaleInput, ErrInvalidPoint)
	}
	pixels := p1.Distance(p2)
	if pixels == 0 {
		return Scale{}, fmt.Errorf("%w: reference points coincide", ErrInvalidScaleInput)
	}
	return NewScale(pixels / actualLength)
}

// IsCalibrated reports whether the scale holds a usable ratio
func (s Scale) IsCalibrated() bool {
	return s.pixelsPerUnit > 0
}

// PixelsPerUnit returns the ratio, or 0 when uncalibrated
func (s Scale) PixelsPerUnit() float64 {
	return s.pixelsPerUnit
}

// ToUnits converts a pixel length into real-world units
func (s Scale) ToUnits(pixels float64) float64 {
	return pixels / s.pixelsPerUnit
}

// ToSquareUnits converts a pixel area into squared real-world units
func (s Scale) ToSquareUnits(pixelArea float64) float64 {
	return pixelArea / s.pixelsPerUnit / s.pixelsPerUnit
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
