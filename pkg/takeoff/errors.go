package takeoff

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidScaleInput is returned when a reference length or scale is
	// not a positive finite number. Calibration stays unset.
	ErrInvalidScaleInput = errors.New("invalid scale input")

	// ErrInsufficientPoints matches any *InsufficientPointsError via errors.Is.
	ErrInsufficientPoints = errors.New("insufficient points")

	// ErrUnknownKind is returned for a measurement kind other than linear or area.
	ErrUnknownKind = errors.New("unknown measurement kind")

	// ErrNotCalibrating is returned when a reference point arrives outside calibration mode.
	ErrNotCalibrating = errors.New("calibration mode is not active")

	// ErrInvalidPoint is returned for a point with a NaN or infinite coordinate.
	ErrInvalidPoint = errors.New("point coordinates must be finite")
)

// InsufficientPointsError reports a point sequence that does not fit the
// measurement kind.
type InsufficientPointsError struct {
	Kind  Kind
	Got   int
	Min   int
	Exact bool // linear measurements need exactly Min points
}

func (e *InsufficientPointsError) Error() string {
	if e.Exact {
		return fmt.Sprintf("%s measurement needs exactly %d points, got %d", e.Kind, e.Min, e.Got)
	}
	return fmt.Sprintf("%s measurement needs at least %d points, got %d", e.Kind, e.Min, e.Got)
}

// Is lets errors.Is(err, ErrInsufficientPoints) match.
func (e *InsufficientPointsError) Is(target error) bool {
	return target == ErrInsufficientPoints
}
