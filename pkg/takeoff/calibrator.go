package takeoff

import (
	"github.com/philipparndt/takeoff/pkg/geometry"
)

// Calibrator captures the two-click calibration gesture. It owns the scale
// shared by every page of a document until calibration is restarted.
type Calibrator struct {
	active       bool
	origin       *geometry.Point
	actualLength float64
	scale        Scale
}

// NewCalibrator creates an uncalibrated calibrator
func NewCalibrator() *Calibrator {
	return &Calibrator{}
}

// SetActualLength stores the real-world length the next two reference points span.
// Validation happens when the second point arrives.
func (c *Calibrator) SetActualLength(length float64) {
	c.actualLength = length
}

// ActualLength returns the declared reference length
func (c *Calibrator) ActualLength() float64 {
	return c.actualLength
}

// BeginCalibration enters calibration mode. The previous scale is discarded.
func (c *Calibrator) BeginCalibration() {
	c.active = true
	c.origin = nil
	c.scale = Scale{}
}

// IsCalibrating reports whether the next clicks are reference points
func (c *Calibrator) IsCalibrating() bool {
	return c.active
}

// RecordReferencePoint consumes one calibration click. The first call stores
// the origin and returns done=false. The second call computes the scale,
// leaves calibration mode and clears the origin. A reference length that is
// not positive and finite yields ErrInvalidScaleInput and leaves the scale
// unset.
func (c *Calibrator) RecordReferencePoint(p geometry.Point) (scale Scale, done bool, err error) {
	if !c.active {
		return Scale{}, false, ErrNotCalibrating
	}
	if !p.IsFinite() {
		return Scale{}, false, ErrInvalidPoint
	}

	if c.origin == nil {
		origin := p
		c.origin = &origin
		return Scale{}, false, nil
	}

	origin := *c.origin
	c.active = false
	c.origin = nil

	s, err := ScaleFromReference(origin, p, c.actualLength)
	if err != nil {
		c.scale = Scale{}
		return Scale{}, true, err
	}
	c.scale = s
	return s, true, nil
}

// Scale returns the current scale; the zero Scale when uncalibrated
func (c *Calibrator) Scale() Scale {
	return c.scale
}

// IsCalibrated reports whether a scale is in effect
func (c *Calibrator) IsCalibrated() bool {
	return c.scale.IsCalibrated()
}

// SetScale installs an already known scale, e.g. one restored from a sheet.
func (c *Calibrator) SetScale(s Scale) {
	c.active = false
	c.origin = nil
	c.scale = s
}

// Reset drops the scale and any pending gesture
func (c *Calibrator) Reset() {
	c.active = false
	c.origin = nil
	c.scale = Scale{}
}
