package takeoff

import (
	"errors"
	"math"
	"testing"

	"github.com/philipparndt/takeoff/pkg/geometry"
)

func calibrate(t *testing.T, c *Calibrator, length float64, p1, p2 geometry.Point) (Scale, error) {
	t.Helper()
	c.SetActualLength(length)
	c.BeginCalibration()
	if _, done, err := c.RecordReferencePoint(p1); err != nil || done {
		t.Fatalf("first reference point: done=%v err=%v", done, err)
	}
	s, done, err := c.RecordReferencePoint(p2)
	if !done {
		t.Fatalf("second reference point did not complete calibration")
	}
	return s, err
}

func TestCalibrationExactRatio(t *testing.T) {
	c := NewCalibrator()
	s, err := calibrate(t, c, 10, geometry.NewPoint(0, 0), geometry.NewPoint(100, 0))
	if err != nil {
		t.Fatalf("calibrate: %v", err)
	}
	if s.PixelsPerUnit() != 10.0 {
		t.Errorf("expected exactly 10, got %v", s.PixelsPerUnit())
	}
	if !c.IsCalibrated() || c.Scale() != s {
		t.Error("calibrator did not keep the scale")
	}
	if c.IsCalibrating() {
		t.Error("calibration mode should end after the second point")
	}
	if c.origin != nil {
		t.Error("origin should be cleared after calibration")
	}
}

func TestCalibrationRejectsInvalidLength(t *testing.T) {
	for _, length := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		c := NewCalibrator()
		_, err := calibrate(t, c, length, geometry.NewPoint(0, 0), geometry.NewPoint(0, 50))
		if !errors.Is(err, ErrInvalidScaleInput) {
			t.Errorf("length %v: expected ErrInvalidScaleInput, got %v", length, err)
		}
		if c.IsCalibrated() {
			t.Errorf("length %v: calibration must stay unset", length)
		}
	}
}

func TestCalibrationRejectsCoincidentPoints(t *testing.T) {
	c := NewCalibrator()
	_, err := calibrate(t, c, 5, geometry.NewPoint(3, 3), geometry.NewPoint(3, 3))
	if !errors.Is(err, ErrInvalidScaleInput) {
		t.Errorf("expected ErrInvalidScaleInput, got %v", err)
	}
}

func TestRecordReferencePointOutsideMode(t *testing.T) {
	c := NewCalibrator()
	if _, _, err := c.RecordReferencePoint(geometry.NewPoint(1, 1)); !errors.Is(err, ErrNotCalibrating) {
		t.Errorf("expected ErrNotCalibrating, got %v", err)
	}
}

func TestBeginCalibrationDiscardsScale(t *testing.T) {
	c := NewCalibrator()
	if _, err := calibrate(t, c, 5, geometry.NewPoint(0, 0), geometry.NewPoint(0, 50)); err != nil {
		t.Fatalf("calibrate: %v", err)
	}
	c.BeginCalibration()
	if c.IsCalibrated() {
		t.Error("restarting calibration should clear the previous scale")
	}
	if !c.IsCalibrating() {
		t.Error("expected calibration mode")
	}
}

func TestNewScaleValidation(t *testing.T) {
	if _, err := NewScale(0); !errors.Is(err, ErrInvalidScaleInput) {
		t.Errorf("expected ErrInvalidScaleInput, got %v", err)
	}
	s, err := NewScale(2.5)
	if err != nil || s.PixelsPerUnit() != 2.5 {
		t.Errorf("NewScale(2.5) = %v, %v", s, err)
	}
	if (Scale{}).IsCalibrated() {
		t.Error("zero scale must be uncalibrated")
	}
}
