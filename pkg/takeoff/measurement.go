package takeoff

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/philipparndt/takeoff/pkg/geometry"
)

// Kind is the measurement type, fixed at creation
type Kind string

const (
	KindLinear Kind = "linear"
	KindArea   Kind = "area"
)

// ParseKind validates a kind string
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindLinear, KindArea:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Measurement is an immutable record of one finished click gesture. Value is
// captured with the scale in effect at creation and never recomputed.
type Measurement struct {
	ID       string           `json:"id" yaml:"id"`
	Kind     Kind             `json:"kind" yaml:"kind"`
	Points   []geometry.Point `json:"points" yaml:"points"`
	Value    float64          `json:"value" yaml:"value"`
	Measured bool             `json:"measured" yaml:"measured"` // false when created before calibration
}

// Segment returns the line of a linear measurement
func (m Measurement) Segment() (geometry.Segment, bool) {
	if m.Kind != KindLinear || len(m.Points) != linearPoints {
		return geometry.Segment{}, false
	}
	return geometry.NewSegment(m.Points[0], m.Points[1]), true
}

// Bounds returns the bounding box of the measurement's points
func (m Measurement) Bounds() geometry.BoundingBox {
	return geometry.BoundsOf(m.Points)
}

func (m Measurement) clone() Measurement {
	m.Points = slices.Clone(m.Points)
	return m
}

// MeasurementSet is the ordered list of measurements on one page
type MeasurementSet struct {
	items []Measurement
	newID func() string
}

// NewMeasurementSet creates an empty set that assigns random UUIDs
func NewMeasurementSet() *MeasurementSet {
	return &MeasurementSet{newID: uuid.NewString}
}

// Finalize validates the point count for kind, computes the value with scale,
// assigns a fresh id and appends the measurement.
func (s *MeasurementSet) Finalize(kind Kind, points []geometry.Point, scale Scale) (Measurement, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return Measurement{}, err
	}

	value, measured, err := Compute(kind, points, scale)
	if err != nil {
		return Measurement{}, err
	}

	m := Measurement{
		ID:       s.newID(),
		Kind:     kind,
		Points:   slices.Clone(points),
		Value:    value,
		Measured: measured,
	}
	s.items = append(s.items, m)
	return m.clone(), nil
}

// Remove deletes the measurement with the given id. Missing ids are a no-op.
func (s *MeasurementSet) Remove(id string) bool {
	for i, m := range s.items {
		if m.ID == id {
			s.items = slices.Delete(s.items, i, i+1)
			return true
		}
	}
	return false
}

// UndoLast removes the most recently appended measurement
func (s *MeasurementSet) UndoLast() (Measurement, bool) {
	if len(s.items) == 0 {
		return Measurement{}, false
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return last, true
}

// Clear empties the set
func (s *MeasurementSet) Clear() {
	s.items = nil
}

// Len returns the number of measurements
func (s *MeasurementSet) Len() int {
	return len(s.items)
}

// Get returns a copy of the measurement with the given id
func (s *MeasurementSet) Get(id string) (Measurement, bool) {
	for _, m := range s.items {
		if m.ID == id {
			return m.clone(), true
		}
	}
	return Measurement{}, false
}

// Measurements returns a copy of the measurements in creation order
func (s *MeasurementSet) Measurements() []Measurement {
	out := make([]Measurement, len(s.items))
	for i, m := range s.items {
		out[i] = m.clone()
	}
	return out
}
