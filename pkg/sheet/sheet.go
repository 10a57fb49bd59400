// Package sheet reads takeoff sheets: YAML files that describe a calibration
// and the clicked points of each page.
package sheet

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/takeoff/pkg/blueprint"
	"github.com/philipparndt/takeoff/pkg/geometry"
	"github.com/philipparndt/takeoff/pkg/takeoff"
)

// Sheet is the file representation of a takeoff
type Sheet struct {
	Blueprint   string       `yaml:"blueprint,omitempty"`
	Unit        string       `yaml:"unit,omitempty"`
	Calibration *Calibration `yaml:"calibration,omitempty"`
	Pages       []Page       `yaml:"pages"`
}

// Calibration is either a two-point reference with a length (or a printed
// dimension label), or a known pixels-per-unit ratio.
type Calibration struct {
	Reference     []geometry.Point `yaml:"reference,omitempty" json:"reference,omitempty"`
	Length        float64          `yaml:"length,omitempty" json:"length,omitempty"`
	Label         string           `yaml:"label,omitempty" json:"label,omitempty"`
	PixelsPerUnit float64          `yaml:"pixels_per_unit,omitempty" json:"pixels_per_unit,omitempty"`
}

// Page lists the measurements clicked on one page
type Page struct {
	Page         int           `yaml:"page"`
	Measurements []Measurement `yaml:"measurements"`
}

// Measurement is one finished gesture
type Measurement struct {
	Kind   string           `yaml:"kind" json:"kind"`
	Points []geometry.Point `yaml:"points" json:"points"`
}

// Load reads and parses a sheet file
func Load(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	return Parse(data)
}

// Parse decodes sheet YAML
func Parse(data []byte) (*Sheet, error) {
	var s Sheet
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse sheet: %w", err)
	}
	return &s, nil
}

// Build replays the sheet into a document: calibration first, then every
// page's measurements in file order. defaultUnit applies when the sheet and
// the calibration label name none.
func (s *Sheet) Build(defaultUnit takeoff.Unit) (*takeoff.Document, error) {
	unit := defaultUnit
	if s.Unit != "" {
		u, err := takeoff.ParseUnit(s.Unit)
		if err != nil {
			return nil, err
		}
		unit = u
	}

	doc := takeoff.NewDocument(unit)
	if s.Calibration != nil {
		labelUnit, err := s.Calibration.Apply(doc.Calibrator())
		if err != nil {
			return nil, fmt.Errorf("calibration: %w", err)
		}
		if s.Unit == "" && labelUnit != "" {
			doc.Unit = labelUnit
		}
	}

	for _, page := range s.Pages {
		n := page.Page
		if n == 0 {
			n = 1
		}
		if err := doc.SetPage(n); err != nil {
			return nil, err
		}
		for i, m := range page.Measurements {
			kind, err := takeoff.ParseKind(m.Kind)
			if err != nil {
				return nil, fmt.Errorf("page %d measurement %d: %w", n, i+1, err)
			}
			if _, err := doc.FinalizeMeasurement(kind, m.Points); err != nil {
				return nil, fmt.Errorf("page %d measurement %d: %w", n, i+1, err)
			}
		}
	}

	return doc, doc.SetPage(1)
}

// Apply calibrates cal. A reference is replayed as the two-click gesture; a
// label supplies both the length and its unit, which is returned.
func (c *Calibration) Apply(cal *takeoff.Calibrator) (takeoff.Unit, error) {
	if c.PixelsPerUnit != 0 {
		scale, err := takeoff.NewScale(c.PixelsPerUnit)
		if err != nil {
			return "", err
		}
		cal.SetScale(scale)
		return "", nil
	}

	if len(c.Reference) != 2 {
		return "", fmt.Errorf("%w: reference needs exactly two points", takeoff.ErrInvalidScaleInput)
	}

	length := c.Length
	var unit takeoff.Unit
	if c.Label != "" {
		d, err := blueprint.ParseDimension(c.Label)
		if err != nil {
			return "", fmt.Errorf("%w: %v", takeoff.ErrInvalidScaleInput, err)
		}
		length, unit = d.Value, d.Unit
	}

	cal.SetActualLength(length)
	cal.BeginCalibration()
	for _, p := range c.Reference {
		if _, _, err := cal.RecordReferencePoint(p); err != nil {
			return "", err
		}
	}
	return unit, nil
}
