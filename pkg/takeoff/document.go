package takeoff

import (
	"fmt"
	"slices"

	"github.com/philipparndt/takeoff/pkg/geometry"
)

// Document holds one calibration shared by all pages and an independent
// measurement set per page. Pages are numbered from 1.
type Document struct {
	Unit       Unit
	calibrator *Calibrator
	pages      map[int]*MeasurementSet
	current    int
}

// NewDocument creates an empty, uncalibrated document positioned on page 1
func NewDocument(unit Unit) *Document {
	return &Document{
		Unit:       unit,
		calibrator: NewCalibrator(),
		pages:      make(map[int]*MeasurementSet),
		current:    1,
	}
}

// Calibrator returns the document-wide calibrator
func (d *Document) Calibrator() *Calibrator {
	return d.calibrator
}

// Scale returns the scale currently in effect
func (d *Document) Scale() Scale {
	return d.calibrator.Scale()
}

// SetPage switches the current page
func (d *Document) SetPage(page int) error {
	if page < 1 {
		return fmt.Errorf("invalid page number %d", page)
	}
	d.current = page
	return nil
}

// CurrentPage returns the current page number
func (d *Document) CurrentPage() int {
	return d.current
}

// Page returns the measurement set of a page, creating it on first use
func (d *Document) Page(page int) *MeasurementSet {
	set, ok := d.pages[page]
	if !ok {
		set = NewMeasurementSet()
		d.pages[page] = set
	}
	return set
}

// Pages returns the page numbers that hold measurements, ascending
func (d *Document) Pages() []int {
	pages := make([]int, 0, len(d.pages))
	for n, set := range d.pages {
		if set.Len() > 0 {
			pages = append(pages, n)
		}
	}
	slices.Sort(pages)
	return pages
}

// FinalizeMeasurement records a measurement on the current page using the
// scale in effect now.
func (d *Document) FinalizeMeasurement(kind Kind, points []geometry.Point) (Measurement, error) {
	return d.Page(d.current).Finalize(kind, points, d.calibrator.Scale())
}

// RemoveMeasurement deletes by id on the current page; unknown ids are ignored
func (d *Document) RemoveMeasurement(id string) bool {
	return d.Page(d.current).Remove(id)
}

// UndoLast removes the newest measurement on the current page
func (d *Document) UndoLast() (Measurement, bool) {
	return d.Page(d.current).UndoLast()
}

// ClearPage empties the current page only
func (d *Document) ClearPage() {
	d.Page(d.current).Clear()
}

// Reset discards calibration and every page, as when a new file is loaded
func (d *Document) Reset() {
	d.calibrator.Reset()
	d.pages = make(map[int]*MeasurementSet)
	d.current = 1
}
