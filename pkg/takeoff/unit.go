package takeoff

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is a display label for real-world lengths. No conversion between
// units is ever performed; the label is carried through to formatting only.
type Unit string

const (
	Feet   Unit = "ft"
	Meters Unit = "m"
	Inches Unit = "in"
)

// Units lists the supported labels in display order.
func Units() []Unit {
	return []Unit{Feet, Meters, Inches}
}

// ParseUnit accepts a short label or its long name, case-insensitive
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ft", "feet", "foot", "'":
		return Feet, nil
	case "m", "meter", "meters", "metre", "metres":
		return Meters, nil
	case "in", "inch", "inches", "\"":
		return Inches, nil
	}
	return "", fmt.Errorf("unknown unit %q (want ft, m or in)", s)
}

func (u Unit) String() string {
	return string(u)
}

// Squared returns the area label, e.g. "ft²"
func (u Unit) Squared() string {
	return string(u) + "²"
}

// FormatNumber rounds to at most two decimals and drops trailing zeros.
func FormatNumber(value float64) string {
	rounded := math.Round(value*100) / 100
	if rounded == 0 {
		rounded = 0 // normalise -0
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// FormatLength renders "<value> <unit>"
func FormatLength(value float64, unit Unit) string {
	return FormatNumber(value) + " " + unit.String()
}

// FormatArea renders "<value> <unit>²"
func FormatArea(value float64, unit Unit) string {
	return FormatNumber(value) + " " + unit.Squared()
}

// FormatValue picks length or area formatting by kind
func FormatValue(kind Kind, value float64, unit Unit) string {
	if kind == KindArea {
		return FormatArea(value, unit)
	}
	return FormatLength(value, unit)
}
