package analysis

import (
	"math"

	"github.com/philipparndt/takeoff/pkg/takeoff"
)

// Summary holds aggregate statistics over a list of values
type Summary struct {
	Count  int     `json:"count"`
	Total  float64 `json:"total"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stddev"` // population standard deviation
	CV     float64 `json:"cv"`     // coefficient of variation in percent
}

// Summarize computes totals and spread. The standard deviation uses the
// population formula; CV is 0 when the mean is 0.
func Summarize(values []float64) Summary {
	s := Summary{Count: len(values)}
	if s.Count == 0 {
		return s
	}

	s.Min = math.MaxFloat64
	s.Max = -math.MaxFloat64
	for _, v := range values {
		s.Total += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = s.Total / float64(s.Count)

	variance := 0.0
	for _, v := range values {
		d := v - s.Mean
		variance += d * d
	}
	s.StdDev = math.Sqrt(variance / float64(s.Count))

	if s.Mean != 0 {
		s.CV = s.StdDev / s.Mean * 100
	}
	return s
}

// Values returns the values of measured entries of the given kind, in order
func Values(measurements []takeoff.Measurement, kind takeoff.Kind) []float64 {
	var values []float64
	for _, m := range measurements {
		if m.Kind == kind && m.Measured {
			values = append(values, m.Value)
		}
	}
	return values
}

// Largest returns the measured entry of the given kind with the highest value
func Largest(measurements []takeoff.Measurement, kind takeoff.Kind) (takeoff.Measurement, bool) {
	var best takeoff.Measurement
	found := false
	for _, m := range measurements {
		if m.Kind != kind || !m.Measured {
			continue
		}
		if !found || m.Value > best.Value {
			best = m
			found = true
		}
	}
	return best, found
}

// CountByKind returns the number of linear and area measurements
func CountByKind(measurements []takeoff.Measurement) (linear, area int) {
	for _, m := range measurements {
		switch m.Kind {
		case takeoff.KindLinear:
			linear++
		case takeoff.KindArea:
			area++
		}
	}
	return linear, area
}
