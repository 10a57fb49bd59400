package analysis

import (
	"fmt"
	"sort"

	"github.com/philipparndt/takeoff/pkg/geometry"
	"github.com/philipparndt/takeoff/pkg/takeoff"
)

// ParallelPair identifies two linear measurements by index, I < J
type ParallelPair struct {
	I int `json:"i"`
	J int `json:"j"`
}

// FindParallelMeasurements returns pairs of linear measurements whose
// directions agree within toleranceDeg, in either orientation. Indices refer
// to the input slice.
func FindParallelMeasurements(measurements []takeoff.Measurement, toleranceDeg float64) []ParallelPair {
	var pairs []ParallelPair
	for i := 0; i < len(measurements); i++ {
		a, ok := measurements[i].Segment()
		if !ok || a.Length() == 0 {
			continue
		}
		for j := i + 1; j < len(measurements); j++ {
			b, ok := measurements[j].Segment()
			if !ok || b.Length() == 0 {
				continue
			}
			if a.IsParallel(b, toleranceDeg) {
				pairs = append(pairs, ParallelPair{I: i, J: j})
			}
		}
	}
	return pairs
}

// FindInRegion returns the indices of measurements whose bounding box
// intersects region, ascending.
func FindInRegion(measurements []takeoff.Measurement, region geometry.BoundingBox) []int {
	var hits []int
	for i, m := range measurements {
		if m.Bounds().Intersects(region) {
			hits = append(hits, i)
		}
	}
	return hits
}

// FindLargest returns the n largest measured entries of a kind, descending
func FindLargest(measurements []takeoff.Measurement, kind takeoff.Kind, count int) []takeoff.Measurement {
	var matches []takeoff.Measurement
	for _, m := range measurements {
		if m.Kind == kind && m.Measured {
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Value > matches[j].Value
	})

	count = max(0, min(count, len(matches)))
	return matches[:count]
}

// FormatPoint formats a pixel coordinate
func FormatPoint(p geometry.Point) string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}
