package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/takeoff/pkg/geometry"
	"github.com/philipparndt/takeoff/pkg/sheet"
)

// parsePoint reads "x,y"
func parsePoint(s string) (geometry.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geometry.Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return geometry.NewPoint(x, y), nil
}

func parsePoints(values []string) ([]geometry.Point, error) {
	points := make([]geometry.Point, 0, len(values))
	for _, v := range values {
		p, err := parsePoint(v)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

// calibrationFlags are shared by every command that needs a scale
type calibrationFlags struct {
	refs          []string
	length        float64
	label         string
	pixelsPerUnit float64
}

func (f *calibrationFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.refs, "ref", nil, "reference point x,y (give twice)")
	cmd.Flags().Float64Var(&f.length, "length", 0, "real-world length between the reference points")
	cmd.Flags().StringVar(&f.label, "label", "", `printed dimension between the reference points, e.g. 10.5m or 12'6"`)
	cmd.Flags().Float64Var(&f.pixelsPerUnit, "ppu", 0, "known scale in pixels per unit")

	cmd.MarkFlagsMutuallyExclusive("length", "label")
	cmd.MarkFlagsMutuallyExclusive("ppu", "ref")
}

// calibration returns nil when no calibration flag was given
func (f *calibrationFlags) calibration() (*sheet.Calibration, error) {
	if len(f.refs) == 0 && f.pixelsPerUnit == 0 {
		return nil, nil
	}
	refs, err := parsePoints(f.refs)
	if err != nil {
		return nil, err
	}
	return &sheet.Calibration{
		Reference:     refs,
		Length:        f.length,
		Label:         f.label,
		PixelsPerUnit: f.pixelsPerUnit,
	}, nil
}
