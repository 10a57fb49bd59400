package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/takeoff/pkg/analysis"
	"github.com/philipparndt/takeoff/pkg/geometry"
	"github.com/philipparndt/takeoff/pkg/takeoff"
)

var (
	measureFlags  calibrationFlags
	measurePoints []string
)

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Measure the distance between two points",
	Long: `Measure the real-world distance between two page points. Without a
calibration the result is reported as unmeasured.`,
	Example: `  takeoff measure --point 0,0 --point 0,30 --ppu 10
  takeoff measure --point 0,0 --point 0,30 --ref 0,0 --ref 0,50 --length 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMeasurement(cmd, takeoff.KindLinear, &measureFlags, measurePoints)
	},
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().StringArrayVarP(&measurePoints, "point", "p", nil, "point x,y (give twice)")
	measureCmd.MarkFlagRequired("point")
	measureFlags.register(measureCmd)
}

func runMeasurement(cmd *cobra.Command, kind takeoff.Kind, flags *calibrationFlags, values []string) error {
	points, err := parsePoints(values)
	if err != nil {
		return err
	}
	cal, err := flags.calibration()
	if err != nil {
		return err
	}
	c, u, err := resolveScale(cmd, cal)
	if err != nil {
		return err
	}
	scale := c.Scale()

	value, measured, err := takeoff.Compute(kind, points, scale)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch kind {
	case takeoff.KindLinear:
		fmt.Fprintln(out, "Distance Measurement")
		fmt.Fprintln(out, "====================")
		fmt.Fprintf(out, "From: %s\n", analysis.FormatPoint(points[0]))
		fmt.Fprintf(out, "To:   %s\n", analysis.FormatPoint(points[1]))
		fmt.Fprintf(out, "Pixel distance: %s px\n", takeoff.FormatNumber(points[0].Distance(points[1])))
	case takeoff.KindArea:
		fmt.Fprintln(out, "Area Measurement")
		fmt.Fprintln(out, "================")
		fmt.Fprintf(out, "Vertices: %d\n", len(points))
		fmt.Fprintf(out, "Pixel area: %s px²\n", takeoff.FormatNumber(geometry.Polygon(points).Area()))
		if scale.IsCalibrated() {
			fmt.Fprintf(out, "Perimeter: %s\n", takeoff.FormatLength(scale.ToUnits(geometry.Polygon(points).Perimeter()), u))
		}
	}

	if !measured {
		fmt.Fprintln(out, "Result: unmeasured (no calibration; pass --ppu or --ref with --length)")
		return nil
	}
	fmt.Fprintf(out, "Result: %s\n", takeoff.FormatValue(kind, value, u))
	return nil
}
