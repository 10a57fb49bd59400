package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/takeoff/pkg/analysis"
	"github.com/philipparndt/takeoff/pkg/sheet"
	"github.com/philipparndt/takeoff/pkg/takeoff"
)

var calibrateFlags calibrationFlags

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Compute a scale from two reference points",
	Long: `Compute pixels-per-unit from two reference points on the page and the
real-world length between them. The length is given directly with --length or
read from a printed dimension with --label, which also sets the unit.`,
	Example: `  takeoff calibrate --ref 0,0 --ref 100,0 --length 10
  takeoff calibrate --ref 120,40 --ref 330,40 --label 10.5m`,
	Args: cobra.NoArgs,
	RunE: runCalibrate,
}

func init() {
	rootCmd.AddCommand(calibrateCmd)
	calibrateFlags.register(calibrateCmd)
}

func runCalibrate(cmd *cobra.Command, _ []string) error {
	cal, err := calibrateFlags.calibration()
	if err != nil {
		return err
	}
	if cal == nil || len(cal.Reference) != 2 {
		return errors.New("calibrate needs two --ref points")
	}
	if cal.PixelsPerUnit != 0 {
		return errors.New("--ppu cannot be combined with calibrate")
	}

	c, u, err := resolveScale(cmd, cal)
	if err != nil {
		return err
	}
	scale := c.Scale()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Scale Calibration")
	fmt.Fprintln(out, "=================")
	fmt.Fprintf(out, "Reference: %s -> %s\n", analysis.FormatPoint(cal.Reference[0]), analysis.FormatPoint(cal.Reference[1]))
	fmt.Fprintf(out, "Pixel distance: %s px\n", takeoff.FormatNumber(cal.Reference[0].Distance(cal.Reference[1])))
	fmt.Fprintf(out, "Actual length: %s\n", takeoff.FormatLength(c.ActualLength(), u))
	fmt.Fprintf(out, "Scale: %s px/%s\n", takeoff.FormatNumber(scale.PixelsPerUnit()), u)
	return nil
}

// resolveScale applies a calibration through the two-click gesture and
// returns the calibrator, uncalibrated when cal is nil. The unit comes from
// --unit when given, then from a dimension label, then from config.
func resolveScale(cmd *cobra.Command, cal *sheet.Calibration) (*takeoff.Calibrator, takeoff.Unit, error) {
	c := takeoff.NewCalibrator()
	u := unit()
	if cal == nil {
		return c, u, nil
	}

	labelUnit, err := cal.Apply(c)
	if err != nil {
		return nil, "", err
	}
	if labelUnit != "" && !cmd.Flags().Changed("unit") {
		u = labelUnit
	}
	logger.Debug("scale resolved", "pixels_per_unit", c.Scale().PixelsPerUnit(), "unit", u)
	return c, u, nil
}
