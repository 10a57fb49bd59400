package main

import (
	"github.com/spf13/cobra"

	"github.com/philipparndt/takeoff/pkg/takeoff"
)

var (
	areaFlags  calibrationFlags
	areaPoints []string
)

var areaCmd = &cobra.Command{
	Use:   "area",
	Short: "Measure the area of a polygon",
	Long: `Measure the real-world area enclosed by three or more page points, in
click order. Self-intersecting outlines are not rejected.`,
	Example: `  takeoff area -p 0,0 -p 100,0 -p 100,100 -p 0,100 --ppu 10`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMeasurement(cmd, takeoff.KindArea, &areaFlags, areaPoints)
	},
}

func init() {
	rootCmd.AddCommand(areaCmd)

	areaCmd.Flags().StringArrayVarP(&areaPoints, "point", "p", nil, "vertex x,y (at least three)")
	areaCmd.MarkFlagRequired("point")
	areaFlags.register(areaCmd)
}
