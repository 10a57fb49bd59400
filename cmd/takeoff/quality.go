package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/takeoff/pkg/blueprint"
	"github.com/philipparndt/takeoff/pkg/takeoff"
)

var qualityFormat string

var qualityCmd = &cobra.Command{
	Use:   "quality [pdf]",
	Short: "Check a blueprint PDF before measuring",
	Long: `Inspect the text layer of a blueprint PDF: page count, characters per
page, printable ratio, embedded images and the dimension labels found. A sheet
with little or unreadable text next to images is flagged as needing OCR.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuality,
}

func init() {
	rootCmd.AddCommand(qualityCmd)
	qualityCmd.Flags().StringVarP(&qualityFormat, "format", "f", "text", "output format: text or json")
}

func runQuality(cmd *cobra.Command, args []string) error {
	filename := args[0]

	q, err := blueprint.CheckFile(filename)
	if err != nil {
		return err
	}
	logger.Debug("blueprint checked", "file", filename, "pages", q.PageCount, "dimensions", len(q.Dimensions))

	out := cmd.OutOrStdout()
	if qualityFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			*blueprint.Quality
			NeedsOCR bool `json:"needs_ocr"`
			OK       bool `json:"ok"`
		}{q, q.NeedsOCR(), q.OK()})
	}

	writeQualityText(out, filename, q)
	return nil
}

func writeQualityText(w io.Writer, filename string, q *blueprint.Quality) {
	fmt.Fprintln(w, "Blueprint Quality")
	fmt.Fprintln(w, "=================")
	fmt.Fprintf(w, "File: %s\n\n", filename)
	fmt.Fprintf(w, "Pages: %d\n", q.PageCount)
	fmt.Fprintf(w, "Characters per page: %s\n", takeoff.FormatNumber(q.CharsPerPage))
	fmt.Fprintf(w, "Printable ratio: %s%%\n", takeoff.FormatNumber(q.PrintableRatio*100))
	fmt.Fprintf(w, "Image streams: %t\n", q.HasImageStreams)
	fmt.Fprintf(w, "Needs OCR: %t\n", q.NeedsOCR())

	if len(q.Dimensions) > 0 {
		labels := make([]string, 0, len(q.Dimensions))
		for _, d := range q.Dimensions {
			labels = append(labels, d.Text)
		}
		fmt.Fprintf(w, "\nDimension labels (%d): %s\n", len(labels), strings.Join(labels, ", "))
	}
	if q.OK() {
		fmt.Fprintln(w, "\nStatus: ready for takeoff")
	} else {
		fmt.Fprintf(w, "\nStatus: %d warning(s)\n", len(q.Warnings))
		fmt.Fprintln(w, "Warnings:")
		for _, warning := range q.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}
}
