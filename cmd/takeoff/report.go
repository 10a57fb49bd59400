package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/philipparndt/takeoff/pkg/analysis"
	"github.com/philipparndt/takeoff/pkg/geometry"
	"github.com/philipparndt/takeoff/pkg/sheet"
	"github.com/philipparndt/takeoff/pkg/takeoff"
	"github.com/philipparndt/takeoff/pkg/watcher"
)

var (
	reportFormat  string
	reportWatch   bool
	reportLargest int
	reportRegion  string
)

var reportCmd = &cobra.Command{
	Use:   "report [sheet]",
	Short: "Summarize a takeoff sheet",
	Long: `Rebuild a document from a YAML takeoff sheet and print every page's
measurements, insights and parallel lines, followed by document totals.
With --watch the report is printed again whenever the sheet is saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "text", "output format: text or json")
	reportCmd.Flags().BoolVarP(&reportWatch, "watch", "w", false, "re-render when the sheet changes")
	reportCmd.Flags().IntVar(&reportLargest, "largest", 0, "list the N largest measurements of each kind per page")
	reportCmd.Flags().StringVar(&reportRegion, "region", "", "only list measurements touching the rectangle x1,y1,x2,y2")
}

// Report is the rendered form of a takeoff sheet
type Report struct {
	Sheet         string                   `json:"sheet"`
	Blueprint     string                   `json:"blueprint,omitempty"`
	Unit          takeoff.Unit             `json:"unit"`
	Calibrated    bool                     `json:"calibrated"`
	PixelsPerUnit float64                  `json:"pixels_per_unit,omitempty"`
	Pages         []PageReport             `json:"pages"`
	Summary       analysis.DocumentSummary `json:"summary"`
	Insights      []analysis.Insight       `json:"insights"`
}

// PageReport holds one page of a Report
type PageReport struct {
	Page         int                     `json:"page"`
	Measurements []takeoff.Measurement   `json:"measurements"`
	Insights     []analysis.Insight      `json:"insights"`
	Parallel     []analysis.ParallelPair `json:"parallel,omitempty"`
	Largest      []takeoff.Measurement   `json:"largest,omitempty"`
	InRegion     []int                   `json:"in_region,omitempty"`
}

type reportOptions struct {
	largest int
	region  *geometry.BoundingBox
}

func runReport(cmd *cobra.Command, args []string) error {
	path := args[0]
	if reportFormat != "text" && reportFormat != "json" {
		return fmt.Errorf("unknown format %q", reportFormat)
	}

	opts := reportOptions{largest: reportLargest}
	if reportRegion != "" {
		region, err := parseRegion(reportRegion)
		if err != nil {
			return err
		}
		opts.region = &region
	}

	out := cmd.OutOrStdout()
	render := func() error {
		r, err := buildReport(path, opts)
		if err != nil {
			return err
		}
		if reportFormat == "json" {
			return writeReportJSON(out, r)
		}
		writeReportText(out, r)
		return nil
	}

	if !reportWatch {
		return render()
	}

	if err := render(); err != nil {
		logger.Error("report failed", "sheet", path, "error", err)
	}
	return watchSheet(cmd.Context(), path, func() {
		fmt.Fprintln(out)
		if err := render(); err != nil {
			logger.Error("report failed", "sheet", path, "error", err)
		}
	})
}

func watchSheet(ctx context.Context, path string, onChange func()) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fw, err := watcher.NewFileWatcher(cfg.WatchDebounce, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	var mu sync.Mutex
	if err := fw.Watch([]string{path}, func(string) {
		mu.Lock()
		defer mu.Unlock()
		onChange()
	}); err != nil {
		return err
	}

	logger.Info("watching sheet", "sheet", path)
	fw.Run(ctx)
	return nil
}

func buildReport(path string, opts reportOptions) (*Report, error) {
	s, err := sheet.Load(path)
	if err != nil {
		return nil, err
	}
	doc, err := s.Build(unit())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	agg := analysis.Aggregator{DominanceThreshold: cfg.DominanceThresholdPct}
	calibrated := doc.Scale().IsCalibrated()

	r := &Report{
		Sheet:         path,
		Blueprint:     s.Blueprint,
		Unit:          doc.Unit,
		Calibrated:    calibrated,
		PixelsPerUnit: doc.Scale().PixelsPerUnit(),
	}
	for _, n := range doc.Pages() {
		ms := doc.Page(n).Measurements()
		page := PageReport{
			Page:         n,
			Measurements: ms,
			Insights:     agg.Aggregate(ms, doc.Unit, calibrated),
			Parallel:     analysis.FindParallelMeasurements(ms, cfg.ParallelToleranceDeg),
		}
		if opts.largest > 0 {
			page.Largest = append(analysis.FindLargest(ms, takeoff.KindLinear, opts.largest),
				analysis.FindLargest(ms, takeoff.KindArea, opts.largest)...)
		}
		if opts.region != nil {
			page.InRegion = analysis.FindInRegion(ms, *opts.region)
		}
		r.Pages = append(r.Pages, page)
	}

	r.Summary = analysis.SummarizeDocument(doc)
	r.Insights = analysis.DocumentInsights(r.Summary, doc.Unit)
	return r, nil
}

func parseRegion(s string) (geometry.BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geometry.BoundingBox{}, fmt.Errorf("region %q: want x1,y1,x2,y2", s)
	}
	a, err := parsePoint(parts[0] + "," + parts[1])
	if err != nil {
		return geometry.BoundingBox{}, err
	}
	b, err := parsePoint(parts[2] + "," + parts[3])
	if err != nil {
		return geometry.BoundingBox{}, err
	}
	return geometry.NewRect(a, b), nil
}

func writeReportJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeReportText(w io.Writer, r *Report) {
	title := "Takeoff Report: " + r.Sheet
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
	if r.Blueprint != "" {
		fmt.Fprintf(w, "Blueprint: %s\n", r.Blueprint)
	}
	if r.Calibrated {
		fmt.Fprintf(w, "Scale: %s px/%s\n", takeoff.FormatNumber(r.PixelsPerUnit), r.Unit)
	} else {
		fmt.Fprintln(w, "Scale: not calibrated")
	}

	if len(r.Pages) == 0 {
		fmt.Fprintln(w, "\nNo measurements.")
		return
	}

	for _, p := range r.Pages {
		heading := fmt.Sprintf("Page %d", p.Page)
		fmt.Fprintf(w, "\n%s\n%s\n", heading, strings.Repeat("-", len(heading)))

		for i, m := range p.Measurements {
			fmt.Fprintf(w, "  %2d. %-6s %-14s %s\n", i+1, m.Kind, measurementValue(m, r.Unit), measurementShape(m))
		}

		fmt.Fprintln(w, "\n  Insights:")
		writeInsights(w, p.Insights)

		if len(p.Parallel) > 0 {
			pairs := make([]string, 0, len(p.Parallel))
			for _, pair := range p.Parallel {
				pairs = append(pairs, fmt.Sprintf("#%d || #%d", pair.I+1, pair.J+1))
			}
			fmt.Fprintf(w, "\n  Parallel: %s\n", strings.Join(pairs, ", "))
		}
		if len(p.Largest) > 0 {
			fmt.Fprintln(w, "\n  Largest:")
			for _, m := range p.Largest {
				fmt.Fprintf(w, "    %-6s %s\n", m.Kind, takeoff.FormatValue(m.Kind, m.Value, r.Unit))
			}
		}
		if p.InRegion != nil {
			hits := make([]string, 0, len(p.InRegion))
			for _, i := range p.InRegion {
				hits = append(hits, fmt.Sprintf("#%d", i+1))
			}
			fmt.Fprintf(w, "\n  In region: %s\n", strings.Join(hits, ", "))
		}
	}

	if len(r.Insights) > 0 {
		fmt.Fprintln(w, "\nDocument")
		fmt.Fprintln(w, "--------")
		writeInsights(w, r.Insights)
	}
}

func writeInsights(w io.Writer, insights []analysis.Insight) {
	for _, in := range insights {
		line := fmt.Sprintf("    [%s] %s: %s", in.Tone, in.Title, in.Value)
		if in.HelperText != "" {
			line += " (" + in.HelperText + ")"
		}
		fmt.Fprintln(w, line)
	}
}

func measurementValue(m takeoff.Measurement, u takeoff.Unit) string {
	if !m.Measured {
		return "unmeasured"
	}
	return takeoff.FormatValue(m.Kind, m.Value, u)
}

func measurementShape(m takeoff.Measurement) string {
	if seg, ok := m.Segment(); ok {
		return analysis.FormatPoint(seg.Start) + " -> " + analysis.FormatPoint(seg.End)
	}
	size := geometry.BoundsOf(m.Points).Size()
	return fmt.Sprintf("%d vertices, %s x %s px", len(m.Points), takeoff.FormatNumber(size.X), takeoff.FormatNumber(size.Y))
}
