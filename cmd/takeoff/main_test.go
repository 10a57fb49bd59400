package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/takeoff/pkg/blueprint"
	"github.com/philipparndt/takeoff/pkg/geometry"
)

const testSheet = `
blueprint: level1.pdf
unit: ft
calibration:
  reference: [{x: 0, y: 0}, {x: 0, y: 50}]
  length: 5
pages:
  - page: 1
    measurements:
      - kind: linear
        points: [{x: 0, y: 0}, {x: 0, y: 30}]
      - kind: linear
        points: [{x: 10, y: 0}, {x: 10, y: 60}]
      - kind: area
        points: [{x: 0, y: 0}, {x: 100, y: 0}, {x: 100, y: 100}, {x: 0, y: 100}]
  - page: 3
    measurements:
      - kind: area
        points: [{x: 200, y: 200}, {x: 250, y: 200}, {x: 250, y: 220}]
`

func writeSheet(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "takeoff.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint(" 12.5, -3 ")
	if err != nil {
		t.Fatal(err)
	}
	if p != geometry.NewPoint(12.5, -3) {
		t.Errorf("got %v", p)
	}

	for _, bad := range []string{"12", "a,1", "1,b", ""} {
		if _, err := parsePoint(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseRegion(t *testing.T) {
	b, err := parseRegion("100,100,0,0")
	if err != nil {
		t.Fatal(err)
	}
	if b.Min != geometry.NewPoint(0, 0) || b.Max != geometry.NewPoint(100, 100) {
		t.Errorf("got %+v", b)
	}
	if _, err := parseRegion("1,2,3"); err == nil {
		t.Error("expected error for three values")
	}
}

func TestNewLogger(t *testing.T) {
	for _, tt := range []struct{ level, format string }{
		{"debug", "text"}, {"info", "json"}, {"WARN", ""}, {"error", "TEXT"},
	} {
		if _, err := newLogger(tt.level, tt.format); err != nil {
			t.Errorf("newLogger(%q, %q): %v", tt.level, tt.format, err)
		}
	}
	if _, err := newLogger("verbose", "text"); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, err := newLogger("info", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestBuildReport(t *testing.T) {
	region := geometry.NewRect(geometry.NewPoint(-1, -1), geometry.NewPoint(5, 5))
	r, err := buildReport(writeSheet(t, testSheet), reportOptions{largest: 1, region: &region})
	if err != nil {
		t.Fatalf("buildReport: %v", err)
	}

	if !r.Calibrated || r.PixelsPerUnit != 10 {
		t.Errorf("scale: calibrated=%v ppu=%v", r.Calibrated, r.PixelsPerUnit)
	}
	if len(r.Pages) != 2 || r.Pages[0].Page != 1 || r.Pages[1].Page != 3 {
		t.Fatalf("pages %+v", r.Pages)
	}

	page1 := r.Pages[0]
	if len(page1.Parallel) != 1 || page1.Parallel[0].I != 0 || page1.Parallel[0].J != 1 {
		t.Errorf("parallel %+v", page1.Parallel)
	}
	if len(page1.Largest) != 2 || page1.Largest[0].Value != 6 || page1.Largest[1].Value != 100 {
		t.Errorf("largest %+v", page1.Largest)
	}
	// only the first line and the square touch the corner region
	if len(page1.InRegion) != 2 || page1.InRegion[0] != 0 || page1.InRegion[1] != 2 {
		t.Errorf("in region %v", page1.InRegion)
	}

	if r.Summary.Linear.Total != 9 || r.Summary.Area.Total != 105 {
		t.Errorf("document totals linear=%v area=%v", r.Summary.Linear.Total, r.Summary.Area.Total)
	}
	if len(r.Insights) != 2 {
		t.Errorf("document insights %+v", r.Insights)
	}
}

func TestWriteReportText(t *testing.T) {
	r, err := buildReport(writeSheet(t, testSheet), reportOptions{})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	writeReportText(&buf, r)
	out := buf.String()

	for _, want := range []string{
		"Blueprint: level1.pdf",
		"Scale: 10 px/ft",
		"Page 1",
		"Page 3",
		"3 ft",
		"100 ft²",
		"4 vertices, 100 x 100 px",
		"3 vertices, 50 x 20 px",
		"[success] Scale: Calibrated",
		"Parallel: #1 || #2",
		"Document",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestWriteReportJSON(t *testing.T) {
	r, err := buildReport(writeSheet(t, testSheet), reportOptions{})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeReportJSON(&buf, r); err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Unit  string `json:"unit"`
		Pages []struct {
			Insights []struct {
				ID string `json:"id"`
			} `json:"insights"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded.Unit != "ft" || len(decoded.Pages) != 2 || decoded.Pages[0].Insights[0].ID != "calibration" {
		t.Errorf("decoded %+v", decoded)
	}
}

func TestBuildReportErrors(t *testing.T) {
	if _, err := buildReport(filepath.Join(t.TempDir(), "missing.yaml"), reportOptions{}); err == nil {
		t.Error("expected error for missing sheet")
	}
	bad := writeSheet(t, "pages:\n  - measurements:\n      - kind: area\n        points: [{x: 0, y: 0}]\n")
	if _, err := buildReport(bad, reportOptions{}); err == nil {
		t.Error("expected error for short area")
	}
}

func TestWriteReportTextEmpty(t *testing.T) {
	r, err := buildReport(writeSheet(t, "pages: []\n"), reportOptions{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	writeReportText(&buf, r)
	if !strings.Contains(buf.String(), "Scale: not calibrated") || !strings.Contains(buf.String(), "No measurements.") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestWriteQualityText(t *testing.T) {
	ready := &blueprint.Quality{
		PageCount:      1,
		CharsPerPage:   120,
		PrintableRatio: 1,
		Dimensions:     []blueprint.Dimension{{Text: "10.5m"}},
	}
	var buf bytes.Buffer
	writeQualityText(&buf, "plan.pdf", ready)
	if !strings.Contains(buf.String(), "Status: ready for takeoff") || !strings.Contains(buf.String(), "Dimension labels (1): 10.5m") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	flagged := &blueprint.Quality{PageCount: 0, PrintableRatio: 1, Warnings: []string{"document has no pages"}}
	buf.Reset()
	writeQualityText(&buf, "empty.pdf", flagged)
	if !strings.Contains(buf.String(), "Status: 1 warning(s)") || !strings.Contains(buf.String(), "  - document has no pages") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
