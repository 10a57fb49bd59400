package blueprint

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	minCharsPerPage   = 50
	minPrintableRatio = 0.85
)

// Quality captures how usable a blueprint's text layer is for takeoff work
type Quality struct {
	PageCount       int         `json:"page_count"`
	CharsPerPage    float64     `json:"chars_per_page"`
	PrintableRatio  float64     `json:"printable_ratio"`
	HasImageStreams bool        `json:"has_image_streams"`
	Dimensions      []Dimension `json:"dimensions"`
	Warnings        []string    `json:"warnings"`
}

// NeedsOCR reports whether the sheet is probably scanned: little text next
// to images, or text that is mostly unprintable.
func (q *Quality) NeedsOCR() bool {
	return (q.CharsPerPage < minCharsPerPage && q.HasImageStreams) || q.PrintableRatio < minPrintableRatio
}

// OK reports whether no warning was raised
func (q *Quality) OK() bool {
	return len(q.Warnings) == 0
}

// Assess scores an extraction
func Assess(ex *Extraction) *Quality {
	chars := 0
	var dims []Dimension
	for _, p := range ex.Pages {
		chars += len([]rune(p.Text))
		dims = append(dims, p.Dimensions()...)
	}

	q := &Quality{
		PageCount:       ex.PageCount,
		PrintableRatio:  printableRatio(ex.Text()),
		HasImageStreams: ex.HasImageStreams,
		Dimensions:      dims,
	}
	if ex.PageCount > 0 {
		q.CharsPerPage = float64(chars) / float64(ex.PageCount)
	}

	if q.PageCount == 0 {
		q.Warnings = append(q.Warnings, "document has no pages")
	}
	if q.NeedsOCR() {
		q.Warnings = append(q.Warnings, "text layer is sparse or unreadable; the sheet is probably scanned")
	}
	if len(q.Dimensions) == 0 {
		q.Warnings = append(q.Warnings, "no dimension labels found; calibrate from a known feature instead")
	}
	if units := distinctUnits(q.Dimensions); len(units) > 1 {
		q.Warnings = append(q.Warnings, fmt.Sprintf("dimension labels mix units (%s)", strings.Join(units, ", ")))
	}
	return q
}

// CheckFile extracts and scores a PDF in one step
func CheckFile(path string) (*Quality, error) {
	ex, err := ExtractFile(path)
	if err != nil {
		return nil, err
	}
	return Assess(ex), nil
}

// printableRatio excludes the private use area, U+FFFD and control
// characters other than line breaks and tabs.
func printableRatio(text string) float64 {
	total, printable := 0, 0
	for _, r := range text {
		total++
		if isGarbageRune(r) {
			continue
		}
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			printable++
		}
	}
	if total == 0 {
		return 1.0
	}
	return float64(printable) / float64(total)
}

func isGarbageRune(r rune) bool {
	switch {
	case r >= 0xE000 && r <= 0xF8FF:
		return true
	case r == 0xFFFD:
		return true
	case r < 0x20 && r != '\n' && r != '\r' && r != '\t':
		return true
	}
	return false
}

func distinctUnits(dims []Dimension) []string {
	seen := make(map[string]bool)
	var units []string
	for _, d := range dims {
		u := d.Unit.String()
		if !seen[u] {
			seen[u] = true
			units = append(units, u)
		}
	}
	return units
}
