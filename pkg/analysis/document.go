package analysis

import (
	"fmt"

	"github.com/philipparndt/takeoff/pkg/takeoff"
)

// PageSummary holds the statistics of one page
type PageSummary struct {
	Page   int     `json:"page"`
	Linear Summary `json:"linear"`
	Area   Summary `json:"area"`
}

// DocumentSummary folds every page of a document together
type DocumentSummary struct {
	Pages  []PageSummary `json:"pages"`
	Linear Summary       `json:"linear"`
	Area   Summary       `json:"area"`
}

// SummarizeDocument reduces each page independently, then across pages.
func SummarizeDocument(doc *takeoff.Document) DocumentSummary {
	var summary DocumentSummary
	var allLinear, allArea []float64

	for _, page := range doc.Pages() {
		measurements := doc.Page(page).Measurements()
		linear := Values(measurements, takeoff.KindLinear)
		area := Values(measurements, takeoff.KindArea)

		summary.Pages = append(summary.Pages, PageSummary{
			Page:   page,
			Linear: Summarize(linear),
			Area:   Summarize(area),
		})
		allLinear = append(allLinear, linear...)
		allArea = append(allArea, area...)
	}

	summary.Linear = Summarize(allLinear)
	summary.Area = Summarize(allArea)
	return summary
}

// DocumentInsights renders whole-document totals. It returns nothing for a
// document without measured values.
func DocumentInsights(summary DocumentSummary, unit takeoff.Unit) []Insight {
	var insights []Insight
	if summary.Linear.Count > 0 {
		insights = append(insights, Insight{
			ID:         "document-linear-total",
			Title:      "Document length",
			Value:      takeoff.FormatLength(summary.Linear.Total, unit),
			HelperText: fmt.Sprintf("%d linear measurement%s on %d page%s", summary.Linear.Count, plural(summary.Linear.Count), len(summary.Pages), plural(len(summary.Pages))),
			Tone:       ToneInfo,
		})
	}
	if summary.Area.Count > 0 {
		insights = append(insights, Insight{
			ID:         "document-area-total",
			Title:      "Document area",
			Value:      takeoff.FormatArea(summary.Area.Total, unit),
			HelperText: fmt.Sprintf("%d area measurement%s on %d page%s", summary.Area.Count, plural(summary.Area.Count), len(summary.Pages), plural(len(summary.Pages))),
			Tone:       ToneInfo,
		})
	}
	return insights
}
