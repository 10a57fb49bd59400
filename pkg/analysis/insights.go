package analysis

import (
	"fmt"

	"github.com/philipparndt/takeoff/pkg/takeoff"
)

// Tone classifies how an insight should be presented
type Tone string

const (
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
	ToneSuccess Tone = "success"
)

// Insight is a derived, display-ready summary line
type Insight struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Value      string `json:"value"`
	HelperText string `json:"helperText,omitempty"`
	Tone       Tone   `json:"tone"`
}

// DefaultDominanceThreshold is the share in percent above which a single
// area is flagged.
const DefaultDominanceThreshold = 60.0

// Aggregator derives insights from one page of measurements. It holds no
// state between calls.
type Aggregator struct {
	DominanceThreshold float64
}

// NewAggregator returns an aggregator with the default dominance threshold
func NewAggregator() Aggregator {
	return Aggregator{DominanceThreshold: DefaultDominanceThreshold}
}

// Aggregate runs the default aggregator
func Aggregate(measurements []takeoff.Measurement, unit takeoff.Unit, calibrated bool) []Insight {
	return NewAggregator().Aggregate(measurements, unit, calibrated)
}

// Aggregate folds a page's measurements into an ordered insight list. The
// calibration status always comes first; nothing else is produced for an
// empty page.
func (a Aggregator) Aggregate(measurements []takeoff.Measurement, unit takeoff.Unit, calibrated bool) []Insight {
	insights := []Insight{calibrationInsight(calibrated)}
	if len(measurements) == 0 {
		return insights
	}

	linear, area := CountByKind(measurements)
	insights = append(insights, Insight{
		ID:         "count",
		Title:      "Measurements",
		Value:      fmt.Sprintf("%d", len(measurements)),
		HelperText: fmt.Sprintf("%d linear, %d area", linear, area),
		Tone:       ToneInfo,
	})

	if values := Values(measurements, takeoff.KindLinear); len(values) > 0 {
		s := Summarize(values)
		format := func(v float64) string { return takeoff.FormatLength(v, unit) }
		insights = append(insights, summaryInsights("linear", "length", s, format)...)
	}

	if values := Values(measurements, takeoff.KindArea); len(values) > 0 {
		s := Summarize(values)
		format := func(v float64) string { return takeoff.FormatArea(v, unit) }
		insights = append(insights, summaryInsights("area", "area", s, format)...)

		if s.Total > 0 {
			largest, _ := Largest(measurements, takeoff.KindArea)
			insights = append(insights, a.dominanceInsight(largest.Value, s.Total, unit))
		}
	}

	return insights
}

func calibrationInsight(calibrated bool) Insight {
	if calibrated {
		return Insight{
			ID:         "calibration",
			Title:      "Scale",
			Value:      "Calibrated",
			HelperText: "Measurements use the calibrated scale.",
			Tone:       ToneSuccess,
		}
	}
	return Insight{
		ID:         "calibration",
		Title:      "Scale",
		Value:      "Not calibrated",
		HelperText: "Calibrate the scale with a known dimension before measuring.",
		Tone:       ToneWarning,
	}
}

func summaryInsights(prefix, noun string, s Summary, format func(float64) string) []Insight {
	spread := Insight{
		ID:    prefix + "-spread",
		Title: "Spread",
		Value: format(s.Min) + " – " + format(s.Max),
		Tone:  ToneInfo,
	}
	if s.Count >= 2 && s.CV > 0 {
		spread.HelperText = fmt.Sprintf("Coefficient of variation %s%%", takeoff.FormatNumber(s.CV))
	}

	return []Insight{
		{
			ID:         prefix + "-total",
			Title:      "Total " + noun,
			Value:      format(s.Total),
			HelperText: fmt.Sprintf("Across %d %s measurement%s", s.Count, prefix, plural(s.Count)),
			Tone:       ToneInfo,
		},
		{
			ID:    prefix + "-average",
			Title: "Average " + noun,
			Value: format(s.Mean),
			Tone:  ToneInfo,
		},
		spread,
	}
}

func (a Aggregator) dominanceInsight(largest, total float64, unit takeoff.Unit) Insight {
	share := largest / total * 100
	insight := Insight{
		ID:         "area-dominance",
		Title:      "Largest area share",
		Value:      takeoff.FormatNumber(share) + "%",
		HelperText: fmt.Sprintf("Largest area is %s of %s", takeoff.FormatArea(largest, unit), takeoff.FormatArea(total, unit)),
		Tone:       ToneInfo,
	}
	if share > a.DominanceThreshold {
		insight.Tone = ToneWarning
		insight.HelperText = "One area dominates the page total; consider splitting it into smaller zones."
	}
	return insight
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
