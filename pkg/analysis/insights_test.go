package analysis

import (
	"reflect"
	"strings"
	"testing"

	"github.com/philipparndt/takeoff/pkg/geometry"
	"github.com/philipparndt/takeoff/pkg/takeoff"
)

func measured(kind takeoff.Kind, value float64) takeoff.Measurement {
	return takeoff.Measurement{ID: string(kind) + "-" + takeoff.FormatNumber(value), Kind: kind, Value: value, Measured: true}
}

func findInsight(insights []Insight, id string) (Insight, bool) {
	for _, in := range insights {
		if in.ID == id {
			return in, true
		}
	}
	return Insight{}, false
}

func ids(insights []Insight) []string {
	out := make([]string, len(insights))
	for i, in := range insights {
		out[i] = in.ID
	}
	return out
}

func TestAggregateEmptyPage(t *testing.T) {
	for _, calibrated := range []bool{true, false} {
		insights := Aggregate(nil, takeoff.Feet, calibrated)
		if len(insights) != 1 || insights[0].ID != "calibration" {
			t.Fatalf("calibrated=%v: expected only the calibration insight, got %v", calibrated, ids(insights))
		}
		want := ToneWarning
		if calibrated {
			want = ToneSuccess
		}
		if insights[0].Tone != want {
			t.Errorf("calibrated=%v: tone %q, want %q", calibrated, insights[0].Tone, want)
		}
	}
}

func TestAggregateOrder(t *testing.T) {
	measurements := []takeoff.Measurement{
		measured(takeoff.KindLinear, 3),
		measured(takeoff.KindArea, 100),
		measured(takeoff.KindLinear, 7),
	}
	got := ids(Aggregate(measurements, takeoff.Feet, true))
	want := []string{
		"calibration", "count",
		"linear-total", "linear-average", "linear-spread",
		"area-total", "area-average", "area-spread", "area-dominance",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order:\n got %v\nwant %v", got, want)
	}
}

func TestAggregateCountsAndTotals(t *testing.T) {
	measurements := []takeoff.Measurement{
		measured(takeoff.KindLinear, 3),
		measured(takeoff.KindLinear, 7),
		measured(takeoff.KindArea, 100),
	}
	insights := Aggregate(measurements, takeoff.Feet, true)

	count, _ := findInsight(insights, "count")
	if count.Value != "3" || count.HelperText != "2 linear, 1 area" || count.Tone != ToneInfo {
		t.Errorf("count insight: %+v", count)
	}

	total, _ := findInsight(insights, "linear-total")
	if total.Value != "10 ft" {
		t.Errorf("linear total: %q", total.Value)
	}
	avg, _ := findInsight(insights, "linear-average")
	if avg.Value != "5 ft" {
		t.Errorf("linear average: %q", avg.Value)
	}
	spread, _ := findInsight(insights, "linear-spread")
	if spread.Value != "3 ft – 7 ft" {
		t.Errorf("linear spread: %q", spread.Value)
	}

	areaTotal, _ := findInsight(insights, "area-total")
	if areaTotal.Value != "100 ft²" {
		t.Errorf("area total: %q", areaTotal.Value)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	measurements := []takeoff.Measurement{
		measured(takeoff.KindLinear, 12.3456),
		measured(takeoff.KindArea, 90),
		measured(takeoff.KindArea, 10),
		measured(takeoff.KindLinear, 0.5),
	}
	first := Aggregate(measurements, takeoff.Meters, true)
	second := Aggregate(measurements, takeoff.Meters, true)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("insights differ between identical calls:\n%v\n%v", first, second)
	}
}

func TestCoefficientOfVariationHelper(t *testing.T) {
	uniform := []takeoff.Measurement{
		measured(takeoff.KindLinear, 10),
		measured(takeoff.KindLinear, 10),
		measured(takeoff.KindLinear, 10),
	}
	if s := Summarize(Values(uniform, takeoff.KindLinear)); s.CV != 0 {
		t.Errorf("expected CV 0, got %v", s.CV)
	}
	spread, _ := findInsight(Aggregate(uniform, takeoff.Feet, true), "linear-spread")
	if spread.HelperText != "" {
		t.Errorf("expected no CV helper text, got %q", spread.HelperText)
	}

	varied := []takeoff.Measurement{
		measured(takeoff.KindLinear, 5),
		measured(takeoff.KindLinear, 15),
	}
	if s := Summarize(Values(varied, takeoff.KindLinear)); s.CV <= 0 {
		t.Errorf("expected CV > 0, got %v", s.CV)
	}
	spread, _ = findInsight(Aggregate(varied, takeoff.Feet, true), "linear-spread")
	if !strings.Contains(spread.HelperText, "50%") {
		t.Errorf("expected CV of 50%% in helper text, got %q", spread.HelperText)
	}
}

func TestSingleMeasurementHasNoCV(t *testing.T) {
	spread, _ := findInsight(Aggregate([]takeoff.Measurement{measured(takeoff.KindArea, 42)}, takeoff.Feet, true), "area-spread")
	if spread.HelperText != "" {
		t.Errorf("expected no CV for a single measurement, got %q", spread.HelperText)
	}
}

func TestAreaDominance(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		value  string
		tone   Tone
	}{
		{"dominant", []float64{90, 10}, "90%", ToneWarning},
		{"balanced", []float64{50, 50}, "50%", ToneInfo},
		{"exactly threshold", []float64{60, 40}, "60%", ToneInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ms []takeoff.Measurement
			for _, v := range tt.values {
				ms = append(ms, measured(takeoff.KindArea, v))
			}
			in, ok := findInsight(Aggregate(ms, takeoff.Feet, true), "area-dominance")
			if !ok {
				t.Fatal("missing dominance insight")
			}
			if in.Value != tt.value || in.Tone != tt.tone {
				t.Errorf("got value=%q tone=%q, want %q %q", in.Value, in.Tone, tt.value, tt.tone)
			}
		})
	}
}

func TestDominanceSkippedForZeroTotal(t *testing.T) {
	ms := []takeoff.Measurement{measured(takeoff.KindArea, 0), measured(takeoff.KindArea, 0)}
	if _, ok := findInsight(Aggregate(ms, takeoff.Feet, true), "area-dominance"); ok {
		t.Error("dominance must not be computed for a zero total")
	}
}

func TestDominanceThresholdConfigurable(t *testing.T) {
	ms := []takeoff.Measurement{measured(takeoff.KindArea, 55), measured(takeoff.KindArea, 45)}
	in, _ := findInsight(Aggregator{DominanceThreshold: 50}.Aggregate(ms, takeoff.Feet, true), "area-dominance")
	if in.Tone != ToneWarning {
		t.Errorf("expected warning with a 50%% threshold, got %q", in.Tone)
	}
}

func TestUncalibratedPage(t *testing.T) {
	doc := takeoff.NewDocument(takeoff.Feet)
	m, err := doc.FinalizeMeasurement(takeoff.KindLinear, []geometry.Point{{X: 0, Y: 0}, {X: 0, Y: 30}})
	if err != nil {
		t.Fatalf("FinalizeMeasurement: %v", err)
	}
	if m.Measured {
		t.Fatal("expected unmeasured result without calibration")
	}

	insights := Aggregate(doc.Page(1).Measurements(), doc.Unit, doc.Scale().IsCalibrated())
	if insights[0].Tone != ToneWarning {
		t.Errorf("first insight tone %q, want warning", insights[0].Tone)
	}
	if _, ok := findInsight(insights, "linear-total"); ok {
		t.Error("unmeasured values must not produce totals")
	}
	count, _ := findInsight(insights, "count")
	if count.Value != "1" {
		t.Errorf("count should include unmeasured entries, got %q", count.Value)
	}
}
