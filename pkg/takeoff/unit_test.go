package takeoff

import "testing"

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{3, "3"},
		{3.14159, "3.14"},
		{2.346, "2.35"},
		{0.1, "0.1"},
		{-0.001, "0"},
		{1234.5, "1234.5"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.expected {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestFormatValue(t *testing.T) {
	if got := FormatValue(KindLinear, 12.346, Meters); got != "12.35 m" {
		t.Errorf("got %q", got)
	}
	if got := FormatValue(KindArea, 100, Inches); got != "100 in²" {
		t.Errorf("got %q", got)
	}
}

func TestParseUnit(t *testing.T) {
	tests := map[string]Unit{"ft": Feet, "Feet": Feet, "m": Meters, "metres": Meters, "IN": Inches}
	for in, want := range tests {
		got, err := ParseUnit(in)
		if err != nil || got != want {
			t.Errorf("ParseUnit(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseUnit("furlong"); err == nil {
		t.Error("expected error for unknown unit")
	}
}
