package components

import (
	"strings"
	"testing"
)

func TestFormatChartLabel(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{2000, "$2k"},
		{1500, "$1.5k"},
		{3_000_000, "$3M"},
		{250, "$250"},
		{0.5, "$0.50"},
	}
	for _, tt := range tests {
		if got := formatChartLabel(tt.v); got != tt.want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestChartTickStep(t *testing.T) {
	tests := []struct {
		max, want float64
	}{
		{0, 1},
		{5000, 1000},
		{12000, 2000},
		{40, 5},
	}
	for _, tt := range tests {
		if got := chartTickStep(tt.max); got != tt.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tt.max, got, tt.want)
		}
	}
}

func TestBarChartHandlesNegativeValues(t *testing.T) {
	vals := []float64{100, -50, 300, 0, 200, 150, 10, 20, 30, 40, 50, 60}
	out := BarChart(vals, MonthLabels(), "#ffffff", 60, 8)
	if out == "" {
		t.Fatal("empty chart")
	}
	if !strings.Contains(out, "Jan") {
		t.Error("chart is missing the Jan label")
	}
}

func TestXAxisLabels(t *testing.T) {
	tests := []struct {
		pitch, axisLen int
		want           string
	}{
		{4, 47, "Jan Feb Mar Apr May Jun Jul Aug Sep Oct Nov Dec"},
		{3, 36, "Jan   Mar   May   Jul   Sep   Nov"},
	}
	for _, tt := range tests {
		if got := xAxisLabels(MonthLabels(), tt.pitch, tt.axisLen); got != tt.want {
			t.Errorf("xAxisLabels(pitch=%d) = %q, want %q", tt.pitch, got, tt.want)
		}
	}
}

func TestChartScaleCells(t *testing.T) {
	s := newChartScale(1000, 10)
	if s.ceiling < 1000 {
		t.Fatalf("ceiling = %v, want >= 1000", s.ceiling)
	}
	if got := s.cell(s.ceiling, s.rows()); got != '█' {
		t.Errorf("cell(ceiling, top) = %q, want full block", got)
	}
	if got := s.cell(0, 1); got != ' ' {
		t.Errorf("cell(0, 1) = %q, want blank", got)
	}
	if got := s.label(s.rows()); got == "" {
		t.Error("top row has no tick label")
	}
}
