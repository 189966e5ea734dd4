package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/spendy-ai/spendy/internal/tui/theme"
)

func TestLayoutRowSumsToTotal(t *testing.T) {
	cases := []struct {
		total, n int
	}{
		{120, 4},
		{121, 4},
		{123, 4},
		{97, 3},
		{10, 1},
	}
	for _, tc := range cases {
		widths := LayoutRow(tc.total, tc.n)
		if len(widths) != tc.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tc.total, tc.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
		// Widths differ by at most one column.
		for _, w := range widths {
			if w < widths[len(widths)-1] || w > widths[0] {
				t.Errorf("LayoutRow(%d, %d) uneven widths: %v", tc.total, tc.n, widths)
				break
			}
		}
	}
}

func TestLayoutRowZeroItems(t *testing.T) {
	if got := LayoutRow(100, 0); got != nil {
		t.Errorf("LayoutRow(100, 0) = %v, want nil", got)
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]struct{ Label, Value, Hint string }{
		{"This month", "$420.00", "last month $390.00"},
		{"Transactions", "124", ""},
		{"Top category", "Food", ""},
	}, 90)

	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
}

func TestContentCardHonorsOuterWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	card := ContentCard("Recent", "one\ntwo\nthree", 40)
	for i, line := range strings.Split(card, "\n") {
		if w := lipgloss.Width(line); w != 40 {
			t.Errorf("line %d width = %d, want 40", i, w)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	for i, tab := range Tabs {
		if got := TabIdxByKey(tab.Key); got != i {
			t.Errorf("TabIdxByKey(%q) = %d, want %d", tab.Key, got, i)
		}
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestSparklineOneCellPerValue(t *testing.T) {
	theme.SetActive("flexoki-dark")

	values := []float64{0, 1, 2, 3, 4, 5, 4, 3}
	line := Sparkline(values, theme.Active.Blue)
	if w := lipgloss.Width(line); w != len(values) {
		t.Errorf("sparkline width = %d, want %d", w, len(values))
	}

	if Sparkline(nil, theme.Active.Blue) != "" {
		t.Error("empty input should render nothing")
	}
}

func TestSparklineAllZeros(t *testing.T) {
	theme.SetActive("flexoki-dark")

	line := Sparkline([]float64{0, 0, 0}, theme.Active.Blue)
	if w := lipgloss.Width(line); w != 3 {
		t.Errorf("all-zero sparkline width = %d, want 3", w)
	}
}

func TestBarChartFallsBackWhenTiny(t *testing.T) {
	theme.SetActive("flexoki-dark")

	values := []float64{1, 2, 3}
	small := BarChart(values, theme.Active.Blue, 10, 8)
	if strings.Contains(small, "\n") {
		t.Error("narrow chart should fall back to a single-line sparkline")
	}

	full := BarChart(values, theme.Active.Blue, 40, 6)
	lines := strings.Split(full, "\n")
	if len(lines) != 7 { // height rows + axis
		t.Errorf("chart has %d lines, want 7", len(lines))
	}
	if !strings.Contains(full, "└") {
		t.Error("chart missing x-axis corner")
	}
}

func TestChartTickStep(t *testing.T) {
	cases := []struct {
		max, want float64
	}{
		{10, 2},
		{100, 20},
		{47, 5},
		{9, 2},
		{3, 0.5},
		{0, 1},
	}
	for _, tc := range cases {
		if got := chartTickStep(tc.max); got != tc.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tc.max, got, tc.want)
		}
	}
}

func TestColorForUtilizationBands(t *testing.T) {
	theme.SetActive("flexoki-dark")
	tt := theme.Active

	cases := []struct {
		pct  float64
		want string
	}{
		{0, string(tt.Green)},
		{79.9, string(tt.Green)},
		{80, string(tt.Orange)},
		{100, string(tt.Orange)},
		{100.1, string(tt.Red)},
	}
	for _, tc := range cases {
		if got := ColorForUtilization(tc.pct); got != tc.want {
			t.Errorf("ColorForUtilization(%v) = %s, want %s", tc.pct, got, tc.want)
		}
	}
}

func TestCardInnerWidth(t *testing.T) {
	if got := CardInnerWidth(44); got != 40 {
		t.Errorf("CardInnerWidth(44) = %d, want 40", got)
	}
	if got := CardInnerWidth(5); got != 10 {
		t.Errorf("CardInnerWidth(5) should clamp to 10, got %d", got)
	}
}
