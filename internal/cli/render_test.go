package cli

import (
	"strings"
	"testing"
)

func TestRenderHorizontalBar(t *testing.T) {
	full := RenderHorizontalBar("Food", 10, 10, 20)
	half := RenderHorizontalBar("Transport", 5, 10, 20)

	if n := strings.Count(full, "█"); n != 20 {
		t.Errorf("full bar has %d blocks, want 20", n)
	}
	if n := strings.Count(half, "█"); n != 10 {
		t.Errorf("half bar has %d blocks, want 10", n)
	}
	if !strings.Contains(full, "Food") {
		t.Error("bar missing its label")
	}

	if bare := RenderHorizontalBar("Empty", 3, 0, 20); strings.Contains(bare, "█") {
		t.Errorf("non-positive max should render no bar, got %q", bare)
	}
}

func TestRenderUtilizationBar(t *testing.T) {
	cases := []struct {
		pct    float64
		filled int
	}{
		{0, 0},
		{50, 5},
		{100, 10},
		{130, 10}, // fill clamps, the printed percentage does not
	}
	for _, tc := range cases {
		bar := RenderUtilizationBar(tc.pct, 10)
		if n := strings.Count(bar, "█"); n != tc.filled {
			t.Errorf("pct %v: %d filled cells, want %d", tc.pct, n, tc.filled)
		}
		if !strings.Contains(bar, FormatPercent(tc.pct)) {
			t.Errorf("pct %v: rendered bar missing %q", tc.pct, FormatPercent(tc.pct))
		}
	}
}
