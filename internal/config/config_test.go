package config

import "testing"

func TestSanitized_ReplacesBadValues(t *testing.T) {
	cfg := Default()
	cfg.Analytics.Contamination = 1.5
	cfg.Analytics.ProfileWindow = -3
	cfg.Analytics.TrendLowRatio = 2.0

	got := cfg.sanitized().Analytics
	def := Default().Analytics

	if got.Contamination != def.Contamination {
		t.Errorf("Contamination = %v, want default %v", got.Contamination, def.Contamination)
	}
	if got.ProfileWindow != def.ProfileWindow {
		t.Errorf("ProfileWindow = %v, want default %v", got.ProfileWindow, def.ProfileWindow)
	}
	if got.TrendLowRatio != def.TrendLowRatio {
		t.Errorf("TrendLowRatio = %v, want default %v", got.TrendLowRatio, def.TrendLowRatio)
	}
}

func TestSanitized_KeepsValidOverrides(t *testing.T) {
	cfg := Default()
	cfg.Analytics.Contamination = 0.05
	cfg.Analytics.Horizon = 14

	got := cfg.sanitized().Analytics
	if got.Contamination != 0.05 {
		t.Errorf("Contamination = %v, want 0.05", got.Contamination)
	}
	if got.Horizon != 14 {
		t.Errorf("Horizon = %v, want 14", got.Horizon)
	}
}
