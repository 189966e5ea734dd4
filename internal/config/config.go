// Package config loads and saves spendy configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all spendy configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Analytics  AnalyticsConfig  `toml:"analytics"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultUser string `toml:"default_user"`
	DBPath      string `toml:"db_path,omitempty"`
	Currency    string `toml:"currency"`
}

// AnalyticsConfig holds the tunable thresholds of the intelligence engine.
// The defaults are inherited from the product's first release and carry no
// claim of optimality; every one of them may be overridden here.
type AnalyticsConfig struct {
	ProfileWindow     int     `toml:"profile_window"`      // recent transactions per profile
	MinAnomalySample  int     `toml:"min_anomaly_sample"`  // below this, no anomaly fit
	Contamination     float64 `toml:"contamination"`       // expected outlier fraction
	Horizon           int     `toml:"horizon"`             // default forecast days
	ConfidenceZ       float64 `toml:"confidence_z"`        // band width in std devs
	ApproachingPct    float64 `toml:"approaching_pct"`     // budget "approaching" threshold
	TrendHighRatio    float64 `toml:"trend_high_ratio"`    // amount/avg ratio for "high"
	TrendLowRatio     float64 `toml:"trend_low_ratio"`     // amount/avg ratio for "favorable"
	DailySpendAlert   int64   `toml:"daily_spend_alert"`   // avg daily spend suggestion threshold
	MaxFitPoints      int     `toml:"max_fit_points"`      // cap on series length fed to the fitter
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		General: GeneralConfig{
			DefaultUser: "me",
			Currency:    "$",
		},
		Analytics: AnalyticsConfig{
			ProfileWindow:    100,
			MinAnomalySample: 10,
			Contamination:    0.10,
			Horizon:          30,
			ConfidenceZ:      1.96,
			ApproachingPct:   80,
			TrendHighRatio:   1.5,
			TrendLowRatio:    0.7,
			DailySpendAlert:  1000,
			MaxFitPoints:     365,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "spendy")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "spendy")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the platform-appropriate data directory for the ledger db.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "spendy")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "spendy")
}

// DBPath resolves the ledger database path from config or the default.
func (c Config) DBPath() string {
	if c.General.DBPath != "" {
		return c.General.DBPath
	}
	return filepath.Join(DataDir(), "ledger.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg.sanitized(), nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// sanitized replaces out-of-range analytics values with defaults so a bad
// config degrades to stock behavior instead of breaking the engine.
func (c Config) sanitized() Config {
	def := Default().Analytics
	a := &c.Analytics
	if a.ProfileWindow <= 0 {
		a.ProfileWindow = def.ProfileWindow
	}
	if a.MinAnomalySample <= 0 {
		a.MinAnomalySample = def.MinAnomalySample
	}
	if a.Contamination <= 0 || a.Contamination >= 1 {
		a.Contamination = def.Contamination
	}
	if a.Horizon <= 0 {
		a.Horizon = def.Horizon
	}
	if a.ConfidenceZ <= 0 {
		a.ConfidenceZ = def.ConfidenceZ
	}
	if a.ApproachingPct <= 0 || a.ApproachingPct > 100 {
		a.ApproachingPct = def.ApproachingPct
	}
	if a.TrendHighRatio <= 1 {
		a.TrendHighRatio = def.TrendHighRatio
	}
	if a.TrendLowRatio <= 0 || a.TrendLowRatio >= 1 {
		a.TrendLowRatio = def.TrendLowRatio
	}
	if a.DailySpendAlert <= 0 {
		a.DailySpendAlert = def.DailySpendAlert
	}
	if a.MaxFitPoints <= 0 {
		a.MaxFitPoints = def.MaxFitPoints
	}
	return c
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
