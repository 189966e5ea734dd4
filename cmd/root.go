package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/spendy-ai/spendy/internal/config"
	"github.com/spendy-ai/spendy/internal/engine"
	"github.com/spendy-ai/spendy/internal/store"
)

var (
	flagUser    string
	flagDB      string
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "spendy",
	Short: "Personal spending intelligence CLI",
	Long:  "Track expenses and get spending profiles, budget alerts, forecasts, and anomaly detection.",
	RunE:  runOverview,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "User the command acts on (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Ledger database path (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress diagnostic output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose diagnostic output")
}

// newLogger builds the CLI logger writing to stderr.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	if flagQuiet {
		level = zerolog.Disabled
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// openEngine is the shared setup path used by all commands. The returned
// cleanup closes the engine and the store.
func openEngine() (*engine.Engine, config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, nil, err
	}

	dbPath := cfg.DBPath()
	if flagDB != "" {
		dbPath = flagDB
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, cfg, nil, fmt.Errorf("opening ledger at %s: %w", dbPath, err)
	}

	e, err := engine.New(st, cfg.Analytics, engine.WithLogger(newLogger()))
	if err != nil {
		_ = st.Close()
		return nil, cfg, nil, err
	}

	cleanup := func() {
		e.Close()
		_ = st.Close()
	}
	return e, cfg, cleanup, nil
}

// currentUser resolves the acting user from the flag or config.
func currentUser(cfg config.Config) string {
	if flagUser != "" {
		return flagUser
	}
	if cfg.General.DefaultUser != "" {
		return cfg.General.DefaultUser
	}
	return "me"
}
