package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/spendy-ai/spendy/internal/tui"
	"github.com/spendy-ai/spendy/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	e, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	theme.SetActive(cfg.Appearance.Theme)

	app := tui.NewApp(e, currentUser(cfg), cfg.General.Currency)
	_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
