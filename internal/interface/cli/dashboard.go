package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/careernav/canav/internal/interface/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the career dashboard",
	Long:  "Open the interactive dashboard: feature overview, resume profile status, and entry into the mock interviewer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(tui.Options{})
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runTUI(opts tui.Options) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.log.Sync() }()

	model := tui.New(a.client, a.provider, a.cfg.VoiceCommand, a.log, opts)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}
