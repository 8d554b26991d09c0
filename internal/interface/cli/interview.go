package cli

import (
	"github.com/spf13/cobra"

	"github.com/careernav/canav/internal/interface/tui"
)

var interviewCmd = &cobra.Command{
	Use:   "interview [role]",
	Short: "Start a mock-interview session",
	Long:  "Jump straight into the AI mock interviewer, optionally preselecting the job role to interview for",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := tui.Options{StartInInterview: true}
		if len(args) == 1 {
			opts.Role = args[0]
		}
		return runTUI(opts)
	},
}

func init() {
	rootCmd.AddCommand(interviewCmd)
}
