package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/careernav/canav/internal/core/auth"
	"github.com/careernav/canav/internal/core/config"
)

var loginCmd = &cobra.Command{
	Use:   "login <token>",
	Short: "Store the backend access token",
	Long:  "Store the bearer token obtained from the Career Navigator web login so the terminal client can call the backend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.Dir()
		if err != nil {
			return fmt.Errorf("resolve config dir: %w", err)
		}
		if err := auth.Save(dir, args[0]); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		fmt.Println("Token saved. Run canav to open the dashboard.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
