package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/careernav/canav/internal/core/api"
	"github.com/careernav/canav/internal/core/auth"
	"github.com/careernav/canav/internal/core/career"
	"github.com/careernav/canav/internal/core/config"
	"github.com/careernav/canav/internal/observability"
)

var (
	apiURL      string
	versionInfo string
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "canav",
	Short: "Career Navigator terminal client",
	Long: `canav - the Career Navigator from your terminal

Browse your career dashboard and run AI mock-interview sessions against
the Career Navigator backend, with optional voice input through an
external transcriber command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to the dashboard if no subcommand specified
		return dashboardCmd.RunE(cmd, args)
	},
}

func init() {
	// Local .env files are a dev convenience; missing is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Backend base URL (overrides config)")
}

// app bundles everything a TUI run needs.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	client   *api.Client
	provider *career.Provider
}

// buildApp loads config and the credential. A missing or locally
// expired token leaves client nil: the UI renders its unauthenticated
// state and no network call is ever attempted.
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if apiURL != "" {
		cfg.APIURL = strings.TrimRight(apiURL, "/")
	}

	log := observability.NewLogger(cfg.LogFile)

	dir, err := config.Dir()
	if err != nil {
		dir = ""
	}

	var client *api.Client
	token, err := auth.Token(dir)
	switch {
	case errors.Is(err, auth.ErrNoToken):
		log.Info("no access token; starting unauthenticated")
	case err != nil:
		return nil, fmt.Errorf("read token: %w", err)
	case auth.Expired(token, time.Now()):
		log.Info("access token expired; starting unauthenticated")
	default:
		client = api.New(cfg.APIURL, token, cfg.RequestTimeout)
	}

	var fetcher career.HistoryFetcher
	if client != nil {
		fetcher = client
	}

	return &app{
		cfg:      cfg,
		log:      log,
		client:   client,
		provider: career.NewProvider(fetcher, log),
	}, nil
}
