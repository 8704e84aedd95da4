package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axellelanca/surl/internal/config"
)

// Cfg holds the configuration loaded before any command runs.
// Commands read it once and pass the values they need to constructors explicitly.
var Cfg *config.Config

var baseURLFlag string

// RootCmd is the base command for the CLI application
// All other commands (run-server, shorten, summary, history, migrate) are added as subcommands
var RootCmd = &cobra.Command{
	Use:   "surl",
	Short: "SURL - a front-end for a URL shortening service",
	Long: `SURL shortens long URLs and shows visit analytics for short codes by talking to an
external shortening service. It can serve the web front-end or be used from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		if baseURLFlag != "" {
			cfg.API.BaseURL = baseURLFlag
		}
		cfg.ConfigureLogging()
		Cfg = cfg
		return nil
	},
}

// Execute is the main entry point for the Cobra application
// It is called from 'main.go' and handles command execution and error handling
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "Base URL of the shortening service (overrides api.base_url)")

	// Subcommands register themselves from their own init() to avoid import cycles.
}
