// Rentwizard-server is the HTTP API server for the Brussels reference
// rent wizard.
//
// It serves the wizard's step URL contract, the session state API with
// debounced persistence, the reference rent calculation endpoint, and a
// websocket stream of session state for live clients.
//
// Usage:
//
//	rentwizard-server serve [flags]
//
// See 'rentwizard-server serve --help' for available options.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/loyerbxl/rentwizard/internal/config"
	"github.com/loyerbxl/rentwizard/internal/server"
	"github.com/loyerbxl/rentwizard/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rentwizard-server",
	Short: "Brussels Reference Rent API Server",
	Long: `The HTTP API server behind the Brussels reference rent wizard.

Serves the step URL contract, the session state API, the reference rent
calculation endpoint, and a websocket state stream for live clients.

Note: for the interactive terminal wizard, use the separate 'rentwizard'
utility.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Serve command and flags
var (
	host       string
	port       int
	logLevel   string
	lookupURL  string
	sessionDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the rent wizard API server.

Values not set by flags come from the user configuration file; session
snapshots go to the OS data directory unless --session-dir overrides
it.`,
	Example: `  # Start with configuration defaults
  rentwizard-server serve

  # Listen on all interfaces with debug logging
  rentwizard-server serve --host 0.0.0.0 --port 8080 --log-level debug

  # Keep session snapshots in a custom directory
  rentwizard-server serve --session-dir /var/lib/rentwizard`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&host, "host", "", "Listen host (default from config)")
	serveCmd.Flags().IntVar(&port, "port", 0, "Listen port (default from config)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&lookupURL, "lookup-url", "", "Difficulty-index lookup service URL (default from config)")
	serveCmd.Flags().StringVar(&sessionDir, "session-dir", "", "Session snapshot directory (default: OS data dir)")
}

func runServe(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg := &server.Config{
		Host:     settings.Server.Host,
		Port:     settings.Server.Port,
		LogLevel: logLevel,
	}
	if host != "" {
		cfg.Host = host
	}
	if port != 0 {
		cfg.Port = port
	}

	cfg.LookupBaseURL = settings.Lookup.BaseURL
	if lookupURL != "" {
		cfg.LookupBaseURL = lookupURL
	}
	cfg.LookupTimeout = time.Duration(settings.Lookup.TimeoutSeconds) * time.Second

	cfg.SessionDir = sessionDir
	if cfg.SessionDir == "" {
		dir, err := settings.SessionDir()
		if err != nil {
			return fmt.Errorf("cannot resolve session directory: %w", err)
		}
		cfg.SessionDir = dir
	}
	cfg.Debounce = time.Duration(settings.Session.DebounceMs) * time.Millisecond
	cfg.MaxAge = time.Duration(settings.Session.MaxAgeHours) * time.Hour

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rentwizard-server %s (commit: %s)\n", version.Version, version.Commit)
	},
}
