package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/x402dash/x402dash/bootstrap"
	"github.com/x402dash/x402dash/config"
)

var hotReload bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	Long: `Start the x402dash server.

The server will:
  - Load configuration from x402dash.yaml (or --config)
  - Or load configuration from X402DASH_* environment variables
  - Open the event store
  - Serve the seller dashboard and, when enabled, the buyer dashboard
  - Auto-log served requests when seller.auto_logging is on

Examples:
  x402dash serve
  x402dash serve --config /etc/x402dash/config.yaml
  x402dash serve --hot-reload=false

  # Docker (env vars only):
  X402DASH_DATABASE_DSN=/data/x402dash.db x402dash serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&hotReload, "hot-reload", true, "enable hot reload of configuration")
}

func runServe(cmd *cobra.Command, args []string) error {
	hasConfigFile := false
	if _, err := os.Stat(cfgFile); err == nil {
		hasConfigFile = true
	}

	opts := bootstrap.Options{Version: version}

	var app *bootstrap.App
	var err error

	if hasConfigFile && hotReload {
		app, err = bootstrap.NewWithHotReload(cfgFile, opts)
	} else {
		cfg, loadErr := config.LoadWithFallback(cfgFile)
		if loadErr != nil {
			return fmt.Errorf("error loading config: %w", loadErr)
		}
		if !hasConfigFile {
			fmt.Fprintln(cmd.OutOrStdout(), "Running with environment variables (no config file)")
		}
		app, err = bootstrap.New(cfg, opts)
	}
	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}

	// Run (blocks until shutdown)
	return app.Run()
}
