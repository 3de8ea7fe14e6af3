package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/x402dash/x402dash/app"
	"github.com/x402dash/x402dash/bootstrap"
	"github.com/x402dash/x402dash/config"
)

// openLedger builds the application services against the configured store
// without starting the server.
func openLedger(cmd *cobra.Command) (*bootstrap.App, error) {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Database.Driver == "memory" {
		return nil, errors.New("database.driver is memory; this command needs a persistent store")
	}

	cfg.Metrics.Enabled = false
	cfg.Demo.Enabled = true
	cfg.Demo.LoadOnStart = false
	cfg.Logging.Level = "warn"

	a, err := bootstrap.New(cfg, bootstrap.Options{Version: version, LogOutput: cmd.ErrOrStderr()})
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	return a, nil
}

// sides expands the --side flag.
func sides(side string) ([]string, error) {
	switch side {
	case app.SideSeller, app.SideBuyer:
		return []string{side}, nil
	case "both":
		return []string{app.SideSeller, app.SideBuyer}, nil
	default:
		return nil, fmt.Errorf("invalid --side %q: want seller, buyer or both", side)
	}
}
