package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "x402dash",
	Short: "Usage and spending ledger for x402 payment-gated APIs",
	Long: `x402dash records every paid API call as an immutable event and serves
seller and buyer dashboards over the resulting ledger.

Quick start:
  x402dash serve                  # start the dashboards
  x402dash demo generate          # fill the ledgers with sample data
  x402dash usage summary          # print the last week at a glance`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "x402dash.yaml", "config file path")
}
