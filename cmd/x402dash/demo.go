package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/x402dash/x402dash/app"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Manage demo data",
	Long: `Generate or remove sample ledger events.

Examples:
  x402dash demo generate --count=500 --days=14
  x402dash demo generate --side=buyer
  x402dash demo clear --side=seller`,
}

var demoGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Append randomized events to the ledgers",
	RunE:  runDemoGenerate,
}

var demoClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every event from the ledgers",
	RunE:  runDemoClear,
}

var (
	demoSide  string
	demoCount int
	demoDays  int
)

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.AddCommand(demoGenerateCmd)
	demoCmd.AddCommand(demoClearCmd)

	demoCmd.PersistentFlags().StringVar(&demoSide, "side", "both", "seller, buyer or both")
	demoGenerateCmd.Flags().IntVar(&demoCount, "count", app.DefaultDemoCount, "events per ledger")
	demoGenerateCmd.Flags().IntVar(&demoDays, "days", app.DefaultDemoDays, "spread events over the last N days")
}

func runDemoGenerate(cmd *cobra.Command, args []string) error {
	targets, err := sides(demoSide)
	if err != nil {
		return err
	}
	if err := app.ValidateDemoRequest(demoCount, demoDays); err != nil {
		return err
	}

	a, err := openLedger(cmd)
	if err != nil {
		return err
	}
	defer a.Shutdown()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	for _, side := range targets {
		var sum app.DemoSummary
		if side == app.SideSeller {
			sum, err = a.Demo.GenerateUsage(ctx, demoCount, demoDays)
		} else {
			sum, err = a.Demo.GenerateSpending(ctx, demoCount, demoDays)
		}
		if err != nil {
			return fmt.Errorf("generate %s demo data: %w", side, err)
		}
		fmt.Fprintf(out, "%s: generated %d events between %s and %s (amount %d)\n",
			side, sum.Generated, sum.From.Format("2006-01-02"), sum.To.Format("2006-01-02"), sum.AmountSum)
	}
	return nil
}

func runDemoClear(cmd *cobra.Command, args []string) error {
	targets, err := sides(demoSide)
	if err != nil {
		return err
	}

	a, err := openLedger(cmd)
	if err != nil {
		return err
	}
	defer a.Shutdown()

	ctx := cmd.Context()
	for _, side := range targets {
		if side == app.SideSeller {
			err = a.UsageAnalytics.ClearAll(ctx)
		} else {
			err = a.SpendingAnalytics.ClearAll(ctx)
		}
		if err != nil {
			return fmt.Errorf("clear %s ledger: %w", side, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ledger cleared\n", side)
	}
	return nil
}
