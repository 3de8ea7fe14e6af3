package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/x402dash/x402dash/app"
	"github.com/x402dash/x402dash/bootstrap"
	"github.com/x402dash/x402dash/domain/aggregate"
	"github.com/x402dash/x402dash/domain/query"
	"github.com/x402dash/x402dash/ports"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "View ledger statistics",
	Long: `View usage (seller) and spending (buyer) statistics.

Examples:
  x402dash usage summary
  x402dash usage summary --side=buyer --owner=buyer-main --days=30
  x402dash usage recent --side=seller --limit=20`,
}

var usageSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show totals and top groups for a window",
	RunE:  runUsageSummary,
}

var usageRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the most recent events",
	RunE:  runUsageRecent,
}

var (
	usageSide  string
	usageOwner string
	usageDays  int
	usageLimit int
)

func init() {
	rootCmd.AddCommand(usageCmd)

	usageCmd.AddCommand(usageSummaryCmd)
	usageCmd.AddCommand(usageRecentCmd)

	usageCmd.PersistentFlags().StringVar(&usageSide, "side", "both", "seller, buyer or both")
	usageCmd.PersistentFlags().StringVar(&usageOwner, "owner", "", "tenant/buyer id or actor to filter by")
	usageCmd.PersistentFlags().IntVar(&usageLimit, "limit", 10, "rows to show")
	usageSummaryCmd.Flags().IntVar(&usageDays, "days", 7, "window size in days, ending today")
}

func runUsageSummary(cmd *cobra.Command, args []string) error {
	targets, err := sides(usageSide)
	if err != nil {
		return err
	}
	if usageDays < 1 {
		return fmt.Errorf("--days must be at least 1")
	}

	a, err := openLedger(cmd)
	if err != nil {
		return err
	}
	defer a.Shutdown()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	for _, side := range targets {
		if side == app.SideSeller {
			err = printSummary(ctx, out, a.UsageAnalytics, query.DimEndpoint)
		} else {
			err = printSummary(ctx, out, a.SpendingAnalytics, query.DimService)
		}
		if err != nil {
			return fmt.Errorf("%s summary: %w", side, err)
		}
	}
	return nil
}

func printSummary[R ports.Storable[R]](ctx context.Context, out io.Writer, an *app.Analytics[R], dim query.Dimension) error {
	from, to := query.LastDays(an.Now(), usageDays, an.Location())
	f := query.Filter{Owner: usageOwner, From: from, To: to}

	o, err := an.Overview(ctx, f)
	if err != nil {
		return err
	}
	top, err := an.GroupBy(ctx, dim, f, usageLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s ledger, %s to %s\n\n", an.Side(), from.Format("2006-01-02"), to.Format("2006-01-02"))
	fmt.Fprintf(out, "Events:        %d\n", o.Count)
	fmt.Fprintf(out, "Successful:    %d\n", o.SuccessCount)
	fmt.Fprintf(out, "Success rate:  %.2f%%\n", aggregate.Round2(o.SuccessRate))
	fmt.Fprintf(out, "Amount:        %d\n", o.AmountSum)
	fmt.Fprintf(out, "Avg cost:      %d\n\n", o.AvgCost)

	if len(top) == 0 {
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tCOUNT\tAMOUNT\tAVG\tSHARE\n", dimHeader(dim))
	for _, g := range top {
		key := g.Key
		if !g.Present {
			key = "(none)"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.2f%%\n", key, g.Count, g.AmountSum, g.AvgCost, aggregate.Round2(g.PercentOfTotal))
	}
	fmt.Fprintln(w)
	return w.Flush()
}

func dimHeader(d query.Dimension) string {
	switch d {
	case query.DimEndpoint:
		return "ENDPOINT"
	case query.DimService:
		return "SERVICE"
	default:
		return "KEY"
	}
}

func runUsageRecent(cmd *cobra.Command, args []string) error {
	targets, err := sides(usageSide)
	if err != nil {
		return err
	}

	a, err := openLedger(cmd)
	if err != nil {
		return err
	}
	defer a.Shutdown()

	for _, side := range targets {
		if side == app.SideSeller {
			err = printRecentUsage(cmd, a)
		} else {
			err = printRecentSpending(cmd, a)
		}
		if err != nil {
			return fmt.Errorf("%s recent: %w", side, err)
		}
	}
	return nil
}

func printRecentUsage(cmd *cobra.Command, a *bootstrap.App) error {
	events, err := a.UsageAnalytics.Recent(cmd.Context(), usageOwner, usageLimit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No recent seller events found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIMESTAMP\tTENANT\tAGENT\tENDPOINT\tSTATUS\tAMOUNT")
	fmt.Fprintln(w, "---------\t------\t-----\t--------\t------\t------")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.In(a.UsageAnalytics.Location()).Format("2006-01-02 15:04:05"),
			e.TenantID,
			e.AgentID,
			e.Endpoint,
			e.Status,
			amount(e.AmountAtomic),
		)
	}
	fmt.Fprintln(w)
	return w.Flush()
}

func printRecentSpending(cmd *cobra.Command, a *bootstrap.App) error {
	events, err := a.SpendingAnalytics.Recent(cmd.Context(), usageOwner, usageLimit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No recent buyer transactions found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIMESTAMP\tBUYER\tSERVICE\tCATEGORY\tSTATUS\tAMOUNT")
	fmt.Fprintln(w, "---------\t-----\t-------\t--------\t------\t------")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.In(a.SpendingAnalytics.Location()).Format("2006-01-02 15:04:05"),
			e.BuyerID,
			e.ServiceID,
			e.Category,
			e.Status,
			amount(e.AmountAtomic),
		)
	}
	fmt.Fprintln(w)
	return w.Flush()
}

func amount(p *int64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *p)
}
