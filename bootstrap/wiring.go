package bootstrap

import (
	"context"

	"github.com/x402dash/x402dash/adapters/bus"
	"github.com/x402dash/x402dash/adapters/http/dashboard"
	"github.com/x402dash/x402dash/app"
	"github.com/x402dash/x402dash/config"
	"github.com/x402dash/x402dash/domain/query"
)

func usageLoggerConfig(cfg *config.Config) app.UsageLoggerConfig {
	return app.UsageLoggerConfig{
		DefaultTenantID: cfg.Seller.DefaultTenantID,
		Subject:         cfg.Events.UsageSubject,
	}
}

func spendingLoggerConfig(cfg *config.Config) app.SpendingLoggerConfig {
	return app.SpendingLoggerConfig{
		DefaultBuyerID:   cfg.Buyer.DefaultBuyerID,
		DefaultBuyerName: cfg.Buyer.DefaultBuyerName,
		Subject:          cfg.Events.SpendingSubject,
	}
}

func dashboardConfig(d config.DashboardConfig) dashboard.Config {
	return dashboard.Config{
		OverviewDays: d.OverviewDays,
		DailyDays:    d.DailyDays,
		TopLimit:     d.TopLimit,
		RecentLimit:  d.RecentLimit,
		PageSize:     d.PageSize,
	}
}

// autoLogSkip lists the path prefixes the request auto-logger ignores:
// both dashboards plus any configured extras.
func autoLogSkip(cfg *config.Config) []string {
	skip := []string{cfg.Seller.APIPath}
	if cfg.Buyer.APIPath != "" {
		skip = append(skip, cfg.Buyer.APIPath)
	}
	return append(skip, cfg.Seller.AutoLogSkip...)
}

func allTime() query.Filter {
	return query.Filter{From: query.AllTimeFrom, To: query.AllTimeTo}
}

// traceLedgerEvent writes a debug line for every stored ledger event.
func (a *App) traceLedgerEvent(_ context.Context, m bus.Message) error {
	ev := a.Logger.Debug().Str("subject", m.Subject)
	if r, ok := m.Payload.(interface{ RecordID() string }); ok {
		ev = ev.Str("id", r.RecordID())
	}
	ev.Msg("ledger event stored")
	return nil
}
