package app_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/x402dash/x402dash/adapters/clock"
	"github.com/x402dash/x402dash/adapters/idgen"
	"github.com/x402dash/x402dash/adapters/memory"
	"github.com/x402dash/x402dash/app"
	"github.com/x402dash/x402dash/domain/errs"
	"github.com/x402dash/x402dash/domain/query"
)

func TestValidateDemoRequest(t *testing.T) {
	tests := []struct {
		count, days int
		field       string
	}{
		{100, 30, ""},
		{1, 1, ""},
		{app.MaxDemoCount, app.MaxDemoDays, ""},
		{0, 30, "count"},
		{app.MaxDemoCount + 1, 30, "count"},
		{10, 0, "days"},
		{10, app.MaxDemoDays + 1, "days"},
	}

	for _, tt := range tests {
		err := app.ValidateDemoRequest(tt.count, tt.days)
		if tt.field == "" {
			if err != nil {
				t.Errorf("ValidateDemoRequest(%d, %d) = %v, want nil", tt.count, tt.days, err)
			}
			continue
		}
		ve, ok := errs.AsValidation(err)
		if !ok || ve.Field != tt.field {
			t.Errorf("ValidateDemoRequest(%d, %d) = %v, want validation error on %s", tt.count, tt.days, err, tt.field)
		}
	}
}

func TestDemoGenerator_Usage(t *testing.T) {
	f := newUsageFixture()
	g := app.NewDemoGenerator(app.DemoDeps{Usage: f.logger, Clock: f.clock, Logger: zerolog.Nop()}, 42)
	ctx := context.Background()

	sum, err := g.GenerateUsage(ctx, 200, 7)
	if err != nil {
		t.Fatalf("GenerateUsage: %v", err)
	}
	if sum.Generated != 200 || f.store.Len() != 200 {
		t.Fatalf("generated %d, stored %d, want 200", sum.Generated, f.store.Len())
	}

	events, _ := f.store.Scan(ctx, query.Filter{From: query.AllTimeFrom, To: query.AllTimeTo})
	var amount int64
	var byStatus int
	for _, e := range events {
		if e.CreatedAt.Before(testNow.AddDate(0, 0, -7)) || e.CreatedAt.After(testNow) {
			t.Errorf("CreatedAt %v outside the last 7 days", e.CreatedAt)
		}
		if !e.Succeeded() && e.AmountAtomic != nil {
			t.Errorf("%s event carries an amount", e.Status)
		}
		if e.Succeeded() {
			amount += e.Amount()
		}
	}
	for _, n := range sum.ByStatus {
		byStatus += n
	}
	if amount != sum.AmountSum {
		t.Errorf("AmountSum = %d, want %d", sum.AmountSum, amount)
	}
	if byStatus != 200 {
		t.Errorf("ByStatus totals %d, want 200", byStatus)
	}
	if sum.ByStatus["SUCCESS"] == 0 {
		t.Error("no SUCCESS events generated")
	}
}

func TestDemoGenerator_Spending(t *testing.T) {
	store := memory.NewSpendingStore(idgen.NewSequential("s-"))
	fc := clock.NewFake(testNow)
	l := app.NewSpendingLogger(store, app.LoggerDeps{Clock: fc, Logger: zerolog.Nop()},
		app.SpendingLoggerConfig{DefaultBuyerID: "demo-buyer", DefaultBuyerName: "Demo"})
	g := app.NewDemoGenerator(app.DemoDeps{Spending: l, Clock: fc, Logger: zerolog.Nop()}, 7)
	ctx := context.Background()

	sum, err := g.GenerateSpending(ctx, 50, 30)
	if err != nil {
		t.Fatalf("GenerateSpending: %v", err)
	}

	events, _ := store.Scan(ctx, query.Filter{From: query.AllTimeFrom, To: query.AllTimeTo})
	if len(events) != 50 || sum.Generated != 50 {
		t.Fatalf("stored %d, generated %d, want 50", len(events), sum.Generated)
	}
	for _, e := range events {
		if e.BuyerID != "demo-buyer" {
			t.Errorf("BuyerID = %s, want demo-buyer", e.BuyerID)
		}
		if e.Category == "" || !e.Category.Valid() {
			t.Errorf("Category = %q, want a valid category", e.Category)
		}
		if !e.Succeeded() && e.AmountAtomic != nil {
			t.Errorf("%s event carries an amount", e.Status)
		}
	}
}

func TestDemoGenerator_DisabledSideAndLimits(t *testing.T) {
	f := newUsageFixture()
	g := app.NewDemoGenerator(app.DemoDeps{Usage: f.logger, Clock: f.clock, Logger: zerolog.Nop()}, 1)
	ctx := context.Background()

	if _, err := g.GenerateSpending(ctx, 10, 10); err == nil {
		t.Error("GenerateSpending with no buyer ledger should fail")
	}
	if _, err := g.GenerateUsage(ctx, 0, 10); !errs.IsValidation(err) {
		t.Errorf("GenerateUsage(0) error = %v, want validation error", err)
	}
	if f.store.Len() != 0 {
		t.Errorf("store has %d events, want 0", f.store.Len())
	}
}
