package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/x402dash/x402dash/adapters/clock"
	"github.com/x402dash/x402dash/adapters/idgen"
	"github.com/x402dash/x402dash/adapters/memory"
	"github.com/x402dash/x402dash/app"
	"github.com/x402dash/x402dash/domain/errs"
	"github.com/x402dash/x402dash/domain/spending"
)

func newSpendingLogger(cfg app.SpendingLoggerConfig) (*app.SpendingLogger, *memory.EventStore[spending.Event]) {
	store := memory.NewSpendingStore(idgen.NewSequential("s-"))
	l := app.NewSpendingLogger(store, app.LoggerDeps{
		Clock:  clock.NewFake(testNow),
		Logger: zerolog.Nop(),
	}, cfg)
	return l, store
}

func TestSpendingLogger_Defaults(t *testing.T) {
	l, _ := newSpendingLogger(app.SpendingLoggerConfig{DefaultBuyerID: "buyer-main", DefaultBuyerName: "Main Agent"})

	e, err := l.Log(context.Background(), spending.Event{Status: spending.StatusSuccess})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}

	if e.ID != "s-1" {
		t.Errorf("ID = %s, want s-1", e.ID)
	}
	if !e.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v, want %v", e.CreatedAt, testNow)
	}
	if e.RequestedAt != nil {
		t.Errorf("RequestedAt = %v, want nil", e.RequestedAt)
	}
	if e.BuyerID != "buyer-main" || e.BuyerName != "Main Agent" {
		t.Errorf("buyer = %s/%s, want buyer-main/Main Agent", e.BuyerID, e.BuyerName)
	}
}

func TestSpendingLogger_FallbackBuyer(t *testing.T) {
	l, _ := newSpendingLogger(app.SpendingLoggerConfig{})

	e, _ := l.Log(context.Background(), spending.Event{Status: spending.StatusPending})

	if e.BuyerID != app.FallbackBuyerID {
		t.Errorf("BuyerID = %s, want %s", e.BuyerID, app.FallbackBuyerID)
	}
}

func TestSpendingLogger_KeepsCallerBuyer(t *testing.T) {
	l, _ := newSpendingLogger(app.SpendingLoggerConfig{DefaultBuyerID: "d", DefaultBuyerName: "Default Name"})

	e, _ := l.Log(context.Background(), spending.Event{BuyerID: "b-9", Status: spending.StatusPending})

	if e.BuyerID != "b-9" || e.BuyerName != "" {
		t.Errorf("buyer = %s/%q, want b-9 with no default name", e.BuyerID, e.BuyerName)
	}
}

func TestSpendingLogger_Variants(t *testing.T) {
	l, store := newSpendingLogger(app.SpendingLoggerConfig{})
	ctx := context.Background()
	p := app.Purchase{
		BuyerID:     "b1",
		ServiceID:   "openai-gpt4",
		ServiceName: "OpenAI GPT-4",
		Endpoint:    "/chat/completions",
		Category:    spending.CategoryLanguageModel,
	}
	pay := app.Payment{Network: "eip155:8453", Asset: "USDC", AmountAtomic: 50000, TxHash: "0xabc"}

	tests := []struct {
		name   string
		log    func() (spending.Event, error)
		status spending.Status
		paid   bool
	}{
		{"success", func() (spending.Event, error) { return l.LogSuccess(ctx, p, pay) }, spending.StatusSuccess, true},
		{"payment required", func() (spending.Event, error) { return l.LogPaymentRequired(ctx, p, pay) }, spending.StatusPaymentRequired, true},
		{"pending", func() (spending.Event, error) { return l.LogPending(ctx, p, pay, "pay-1") }, spending.StatusPending, true},
		{"failed", func() (spending.Event, error) { return l.LogFailed(ctx, p, "insufficient balance") }, spending.StatusFailed, false},
		{"rejected", func() (spending.Event, error) { return l.LogRejected(ctx, p, "budget exceeded") }, spending.StatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := tt.log()
			if err != nil {
				t.Fatalf("log: %v", err)
			}
			if e.Status != tt.status {
				t.Errorf("Status = %s, want %s", e.Status, tt.status)
			}
			if e.ServiceID != p.ServiceID || e.Category != p.Category {
				t.Errorf("purchase fields not copied: %+v", e)
			}
			hasPayment := e.AmountAtomic != nil || e.Network != "" || e.Asset != ""
			if hasPayment != tt.paid {
				t.Errorf("payment fields present = %v, want %v", hasPayment, tt.paid)
			}
		})
	}

	success, _ := store.Get(ctx, "s-1")
	if success.SettledAt == nil || success.TxHash != "0xabc" {
		t.Errorf("success event = %+v, want settled with tx hash", success)
	}
	pending, _ := store.Get(ctx, "s-3")
	if pending.PaymentID != "pay-1" || pending.TxHash != "" {
		t.Errorf("pending event = %+v", pending)
	}
	failed, _ := store.Get(ctx, "s-4")
	if failed.ErrorMessage != "insufficient balance" {
		t.Errorf("failed ErrorMessage = %q", failed.ErrorMessage)
	}
}

func TestSpendingLogger_InvalidCategory(t *testing.T) {
	l, store := newSpendingLogger(app.SpendingLoggerConfig{})

	_, err := l.Log(context.Background(), spending.Event{Status: spending.StatusSuccess, Category: "GAMES"})

	if ve, ok := errs.AsValidation(err); !ok || ve.Field != "category" {
		t.Errorf("Log error = %v, want validation error on category", err)
	}
	if store.Len() != 0 {
		t.Errorf("store has %d events, want 0", store.Len())
	}
}

func TestSpendingBuilder(t *testing.T) {
	l, _ := newSpendingLogger(app.SpendingLoggerConfig{})
	ctx := context.Background()

	b := l.Builder().
		BuyerID("b2").
		BuyerName("Research Bot").
		ServiceID("weather-api").
		Category(spending.CategoryDataAPI).
		AmountAtomic(5000).
		BudgetID("q2").
		ProjectID("forecast").
		Status(spending.StatusSuccess)

	e, err := b.Commit(ctx)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if e.BudgetID != "q2" || e.ProjectID != "forecast" || e.Amount() != 5000 {
		t.Errorf("Commit = %+v", e)
	}

	if _, err := b.Commit(ctx); !errors.Is(err, errs.ErrBuilderCommitted) {
		t.Errorf("second Commit error = %v, want ErrBuilderCommitted", err)
	}
}
