package app

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/x402dash/x402dash/domain/errs"
	"github.com/x402dash/x402dash/domain/spending"
	"github.com/x402dash/x402dash/ports"
)

// FallbackBuyerID is used when neither the caller nor the config names a buyer.
const FallbackBuyerID = "default"

// SpendingLoggerConfig contains defaults applied by SpendingLogger.
type SpendingLoggerConfig struct {
	DefaultBuyerID   string
	DefaultBuyerName string
	Subject          string // fan-out subject; empty disables publishing
}

// SpendingLogger records buyer-side spending events.
// Safe for concurrent use.
type SpendingLogger struct {
	store ports.SpendingStore
	sink  sink
	cfg   atomic.Pointer[SpendingLoggerConfig]
}

// NewSpendingLogger creates a new buyer event logger.
func NewSpendingLogger(store ports.SpendingStore, deps LoggerDeps, cfg SpendingLoggerConfig) *SpendingLogger {
	l := &SpendingLogger{
		store: store,
		sink:  newSink(SideBuyer, deps),
	}
	l.UpdateConfig(cfg)
	return l
}

// UpdateConfig swaps the logger defaults. Safe to call while logging.
func (l *SpendingLogger) UpdateConfig(cfg SpendingLoggerConfig) {
	if cfg.DefaultBuyerID == "" {
		cfg.DefaultBuyerID = FallbackBuyerID
	}
	l.cfg.Store(&cfg)
}

// Config returns the current defaults.
func (l *SpendingLogger) Config() SpendingLoggerConfig {
	return *l.cfg.Load()
}

// Log validates e, applies defaults and stores it.
// CreatedAt defaults to now; RequestedAt is left to the caller.
func (l *SpendingLogger) Log(ctx context.Context, e spending.Event) (spending.Event, error) {
	if err := e.Validate(); err != nil {
		return spending.Event{}, l.sink.failed(err)
	}
	cfg := l.cfg.Load()

	if e.CreatedAt.IsZero() {
		e.CreatedAt = l.sink.clock.Now()
	}
	if e.BuyerID == "" {
		e.BuyerID = cfg.DefaultBuyerID
		if e.BuyerName == "" {
			e.BuyerName = cfg.DefaultBuyerName
		}
	}

	id, err := l.store.Insert(ctx, e)
	if err != nil {
		return spending.Event{}, l.sink.failed(err)
	}
	e.ID = id

	l.sink.stored(ctx, cfg.Subject, recorded{
		id:        id,
		status:    string(e.Status),
		network:   e.Network,
		asset:     e.Asset,
		amount:    e.Amount(),
		succeeded: e.Succeeded(),
	}, e)
	return e, nil
}

// Purchase identifies the paid service call an event describes.
type Purchase struct {
	BuyerID     string
	ServiceID   string
	ServiceName string
	Endpoint    string
	Category    spending.Category
	LatencyMs   *int64
}

func (p Purchase) event(status spending.Status) spending.Event {
	return spending.Event{
		BuyerID:     p.BuyerID,
		ServiceID:   p.ServiceID,
		ServiceName: p.ServiceName,
		Endpoint:    p.Endpoint,
		Category:    p.Category,
		Status:      status,
		LatencyMs:   p.LatencyMs,
	}
}

// LogSuccess records a settled payment. SettledAt is set to now.
func (l *SpendingLogger) LogSuccess(ctx context.Context, p Purchase, pay Payment) (spending.Event, error) {
	e := p.event(spending.StatusSuccess)
	e.Network, e.Asset, e.TxHash = pay.Network, pay.Asset, pay.TxHash
	e.AmountAtomic = &pay.AmountAtomic
	now := l.sink.clock.Now()
	e.SettledAt = &now
	return l.Log(ctx, e)
}

// LogPaymentRequired records a 402 challenge received from a service.
func (l *SpendingLogger) LogPaymentRequired(ctx context.Context, p Purchase, quote Payment) (spending.Event, error) {
	e := p.event(spending.StatusPaymentRequired)
	e.Network, e.Asset = quote.Network, quote.Asset
	e.AmountAtomic = &quote.AmountAtomic
	return l.Log(ctx, e)
}

// LogPending records a payment that was sent but not yet settled.
func (l *SpendingLogger) LogPending(ctx context.Context, p Purchase, pay Payment, paymentID string) (spending.Event, error) {
	e := p.event(spending.StatusPending)
	e.Network, e.Asset = pay.Network, pay.Asset
	e.AmountAtomic = &pay.AmountAtomic
	e.PaymentID = paymentID
	return l.Log(ctx, e)
}

// LogFailed records a failed payment. No payment fields are kept.
func (l *SpendingLogger) LogFailed(ctx context.Context, p Purchase, errMsg string) (spending.Event, error) {
	e := p.event(spending.StatusFailed)
	e.ErrorMessage = errMsg
	return l.Log(ctx, e)
}

// LogRejected records a payment the service refused.
func (l *SpendingLogger) LogRejected(ctx context.Context, p Purchase, errMsg string) (spending.Event, error) {
	e := p.event(spending.StatusRejected)
	e.ErrorMessage = errMsg
	return l.Log(ctx, e)
}

// Builder starts a staged event. The builder commits at most once.
func (l *SpendingLogger) Builder() *SpendingBuilder {
	return &SpendingBuilder{logger: l}
}

// SpendingBuilder accumulates fields for a single spending event.
type SpendingBuilder struct {
	logger *SpendingLogger
	e      spending.Event
	done   atomic.Bool
}

func (b *SpendingBuilder) BuyerID(v string) *SpendingBuilder { b.e.BuyerID = v; return b }
func (b *SpendingBuilder) BuyerName(v string) *SpendingBuilder { b.e.BuyerName = v; return b }
func (b *SpendingBuilder) ServiceID(v string) *SpendingBuilder { b.e.ServiceID = v; return b }
func (b *SpendingBuilder) ServiceName(v string) *SpendingBuilder { b.e.ServiceName = v; return b }
func (b *SpendingBuilder) ServiceURL(v string) *SpendingBuilder { b.e.ServiceURL = v; return b }
func (b *SpendingBuilder) Endpoint(v string) *SpendingBuilder { b.e.Endpoint = v; return b }
func (b *SpendingBuilder) Method(v string) *SpendingBuilder { b.e.Method = v; return b }
func (b *SpendingBuilder) Category(v spending.Category) *SpendingBuilder { b.e.Category = v; return b }
func (b *SpendingBuilder) Network(v string) *SpendingBuilder { b.e.Network = v; return b }
func (b *SpendingBuilder) Asset(v string) *SpendingBuilder { b.e.Asset = v; return b }
func (b *SpendingBuilder) AmountAtomic(v int64) *SpendingBuilder { b.e.AmountAtomic = &v; return b }
func (b *SpendingBuilder) TxHash(v string) *SpendingBuilder { b.e.TxHash = v; return b }
func (b *SpendingBuilder) PaymentID(v string) *SpendingBuilder { b.e.PaymentID = v; return b }
func (b *SpendingBuilder) Status(v spending.Status) *SpendingBuilder { b.e.Status = v; return b }
func (b *SpendingBuilder) BudgetID(v string) *SpendingBuilder { b.e.BudgetID = v; return b }
func (b *SpendingBuilder) ProjectID(v string) *SpendingBuilder { b.e.ProjectID = v; return b }
func (b *SpendingBuilder) ClientIP(v string) *SpendingBuilder { b.e.ClientIP = v; return b }
func (b *SpendingBuilder) UserAgent(v string) *SpendingBuilder { b.e.UserAgent = v; return b }
func (b *SpendingBuilder) ErrorMessage(v string) *SpendingBuilder { b.e.ErrorMessage = v; return b }
func (b *SpendingBuilder) Metadata(v string) *SpendingBuilder { b.e.Metadata = v; return b }
func (b *SpendingBuilder) LatencyMs(v int64) *SpendingBuilder { b.e.LatencyMs = &v; return b }
func (b *SpendingBuilder) CreatedAt(v time.Time) *SpendingBuilder { b.e.CreatedAt = v; return b }
func (b *SpendingBuilder) RequestedAt(v time.Time) *SpendingBuilder { b.e.RequestedAt = &v; return b }
func (b *SpendingBuilder) SettledAt(v time.Time) *SpendingBuilder { b.e.SettledAt = &v; return b }

// Commit logs the accumulated event. Every later call returns
// errs.ErrBuilderCommitted without touching the store.
func (b *SpendingBuilder) Commit(ctx context.Context) (spending.Event, error) {
	if !b.done.CompareAndSwap(false, true) {
		return spending.Event{}, b.logger.sink.failed(errs.ErrBuilderCommitted)
	}
	return b.logger.Log(ctx, b.e)
}
