package app

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/x402dash/x402dash/domain/errs"
	"github.com/x402dash/x402dash/domain/usage"
	"github.com/x402dash/x402dash/ports"
)

// UsageLoggerConfig contains defaults applied by UsageLogger.
// Hot-reloadable via UpdateConfig.
type UsageLoggerConfig struct {
	DefaultTenantID string
	Subject         string // fan-out subject; empty disables publishing
}

// UsageLogger records seller-side usage events.
// Safe for concurrent use.
type UsageLogger struct {
	store ports.UsageStore
	sink  sink
	cfg   atomic.Pointer[UsageLoggerConfig]
}

// NewUsageLogger creates a new seller event logger.
func NewUsageLogger(store ports.UsageStore, deps LoggerDeps, cfg UsageLoggerConfig) *UsageLogger {
	l := &UsageLogger{
		store: store,
		sink:  newSink(SideSeller, deps),
	}
	l.UpdateConfig(cfg)
	return l
}

// UpdateConfig swaps the logger defaults. Safe to call while logging.
func (l *UsageLogger) UpdateConfig(cfg UsageLoggerConfig) {
	l.cfg.Store(&cfg)
}

// Config returns the current defaults.
func (l *UsageLogger) Config() UsageLoggerConfig {
	return *l.cfg.Load()
}

// Log validates e, applies defaults and stores it.
// Defaults: CreatedAt and RequestedAt to now, Method to METHOD_CALL,
// TenantID to the configured default tenant. SettledAt is never defaulted.
func (l *UsageLogger) Log(ctx context.Context, e usage.Event) (usage.Event, error) {
	if err := e.Validate(); err != nil {
		return usage.Event{}, l.sink.failed(err)
	}
	cfg := l.cfg.Load()

	now := l.sink.clock.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.RequestedAt == nil {
		e.RequestedAt = &now
	}
	if e.Method == "" {
		e.Method = usage.DefaultMethod
	}
	if e.TenantID == "" {
		e.TenantID = cfg.DefaultTenantID
	}

	id, err := l.store.Insert(ctx, e)
	if err != nil {
		return usage.Event{}, l.sink.failed(err)
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

// Call identifies the request an event describes.
type Call struct {
	AgentID   string
	Method    string
	Endpoint  string
	LatencyMs *int64
}

// LogSimple records an event with only locus, status and latency.
func (l *UsageLogger) LogSimple(ctx context.Context, method, endpoint string, status usage.Status, latencyMs *int64) (usage.Event, error) {
	return l.Log(ctx, usage.Event{
		Method:    method,
		Endpoint:  endpoint,
		Status:    status,
		LatencyMs: latencyMs,
	})
}

// LogSuccess records a settled payment. SettledAt is set to now.
func (l *UsageLogger) LogSuccess(ctx context.Context, c Call, p Payment) (usage.Event, error) {
	now := l.sink.clock.Now()
	return l.Log(ctx, usage.Event{
		AgentID:      c.AgentID,
		Method:       c.Method,
		Endpoint:     c.Endpoint,
		Network:      p.Network,
		Asset:        p.Asset,
		AmountAtomic: &p.AmountAtomic,
		TxHash:       p.TxHash,
		Status:       usage.StatusSuccess,
		LatencyMs:    c.LatencyMs,
		SettledAt:    &now,
	})
}

// LogPaymentRequired records a 402 challenge together with the quoted price.
// The quote never counts toward amount sums.
func (l *UsageLogger) LogPaymentRequired(ctx context.Context, c Call, quote Payment) (usage.Event, error) {
	return l.Log(ctx, usage.Event{
		AgentID:      c.AgentID,
		Method:       c.Method,
		Endpoint:     c.Endpoint,
		Network:      quote.Network,
		Asset:        quote.Asset,
		AmountAtomic: &quote.AmountAtomic,
		Status:       usage.StatusPaymentRequired,
		LatencyMs:    c.LatencyMs,
	})
}

// LogVerifyFailed records a payment that failed verification.
func (l *UsageLogger) LogVerifyFailed(ctx context.Context, c Call) (usage.Event, error) {
	return l.Log(ctx, usage.Event{
		AgentID:   c.AgentID,
		Method:    c.Method,
		Endpoint:  c.Endpoint,
		Status:    usage.StatusVerifyFailed,
		LatencyMs: c.LatencyMs,
	})
}

// LogSettleFailed records a payment whose settlement failed.
func (l *UsageLogger) LogSettleFailed(ctx context.Context, c Call, txHash string) (usage.Event, error) {
	return l.Log(ctx, usage.Event{
		AgentID:   c.AgentID,
		Method:    c.Method,
		Endpoint:  c.Endpoint,
		TxHash:    txHash,
		Status:    usage.StatusSettleFailed,
		LatencyMs: c.LatencyMs,
	})
}

// Builder starts a staged event. The builder commits at most once.
func (l *UsageLogger) Builder() *UsageBuilder {
	return &UsageBuilder{logger: l}
}

// UsageBuilder accumulates fields for a single usage event.
// Setters are not safe for concurrent use; Commit is.
type UsageBuilder struct {
	logger *UsageLogger
	e      usage.Event
	done   atomic.Bool
}

func (b *UsageBuilder) TenantID(v string) *UsageBuilder { b.e.TenantID = v; return b }
func (b *UsageBuilder) AgentID(v string) *UsageBuilder { b.e.AgentID = v; return b }
func (b *UsageBuilder) AgentType(v usage.AgentType) *UsageBuilder { b.e.AgentType = v; return b }
func (b *UsageBuilder) Method(v string) *UsageBuilder { b.e.Method = v; return b }
func (b *UsageBuilder) Endpoint(v string) *UsageBuilder { b.e.Endpoint = v; return b }
func (b *UsageBuilder) BillingKey(v string) *UsageBuilder { b.e.BillingKey = v; return b }
func (b *UsageBuilder) Network(v string) *UsageBuilder { b.e.Network = v; return b }
func (b *UsageBuilder) Asset(v string) *UsageBuilder { b.e.Asset = v; return b }
func (b *UsageBuilder) AmountAtomic(v int64) *UsageBuilder { b.e.AmountAtomic = &v; return b }
func (b *UsageBuilder) TxHash(v string) *UsageBuilder { b.e.TxHash = v; return b }
func (b *UsageBuilder) Status(v usage.Status) *UsageBuilder { b.e.Status = v; return b }
func (b *UsageBuilder) ClientIP(v string) *UsageBuilder { b.e.ClientIP = v; return b }
func (b *UsageBuilder) UserAgent(v string) *UsageBuilder { b.e.UserAgent = v; return b }
func (b *UsageBuilder) ErrorMessage(v string) *UsageBuilder { b.e.ErrorMessage = v; return b }
func (b *UsageBuilder) Metadata(v string) *UsageBuilder { b.e.Metadata = v; return b }
func (b *UsageBuilder) LatencyMs(v int64) *UsageBuilder { b.e.LatencyMs = &v; return b }
func (b *UsageBuilder) CreatedAt(v time.Time) *UsageBuilder { b.e.CreatedAt = v; return b }
func (b *UsageBuilder) RequestedAt(v time.Time) *UsageBuilder { b.e.RequestedAt = &v; return b }
func (b *UsageBuilder) SettledAt(v time.Time) *UsageBuilder { b.e.SettledAt = &v; return b }

// Commit logs the accumulated event. Every later call returns
// errs.ErrBuilderCommitted without touching the store.
func (b *UsageBuilder) Commit(ctx context.Context) (usage.Event, error) {
	if !b.done.CompareAndSwap(false, true) {
		return usage.Event{}, b.logger.sink.failed(errs.ErrBuilderCommitted)
	}
	return b.logger.Log(ctx, b.e)
}
