package app

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/x402dash/x402dash/domain/aggregate"
	"github.com/x402dash/x402dash/domain/query"
	"github.com/x402dash/x402dash/domain/spending"
	"github.com/x402dash/x402dash/domain/usage"
	"github.com/x402dash/x402dash/ports"
)

// AnalyticsDeps contains dependencies for Analytics.
type AnalyticsDeps struct {
	Clock   ports.Clock
	Metrics ports.LedgerMetrics // optional
	Logger  zerolog.Logger
}

// Analytics answers dashboard queries for one ledger side.
// Each query performs exactly one store scan and runs the pure engine on the result.
type Analytics[R ports.Storable[R]] struct {
	side    string
	store   ports.EventStore[R]
	clock   ports.Clock
	metrics ports.LedgerMetrics
	logger  zerolog.Logger
	loc     atomic.Pointer[time.Location]
}

// UsageAnalytics serves the seller dashboard.
type UsageAnalytics = Analytics[usage.Event]

// SpendingAnalytics serves the buyer dashboard.
type SpendingAnalytics = Analytics[spending.Event]

// NewAnalytics creates an analytics service over store.
// loc is the reporting timezone used for calendar-day bucketing (nil means UTC).
func NewAnalytics[R ports.Storable[R]](side string, store ports.EventStore[R], deps AnalyticsDeps, loc *time.Location) *Analytics[R] {
	a := &Analytics[R]{
		side:    side,
		store:   store,
		clock:   deps.Clock,
		metrics: deps.Metrics,
		logger:  deps.Logger.With().Str("service", "analytics").Str("side", side).Logger(),
	}
	if a.metrics == nil {
		a.metrics = nopMetrics{}
	}
	a.SetLocation(loc)
	return a
}

// SetLocation changes the reporting timezone. Safe to call concurrently.
func (a *Analytics[R]) SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	a.loc.Store(loc)
}

// Location returns the reporting timezone.
func (a *Analytics[R]) Location() *time.Location {
	return a.loc.Load()
}

// Now returns the current time in the reporting timezone.
func (a *Analytics[R]) Now() time.Time {
	return a.clock.Now().In(a.Location())
}

// Side returns the ledger side this service reports on.
func (a *Analytics[R]) Side() string {
	return a.side
}

func (a *Analytics[R]) scan(ctx context.Context, op string, f query.Filter) ([]R, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	events, err := a.store.Scan(ctx, f.Unpaged())
	a.metrics.ObserveQuery(a.side, op, time.Since(start))
	if err != nil {
		a.logger.Error().Err(err).Str("op", op).Msg("store scan failed")
		return nil, err
	}
	return events, nil
}

// Totals returns count, success count, amount and success rate for f.
func (a *Analytics[R]) Totals(ctx context.Context, f query.Filter) (aggregate.Totals, error) {
	events, err := a.scan(ctx, "totals", f)
	if err != nil {
		return aggregate.Totals{}, err
	}
	return aggregate.Total(events, f), nil
}

// Overview returns totals plus average cost for the window of f.
func (a *Analytics[R]) Overview(ctx context.Context, f query.Filter) (aggregate.Overview, error) {
	t, err := a.Totals(ctx, f)
	if err != nil {
		return aggregate.Overview{}, err
	}
	return aggregate.NewOverview(t, f.From, f.To), nil
}

// GroupBy ranks the groups of dim by amount. limit <= 0 means unlimited.
func (a *Analytics[R]) GroupBy(ctx context.Context, dim query.Dimension, f query.Filter, limit int) ([]aggregate.Group[R], error) {
	events, err := a.scan(ctx, "group_by_"+string(dim), f)
	if err != nil {
		return nil, err
	}
	return aggregate.GroupBy(events, dim, f, limit), nil
}

// Daily buckets f's events by calendar day in the reporting timezone.
// A non-empty status restricts the buckets to that status.
func (a *Analytics[R]) Daily(ctx context.Context, f query.Filter, status string) ([]aggregate.DateBucket, error) {
	events, err := a.scan(ctx, "daily", f)
	if err != nil {
		return nil, err
	}
	return aggregate.Daily(events, f, status, a.Location()), nil
}

// Recent returns up to limit of the newest events whose tenant or actor is
// owner. An empty owner matches every event.
func (a *Analytics[R]) Recent(ctx context.Context, owner string, limit int) ([]R, error) {
	f := query.Filter{Owner: owner, From: query.AllTimeFrom, To: query.AllTimeTo}
	events, err := a.scan(ctx, "recent", f)
	if err != nil {
		return nil, err
	}
	return aggregate.Recent(events, f, limit), nil
}

// Page is one page of events, newest first.
type Page[R any] struct {
	Items      []R   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"totalPages"`
}

// Events returns the page of f's events selected by f.Page and f.Size.
func (a *Analytics[R]) Events(ctx context.Context, f query.Filter) (Page[R], error) {
	events, err := a.scan(ctx, "events", f)
	if err != nil {
		return Page[R]{}, err
	}
	items, total := aggregate.Paginate(events, f)
	p := Page[R]{Items: items, Total: total, Page: f.Page, Size: f.Size, TotalPages: 1}
	if f.Size > 0 {
		p.TotalPages = int((total + int64(f.Size) - 1) / int64(f.Size))
	}
	return p, nil
}

// Get returns one event by id.
func (a *Analytics[R]) Get(ctx context.Context, id string) (R, error) {
	return a.store.Get(ctx, id)
}

// ClearAll deletes every event of this side.
func (a *Analytics[R]) ClearAll(ctx context.Context) error {
	if err := a.store.DeleteAll(ctx); err != nil {
		return err
	}
	a.logger.Info().Msg("all events cleared")
	return nil
}
