// Package app provides application services that orchestrate domain logic.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/x402dash/x402dash/domain/errs"
	"github.com/x402dash/x402dash/ports"
)

// Ledger sides, used as metric labels and log fields.
const (
	SideSeller = "seller"
	SideBuyer  = "buyer"
)

// Default fan-out subjects.
const (
	DefaultUsageSubject    = "x402.usage.logged"
	DefaultSpendingSubject = "x402.spending.logged"
)

// LoggerDeps contains dependencies shared by the event loggers.
type LoggerDeps struct {
	Clock     ports.Clock
	Metrics   ports.LedgerMetrics  // optional
	Publisher ports.EventPublisher // optional
	Logger    zerolog.Logger
}

// sink handles everything that happens around a store insert:
// failure accounting, metrics and best-effort fan-out.
type sink struct {
	side      string
	clock     ports.Clock
	metrics   ports.LedgerMetrics
	publisher ports.EventPublisher
	logger    zerolog.Logger
}

func newSink(side string, deps LoggerDeps) sink {
	s := sink{
		side:      side,
		clock:     deps.Clock,
		metrics:   deps.Metrics,
		publisher: deps.Publisher,
		logger:    deps.Logger.With().Str("side", side).Logger(),
	}
	if s.metrics == nil {
		s.metrics = nopMetrics{}
	}
	if s.publisher == nil {
		s.publisher = ports.NopPublisher{}
	}
	return s
}

// failed records a logging call that produced no event and returns err unchanged.
func (s sink) failed(err error) error {
	reason := "store"
	switch {
	case errs.IsValidation(err):
		reason = "validation"
	case errors.Is(err, errs.ErrBuilderCommitted):
		reason = "recommit"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		reason = "canceled"
	case errors.Is(err, errs.ErrStoreUnavailable):
		reason = "unavailable"
	}
	s.metrics.ObserveLogFailure(s.side, reason)
	if reason != "validation" {
		s.logger.Warn().Err(err).Str("reason", reason).Msg("event not logged")
	}
	return err
}

// stored records a successful insert and publishes the record.
// Publish failures are logged and counted, never returned.
func (s sink) stored(ctx context.Context, subject string, r recorded, payload any) {
	s.metrics.ObserveLogged(s.side, r.status, r.network, r.asset, r.amount, r.succeeded)

	s.logger.Debug().
		Str("id", r.id).
		Str("status", r.status).
		Int64("amount", r.amount).
		Msg("event logged")

	if subject == "" {
		return
	}
	if err := s.publisher.Publish(ctx, subject, payload); err != nil {
		s.metrics.ObservePublishError(subject)
		s.logger.Warn().Err(err).Str("subject", subject).Str("id", r.id).Msg("event publish failed")
	}
}

type recorded struct {
	id        string
	status    string
	network   string
	asset     string
	amount    int64
	succeeded bool
}

type nopMetrics struct{}

func (nopMetrics) ObserveLogged(string, string, string, string, int64, bool) {}
func (nopMetrics) ObserveLogFailure(string, string)                          {}
func (nopMetrics) ObserveQuery(string, string, time.Duration)                {}
func (nopMetrics) ObservePublishError(string)                                {}

// Payment describes the money side of an event.
type Payment struct {
	Network      string
	Asset        string
	AmountAtomic int64
	TxHash       string
}

// Millis converts d to the millisecond latency recorded on events.
func Millis(d time.Duration) *int64 {
	ms := d.Milliseconds()
	return &ms
}
