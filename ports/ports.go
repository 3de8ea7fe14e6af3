// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"time"

	"github.com/x402dash/x402dash/domain/aggregate"
	"github.com/x402dash/x402dash/domain/query"
	"github.com/x402dash/x402dash/domain/spending"
	"github.com/x402dash/x402dash/domain/usage"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// Hasher provides password hashing for dashboard credentials.
type Hasher interface {
	Hash(plaintext string) ([]byte, error)
	Compare(hash []byte, plaintext string) bool
}

// -----------------------------------------------------------------------------
// Data Store Ports
// -----------------------------------------------------------------------------

// Storable is a record an EventStore can persist.
type Storable[E any] interface {
	aggregate.Record
	// WithID returns a copy of the record carrying the store-assigned id.
	WithID(id string) E
}

// EventStore persists immutable event records.
// Scan order is unspecified; readers sort explicitly.
type EventStore[E Storable[E]] interface {
	// Insert assigns an id, stores the record and returns the id.
	Insert(ctx context.Context, e E) (string, error)

	// Get retrieves a record by id. Returns errs.ErrNotFound when absent.
	Get(ctx context.Context, id string) (E, error)

	// Scan returns every record matching f. Paging fields are ignored.
	Scan(ctx context.Context, f query.Filter) ([]E, error)

	// DeleteAll removes every record (administrative reset).
	DeleteAll(ctx context.Context) error
}

// UsageStore persists seller usage events.
type UsageStore = EventStore[usage.Event]

// SpendingStore persists buyer spending events.
type SpendingStore = EventStore[spending.Event]

// -----------------------------------------------------------------------------
// Event Ports
// -----------------------------------------------------------------------------

// EventPublisher fans stored events out to external subscribers.
// Publishing is best effort; callers log failures and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

// NopPublisher discards everything.
type NopPublisher struct{}

// Publish does nothing.
func (NopPublisher) Publish(context.Context, string, any) error { return nil }

// -----------------------------------------------------------------------------
// Observability Ports
// -----------------------------------------------------------------------------

// LedgerMetrics receives ledger observations. Implementations must be safe
// for concurrent use.
type LedgerMetrics interface {
	ObserveLogged(side, status, network, asset string, amount int64, succeeded bool)
	ObserveLogFailure(side, reason string)
	ObserveQuery(side, op string, d time.Duration)
	ObservePublishError(subject string)
}
