// Package memory provides in-memory implementations of storage ports.
// Useful for tests and for running the dashboard without a database.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/x402dash/x402dash/domain/errs"
	"github.com/x402dash/x402dash/domain/query"
	"github.com/x402dash/x402dash/domain/spending"
	"github.com/x402dash/x402dash/domain/usage"
	"github.com/x402dash/x402dash/ports"
)

// EventStore is an in-memory implementation of ports.EventStore.
// Records are kept in insertion order; readers must not rely on it.
type EventStore[E ports.Storable[E]] struct {
	mu     sync.RWMutex
	ids    ports.IDGenerator
	events []E
	byID   map[string]int
}

// NewEventStore creates an empty store that assigns ids with ids.
func NewEventStore[E ports.Storable[E]](ids ports.IDGenerator) *EventStore[E] {
	return &EventStore[E]{
		ids:  ids,
		byID: make(map[string]int),
	}
}

// NewUsageStore creates an in-memory seller event store.
func NewUsageStore(ids ports.IDGenerator) *EventStore[usage.Event] {
	return NewEventStore[usage.Event](ids)
}

// NewSpendingStore creates an in-memory buyer event store.
func NewSpendingStore(ids ports.IDGenerator) *EventStore[spending.Event] {
	return NewEventStore[spending.Event](ids)
}

// Insert assigns an id and appends the record.
func (s *EventStore[E]) Insert(ctx context.Context, e E) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.ids.New()
	if _, dup := s.byID[id]; dup {
		return "", fmt.Errorf("insert: duplicate id %s", id)
	}
	s.byID[id] = len(s.events)
	s.events = append(s.events, e.WithID(id))
	return id, nil
}

// Get retrieves a record by id.
func (s *EventStore[E]) Get(ctx context.Context, id string) (E, error) {
	var zero E
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return zero, errs.ErrNotFound
	}
	return s.events[i], nil
}

// Scan returns every record matching f.
func (s *EventStore[E]) Scan(ctx context.Context, f query.Filter) ([]E, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]E, 0)
	for _, e := range s.events {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// DeleteAll removes every record.
func (s *EventStore[E]) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = nil
	s.byID = make(map[string]int)
	return nil
}

// Len returns the number of stored records.
func (s *EventStore[E]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Ensure interface compliance.
var (
	_ ports.UsageStore    = (*EventStore[usage.Event])(nil)
	_ ports.SpendingStore = (*EventStore[spending.Event])(nil)
)
