// Package bus is an in-process publish/subscribe hub for stored ledger events.
package bus

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/x402dash/x402dash/ports"
)

// Message is one published record.
type Message struct {
	Subject string
	Payload any
}

// Handler processes a message.
type Handler func(ctx context.Context, m Message) error

// Bus delivers published records to subscribed handlers synchronously.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   zerolog.Logger
}

var _ ports.EventPublisher = (*Bus)(nil)

// New creates an empty bus.
func New(logger zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger.With().Str("component", "bus").Logger(),
	}
}

// Subscribe registers h for pattern. Patterns match:
//   - "x402.usage.logged" exactly
//   - "x402.usage.*" and "x402.*" for everything below that prefix
//   - "*" for every subject
func (b *Bus) Subscribe(pattern string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[pattern] = append(b.handlers[pattern], h)
}

// Publish calls every matching handler in registration order, most
// specific pattern first. Handler errors are logged and joined.
func (b *Bus) Publish(ctx context.Context, subject string, payload any) error {
	matched := b.matching(subject)
	if len(matched) == 0 {
		return nil
	}

	b.logger.Debug().Str("subject", subject).Int("handlers", len(matched)).Msg("publishing")

	m := Message{Subject: subject, Payload: payload}
	var errs []error
	for _, h := range matched {
		if err := h(ctx, m); err != nil {
			b.logger.Error().Err(err).Str("subject", subject).Msg("event handler error")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// HasSubscribers reports whether any handler matches subject.
func (b *Bus) HasSubscribers(subject string) bool {
	return len(b.matching(subject)) > 0
}

// matching copies the handlers for subject so they run without the lock held.
func (b *Bus) matching(subject string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var matched []Handler
	matched = append(matched, b.handlers[subject]...)
	for i := strings.LastIndexByte(subject, '.'); i > 0; i = strings.LastIndexByte(subject[:i], '.') {
		matched = append(matched, b.handlers[subject[:i]+".*"]...)
	}
	return append(matched, b.handlers["*"]...)
}

// Fanout publishes to every publisher and joins their errors.
type Fanout []ports.EventPublisher

var _ ports.EventPublisher = Fanout(nil)

// Publish implements ports.EventPublisher.
func (f Fanout) Publish(ctx context.Context, subject string, payload any) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, subject, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
