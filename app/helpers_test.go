package app_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/x402dash/x402dash/adapters/clock"
	"github.com/x402dash/x402dash/adapters/idgen"
	"github.com/x402dash/x402dash/adapters/memory"
	"github.com/x402dash/x402dash/app"
	"github.com/x402dash/x402dash/domain/errs"
	"github.com/x402dash/x402dash/domain/query"
	"github.com/x402dash/x402dash/domain/usage"
)

var testNow = time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

type published struct {
	subject string
	payload any
}

type mockPublisher struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (p *mockPublisher) Publish(_ context.Context, subject string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, published{subject, payload})
	return nil
}

func (p *mockPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.msgs)
}

type mockMetrics struct {
	mu       sync.Mutex
	logged   map[string]int
	failures map[string]int
	queries  map[string]int
	pubErrs  int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{
		logged:   make(map[string]int),
		failures: make(map[string]int),
		queries:  make(map[string]int),
	}
}

func (m *mockMetrics) ObserveLogged(side, status, _, _ string, _ int64, _ bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logged[side+"/"+status]++
}

func (m *mockMetrics) ObserveLogFailure(side, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[side+"/"+reason]++
}

func (m *mockMetrics) ObserveQuery(side, op string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries[side+"/"+op]++
}

func (m *mockMetrics) ObservePublishError(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pubErrs++
}

// failingUsageStore rejects every call with err.
type failingUsageStore struct {
	err     error
	inserts int
}

func (s *failingUsageStore) Insert(context.Context, usage.Event) (string, error) {
	s.inserts++
	return "", s.err
}
func (s *failingUsageStore) Get(context.Context, string) (usage.Event, error) {
	return usage.Event{}, s.err
}
func (s *failingUsageStore) Scan(context.Context, query.Filter) ([]usage.Event, error) {
	return nil, s.err
}
func (s *failingUsageStore) DeleteAll(context.Context) error { return s.err }

var errDiskGone = errs.Unavailable(errors.New("disk gone"))

type usageFixture struct {
	store     *memory.EventStore[usage.Event]
	clock     *clock.Fake
	publisher *mockPublisher
	metrics   *mockMetrics
	logger    *app.UsageLogger
}

func newUsageFixture() usageFixture {
	f := usageFixture{
		store:     memory.NewUsageStore(idgen.NewSequential("u-")),
		clock:     clock.NewFake(testNow),
		publisher: &mockPublisher{},
		metrics:   newMockMetrics(),
	}
	f.logger = app.NewUsageLogger(f.store, app.LoggerDeps{
		Clock:     f.clock,
		Metrics:   f.metrics,
		Publisher: f.publisher,
		Logger:    zerolog.Nop(),
	}, app.UsageLoggerConfig{DefaultTenantID: "tenant-default", Subject: app.DefaultUsageSubject})
	return f
}

func ptr[T any](v T) *T { return &v }
